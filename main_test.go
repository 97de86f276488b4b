package main

import (
	"context"
	"log/slog"
	"testing"

	"btree/btree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLogging(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	logger, err := configLogging("debug")
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger, err = configLogging("WARN")
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))

	_, err = configLogging("loud")
	assert.Error(t, err)
}

func TestRunRejectsBadDegree(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	err := run([]string{"btree", "--degree", "1"})
	assert.ErrorIs(t, err, btree.ErrInvalidDegree)
}
