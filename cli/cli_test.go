package cli

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"btree/btree"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func runSession(t *testing.T, degree int, script ...string) (*Cli, string) {
	t.Helper()
	tr, err := btree.New(degree)
	require.NoError(t, err)

	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(strings.Join(script, "\n") + "\n"))
	c := NewCli(scanner, &out, tr)
	require.NoError(t, c.Start())
	return c, out.String()
}

func TestInsertAndQueries(t *testing.T) {
	assert := assert.New(t)
	c, out := runSession(t, 2,
		"INSERT 10 20 5 6 12 30 7 17",
		"has 6",
		"has 99",
		"height",
		"stats",
		"keys",
	)

	assert.Equal(8, c.Tree().Len())
	assert.Contains(out, "true\n")
	assert.Contains(out, "false\n")
	assert.Contains(out, "> 2\n")
	assert.Contains(out, "keys=8 nodes=4 height=2 splits=2\n")
	assert.Contains(out, "5 6 7 10 12 17 20 30\n")
}

func TestNeighbours(t *testing.T) {
	assert := assert.New(t)
	_, out := runSession(t, 2,
		"insert 1 2 3 4 5 6 7",
		"succ 4",
		"pred 4",
		"succ 7",
		"pred 1",
		"min",
		"max",
		"level 4",
		"level 40",
	)

	assert.Contains(out, "> 5\n")
	assert.Contains(out, "> 3\n")
	assert.Contains(out, "No successor.")
	assert.Contains(out, "No predecessor.")
	assert.Contains(out, "> 1\n")
	assert.Contains(out, "> 7\n")
	assert.Contains(out, "Key not found.")
}

func TestLevels(t *testing.T) {
	_, out := runSession(t, 2, "insert 10 20 5 6 12 30 7 17", "levels")
	assert.Contains(t, out, "[10 20]\n[5 6 7]\n[12 17]\n[30]\n")
}

func TestUsageAndErrors(t *testing.T) {
	assert := assert.New(t)
	c, out := runSession(t, 3,
		"insert",
		"insert 1 x 2",
		"has",
		"succ abc",
		"seed -1",
		"frobnicate",
		"",
		"min",
	)

	assert.Equal(0, c.Tree().Len(), "a bad key aborts the whole insert")
	assert.Contains(out, "Usage: INSERT <key>...")
	assert.Contains(out, `Invalid key "x": not an integer`)
	assert.Contains(out, "Usage: HAS <key>")
	assert.Contains(out, `Invalid key "abc": not an integer`)
	assert.Contains(out, `Invalid count "-1"`)
	assert.Contains(out, `Unknown command "frobnicate"`)
	assert.Contains(out, "Tree is empty.")
}

func TestExitStopsSession(t *testing.T) {
	c, _ := runSession(t, 2, "insert 1", "exit", "insert 2")
	assert.Equal(t, []int{1}, c.Tree().Keys())
}

func TestSeed(t *testing.T) {
	c, out := runSession(t, 3, "seed 50")
	assert.Contains(t, out, "Inserted 50 random keys.")
	assert.Equal(t, 50, c.Tree().Len())
	for _, k := range c.Tree().Keys() {
		assert.GreaterOrEqual(t, k, -100000)
		assert.LessOrEqual(t, k, 100000)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.bts")

	src, _ := runSession(t, 3, "insert 4 8 15 16 23 42", "save "+path)
	c, out := runSession(t, 2, "insert 99", "load "+path, "keys")

	assert.Contains(t, out, "Loaded 6 keys (degree 3)")
	assert.Equal(t, src.Tree().Keys(), c.Tree().Keys())
	assert.Equal(t, 3, c.Tree().Degree())

	_, out = runSession(t, 2, "load "+filepath.Join(t.TempDir(), "missing.bts"))
	assert.Contains(t, out, "no such file")
}
