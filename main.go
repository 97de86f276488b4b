package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"btree/btree"
	btreecli "btree/cli"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:  "btree",
		Usage: "interactive B-Tree playground",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "degree",
				Aliases: []string{"t"},
				Usage:   "minimum degree T of the tree (nodes hold T-1..2T-1 keys)",
				Value:   2,
				EnvVars: []string{"BTREE_DEGREE"},
			},
			&cli.IntFlag{
				Name:    "seed",
				Usage:   "insert this many random keys created with go-faker before starting",
				EnvVars: []string{"BTREE_SEED"},
			},
			&cli.StringFlag{
				Name:  "load",
				Usage: "start from the snapshot in this file (its degree wins over --degree)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity (debug, info, warn, error); debug logs every node split",
				Value:   "info",
				EnvVars: []string{"BTREE_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable coloured output (NO_COLOR is honoured as well)",
			},
		},
		Action: runRepl,
	}
	return app.Run(args)
}

func configLogging(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger, nil
}

func runRepl(cctx *cli.Context) error {
	logger, err := configLogging(cctx.String("log-level"))
	if err != nil {
		return err
	}
	if cctx.Bool("no-color") {
		color.NoColor = true
	}

	opts := []btree.Option{btree.WithLogger(logger.With("system", "btree"))}
	var tree *btree.Btree
	if path := cctx.String("load"); path != "" {
		tree, err = btreecli.LoadFile(path, opts...)
	} else {
		tree, err = btree.New(cctx.Int("degree"), opts...)
	}
	if err != nil {
		return err
	}

	if n := cctx.Int("seed"); n > 0 {
		if err := btreecli.Seed(tree, n); err != nil {
			return err
		}
		logger.Info("seeded tree", "keys", n, "height", tree.Height())
	}

	scanner := bufio.NewScanner(os.Stdin)
	demo := btreecli.NewCli(scanner, os.Stdout, tree)
	return demo.Start()
}
