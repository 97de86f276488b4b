package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"btree/btree"
	"btree/snapshot"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
)

var (
	promptColor = color.New(color.FgCyan)
	errorColor  = color.New(color.FgRed)
)

type Cli struct {
	scanner    *bufio.Scanner
	out        io.Writer
	tree       *btree.Btree
	visualizer *btree.Visualizer
	log        *slog.Logger
}

func NewCli(s *bufio.Scanner, out io.Writer, t *btree.Btree) *Cli {
	v := &btree.Visualizer{
		Tree:  t,
		Color: true,
	}
	return &Cli{
		scanner:    s,
		out:        out,
		tree:       t,
		visualizer: v,
		log:        slog.Default().With("system", "cli"),
	}
}

// Start runs the read-eval-print loop until EXIT or end of input.
func (c *Cli) Start() error {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return nil
		}
		c.printPrompt()
	}
	return c.scanner.Err()
}

func (c *Cli) printHelp() {
	fmt.Fprintln(c.out, `
B-Tree CLI

Available Commands:
  INSERT <key>... Insert one or more integer keys into the B-Tree
  HAS <key>       Report whether the key is present
  HEIGHT          Number of levels from root to leaves
  LEVELS          Print node contents in breadth-first order
  SHOW            Draw the tree
  SUCC <key>      Smallest key greater than <key>
  PRED <key>      Greatest key smaller than <key>
  MIN / MAX       Smallest / largest key
  LEVEL <key>     Depth of the node holding <key>
  KEYS            All keys in ascending order
  STATS           Key, node and split counts
  SEED <n>        Insert <n> random keys
  SAVE <file>     Write a snapshot of the keys to <file>
  LOAD <file>     Replace the tree with the snapshot in <file>
  HELP            Show this message
  EXIT            Terminate this session`)
}

func (c *Cli) printPrompt() {
	promptColor.Fprint(c.out, "> ")
}

func (c *Cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Cli) errorf(format string, args ...any) {
	errorColor.Fprintf(c.out, format+"\n", args...)
}

// processInput returns false once the session should end.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]
	switch command {
	default:
		c.errorf("Unknown command \"%s\"", command)
	case "insert":
		c.processInsertCommand(args)
	case "has":
		c.withKey("HAS", args, func(k int) {
			c.printf("%t\n", c.tree.Contains(k))
		})
	case "height":
		c.printf("%d\n", c.tree.Height())
	case "levels":
		if err := c.tree.PrintByLevel(c.out); err != nil {
			c.errorf("%v", err)
		}
	case "show":
		c.printf("%s", c.visualizer.Visualize())
	case "succ":
		c.withKey("SUCC", args, func(k int) {
			v, ok := c.tree.Successor(k)
			c.printResult(v, ok, "No successor.")
		})
	case "pred":
		c.withKey("PRED", args, func(k int) {
			v, ok := c.tree.Predecessor(k)
			c.printResult(v, ok, "No predecessor.")
		})
	case "min":
		v, ok := c.tree.Min()
		c.printResult(v, ok, "Tree is empty.")
	case "max":
		v, ok := c.tree.Max()
		c.printResult(v, ok, "Tree is empty.")
	case "level":
		c.withKey("LEVEL", args, func(k int) {
			v, ok := c.tree.Level(k)
			c.printResult(v, ok, "Key not found.")
		})
	case "keys":
		keys := c.tree.Keys()
		strs := make([]string, len(keys))
		for i, k := range keys {
			strs[i] = strconv.Itoa(k)
		}
		c.printf("%s\n", strings.Join(strs, " "))
	case "stats":
		s := c.tree.Stats()
		c.printf("keys=%d nodes=%d height=%d splits=%d\n", s.Keys, s.Nodes, s.Height, s.Splits)
	case "seed":
		c.processSeedCommand(args)
	case "save":
		c.processSaveCommand(args)
	case "load":
		c.processLoadCommand(args)
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func parseKey(s string) (int, error) {
	return strconv.Atoi(s)
}

// withKey validates a single integer argument before running fn.
func (c *Cli) withKey(name string, args []string, fn func(k int)) {
	if len(args) != 1 {
		c.printf("Usage: %s <key>\n", name)
		return
	}
	k, err := parseKey(args[0])
	if err != nil {
		c.errorf("Invalid key %q: not an integer", args[0])
		return
	}
	fn(k)
}

// printResult prints v when ok, and missing otherwise.
func (c *Cli) printResult(v int, ok bool, missing string) {
	if !ok {
		c.printf("%s\n", missing)
		return
	}
	c.printf("%d\n", v)
}

func (c *Cli) processInsertCommand(args []string) {
	if len(args) < 1 {
		c.printf("Usage: INSERT <key>...\n")
		return
	}
	keys := make([]int, 0, len(args))
	for _, a := range args {
		k, err := parseKey(a)
		if err != nil {
			c.errorf("Invalid key %q: not an integer", a)
			return
		}
		keys = append(keys, k)
	}
	for _, k := range keys {
		c.tree.Insert(k)
	}
	c.printf("%s", c.visualizer.Visualize())
}

func (c *Cli) processSeedCommand(args []string) {
	if len(args) != 1 {
		c.printf("Usage: SEED <n>\n")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		c.errorf("Invalid count %q", args[0])
		return
	}
	if err := Seed(c.tree, n); err != nil {
		c.errorf("%v", err)
		return
	}
	c.printf("Inserted %d random keys.\n", n)
}

func (c *Cli) processSaveCommand(args []string) {
	if len(args) != 1 {
		c.printf("Usage: SAVE <file>\n")
		return
	}
	if err := SaveFile(args[0], c.tree); err != nil {
		c.errorf("%v", err)
		return
	}
	c.log.Info("saved snapshot", "path", args[0], "keys", c.tree.Len())
	c.printf("Saved %d keys to %s.\n", c.tree.Len(), args[0])
}

func (c *Cli) processLoadCommand(args []string) {
	if len(args) != 1 {
		c.printf("Usage: LOAD <file>\n")
		return
	}
	t, err := LoadFile(args[0])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	c.tree = t
	c.visualizer.Tree = t
	c.log.Info("loaded snapshot", "path", args[0], "keys", t.Len(), "degree", t.Degree())
	c.printf("Loaded %d keys (degree %d) from %s.\n", t.Len(), t.Degree(), args[0])
}

// Tree returns the tree the session currently operates on; LOAD replaces it.
func (c *Cli) Tree() *btree.Btree {
	return c.tree
}

type seedKey struct {
	Key int `faker:"boundary_start=-100000, boundary_end=100000"`
}

// Seed inserts n keys created with go-faker.
func Seed(t *btree.Btree, n int) error {
	for i := 0; i < n; i++ {
		var k seedKey
		if err := faker.FakeData(&k); err != nil {
			return fmt.Errorf("generating seed key: %w", err)
		}
		t.Insert(k.Key)
	}
	return nil
}

// SaveFile writes a snapshot of t to path, replacing any existing file.
func SaveFile(path string, t *btree.Btree) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return snapshot.Write(f, t)
}

// LoadFile reads the snapshot at path.
func LoadFile(path string, opts ...btree.Option) (*btree.Btree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := snapshot.Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, nil
}
