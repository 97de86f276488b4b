package btree

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

/*
Btree only keeps a pointer to the root node of the tree.
A tree is made up of nodes. Each node contains keys.
*/
type Btree struct {
	root   *node
	degree int
	size   int
	splits int
	log    *slog.Logger
}

// New returns an empty tree of the given minimum degree: a single leaf root with no keys.
func New(degree int, opts ...Option) (*Btree, error) {
	if degree < minDegree {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDegree, degree)
	}
	t := &Btree{
		root:   newNode(degree, true),
		degree: degree,
		log:    slog.Default().With("system", "btree"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Btree) Degree() int {
	return t.degree
}

// Len returns the number of stored keys, duplicates included.
func (t *Btree) Len() int {
	return t.size
}

/*
split wraps node.splitChild so every split gets logged and counted.
We split as soon as we reach the parent of a child that is already full.
*/
func (t *Btree) split(parent *node, pos int) {
	child := parent.children[pos]
	if t.log.Enabled(context.Background(), slog.LevelDebug) {
		t.log.Debug("split node", "node", child.String(), "pos", pos)
	}
	parent.splitChild(pos, t.degree)
	t.splits++
}

/*
Create a new root node.
The existing root becomes the new root's only child and is then split, so the new root
ends up with the median key and two children. The new root is always internal.
*/
func (t *Btree) splitRoot() {
	newRoot := newNode(t.degree, false)
	newRoot.insertChildAt(0, t.root)
	t.root = newRoot
	t.split(newRoot, 0)
}

// Insert adds key to the tree. Duplicates are stored as additional entries.
func (t *Btree) Insert(key int) {
	// The tree root is full, so perform a split on the root.
	if t.root.full(t.degree) {
		t.splitRoot()
	}
	t.insertNonFull(t.root, key)
	t.size++
}

/*
insertNonFull walks down from n, which is guaranteed to have room for one more key,
splitting any full child before descending into it.
*/
func (t *Btree) insertNonFull(n *node, key int) {
	pos := n.childIndex(key)

	// If we reach a leaf node -> it has sufficient space for the new key
	if n.leaf {
		n.insertKeyAt(pos, key)
		return
	}

	// If the next node on the traversal path is already full, split it
	if n.children[pos].full(t.degree) {
		t.split(n, pos)
		// The promoted median is smaller than our key, so continue into the right half.
		if n.keys[pos] < key {
			pos++
		}
	}

	// Continue with the insertion process
	t.insertNonFull(n.children[pos], key)
}

// Contains reports whether key is stored in the tree.
func (t *Btree) Contains(key int) bool {
	_, ok := t.Level(key)
	return ok
}

// Level returns the 1-based depth of the first node holding key.
func (t *Btree) Level(key int) (int, bool) {
	depth := 1
	for n := t.root; n != nil; depth++ {
		i := 0
		for ; i < len(n.keys); i++ {
			if n.keys[i] == key {
				return depth, true
			}
			if n.keys[i] > key {
				break
			}
		}
		if n.leaf {
			break
		}
		n = n.children[i]
	}
	return 0, false
}

// Height returns the number of levels from the root to the leaves. An empty tree has height 1.
func (t *Btree) Height() int {
	h := 1
	for n := t.root; !n.leaf; n = n.children[0] {
		h++
	}
	return h
}

// Min returns the smallest key in the tree.
func (t *Btree) Min() (int, bool) {
	n := t.root
	for !n.leaf {
		n = n.children[0]
	}
	if len(n.keys) == 0 {
		return 0, false
	}
	return n.keys[0], true
}

// Max returns the largest key in the tree.
func (t *Btree) Max() (int, bool) {
	n := t.root
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}
	if len(n.keys) == 0 {
		return 0, false
	}
	return n.keys[len(n.keys)-1], true
}

/*
Successor returns the smallest key strictly greater than key.
At every node the first key greater than key is a candidate; the child to its left can only
hold keys between the previous separator and that candidate, so a candidate found deeper is
always at least as good. key itself does not need to be present.
*/
func (t *Btree) Successor(key int) (int, bool) {
	var succ int
	var found bool
	for n := t.root; ; {
		i := n.childIndex(key)
		if i < len(n.keys) {
			succ, found = n.keys[i], true
		}
		if n.leaf {
			return succ, found
		}
		n = n.children[i]
	}
}

// Predecessor returns the greatest key strictly smaller than key. Mirror image of Successor.
func (t *Btree) Predecessor(key int) (int, bool) {
	var pred int
	var found bool
	for n := t.root; ; {
		i, _ := slices.BinarySearch(n.keys, key)
		if i > 0 {
			pred, found = n.keys[i-1], true
		}
		if n.leaf {
			return pred, found
		}
		n = n.children[i]
	}
}

// Ascend calls fn for every key in ascending order until fn returns false.
func (t *Btree) Ascend(fn func(key int) bool) {
	t.root.ascend(fn)
}

func (n *node) ascend(fn func(key int) bool) bool {
	for i, k := range n.keys {
		if !n.leaf && !n.children[i].ascend(fn) {
			return false
		}
		if !fn(k) {
			return false
		}
	}
	if !n.leaf {
		return n.children[len(n.keys)].ascend(fn)
	}
	return true
}

// Keys returns every key in ascending order.
func (t *Btree) Keys() []int {
	keys := make([]int, 0, t.size)
	t.Ascend(func(k int) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

/*
WalkLevelOrder visits nodes breadth first using an explicit queue. fn receives the depth of the
node (1 for the root) and a copy of its keys; returning false stops the walk.
*/
func (t *Btree) WalkLevelOrder(fn func(depth int, keys []int) bool) {
	type entry struct {
		n     *node
		depth int
	}
	queue := []entry{{t.root, 1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !fn(cur.depth, slices.Clone(cur.n.keys)) {
			return
		}
		for _, c := range cur.n.children {
			if c != nil {
				queue = append(queue, entry{c, cur.depth + 1})
			}
		}
	}
}

// PrintByLevel writes one line per node, in breadth-first dequeue order.
func (t *Btree) PrintByLevel(w io.Writer) error {
	var err error
	t.WalkLevelOrder(func(_ int, keys []int) bool {
		_, err = fmt.Fprintln(w, (&node{keys: keys}).String())
		return err == nil
	})
	return err
}

func (t *Btree) Stats() Stats {
	s := Stats{Keys: t.size, Splits: t.splits, Height: t.Height()}
	t.WalkLevelOrder(func(int, []int) bool {
		s.Nodes++
		return true
	})
	return s
}

func (t *Btree) String() string {
	var sb strings.Builder
	_ = t.PrintByLevel(&sb)
	return sb.String()
}
