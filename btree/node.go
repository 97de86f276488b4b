package btree

import (
	"strconv"
	"strings"
)

/*
A node holds up to 2T-1 keys and, unless it is a leaf, exactly len(keys)+1 children.
Slices are allocated with their full capacity up front, so inserting never grows them.
*/
type node struct {
	keys     []int
	children []*node
	leaf     bool
}

func newNode(degree int, leaf bool) *node {
	n := &node{
		keys: make([]int, 0, 2*degree-1),
		leaf: leaf,
	}
	if !leaf {
		n.children = make([]*node, 0, 2*degree)
	}
	return n
}

func (n *node) full(degree int) bool {
	return len(n.keys) == 2*degree-1
}

/*
Number of keys <= key, scanning from the right.
This is both the insertion slot within a leaf and the child to descend into for an internal node,
so equal keys always end up to the right of existing ones.
*/
func (n *node) childIndex(key int) int {
	i := len(n.keys)
	for i > 0 && key < n.keys[i-1] {
		i--
	}
	return i
}

// helper method to insert a key at an arbitrary position of a node
func (n *node) insertKeyAt(pos int, key int) {
	n.keys = append(n.keys, 0)
	copy(n.keys[pos+1:], n.keys[pos:])
	n.keys[pos] = key
}

// helper method to insert a child pointer at an arbitrary position of a node
func (n *node) insertChildAt(pos int, child *node) {
	n.children = append(n.children, nil)
	copy(n.children[pos+1:], n.children[pos:])
	n.children[pos] = child
}

/*
splitChild splits the full child at position pos.
The new sibling takes the upper T-1 keys (and upper T children), the child keeps the lower half,
and the median key moves up into n at pos with the sibling linked right after it.
n must not be full.
*/
func (n *node) splitChild(pos, degree int) (median int, sibling *node) {
	child := n.children[pos]
	mid := degree - 1
	median = child.keys[mid]

	sibling = newNode(degree, child.leaf)
	sibling.keys = append(sibling.keys, child.keys[mid+1:]...)
	if !child.leaf {
		sibling.children = append(sibling.children, child.children[mid+1:]...)
		clear(child.children[mid+1:])
		child.children = child.children[:mid+1]
	}
	child.keys = child.keys[:mid]

	n.insertKeyAt(pos, median)
	n.insertChildAt(pos+1, sibling)
	return median, sibling
}

// [k1 k2 k3]
func (n *node) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, k := range n.keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(k))
	}
	sb.WriteByte(']')
	return sb.String()
}
