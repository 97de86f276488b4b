package btree

import (
	"fmt"
	"testing"
)

// checkInvariants walks the whole tree and fails t on the first structural violation.
func checkInvariants(t *testing.T, tr *Btree) {
	t.Helper()
	if err := verify(tr); err != nil {
		t.Fatalf("invariant violated: %v\n%s", err, tr)
	}
}

func verify(tr *Btree) error {
	leafDepth := -1
	count := 0
	var walk func(n *node, depth int, lo, hi *int) error
	walk = func(n *node, depth int, lo, hi *int) error {
		count += len(n.keys)
		if n != tr.root && len(n.keys) < tr.degree-1 {
			return fmt.Errorf("node %s has fewer than %d keys", n, tr.degree-1)
		}
		if len(n.keys) > 2*tr.degree-1 {
			return fmt.Errorf("node %s has more than %d keys", n, 2*tr.degree-1)
		}
		for i, k := range n.keys {
			if i > 0 && n.keys[i-1] > k {
				return fmt.Errorf("node %s keys out of order", n)
			}
			if lo != nil && k < *lo {
				return fmt.Errorf("key %d in %s below separator %d", k, n, *lo)
			}
			if hi != nil && k > *hi {
				return fmt.Errorf("key %d in %s above separator %d", k, n, *hi)
			}
		}
		if n.leaf != (len(n.children) == 0) {
			return fmt.Errorf("node %s leaf=%v with %d children", n, n.leaf, len(n.children))
		}
		if n.leaf {
			if leafDepth == -1 {
				leafDepth = depth
			} else if leafDepth != depth {
				return fmt.Errorf("leaf %s at depth %d, expected %d", n, depth, leafDepth)
			}
			return nil
		}
		if len(n.children) != len(n.keys)+1 {
			return fmt.Errorf("node %s has %d keys and %d children", n, len(n.keys), len(n.children))
		}
		for i, c := range n.children {
			childLo, childHi := lo, hi
			if i > 0 {
				childLo = &n.keys[i-1]
			}
			if i < len(n.keys) {
				childHi = &n.keys[i]
			}
			if err := walk(c, depth+1, childLo, childHi); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(tr.root, 1, nil, nil); err != nil {
		return err
	}
	if count != tr.size {
		return fmt.Errorf("counted %d keys, tree reports %d", count, tr.size)
	}
	if leafDepth != tr.Height() {
		return fmt.Errorf("leaves at depth %d, height reports %d", leafDepth, tr.Height())
	}
	return nil
}
