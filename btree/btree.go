// Package btree implements an in-memory B-tree of int keys (CLRS style).
//
// A tree of minimum degree T keeps between T-1 and 2T-1 keys in every node except the root.
// Insertion splits full nodes on the way down, so a single pass from the root is enough and
// no node above the insertion point is ever left overfull.
package btree

import (
	"errors"
	"log/slog"
)

// ErrInvalidDegree is returned by New when the minimum degree is below 2.
var ErrInvalidDegree = errors.New("btree: minimum degree must be at least 2")

const minDegree = 2

type Option func(*Btree)

// WithLogger sets the logger used for split diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(t *Btree) {
		if l != nil {
			t.log = l
		}
	}
}

// Stats is a point-in-time summary of the tree shape.
type Stats struct {
	Keys   int
	Nodes  int
	Height int
	Splits int
}
