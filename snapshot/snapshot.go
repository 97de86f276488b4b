/*
Package snapshot dumps the keys of a tree to a compact stream and rebuilds a tree from it.

Layout, inside a snappy framed stream:

	magic  "BTS1"
	uvarint degree
	uvarint key count
	varint  key ... (level order)

Only the keys survive a round trip. The reloaded tree is rebuilt by plain insertion,
so its node layout may differ from the original.
*/
package snapshot

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"btree/btree"

	"github.com/golang/snappy"
)

var magic = [4]byte{'B', 'T', 'S', '1'}

// upper bound on the degree we are willing to allocate nodes for
const maxDegree = 1 << 16

var ErrBadMagic = errors.New("snapshot: bad magic")

type writer struct {
	w       io.Writer
	scratch [binary.MaxVarintLen64]byte
	err     error
}

func (w *writer) write(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

func (w *writer) uvarint(v uint64) {
	n := binary.PutUvarint(w.scratch[:], v)
	w.write(w.scratch[:n])
}

func (w *writer) varint(v int64) {
	n := binary.PutVarint(w.scratch[:], v)
	w.write(w.scratch[:n])
}

// Write encodes every key of t in level order to dst.
func Write(dst io.Writer, t *btree.Btree) error {
	sw := snappy.NewBufferedWriter(dst)
	w := &writer{w: sw}

	w.write(magic[:])
	w.uvarint(uint64(t.Degree()))
	w.uvarint(uint64(t.Len()))
	t.WalkLevelOrder(func(_ int, keys []int) bool {
		for _, k := range keys {
			w.varint(int64(k))
		}
		return w.err == nil
	})
	if w.err != nil {
		sw.Close()
		return fmt.Errorf("writing snapshot: %w", w.err)
	}
	// Close flushes the snappy frame; it leaves dst open.
	if err := sw.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Read decodes a snapshot written by Write and rebuilds the tree.
func Read(src io.Reader, opts ...btree.Option) (*btree.Btree, error) {
	r := bufio.NewReader(snappy.NewReader(src))

	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return nil, fmt.Errorf("reading snapshot header: %w", unexpected(err))
	}
	if got != magic {
		return nil, ErrBadMagic
	}

	degree, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot degree: %w", unexpected(err))
	}
	if degree > maxDegree {
		return nil, fmt.Errorf("%w: got %d", btree.ErrInvalidDegree, degree)
	}
	t, err := btree.New(int(degree), opts...)
	if err != nil {
		return nil, err
	}

	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot key count: %w", unexpected(err))
	}
	for i := uint64(0); i < count; i++ {
		k, err := binary.ReadVarint(r)
		if err != nil {
			return nil, fmt.Errorf("reading key %d of %d: %w", i, count, unexpected(err))
		}
		t.Insert(int(k))
	}
	return t, nil
}

// A clean EOF in the middle of a snapshot is still a truncated snapshot.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
