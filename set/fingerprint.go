package set

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/amp-labs/rbtset/hashing"
	"github.com/amp-labs/rbtset/sortable"
)

var _ hashing.Hashable = (*RBTreeSet[sortable.Int])(nil)

const (
	markNil   byte = 'N'
	markBlack byte = 'B'
	markRed   byte = 'R'
)

// UpdateHash writes a pre-order encoding of the tree to h: one marker byte
// per node or nil position, followed for nodes by the length-prefixed %v
// text of the value. Two sets hash alike exactly when they have the same
// shape, colours and rendered values, regardless of arena layout.
func (s *RBTreeSet[T]) UpdateHash(h hash.Hash) error {
	var lenBuf [binary.MaxVarintLen64]byte

	stack := []uint32{s.root}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if idx == nilIdx {
			if _, err := h.Write([]byte{markNil}); err != nil {
				return err
			}

			continue
		}

		rec := s.store.at(idx)

		mark := markRed
		if rec.color == Black {
			mark = markBlack
		}

		text := fmt.Sprint(rec.value)
		n := binary.PutUvarint(lenBuf[:], uint64(len(text)))

		if _, err := h.Write([]byte{mark}); err != nil {
			return err
		}

		if _, err := h.Write(lenBuf[:n]); err != nil {
			return err
		}

		if _, err := h.Write([]byte(text)); err != nil {
			return err
		}

		stack = append(stack, rec.right, rec.left)
	}

	return nil
}

// Fingerprint is the XXH3 digest of UpdateHash's encoding.
func (s *RBTreeSet[T]) Fingerprint() string {
	sum, err := hashing.XXH3(s)
	if err != nil {
		// xxh3's Write never fails.
		panic(err)
	}

	return sum
}
