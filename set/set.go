package set

import (
	"fmt"
	"iter"
	"log/slog"

	rbterrors "github.com/amp-labs/rbtset/errors"
	"github.com/amp-labs/rbtset/sortable"
)

var (
	ErrForeignNode = rbterrors.ErrForeignNode
	ErrStaleNode   = rbterrors.ErrStaleNode
)

// RBTreeSet is an ordered set backed by a red-black tree.
//
// Red-black trees are self-balancing binary search trees that maintain the following properties:
//  1. Every node is either red or black.
//  2. The root is black.
//  3. All leaves (nil) are black.
//  4. If a node is red, then both its children are black (no two red nodes in a row).
//  5. Every path from a node to its descendant nil nodes contains the same number of black nodes.
//
// These properties keep the height within 2*log2(n+1), so Insert, Remove and
// lookups are O(log n).
//
// Nodes live in an arena owned by the set and refer to each other by index.
// Elements are placed by LessThan and deduplicated by Equals: a value that
// Equals one already present is rejected.
//
// An RBTreeSet is not safe for concurrent use.
type RBTreeSet[T sortable.Sortable[T]] struct {
	root   uint32
	length int
	store  arena[T]

	logger            *slog.Logger
	metrics           *Metrics
	borrowPredecessor bool
}

// NewRBTreeSet returns an empty set.
func NewRBTreeSet[T sortable.Sortable[T]](opts ...Option) *RBTreeSet[T] {
	options := buildOptions(opts)

	return &RBTreeSet[T]{
		store:             newArena[T](),
		logger:            options.logger,
		metrics:           options.metrics,
		borrowPredecessor: options.borrowPredecessor,
	}
}

// Collect builds a set from seq. Values equal to one already collected are dropped.
func Collect[T sortable.Sortable[T]](seq iter.Seq[T], opts ...Option) *RBTreeSet[T] {
	s := NewRBTreeSet[T](opts...)

	for value := range seq {
		s.Insert(value)
	}

	return s
}

// Insert adds value. If an equal value is already present the set is left
// unchanged and the returned bool is false.
func (s *RBTreeSet[T]) Insert(value T) (Node[T], bool) {
	parent, cur := nilIdx, s.root
	toLeft := false

	for cur != nilIdx {
		rec := s.store.at(cur)

		switch {
		case value.Equals(rec.value):
			s.metrics.inserted(false)

			return Node[T]{}, false
		case value.LessThan(rec.value):
			parent, cur, toLeft = cur, rec.left, true
		default:
			parent, cur, toLeft = cur, rec.right, false
		}
	}

	idx := s.store.alloc(value)
	s.store.at(idx).parent = parent

	switch {
	case parent == nilIdx:
		s.root = idx
	case toLeft:
		s.store.at(parent).left = idx
	default:
		s.store.at(parent).right = idx
	}

	s.balance(idx)
	s.length++
	s.metrics.inserted(true)

	return s.handle(idx), true
}

// InsertAll adds each value and returns how many were new.
func (s *RBTreeSet[T]) InsertAll(values ...T) int {
	added := 0

	for _, value := range values {
		if _, ok := s.Insert(value); ok {
			added++
		}
	}

	return added
}

// Remove deletes the element equal to value, reporting whether there was one.
//
// Removing an element with two children moves its in-order successor's value
// (predecessor's, with WithPredecessorSwap) into its node and frees the
// neighbour's node instead. Handles on the moved value go stale; handles on
// the removed node now see the moved value.
func (s *RBTreeSet[T]) Remove(value T) bool {
	idx := s.lookup(value)
	if idx == nilIdx {
		return false
	}

	s.removeNode(idx)

	return true
}

// RemoveNode deletes the element n refers to. The handle is checked first:
// ErrForeignNode if it came from another set (or is the zero Node), and
// ErrStaleNode if its element is already gone. Neither case mutates the set.
func (s *RBTreeSet[T]) RemoveNode(n Node[T]) error {
	if n.set != s {
		s.logger.Debug("rejected node handle", "reason", "foreign", "id", n.idx)

		return fmt.Errorf("%w: node %d", ErrForeignNode, n.idx)
	}

	if !s.store.owns(n.idx, n.gen) {
		s.logger.Debug("rejected node handle", "reason", "stale", "id", n.idx)

		return fmt.Errorf("%w: node %d", ErrStaleNode, n.idx)
	}

	s.removeNode(n.idx)

	return nil
}

// lookup descends by value and returns the matching index or nilIdx.
func (s *RBTreeSet[T]) lookup(value T) uint32 {
	cur := s.root

	for cur != nilIdx {
		rec := s.store.at(cur)

		switch {
		case value.Equals(rec.value):
			return cur
		case value.LessThan(rec.value):
			cur = rec.left
		default:
			cur = rec.right
		}
	}

	return nilIdx
}

// Get returns a copy of the element equal to value.
func (s *RBTreeSet[T]) Get(value T) (T, bool) {
	idx := s.lookup(value)
	if idx == nilIdx {
		var zero T

		return zero, false
	}

	return s.store.at(idx).value, true
}

// GetNode returns a handle on the element equal to value.
func (s *RBTreeSet[T]) GetNode(value T) (Node[T], bool) {
	idx := s.lookup(value)

	return s.handle(idx), idx != nilIdx
}

// Contains reports whether an element equal to value is present.
func (s *RBTreeSet[T]) Contains(value T) bool {
	return s.lookup(value) != nilIdx
}

// First returns the smallest element.
func (s *RBTreeSet[T]) First() (Node[T], bool) {
	if s.root == nilIdx {
		return Node[T]{}, false
	}

	return s.handle(s.minimum(s.root)), true
}

// Last returns the largest element.
func (s *RBTreeSet[T]) Last() (Node[T], bool) {
	if s.root == nilIdx {
		return Node[T]{}, false
	}

	return s.handle(s.maximum(s.root)), true
}

func (s *RBTreeSet[T]) Len() int {
	return s.length
}

func (s *RBTreeSet[T]) IsEmpty() bool {
	return s.length == 0
}

// Clear removes every element. Handles issued before the call become stale.
func (s *RBTreeSet[T]) Clear() {
	s.logger.Debug("clearing set", "length", s.length)

	s.store.reset()
	s.root = nilIdx
	s.length = 0
}

// Clone returns an independent copy with the same shape, colours and values.
// Nodes are copied in pre-order into a fresh arena, so handles on the
// original never refer to the copy. Values themselves are copied with plain
// assignment.
func (s *RBTreeSet[T]) Clone() *RBTreeSet[T] {
	dup := &RBTreeSet[T]{
		store:             newArena[T](),
		logger:            s.logger,
		metrics:           s.metrics,
		borrowPredecessor: s.borrowPredecessor,
	}

	if s.root == nilIdx {
		return dup
	}

	type pending struct {
		src    uint32
		parent uint32
		left   bool
	}

	stack := []pending{{src: s.root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		src := s.store.at(top.src)
		idx := dup.store.alloc(src.value)

		rec := dup.store.at(idx)
		rec.color = src.color
		rec.parent = top.parent

		switch {
		case top.parent == nilIdx:
			dup.root = idx
		case top.left:
			dup.store.at(top.parent).left = idx
		default:
			dup.store.at(top.parent).right = idx
		}

		if src.right != nilIdx {
			stack = append(stack, pending{src: src.right, parent: idx})
		}

		if src.left != nilIdx {
			stack = append(stack, pending{src: src.left, parent: idx, left: true})
		}
	}

	dup.length = s.length

	return dup
}

// String returns a short debug form; it does not list the elements.
func (s *RBTreeSet[T]) String() string {
	return fmt.Sprintf("RBTreeSet{length: %d}", s.length)
}
