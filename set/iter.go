package set

import (
	"iter"

	"github.com/amp-labs/rbtset/sortable"
)

// Iter is a forward cursor over a set in ascending order. It is lazy and
// single-use; structurally changing the set while a cursor is live
// (Insert, Remove, Clear, Repack) gives unspecified results.
type Iter[T sortable.Sortable[T]] struct {
	set  *RBTreeSet[T]
	next uint32
}

// Next returns the next node, or false once the cursor is exhausted.
func (it *Iter[T]) Next() (Node[T], bool) {
	if it.next == nilIdx {
		return Node[T]{}, false
	}

	cur := it.next
	it.next = it.set.successor(cur)

	return it.set.handle(cur), true
}

// Iter returns a cursor positioned before the smallest element.
func (s *RBTreeSet[T]) Iter() *Iter[T] {
	it := &Iter[T]{set: s}

	if s.root != nilIdx {
		it.next = s.minimum(s.root)
	}

	return it
}

// IterFrom returns a cursor whose first Next yields n. A handle that is not
// a live node of s yields an exhausted cursor.
func (s *RBTreeSet[T]) IterFrom(n Node[T]) *Iter[T] {
	it := &Iter[T]{set: s}

	if n.set == s && n.Valid() {
		it.next = n.idx
	}

	return it
}

// Nodes yields every node in ascending order. The same mutation hazard as
// for Iter applies.
func (s *RBTreeSet[T]) Nodes() iter.Seq[Node[T]] {
	return func(yield func(Node[T]) bool) {
		s.Iter().drain(yield)
	}
}

// NodesFrom yields n and every node after it.
func (s *RBTreeSet[T]) NodesFrom(n Node[T]) iter.Seq[Node[T]] {
	return func(yield func(Node[T]) bool) {
		s.IterFrom(n).drain(yield)
	}
}

// Values yields a copy of every element in ascending order.
func (s *RBTreeSet[T]) Values() iter.Seq[T] {
	return values(s.Nodes())
}

// ValuesFrom yields copies of n's element and every element after it.
func (s *RBTreeSet[T]) ValuesFrom(n Node[T]) iter.Seq[T] {
	return values(s.NodesFrom(n))
}

// Backward yields copies of every element in descending order.
func (s *RBTreeSet[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s.root == nilIdx {
			return
		}

		for idx := s.maximum(s.root); idx != nilIdx; idx = s.predecessor(idx) {
			if !yield(s.store.at(idx).value) {
				return
			}
		}
	}
}

// Entries returns the elements in ascending order.
func (s *RBTreeSet[T]) Entries() []T {
	entries := make([]T, 0, s.length)

	for value := range s.Values() {
		entries = append(entries, value)
	}

	return entries
}

func (it *Iter[T]) drain(yield func(Node[T]) bool) {
	for {
		n, ok := it.Next()
		if !ok || !yield(n) {
			return
		}
	}
}

func values[T sortable.Sortable[T]](nodes iter.Seq[Node[T]]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := range nodes {
			if !yield(n.Value()) {
				return
			}
		}
	}
}
