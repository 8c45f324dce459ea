package set

import (
	"fmt"

	"github.com/amp-labs/rbtset/assert"
	"github.com/amp-labs/rbtset/sortable"
)

// Color represents the color of a node in the red-black tree.
// Black is true so that the zero-valued nil slot can be marked Black
// explicitly and Red leaves are the cheap default for new nodes.
type Color bool

const (
	Black, Red Color = true, false
)

// String returns a human-readable representation of the node color.
func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	default:
		return "Red"
	}
}

// dot is the lower-case spelling used in graphviz output.
func (c Color) dot() string {
	if c == Black {
		return "black"
	}

	return "red"
}

// Node is a handle on one element of an RBTreeSet. Handles are small values
// and may be copied freely; every copy refers to the same record, so a
// change made through one (Apply) is seen through all of them.
//
// A handle stops being Valid once its element is removed or the set is
// cleared. Removing an element with two children moves its successor's value
// into its slot, so a handle on that successor goes stale as well; look the
// value up again rather than holding handles across removals.
type Node[T sortable.Sortable[T]] struct {
	set *RBTreeSet[T]
	idx uint32
	gen uint64
}

// Valid reports whether the handle still refers to a live element of the set
// that produced it.
func (n Node[T]) Valid() bool {
	return n.set != nil && n.set.store.owns(n.idx, n.gen)
}

func (n Node[T]) rec() *slot[T] {
	assert.True(n.Valid(), "use of a stale or zero node handle")

	return n.set.store.at(n.idx)
}

// Value returns a copy of the element.
func (n Node[T]) Value() T {
	return n.rec().value
}

// Apply mutates the element in place. fn must not change where the element
// sorts relative to its neighbours; doing so breaks the tree's ordering.
func (n Node[T]) Apply(fn func(value *T)) {
	fn(&n.rec().value)
}

// Color returns the node's current colour. Rotations during later mutations
// may change it.
func (n Node[T]) Color() Color {
	return n.rec().color
}

// ID is the node's arena index. It is stable for the life of the element and
// deterministic for a given sequence of operations, which makes it suitable
// for labelling debug output.
func (n Node[T]) ID() uint32 {
	return n.idx
}

// Equal is identity, not value equality: two handles are Equal when they
// refer to the same record of the same set.
func (n Node[T]) Equal(other Node[T]) bool {
	return n.set == other.set && n.idx == other.idx && n.gen == other.gen
}

// String returns a string representation of the node showing its value and color.
func (n Node[T]) String() string {
	if !n.Valid() {
		return "(stale)"
	}

	rec := n.set.store.at(n.idx)

	return fmt.Sprintf("(%v : %s)", rec.value, rec.color)
}

// handle wraps idx of s. The nil index yields the zero Node.
func (s *RBTreeSet[T]) handle(idx uint32) Node[T] {
	if idx == nilIdx {
		return Node[T]{}
	}

	return Node[T]{set: s, idx: idx, gen: s.store.at(idx).gen}
}
