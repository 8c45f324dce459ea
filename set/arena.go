package set

import "github.com/amp-labs/rbtset/assert"

// nilIdx is the reserved slot standing in for every absent node. Its colour
// is Black, so colour checks on missing children need no special case.
const nilIdx uint32 = 0

// slot is one node record. parent, left and right are indices into the same
// arena; gen is the allocation stamp (0 marks a free slot).
type slot[T any] struct {
	value  T
	parent uint32
	left   uint32
	right  uint32
	color  Color
	gen    uint64
}

// arena owns every node of one set. Links between nodes are plain indices,
// so parent pointers carry no ownership and there is nothing to collect.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
	gen   uint64
	live  int
}

func newArena[T any]() arena[T] {
	return arena[T]{
		slots: []slot[T]{{color: Black}},
	}
}

// at returns the record for idx. The pointer is only good until the next
// alloc, which may grow the backing slice.
func (a *arena[T]) at(idx uint32) *slot[T] {
	return &a.slots[idx]
}

// alloc stores value in a fresh Red leaf and returns its index. Free slots
// are reused before the slice grows.
func (a *arena[T]) alloc(value T) uint32 {
	a.gen++
	a.live++

	rec := slot[T]{value: value, color: Red, gen: a.gen}

	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[idx] = rec

		return idx
	}

	a.slots = append(a.slots, rec)

	return uint32(len(a.slots) - 1) //nolint:gosec // bounded by the number of live nodes
}

// release frees idx. The value is zeroed so the arena does not pin whatever
// the payload references.
func (a *arena[T]) release(idx uint32) {
	assert.NonZero(idx, "release of the nil slot")
	assert.True(a.slots[idx].gen != 0, "double release of slot %d", idx)

	a.slots[idx] = slot[T]{}
	a.free = append(a.free, idx)
	a.live--
}

// owns reports whether idx is a live slot allocated with stamp gen.
func (a *arena[T]) owns(idx uint32, gen uint64) bool {
	return idx != nilIdx && int(idx) < len(a.slots) && gen != 0 && a.slots[idx].gen == gen
}

// reset drops every node. The generation counter keeps counting so handles
// issued before the reset never validate again.
func (a *arena[T]) reset() {
	clear(a.slots)
	a.slots = a.slots[:1]
	a.slots[0] = slot[T]{color: Black}
	a.free = a.free[:0]
	a.live = 0
}
