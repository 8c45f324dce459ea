package set

import "github.com/amp-labs/rbtset/assert"

// Navigation over arena indices. The nil slot answers every query with
// nilIdx and Black, so callers can chain lookups without checking first.

func (s *RBTreeSet[T]) parentOf(idx uint32) uint32 { return s.store.slots[idx].parent }
func (s *RBTreeSet[T]) leftOf(idx uint32) uint32 { return s.store.slots[idx].left }
func (s *RBTreeSet[T]) rightOf(idx uint32) uint32 { return s.store.slots[idx].right }
func (s *RBTreeSet[T]) colorOf(idx uint32) Color { return s.store.slots[idx].color }

func (s *RBTreeSet[T]) setColor(idx uint32, c Color) {
	assert.NonZero(idx, "recolouring the nil slot")

	s.store.slots[idx].color = c
}

// isLeftChild compares by index, never by value: two siblings may well
// compare Equal under a loose Equals.
func (s *RBTreeSet[T]) isLeftChild(idx uint32) bool {
	parent := s.parentOf(idx)

	return parent != nilIdx && s.leftOf(parent) == idx
}

// sibling is the other child of idx's parent, nilIdx at the root.
func (s *RBTreeSet[T]) sibling(idx uint32) uint32 {
	parent := s.parentOf(idx)
	if parent == nilIdx {
		return nilIdx
	}

	if s.leftOf(parent) == idx {
		return s.rightOf(parent)
	}

	return s.leftOf(parent)
}

// uncle is the parent's sibling, nilIdx at or just below the root.
func (s *RBTreeSet[T]) uncle(idx uint32) uint32 {
	parent := s.parentOf(idx)
	if parent == nilIdx {
		return nilIdx
	}

	return s.sibling(parent)
}

func (s *RBTreeSet[T]) minimum(idx uint32) uint32 {
	for s.leftOf(idx) != nilIdx {
		idx = s.leftOf(idx)
	}

	return idx
}

func (s *RBTreeSet[T]) maximum(idx uint32) uint32 {
	for s.rightOf(idx) != nilIdx {
		idx = s.rightOf(idx)
	}

	return idx
}

// successor returns the next index in ascending order, nilIdx after the maximum.
func (s *RBTreeSet[T]) successor(idx uint32) uint32 {
	if right := s.rightOf(idx); right != nilIdx {
		return s.minimum(right)
	}

	for parent := s.parentOf(idx); parent != nilIdx; idx, parent = parent, s.parentOf(parent) {
		if s.leftOf(parent) == idx {
			return parent
		}
	}

	return nilIdx
}

// predecessor mirrors successor.
func (s *RBTreeSet[T]) predecessor(idx uint32) uint32 {
	if left := s.leftOf(idx); left != nilIdx {
		return s.maximum(left)
	}

	for parent := s.parentOf(idx); parent != nilIdx; idx, parent = parent, s.parentOf(parent) {
		if s.rightOf(parent) == idx {
			return parent
		}
	}

	return nilIdx
}

// replaceChild points whichever slot of parent held old at repl. A nil
// parent means old was the root.
func (s *RBTreeSet[T]) replaceChild(parent, old, repl uint32) {
	switch {
	case parent == nilIdx:
		s.root = repl
	case s.leftOf(parent) == old:
		s.store.slots[parent].left = repl
	default:
		s.store.slots[parent].right = repl
	}
}

// rotateLeft performs a left rotation around node x.
//
// Before:                       After:
//
//	  x                             y
//	 / \                           / \
//	a   y                         x   c
//	   / \            =>         / \
//	  b   c                     a   b
//
//nolint:varnamelen,dupword // Standard red-black tree variable names; ASCII diagram
func (s *RBTreeSet[T]) rotateLeft(x uint32) {
	y := s.rightOf(x)
	assert.NonZero(y, "rotate left at node %d without a right child", x)

	slots := s.store.slots

	b := slots[y].left
	slots[x].right = b

	if b != nilIdx {
		slots[b].parent = x
	}

	parent := slots[x].parent
	s.replaceChild(parent, x, y)
	slots[y].parent = parent

	slots[y].left = x
	slots[x].parent = y

	s.metrics.rotated("left")
}

// rotateRight performs a right rotation around node y.
//
// Before:        y              After:         x
//
//	   / \                           / \
//	  x   c                         a   y
//	 / \              =>               / \
//	a   b                            b   c
//
//nolint:varnamelen,dupword // Standard red-black tree variable names; ASCII diagram
func (s *RBTreeSet[T]) rotateRight(y uint32) {
	x := s.leftOf(y)
	assert.NonZero(x, "rotate right at node %d without a left child", y)

	slots := s.store.slots

	b := slots[x].right
	slots[y].left = b

	if b != nilIdx {
		slots[b].parent = y
	}

	parent := slots[y].parent
	s.replaceChild(parent, y, x)
	slots[x].parent = parent

	slots[x].right = y
	slots[y].parent = x

	s.metrics.rotated("right")
}

// balance restores the colour invariants after x was attached as a Red leaf.
//
//   - x is the root: paint it Black.
//   - parent is Black: nothing to do.
//   - uncle is Red: push the grandparent's blackness down one level and
//     continue from the grandparent.
//   - otherwise straighten a triangle into a line with a rotation at the
//     parent, then swap parent/grandparent colours and rotate the
//     grandparent away from the line.
//
//nolint:varnamelen // Standard red-black tree variable names
func (s *RBTreeSet[T]) balance(x uint32) {
	for {
		parent := s.parentOf(x)

		switch {
		case parent == nilIdx:
			s.setColor(x, Black)

			return
		case s.colorOf(parent) == Black:
			return
		}

		grandparent := s.parentOf(parent)
		assert.NonZero(grandparent, "red node %d is the root", parent)

		if u := s.uncle(x); s.colorOf(u) == Red {
			s.setColor(parent, Black)
			s.setColor(u, Black)
			s.setColor(grandparent, Red)
			s.metrics.fixup("insert_recolor")

			x = grandparent

			continue
		}

		parentIsLeft := s.isLeftChild(parent)
		nodeIsLeft := s.isLeftChild(x)

		switch {
		case parentIsLeft && !nodeIsLeft:
			s.rotateLeft(parent)
			x = parent
		case !parentIsLeft && nodeIsLeft:
			s.rotateRight(parent)
			x = parent
		}

		parent = s.parentOf(x)
		grandparent = s.parentOf(parent)

		s.setColor(parent, Black)
		s.setColor(grandparent, Red)

		if s.isLeftChild(x) {
			s.rotateRight(grandparent)
		} else {
			s.rotateLeft(grandparent)
		}

		s.metrics.fixup("insert_rotate")

		return
	}
}

// removeNode unlinks z and frees its slot.
//
// A node with two children first trades values with its in-order successor
// (or predecessor, when configured) and the removal continues at that node,
// which has at most one child. Node identities never move; only values do.
func (s *RBTreeSet[T]) removeNode(z uint32) {
	if s.leftOf(z) != nilIdx && s.rightOf(z) != nilIdx {
		var other uint32
		if s.borrowPredecessor {
			other = s.predecessor(z)
		} else {
			other = s.successor(z)
		}

		slots := s.store.slots
		slots[z].value, slots[other].value = slots[other].value, slots[z].value
		z = other
	}

	replacement := s.leftOf(z)
	if replacement == nilIdx {
		replacement = s.rightOf(z)
	}

	// The nil slot is Black, so an absent replacement counts as Black here.
	doubleBlack := s.colorOf(z) == Black && s.colorOf(replacement) == Black

	if replacement == nilIdx {
		if z == s.root {
			s.root = nilIdx
		} else {
			if doubleBlack {
				// Fix up while z still occupies its slot and has a sibling.
				s.doubleBlackFixup(z)
			}

			s.replaceChild(s.parentOf(z), z, nilIdx)
		}

		s.release(z)

		return
	}

	parent := s.parentOf(z)
	s.replaceChild(parent, z, replacement)
	s.store.slots[replacement].parent = parent

	if doubleBlack {
		s.doubleBlackFixup(replacement)
	} else {
		s.setColor(replacement, Black)
	}

	s.release(z)
}

func (s *RBTreeSet[T]) release(idx uint32) {
	s.store.release(idx)
	s.length--
	s.metrics.removed()
}

// doubleBlackFixup repays the black-height x's path is short by one.
//
//   - no sibling: the deficit moves to the parent.
//   - Red sibling: rotate it above the parent so x gets a Black sibling, retry.
//   - Black sibling with a Red child: one or two rotations move that child
//     into the gap; done.
//   - Black sibling with Black children: paint the sibling Red. A Red parent
//     absorbs the deficit by turning Black, a Black one passes it upward.
//
//nolint:cyclop,funlen // the case analysis is the algorithm
func (s *RBTreeSet[T]) doubleBlackFixup(x uint32) {
	for x != s.root {
		parent := s.parentOf(x)
		sib := s.sibling(x)

		if sib == nilIdx {
			x = parent

			continue
		}

		if s.colorOf(sib) == Red {
			s.setColor(parent, Red)
			s.setColor(sib, Black)

			if s.isLeftChild(sib) {
				s.rotateRight(parent)
			} else {
				s.rotateLeft(parent)
			}

			s.metrics.fixup("delete_red_sibling")

			continue
		}

		nephewL, nephewR := s.leftOf(sib), s.rightOf(sib)

		if s.colorOf(nephewL) == Red || s.colorOf(nephewR) == Red {
			sibIsLeft := s.isLeftChild(sib)

			switch {
			case s.colorOf(nephewL) == Red && sibIsLeft:
				s.setColor(nephewL, s.colorOf(sib))
				s.setColor(sib, s.colorOf(parent))
				s.rotateRight(parent)
			case s.colorOf(nephewL) == Red:
				s.setColor(nephewL, s.colorOf(parent))
				s.rotateRight(sib)
				s.rotateLeft(parent)
			case sibIsLeft:
				s.setColor(nephewR, s.colorOf(parent))
				s.rotateLeft(sib)
				s.rotateRight(parent)
			default:
				s.setColor(nephewR, s.colorOf(sib))
				s.setColor(sib, s.colorOf(parent))
				s.rotateLeft(parent)
			}

			s.setColor(parent, Black)
			s.metrics.fixup("delete_red_nephew")

			return
		}

		s.setColor(sib, Red)
		s.metrics.fixup("delete_recolor")

		if s.colorOf(parent) == Black {
			x = parent

			continue
		}

		s.setColor(parent, Black)

		return
	}
}
