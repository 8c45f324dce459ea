package set

import (
	"errors"
	"fmt"

	rbterrors "github.com/amp-labs/rbtset/errors"
)

var (
	ErrRedRoot        = errors.New("root is red")
	ErrRedViolation   = errors.New("red node has a red child")
	ErrBlackViolation = errors.New("unequal black height")
	ErrOrderViolation = errors.New("elements out of order")
	ErrDuplicate      = errors.New("equal elements present")
	ErrLengthMismatch = errors.New("length does not match reachable nodes")
	ErrBrokenLink     = errors.New("parent and child links disagree")
)

// Validate checks every structural invariant of the tree and returns all
// violations joined together, or nil for a healthy tree. It walks the whole
// tree and is meant for tests and debugging.
//
//   - the root is Black
//   - no Red node has a Red child
//   - every path to a nil position crosses the same number of Black nodes
//   - in-order elements strictly ascend by LessThan and no two are Equal
//   - Len matches the number of reachable nodes
//   - each child's parent index points back at its parent
func (s *RBTreeSet[T]) Validate() error {
	errs := &rbterrors.Collection{}

	if s.root != nilIdx {
		if s.colorOf(s.root) == Red {
			errs.Add(fmt.Errorf("%w: node %d", ErrRedRoot, s.root))
		}

		if parent := s.parentOf(s.root); parent != nilIdx {
			errs.Add(fmt.Errorf("%w: root %d has parent %d", ErrBrokenLink, s.root, parent))
		}
	}

	reachable := s.validateLinks(errs)

	if errs.HasError() {
		// Order and height walks assume sound links.
		return errs.GetError()
	}

	if reachable != s.length || s.store.live != s.length {
		errs.Add(fmt.Errorf("%w: length %d, reachable %d, allocated %d",
			ErrLengthMismatch, s.length, reachable, s.store.live))
	}

	s.validateOrder(errs)
	s.validateColors(errs)

	return errs.GetError()
}

// validateLinks walks from the root checking parent back-links and the
// red-red rule. It stops early if the walk visits more nodes than the arena
// holds, which only a cycle can cause.
func (s *RBTreeSet[T]) validateLinks(errs *rbterrors.Collection) int {
	if s.root == nilIdx {
		return 0
	}

	limit := len(s.store.slots)
	count := 0
	stack := []uint32{s.root}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		count++
		if count > limit {
			errs.Add(fmt.Errorf("%w: cycle through node %d", ErrBrokenLink, idx))

			return count
		}

		rec := s.store.at(idx)
		if rec.gen == 0 {
			errs.Add(fmt.Errorf("%w: freed slot %d is still linked", ErrBrokenLink, idx))

			continue
		}

		for _, child := range [2]uint32{rec.left, rec.right} {
			if child == nilIdx {
				continue
			}

			if int(child) >= limit {
				errs.Add(fmt.Errorf("%w: node %d links to slot %d past the arena", ErrBrokenLink, idx, child))

				continue
			}

			if got := s.parentOf(child); got != idx {
				errs.Add(fmt.Errorf("%w: node %d has child %d whose parent is %d", ErrBrokenLink, idx, child, got))
			}

			if rec.color == Red && s.colorOf(child) == Red {
				errs.Add(fmt.Errorf("%w: node %d (%v) and child %d (%v)",
					ErrRedViolation, idx, rec.value, child, s.store.at(child).value))
			}

			stack = append(stack, child)
		}
	}

	return count
}

func (s *RBTreeSet[T]) validateOrder(errs *rbterrors.Collection) {
	prev := nilIdx

	for idx := s.firstIdx(); idx != nilIdx; prev, idx = idx, s.successor(idx) {
		if prev == nilIdx {
			continue
		}

		a, b := s.store.at(prev).value, s.store.at(idx).value

		switch {
		case a.Equals(b) || b.Equals(a):
			errs.Add(fmt.Errorf("%w: %v (node %d) and %v (node %d)", ErrDuplicate, a, prev, b, idx))
		case !a.LessThan(b) || b.LessThan(a):
			errs.Add(fmt.Errorf("%w: %v (node %d) before %v (node %d)", ErrOrderViolation, a, prev, b, idx))
		}
	}
}

// validateColors computes black heights bottom-up with a post-order walk.
func (s *RBTreeSet[T]) validateColors(errs *rbterrors.Collection) {
	if s.root == nilIdx {
		return
	}

	height := make(map[uint32]int, s.length)
	height[nilIdx] = 1

	type frame struct {
		idx      uint32
		expanded bool
	}

	stack := []frame{{idx: s.root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if !top.expanded {
			top.expanded = true
			rec := s.store.at(top.idx)

			if rec.right != nilIdx {
				stack = append(stack, frame{idx: rec.right})
			}

			if rec.left != nilIdx {
				stack = append(stack, frame{idx: rec.left})
			}

			continue
		}

		idx := top.idx
		stack = stack[:len(stack)-1]

		rec := s.store.at(idx)
		lh, rh := height[rec.left], height[rec.right]

		if lh != rh {
			errs.Add(fmt.Errorf("%w: node %d (%v) has left height %d and right height %d",
				ErrBlackViolation, idx, rec.value, lh, rh))
		}

		h := max(lh, rh)
		if rec.color == Black {
			h++
		}

		height[idx] = h
	}
}
