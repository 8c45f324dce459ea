package set

import (
	"testing"

	"github.com/amp-labs/rbtset/sortable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The trees below are damaged by hand to prove each check fires.
func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, newIntSet(t, 5, 2, 8, 1, 9, 4).Validate())
	})

	t.Run("red root", func(t *testing.T) {
		t.Parallel()

		s := newIntSet(t, 1)
		s.store.at(s.root).color = Red

		require.ErrorIs(t, s.Validate(), ErrRedRoot)
	})

	t.Run("red child of red node", func(t *testing.T) {
		t.Parallel()

		s := newIntSet(t, 2, 1, 3, 4)
		// 4 hangs red under 3 once 1 and 3 have been painted black.
		three := s.lookup(3)
		s.store.at(three).color = Red

		err := s.Validate()
		require.ErrorIs(t, err, ErrRedViolation)
		require.ErrorIs(t, err, ErrBlackViolation)
	})

	t.Run("black height", func(t *testing.T) {
		t.Parallel()

		s := newIntSet(t, 2, 1, 3)
		s.store.at(s.lookup(1)).color = Black

		err := s.Validate()
		require.ErrorIs(t, err, ErrBlackViolation)
		require.NotErrorIs(t, err, ErrRedViolation)
	})

	t.Run("order", func(t *testing.T) {
		t.Parallel()

		s := newIntSet(t, 2, 1, 3)
		s.store.at(s.lookup(1)).value = 7

		require.ErrorIs(t, s.Validate(), ErrOrderViolation)
	})

	t.Run("order that holds both ways", func(t *testing.T) {
		t.Parallel()

		s := NewRBTreeSet[eitherWay]()
		s.InsertAll(1, 2)

		require.ErrorIs(t, s.Validate(), ErrOrderViolation)
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()

		s := newIntSet(t, 2, 1, 3)
		s.store.at(s.lookup(3)).value = 2

		require.ErrorIs(t, s.Validate(), ErrDuplicate)
	})

	t.Run("length", func(t *testing.T) {
		t.Parallel()

		s := newIntSet(t, 2, 1, 3)
		s.length = 5

		require.ErrorIs(t, s.Validate(), ErrLengthMismatch)
	})

	t.Run("parent link", func(t *testing.T) {
		t.Parallel()

		s := newIntSet(t, 2, 1, 3)
		s.store.at(s.lookup(3)).parent = s.lookup(1)

		err := s.Validate()
		require.ErrorIs(t, err, ErrBrokenLink)
		assert.Contains(t, err.Error(), "whose parent is")
	})

	t.Run("cycle", func(t *testing.T) {
		t.Parallel()

		s := newIntSet(t, 2, 1)
		one := s.lookup(1)
		s.store.at(one).left = s.root

		require.ErrorIs(t, s.Validate(), ErrBrokenLink)
	})

	t.Run("several violations are joined", func(t *testing.T) {
		t.Parallel()

		s := NewRBTreeSet[sortable.Int]()
		s.InsertAll(ints(2, 1, 3)...)
		s.store.at(s.root).color = Red
		s.store.at(s.lookup(3)).parent = nilIdx

		err := s.Validate()
		require.ErrorIs(t, err, ErrRedRoot)
		require.ErrorIs(t, err, ErrBrokenLink)
	})
}

// eitherWay claims every distinct pair is ordered in both directions.
type eitherWay int

func (e eitherWay) Equals(other eitherWay) bool { return e == other }

func (e eitherWay) LessThan(other eitherWay) bool { return e != other }
