package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/amp-labs/rbtset/set"
	"github.com/amp-labs/rbtset/sortable"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted answers prompts from fixed queues.
type scripted struct {
	actions []string
	ints    []int
	picks   [][]string
	offered [][]string
}

func (s *scripted) Choose(_ string, _ ...string) (string, error) {
	if len(s.actions) == 0 {
		return "", promptui.ErrEOF
	}

	next := s.actions[0]
	s.actions = s.actions[1:]

	return next, nil
}

func (s *scripted) Int(string) (int, error) {
	if len(s.ints) == 0 {
		return 0, promptui.ErrInterrupt
	}

	next := s.ints[0]
	s.ints = s.ints[1:]

	return next, nil
}

func (s *scripted) MultiSelect(_ string, choices ...string) ([]string, error) {
	s.offered = append(s.offered, choices)

	next := s.picks[0]
	s.picks = s.picks[1:]

	return next, nil
}

func newTestShell(ask prompter) (*shell, *bytes.Buffer) {
	var out bytes.Buffer

	return &shell{set: set.NewRBTreeSet[sortable.Int](), out: &out, ask: ask}, &out
}

func TestShell(t *testing.T) {
	t.Parallel()

	t.Run("session", func(t *testing.T) {
		t.Parallel()

		ask := &scripted{
			actions: []string{
				actionInsert, actionInsert, actionInsert, actionInsert,
				actionValues, actionRemove, actionValues, actionValidate, actionStats,
				actionQuit, actionInsert,
			},
			ints:  []int{5, 3, 8, 5},
			picks: [][]string{{"3", "8"}},
		}

		sh, out := newTestShell(ask)
		require.NoError(t, sh.run(t.Context()))

		assert.Contains(t, out.String(), "inserted 5\n")
		assert.Contains(t, out.String(), "5 is already present\n")
		assert.Contains(t, out.String(), "[3 5 8]\n")
		assert.Contains(t, out.String(), "removed 3\nremoved 8\n[5]\n")
		assert.Contains(t, out.String(), "ok\n")
		assert.Contains(t, out.String(), "len=1 fingerprint=")

		assert.Equal(t, [][]string{{"3", "5", "8"}}, ask.offered)
		assert.Equal(t, []string{actionInsert}, ask.actions, "quit stops the loop")
	})

	t.Run("interrupts", func(t *testing.T) {
		t.Parallel()

		sh, out := newTestShell(&scripted{actions: []string{actionInsert, actionDot, actionRemove}})
		require.NoError(t, sh.run(t.Context()))

		assert.Contains(t, out.String(), "graph RBTreeSet {\n\n}\n")
		assert.Contains(t, out.String(), "the set is empty\n")
		assert.Equal(t, 0, sh.set.Len())
	})

	t.Run("clear and unknown", func(t *testing.T) {
		t.Parallel()

		sh, out := newTestShell(&scripted{})
		sh.set.InsertAll(1, 2, 3)

		quit, err := sh.step("explode")
		require.NoError(t, err)
		assert.False(t, quit)
		assert.Contains(t, out.String(), `unknown action "explode"`)

		_, err = sh.step(actionClear)
		require.NoError(t, err)
		assert.True(t, sh.set.IsEmpty())
	})

	t.Run("prompt failures surface", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("tty gone") //nolint:err113

		sh, _ := newTestShell(failing{err: boom})
		require.ErrorIs(t, sh.run(t.Context()), boom)
	})
}

type failing struct {
	err error
}

func (f failing) Choose(string, ...string) (string, error) { return "", f.err }
func (f failing) Int(string) (int, error) { return 0, f.err }
func (f failing) MultiSelect(string, ...string) ([]string, error) { return nil, f.err }
