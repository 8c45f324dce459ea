package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/amp-labs/rbtset/cli"
	"github.com/amp-labs/rbtset/logger"
	"github.com/amp-labs/rbtset/set"
	"github.com/amp-labs/rbtset/sortable"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const (
	actionInsert   = "insert"
	actionRemove   = "remove"
	actionValues   = "values"
	actionDot      = "dot"
	actionValidate = "validate"
	actionStats    = "stats"
	actionClear    = "clear"
	actionQuit     = "quit"
)

var shellActions = []string{ //nolint:gochecknoglobals
	actionInsert, actionRemove, actionValues, actionDot,
	actionValidate, actionStats, actionClear, actionQuit,
}

type prompter interface {
	Choose(label string, items ...string) (string, error)
	Int(label string) (int, error)
	MultiSelect(label string, choices ...string) ([]string, error)
}

type shell struct {
	set *set.RBTreeSet[sortable.Int]
	out io.Writer
	ask prompter
}

func newShellCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit an integer set interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sh := &shell{
				set: set.NewRBTreeSet[sortable.Int](set.WithLogger(logger.Get(cmd.Context()))),
				out: cmd.OutOrStdout(),
				ask: cli.Stdio(),
			}

			return sh.run(cmd.Context())
		},
	}
}

func quitting(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}

func (sh *shell) run(ctx context.Context) error {
	_, _ = fmt.Fprintln(sh.out, cli.BannerAutoWidth("rbtset shell", cli.AlignCenter))

	for ctx.Err() == nil {
		action, err := sh.ask.Choose("Action", shellActions...)
		if err != nil {
			if quitting(err) {
				return nil
			}

			return err
		}

		quit, err := sh.step(action)
		if err != nil {
			if quitting(err) {
				continue
			}

			return err
		}

		if quit {
			return nil
		}
	}

	return nil
}

// step performs one action and reports whether the shell should exit.
func (sh *shell) step(action string) (bool, error) {
	switch action {
	case actionInsert:
		v, err := sh.ask.Int("Value")
		if err != nil {
			return false, err
		}

		if _, added := sh.set.Insert(sortable.Int(v)); added {
			_, _ = fmt.Fprintf(sh.out, "inserted %d\n", v)
		} else {
			_, _ = fmt.Fprintf(sh.out, "%d is already present\n", v)
		}
	case actionRemove:
		return false, sh.remove()
	case actionValues:
		_, _ = fmt.Fprintln(sh.out, sh.valuesLine())
	case actionDot:
		return false, sh.set.WriteDot(sh.out)
	case actionValidate:
		if err := sh.set.Validate(); err != nil {
			_, _ = fmt.Fprintf(sh.out, "invalid: %v\n", err)
		} else {
			_, _ = fmt.Fprintln(sh.out, "ok")
		}
	case actionStats:
		_, _ = fmt.Fprintf(sh.out, "len=%d fingerprint=%s\n", sh.set.Len(), sh.set.Fingerprint())
	case actionClear:
		sh.set.Clear()
		_, _ = fmt.Fprintln(sh.out, "cleared")
	case actionQuit:
		return true, nil
	default:
		_, _ = fmt.Fprintf(sh.out, "unknown action %q\n", action)
	}

	return false, nil
}

func (sh *shell) valuesLine() string {
	parts := make([]string, 0, sh.set.Len())
	for v := range sh.set.Values() {
		parts = append(parts, strconv.Itoa(int(v)))
	}

	return "[" + strings.Join(parts, " ") + "]"
}

func (sh *shell) remove() error {
	if sh.set.IsEmpty() {
		_, _ = fmt.Fprintln(sh.out, "the set is empty")

		return nil
	}

	choices := make([]string, 0, sh.set.Len())
	for v := range sh.set.Values() {
		choices = append(choices, strconv.Itoa(int(v)))
	}

	picked, err := sh.ask.MultiSelect("Remove", choices...)
	if err != nil {
		return err
	}

	for _, p := range picked {
		v, err := strconv.Atoi(p)
		if err != nil {
			return err
		}

		if sh.set.Remove(sortable.Int(v)) {
			_, _ = fmt.Fprintf(sh.out, "removed %d\n", v)
		}
	}

	return nil
}
