// Package cli holds the interactive prompts and terminal helpers used by the
// rbtset shell.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

var (
	ErrEmptyInput = errors.New("you must enter something")
	ErrNotInteger = errors.New("invalid integer")
)

// Prompter runs promptui prompts against a pair of streams.
type Prompter struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// Stdio returns a Prompter bound to the process's terminal.
func Stdio() Prompter {
	return Prompter{In: os.Stdin, Out: os.Stdout}
}

func validateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyInput
	}

	return nil
}

func parseInt(s string) (int, error) {
	val, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}

	return int(val), nil
}

func validateInt(s string) error {
	_, err := parseInt(s)

	return err
}

// Confirm asks a yes/no question. Answering no is not an error.
func (p Prompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.In,
		Stdout:    p.Out,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// String asks for a non-blank line of text.
func (p Prompter) String(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validateNonEmpty,
		Stdin:    p.In,
		Stdout:   p.Out,
	}

	return prompt.Run()
}

// Int asks for a 32-bit signed integer.
func (p Prompter) Int(label string) (int, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validateInt,
		Stdin:    p.In,
		Stdout:   p.Out,
	}

	txt, err := prompt.Run()
	if err != nil {
		return 0, err
	}

	return parseInt(txt)
}

func PromptConfirm(label string) (bool, error) {
	return Stdio().Confirm(label)
}

func PromptString(label string) (string, error) {
	return Stdio().String(label)
}

func PromptInt(label string) (int, error) {
	return Stdio().Int(label)
}
