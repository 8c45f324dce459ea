// Package assert provides programmer-error assertions. A failed assertion
// means a library invariant is broken, not that the caller passed bad input,
// so it panics rather than returning an error.
//
// Building with the assertions_disabled tag compiles every check to a no-op.
package assert

import (
	"fmt"

	"github.com/amp-labs/rbtset/errors"
)

// Type asserts that the given value is of the expected type T.
// If the assertion fails, it returns an error indicating the mismatch.
//
//nolint:ireturn
func Type[T any](val any) (T, error) {
	of, ok := val.(T)
	if !ok {
		return of, fmt.Errorf("%w: expected type %T, but received %T", errors.ErrWrongType, of, val)
	}

	return of, nil
}

// failure renders the panic message for a failed check.
// If the first arg is a string it is used as a format string with the
// remaining args; otherwise all args are included verbatim.
func failure(args []any) string {
	if len(args) == 0 {
		return "assertion failed"
	}

	if format, ok := args[0].(string); ok {
		return fmt.Sprintf(format, args[1:]...)
	}

	return fmt.Sprintf("assertion failed: %v", args)
}
