//go:build !assertions_disabled

package assert

// Enabled reports whether assertions are compiled in.
const Enabled = true

// True panics unless value is true.
// The optional args can be used to provide a formatted panic message:
// - If the first arg is a string, it's used as a format string with remaining args.
// - Otherwise, all args are included in the panic message.
func True(value bool, args ...any) {
	if value {
		return
	}

	panic(failure(args))
}

// False panics unless value is false.
func False(value bool, args ...any) {
	True(!value, args...)
}

// NonZero panics if value is the zero value of its type. The red-black tree
// uses it for node indices, where 0 is the nil slot.
func NonZero[T comparable](value T, args ...any) {
	var zero T

	True(value != zero, args...)
}

// Unreachable always panics. Use it in switch arms that the surrounding
// invariants rule out.
func Unreachable(args ...any) {
	panic(failure(args))
}
