//go:build assertions_disabled

package assert

// Enabled reports whether assertions are compiled in.
const Enabled = false

func True(value bool, args ...any) {
	// Intentionally left blank
}

func False(value bool, args ...any) {
	// Intentionally left blank
}

func NonZero[T comparable](value T, args ...any) {
	// Intentionally left blank
}

// Unreachable still panics: control reaching it would otherwise continue
// with corrupted state.
func Unreachable(args ...any) {
	panic(failure(args))
}
