// Package sortable provides the ordering contract used by the red-black tree set
// and wrapper types that satisfy it.
package sortable

// Sortable is a total order over T. Equals decides set membership and
// LessThan decides placement; for any a, b exactly one of a.Equals(b),
// a.LessThan(b) or b.LessThan(a) is expected to hold.
type Sortable[T any] interface {
	Equals(other T) bool
	LessThan(other T) bool
}

// Compare maps the two Sortable predicates onto the -1/0/1 convention of
// slices.SortFunc and friends.
func Compare[T Sortable[T]](a, b T) int {
	switch {
	case a.Equals(b):
		return 0
	case a.LessThan(b):
		return -1
	default:
		return 1
	}
}
