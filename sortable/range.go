package sortable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadRange is returned by ParseRange for malformed input.
var ErrBadRange = errors.New("bad range")

// Range is the half-open interval [Start, End).
//
// Ranges order by Start. Equality is overlap: two ranges are equal when they
// share at least one point, so a set of Ranges holds disjoint intervals and
// rejects any insertion that overlaps an element already present. Ranges that
// merely touch ([1, 3) and [3, 5)) are distinct.
//
// Range is consecutive-capable: r.Consecutive(next) holds when next begins
// exactly where r ends, and r.Merged(next) spans both.
type Range struct {
	Start uint64
	End   uint64
}

var _ Sortable[Range] = (*Range)(nil)

// NewRange panics unless start < end; an empty range would never equal
// anything, itself included.
func NewRange(start, end uint64) Range {
	if end <= start {
		panic(fmt.Sprintf("invalid range %d..%d", start, end))
	}

	return Range{Start: start, End: end}
}

// ParseRange reads the "start..end" form produced by String.
func ParseRange(s string) (Range, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "..")
	if !ok {
		return Range{}, fmt.Errorf("%w: %q has no '..' separator", ErrBadRange, s)
	}

	start, err := strconv.ParseUint(strings.TrimSpace(lo), 10, 64)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %w", ErrBadRange, s, err)
	}

	end, err := strconv.ParseUint(strings.TrimSpace(hi), 10, 64)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %w", ErrBadRange, s, err)
	}

	if end <= start {
		return Range{}, fmt.Errorf("%w: %q is empty or ends before it starts", ErrBadRange, s)
	}

	return Range{Start: start, End: end}, nil
}

// Len is the number of points covered.
func (r Range) Len() uint64 {
	return r.End - r.Start
}

// Equals reports whether r and other overlap.
func (r Range) Equals(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

func (r Range) LessThan(other Range) bool {
	return r.Start < other.Start
}

// Consecutive reports whether next continues r with no gap.
func (r Range) Consecutive(next Range) bool {
	return r.End == next.Start
}

// Merged assumes r.Consecutive(next).
func (r Range) Merged(next Range) Range {
	return Range{Start: r.Start, End: next.End}
}

func (r Range) String() string {
	return strconv.FormatUint(r.Start, 10) + ".." + strconv.FormatUint(r.End, 10)
}
