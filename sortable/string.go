package sortable

import "facette.io/natsort"

// String orders strings bytewise.
type String string

var _ Sortable[String] = (*String)(nil)

func (s String) Equals(other String) bool {
	return string(s) == string(other)
}

func (s String) LessThan(other String) bool {
	return string(s) < string(other)
}

// NaturalString orders strings the way a person would: digit runs compare
// numerically, so "node2" sorts before "node10".
//
// Digit runs with the same numeric value but different padding ("a1",
// "a01") are distinct values; they fall back to bytewise order, so the more
// heavily padded one sorts first.
type NaturalString string

var _ Sortable[NaturalString] = (*NaturalString)(nil)

func (s NaturalString) Equals(other NaturalString) bool {
	return string(s) == string(other)
}

func (s NaturalString) LessThan(other NaturalString) bool {
	if s == other {
		return false
	}

	less := natsort.Compare(string(s), string(other))
	greater := natsort.Compare(string(other), string(s))

	// natsort reports "less" both ways for numerically equal digit runs.
	if less == greater {
		return string(s) < string(other)
	}

	return less
}
