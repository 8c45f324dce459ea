package sortable

// Int is a sortable wrapper type for the built-in int type.
//
// Example:
//
//	numbers := set.NewRBTreeSet[sortable.Int]()
//	numbers.Insert(5)
//	numbers.Insert(3)
//	numbers.Insert(7)
//	// Iterating yields: 3, 5, 7 (sorted order)
type Int int

// Compile-time check that Int implements Sortable[Int].
var _ Sortable[Int] = (*Int)(nil)

// Equals returns true if this Int has the same value as the other Int.
func (i Int) Equals(other Int) bool {
	return int(i) == int(other)
}

// LessThan returns true if this Int is numerically less than the other Int.
func (i Int) LessThan(other Int) bool {
	return int(i) < int(other)
}
