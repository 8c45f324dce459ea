package sortable

// Byte orders single bytes by numeric value, which for ASCII text is the
// same as character order.
//
//	letters := set.Collect(slices.Values([]sortable.Byte("banana")))
//	// letters.Entries() == []sortable.Byte("abn")
type Byte byte

var _ Sortable[Byte] = (*Byte)(nil)

func (b Byte) Equals(other Byte) bool {
	return b == other
}

// LessThan compares the raw byte values; 'Z' sorts before 'a'.
func (b Byte) LessThan(other Byte) bool {
	return b < other
}
