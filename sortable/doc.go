// Package sortable defines [Sortable], the total order required of elements
// stored in a [github.com/amp-labs/rbtset/set.RBTreeSet], and ready-made
// implementations.
//
// # Overview
//
// A Sortable type answers two questions about a pair of values: are they the
// same element (Equals) and does one precede the other (LessThan). The set
// uses Equals to reject duplicates and LessThan to pick a side while
// descending the tree.
//
// Provided types:
//   - [Int], [Byte], [String]: builtin ordering.
//   - [NaturalString]: human ordering of embedded numbers ("v2" < "v10").
//   - [Range]: half-open integer intervals which also implement the
//     consecutive capability used by set.Repack.
//
// # Custom types
//
//	type Version struct{ Major, Minor int }
//
//	func (v Version) Equals(o Version) bool { return v == o }
//
//	func (v Version) LessThan(o Version) bool {
//	    if v.Major != o.Major {
//	        return v.Major < o.Major
//	    }
//	    return v.Minor < o.Minor
//	}
//
// Equals does not have to be ==. [Range] treats any value starting inside an
// existing interval as equal to it, which is what makes overlapping inserts
// collide.
package sortable
