// Package set provides RBTreeSet, an ordered set backed by a red-black tree,
// with node handles, sorted iteration, deep cloning, graphviz export and a
// Repack pass that folds runs of consecutive elements into one.
//
//	s := set.NewRBTreeSet[sortable.Int]()
//	s.InsertAll(2, 11, 6, 10)
//	for v := range s.Values() {
//		fmt.Println(v) // 2 6 10 11
//	}
//
// Elements must implement sortable.Sortable. Repack additionally needs the
// Consecutive capability, which sortable.Range provides.
package set
