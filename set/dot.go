package set

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DumpTreeAsDot renders the tree in graphviz DOT form for inspection.
//
//	graph RBTreeSet {
//	    Node1 [label="2", color=black]
//	    NullL1 [shape=point]
//	    NullR1 [shape=point]
//
//	    Node1 -- NullL1
//	    Node1 -- NullR1
//	}
//
// Nodes are listed in ascending order and named by ID; every absent child
// gets its own point-shaped placeholder. A set of n elements has n node
// lines, n+1 placeholders and 2n edges.
func (s *RBTreeSet[T]) DumpTreeAsDot() string {
	var sb strings.Builder

	_ = s.WriteDot(&sb) // strings.Builder never fails

	return sb.String()
}

// WriteDot streams the DumpTreeAsDot text to w.
func (s *RBTreeSet[T]) WriteDot(w io.Writer) error {
	bw := bufio.NewWriter(w)

	_, _ = bw.WriteString("graph RBTreeSet {\n")

	for idx := s.firstIdx(); idx != nilIdx; idx = s.successor(idx) {
		rec := s.store.at(idx)

		_, _ = fmt.Fprintf(bw, "    Node%d [label=%q, color=%s]\n", idx, fmt.Sprint(rec.value), rec.color.dot())

		if rec.left == nilIdx {
			_, _ = fmt.Fprintf(bw, "    NullL%d [shape=point]\n", idx)
		}

		if rec.right == nilIdx {
			_, _ = fmt.Fprintf(bw, "    NullR%d [shape=point]\n", idx)
		}
	}

	_, _ = bw.WriteString("\n")

	for idx := s.firstIdx(); idx != nilIdx; idx = s.successor(idx) {
		rec := s.store.at(idx)

		if rec.left == nilIdx {
			_, _ = fmt.Fprintf(bw, "    Node%d -- NullL%d\n", idx, idx)
		} else {
			_, _ = fmt.Fprintf(bw, "    Node%d -- Node%d\n", idx, rec.left)
		}

		if rec.right == nilIdx {
			_, _ = fmt.Fprintf(bw, "    Node%d -- NullR%d\n", idx, idx)
		} else {
			_, _ = fmt.Fprintf(bw, "    Node%d -- Node%d\n", idx, rec.right)
		}
	}

	_, _ = bw.WriteString("}\n")

	// bufio.Writer keeps the first write error and reports it here.
	return bw.Flush()
}

func (s *RBTreeSet[T]) firstIdx() uint32 {
	if s.root == nilIdx {
		return nilIdx
	}

	return s.minimum(s.root)
}
