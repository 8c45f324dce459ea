package set

import (
	"github.com/amp-labs/rbtset/assert"
	"github.com/amp-labs/rbtset/sortable"
)

// Consecutive is implemented by values that can describe adjacent pieces of
// a larger whole, such as ranges.
type Consecutive[T any] interface {
	// Consecutive reports whether next continues the receiver with no gap.
	Consecutive(next T) bool
	// Merged combines the receiver with next. It is only called when
	// Consecutive(next) holds.
	Merged(next T) T
}

// RepackableValue is the element constraint for Repack.
type RepackableValue[T any] interface {
	sortable.Sortable[T]
	Consecutive[T]
}

// RepackStats describes one Repack pass.
type RepackStats struct {
	// Runs is the number of merged groups of two or more elements.
	Runs int `json:"runs" yaml:"runs"`
	// Absorbed is the number of elements that disappeared into a merge.
	Absorbed int `json:"absorbed" yaml:"absorbed"`
}

// Repack merges runs of consecutive elements in one ascending pass.
//
// A run grows while each next element is consecutive to the last one taken.
// When a run of two or more ends, its values are folded left to right through
// Merged, every member but the last is removed, and the last member's node
// takes the merged value. Singletons are untouched.
//
// The pass is greedy and single: a merged value is not compared again with
// elements beyond the run that produced it, so payloads whose Consecutive
// relation is not transitive may need more than one call to settle.
func Repack[T RepackableValue[T]](s *RBTreeSet[T]) RepackStats {
	var stats RepackStats

	entries := s.Entries()

	for start := 0; start < len(entries); {
		end := start
		for end+1 < len(entries) && entries[end].Consecutive(entries[end+1]) {
			end++
		}

		if end > start {
			merged := entries[start]
			for _, next := range entries[start+1 : end+1] {
				merged = merged.Merged(next)
			}

			for _, absorbed := range entries[start:end] {
				assert.True(s.Remove(absorbed), "repack lost element %v", absorbed)
			}

			survivor, ok := s.GetNode(entries[end])
			assert.True(ok, "repack lost run tail %v", entries[end])

			survivor.Apply(func(value *T) {
				*value = merged
			})

			stats.Runs++
			stats.Absorbed += end - start
		}

		start = end + 1
	}

	s.metrics.absorbed(stats.Absorbed)
	s.logger.Debug("repacked set",
		"runs", stats.Runs,
		"absorbed", stats.Absorbed,
		"length", s.length)

	return stats
}
