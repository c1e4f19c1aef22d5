package dedup_test

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/dedup"
)

// ExampleSortUnique merges scalars closer than the tolerance and reports
// where every original went.
func ExampleSortUnique() {
	seq := []float64{0, 1e-14, 1}
	key := func(v float64) []float64 { return []float64{v} }

	out, fwd := dedup.SortUnique(seq, key, dedup.WithTolerance(1e-12))
	fmt.Println(len(out), fwd)
	// Output: 2 [0 0 1]
}
