package permute_test

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/permute"
)

// ExampleApply moves each element to the slot named by the permutation.
func ExampleApply() {
	s := []string{"a", "b", "c"}
	if err := permute.Apply(s, []int{2, 0, 1}); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s)
	// Output: [b c a]
}

// ExampleEraseIndices removes a set of positions in one pass.
func ExampleEraseIndices() {
	s, _ := permute.EraseIndices([]int{10, 11, 12, 13, 14}, []int{3, 1})
	fmt.Println(s)
	// Output: [10 12 14]
}

// ExampleRemapAll rewrites face corners through a forwarding map.
func ExampleRemapAll() {
	faces := [][]int{{0, 1, 2}, {3, 4, 5}}
	_ = permute.RemapAll(faces, []int{0, 2, 1, 2, 3, 1})
	fmt.Println(faces)
	// Output: [[0 2 1] [2 3 1]]
}
