// SPDX-License-Identifier: MIT

package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/bfs"
)

// ExampleBFS walks a 2×3 grid of cells numbered row by row.
func ExampleBFS() {
	// 0 1 2
	// 3 4 5
	adj := [][]int{{1, 3}, {0, 2, 4}, {1, 5}, {0, 4}, {1, 3, 5}, {2, 4}}
	res, err := bfs.BFS(adj, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	path, _ := res.PathTo(5)
	fmt.Println(res.Order)
	fmt.Println(path)
	// Output:
	// [0 1 3 2 4 5]
	// [0 1 2 5]
}
