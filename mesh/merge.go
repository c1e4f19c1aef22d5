// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvmesh/dedup"
	"github.com/katalvlaran/lvmesh/geomkey"
	"github.com/katalvlaran/lvmesh/internal/meshlog"
	"github.com/katalvlaran/lvmesh/permute"
)

var logger = meshlog.For("mesh")

// MergeReport describes one MergeCoincidentVertices call.
type MergeReport struct {
	Before  int   // vertex count on entry
	After   int   // vertex count on return
	Forward []int // original vertex index → merged vertex index
}

// Merged returns the number of vertices removed.
func (r MergeReport) Merged() int { return r.Before - r.After }

// MergeCoincidentVertices welds vertices closer than the merge tolerance
// (dedup.DefaultMergeTolerance unless overridden) and rewrites every vertex
// reference to point at the survivor.
//
// Implementation:
//   - Stage 1: validate FaceVertices and CellVertices against the current
//     vertex count. After this point nothing can fail, so the mesh is either
//     untouched (error) or fully rewritten.
//   - Stage 2: dedup.Run over Positions (sorts, merges, compacts in place),
//     repeated on the survivors until a pass merges nothing. Forwarding maps
//     of successive passes are composed.
//   - Stage 3: permute.RemapAll pulls FaceVertices and CellVertices through
//     the forwarding map.
//   - Stage 4: re-sort and re-dedup each CellVertices row, since two of a
//     cell's vertices may now be the same index.
//
// FaceVertices keep their order and winding; only the values change. A face
// whose corners weld together keeps the repeated index. Running the operation
// again returns Before == After and an identity forwarding map.
// Complexity: O(V log V + total references).
func MergeCoincidentVertices(m *Mesh, opts ...dedup.Option) (MergeReport, error) {
	if m == nil {
		return MergeReport{}, fmt.Errorf("MergeCoincidentVertices: %w", ErrNilMesh)
	}
	nv := len(m.Positions)
	if err := checkVertexRefs(m.FaceVertices, nv); err != nil {
		return MergeReport{}, fmt.Errorf("MergeCoincidentVertices: FaceVertices: %w", err)
	}
	if err := checkVertexRefs(m.CellVertices, nv); err != nil {
		return MergeReport{}, fmt.Errorf("MergeCoincidentVertices: CellVertices: %w", err)
	}

	out, fwd, rep := dedup.Run(m.Positions, geomkey.FromVec, opts...)
	// Survivors of one pass can still lie within tolerance of each other
	// once their in-between neighbours are gone; repeat to a fixpoint.
	for rep.Merged > 0 {
		var step []int
		out, step, rep = dedup.Run(out, geomkey.FromVec, opts...)
		for i, j := range fwd {
			fwd[i] = step[j]
		}
	}
	m.Positions = out

	// References were range-checked against len(fwd) == nv in stage 1.
	if err := permute.RemapAll(m.FaceVertices, fwd); err != nil {
		return MergeReport{}, fmt.Errorf("MergeCoincidentVertices: %w", err)
	}
	if err := permute.RemapAll(m.CellVertices, fwd); err != nil {
		return MergeReport{}, fmt.Errorf("MergeCoincidentVertices: %w", err)
	}
	for c, vs := range m.CellVertices {
		slices.Sort(vs)
		m.CellVertices[c] = slices.Compact(vs)
	}

	logger.Diagf("merged %d of %d vertices (tolerance %g)", nv-len(out), nv, dedup.NewOptions(opts...).Tolerance())

	return MergeReport{Before: nv, After: len(out), Forward: fwd}, nil
}
