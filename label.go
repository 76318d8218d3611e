/*
Copyright © 2026 the Gridclass authors.
This file is part of Gridclass.

Gridclass is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Gridclass is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Gridclass.  If not, see <http://www.gnu.org/licenses/>.
*/

package gridclass

import (
	"fmt"
	"math"
)

// LabelNoData is the background value in label grids produced by
// LabelRegions and LabelValues. Region labels start at 1.
const LabelNoData = 0

// Connectivity is the neighbor adjacency rule used when labeling
// connected regions.
type Connectivity int

const (
	// Connectivity4 treats only the axis-aligned neighbors of a cell
	// as adjacent.
	Connectivity4 Connectivity = 4

	// Connectivity8 additionally treats the diagonal neighbors of a
	// cell as adjacent.
	Connectivity8 Connectivity = 8
)

// Neighbor offsets (row, column) of the already-scanned cells in a
// row-major scan.
var (
	scanned4 = [][2]int{{-1, 0}, {0, -1}}
	scanned8 = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}}
)

// LabelRegions assigns a unique positive label to every maximal
// connected set of equal-valued, non-missing cells in g, under the
// given connectivity. Missing cells become LabelNoData in the output.
// Labels are assigned in row-major first-encounter order, so the
// result is identical across repeated runs on the same input.
func LabelRegions(g *IntGrid, conn Connectivity) (*IntGrid, error) {
	ny, nx := g.Shape()
	labels, err := labelCells(ny, nx, conn,
		func(c int) bool { return g.Data.Elements[c] != g.NoData },
		func(a, b int) bool { return g.Data.Elements[a] == g.Data.Elements[b] })
	if err != nil {
		return nil, err
	}
	out := NewIntGrid(ny, nx, LabelNoData, g.X0, g.Y0, g.Dx, g.Dy)
	copy(out.Data.Elements, labels)
	return out, nil
}

// LabelValues labels connected regions of exactly equal values in a
// floating-point grid. NaN cells never join a region and become
// LabelNoData in the output.
func LabelValues(g *Grid, conn Connectivity) (*IntGrid, error) {
	ny, nx := g.Shape()
	labels, err := labelCells(ny, nx, conn,
		func(c int) bool { return !math.IsNaN(g.Data.Elements[c]) },
		func(a, b int) bool { return g.Data.Elements[a] == g.Data.Elements[b] })
	if err != nil {
		return nil, err
	}
	out := NewIntGrid(ny, nx, LabelNoData, g.X0, g.Y0, g.Dx, g.Dy)
	copy(out.Data.Elements, labels)
	return out, nil
}

// labelCells performs two-pass connected-component labeling over the
// row-major cell indices of an ny×nx grid. valid reports whether a
// cell can join a region and equal reports whether two cells hold the
// same value. Provisional labels are merged with a union-find where
// the smaller root always survives, then compacted to 1..N in
// first-encounter order.
func labelCells(ny, nx int, conn Connectivity, valid func(int) bool, equal func(a, b int) bool) ([]int, error) {
	var offsets [][2]int
	switch conn {
	case Connectivity4:
		offsets = scanned4
	case Connectivity8:
		offsets = scanned8
	default:
		return nil, fmt.Errorf("gridclass: unsupported connectivity %d (must be 4 or 8)", conn)
	}

	provisional := make([]int, ny*nx) // 0 means background.
	var parent []int                  // parent[l] for provisional labels; parent[0] unused.
	parent = append(parent, 0)

	find := func(l int) int {
		for parent[l] != l {
			parent[l] = parent[parent[l]]
			l = parent[l]
		}
		return l
	}

	// First pass: provisional labels from the already-scanned
	// neighborhood.
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			c := j*nx + i
			if !valid(c) {
				continue
			}
			best := 0
			for _, d := range offsets {
				nj, ni := j+d[0], i+d[1]
				if nj < 0 || ni < 0 || ni >= nx {
					continue
				}
				nc := nj*nx + ni
				if !valid(nc) || !equal(c, nc) {
					continue
				}
				r := find(provisional[nc])
				if best == 0 || r < best {
					if best != 0 && r != best {
						parent[best] = r // Smaller root survives.
					}
					best = r
				} else if r != best {
					parent[r] = best
				}
			}
			if best == 0 {
				best = len(parent)
				parent = append(parent, best)
			}
			provisional[c] = best
		}
	}

	// Second pass: resolve roots and compact to consecutive labels in
	// row-major first-encounter order.
	compact := make(map[int]int)
	labels := make([]int, ny*nx)
	next := 1
	for c, l := range provisional {
		if l == 0 {
			continue
		}
		r := find(l)
		cl, ok := compact[r]
		if !ok {
			cl = next
			compact[r] = cl
			next++
		}
		labels[c] = cl
	}
	return labels, nil
}

// RegionSizes returns the number of cells in each region of a label
// grid, keyed by label. Background cells are not counted.
func RegionSizes(labels *IntGrid) map[int]int {
	sizes := make(map[int]int)
	for _, l := range labels.Data.Elements {
		if l == labels.NoData {
			continue
		}
		sizes[l]++
	}
	return sizes
}
