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
	"math"
	"reflect"
	"testing"
)

func classGrid(t *testing.T, values [][]int) *IntGrid {
	g, err := IntGridFrom(values, -1, 0, 0, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func labelRows(t *testing.T, g *IntGrid, conn Connectivity) [][]int {
	labels, err := LabelRegions(g, conn)
	if err != nil {
		t.Fatal(err)
	}
	ny, nx := labels.Shape()
	rows := make([][]int, ny)
	for j := 0; j < ny; j++ {
		rows[j] = make([]int, nx)
		for i := 0; i < nx; i++ {
			rows[j][i] = labels.Get(j, i)
		}
	}
	return rows
}

func TestLabelRegionsDiagonal(t *testing.T) {
	// Two same-valued cells touching only diagonally: separate regions
	// under 4-connectivity, one region under 8-connectivity.
	g := classGrid(t, [][]int{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	labels4, err := LabelRegions(g, Connectivity4)
	if err != nil {
		t.Fatal(err)
	}
	if labels4.Get(0, 0) == labels4.Get(1, 1) {
		t.Error("diagonal cells should be separate regions under 4-connectivity")
	}

	labels8, err := LabelRegions(g, Connectivity8)
	if err != nil {
		t.Fatal(err)
	}
	if labels8.Get(0, 0) != labels8.Get(1, 1) {
		t.Error("diagonal cells should be one region under 8-connectivity")
	}
}

func TestLabelRegionsScanOrder(t *testing.T) {
	// Labels are assigned in row-major first-encounter order.
	g := classGrid(t, [][]int{
		{1, 1, 2},
		{3, 1, 2},
		{3, 3, 3},
	})
	want := [][]int{
		{1, 1, 2},
		{3, 1, 2},
		{3, 3, 3},
	}
	if have := labelRows(t, g, Connectivity4); !reflect.DeepEqual(want, have) {
		t.Errorf("want %v but have %v", want, have)
	}
}

func TestLabelRegionsUShape(t *testing.T) {
	// The two arms of the U get separate provisional labels that must
	// merge when the scan reaches the bottom row.
	g := classGrid(t, [][]int{
		{5, 0, 5},
		{5, 0, 5},
		{5, 5, 5},
	})
	have := labelRows(t, g, Connectivity4)
	if have[0][0] != have[0][2] {
		t.Errorf("the arms of the U should merge into one region: %v", have)
	}
	if have[0][0] == have[0][1] {
		t.Errorf("differently-valued cells should not share a region: %v", have)
	}
	// The surviving label is the smaller of the merged pair, so labels
	// stay compact: 1 for the U, 2 for the center column.
	want := [][]int{
		{1, 2, 1},
		{1, 2, 1},
		{1, 1, 1},
	}
	if !reflect.DeepEqual(want, have) {
		t.Errorf("want %v but have %v", want, have)
	}
}

func TestLabelRegionsNoData(t *testing.T) {
	g := classGrid(t, [][]int{
		{1, -1, 1},
		{1, -1, 1},
	})
	labels, err := LabelRegions(g, Connectivity4)
	if err != nil {
		t.Fatal(err)
	}
	if labels.Get(0, 1) != LabelNoData || labels.Get(1, 1) != LabelNoData {
		t.Error("no-data cells should be background in the output")
	}
	// The no-data column splits the equal-valued cells in two regions.
	if labels.Get(0, 0) == labels.Get(0, 2) {
		t.Error("regions should not connect across no-data cells")
	}
}

func TestLabelRegionsConnectivityCoarsens(t *testing.T) {
	// 8-connectivity can only merge regions relative to 4-connectivity.
	g := classGrid(t, [][]int{
		{1, 0, 1, 1, 0},
		{0, 1, 0, 0, 1},
		{1, 0, 1, 0, 0},
		{0, 1, 1, 0, 1},
		{1, 0, 0, 1, 0},
	})
	n4 := len(RegionSizes(mustLabel(t, g, Connectivity4)))
	n8 := len(RegionSizes(mustLabel(t, g, Connectivity8)))
	if n8 > n4 {
		t.Errorf("8-connectivity produced %d regions but 4-connectivity produced %d", n8, n4)
	}
}

func mustLabel(t *testing.T, g *IntGrid, conn Connectivity) *IntGrid {
	labels, err := LabelRegions(g, conn)
	if err != nil {
		t.Fatal(err)
	}
	return labels
}

func TestLabelRegionsDeterminism(t *testing.T) {
	g := classGrid(t, [][]int{
		{2, 2, 1, 0},
		{0, 2, 1, 1},
		{0, 0, 2, 1},
	})
	a := mustLabel(t, g, Connectivity8)
	b := mustLabel(t, g, Connectivity8)
	if !reflect.DeepEqual(a.Data.Elements, b.Data.Elements) {
		t.Error("labeling is not deterministic")
	}
	// Labeling a label grid again yields it unchanged: each region
	// already holds a unique value, and compaction re-derives the same
	// first-encounter numbering.
	c, err := LabelRegions(a, Connectivity8)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Data.Elements, c.Data.Elements) {
		t.Errorf("want %v but have %v", a.Data.Elements, c.Data.Elements)
	}
}

func TestLabelRegionsBadConnectivity(t *testing.T) {
	g := classGrid(t, [][]int{{1}})
	if _, err := LabelRegions(g, Connectivity(6)); err == nil {
		t.Error("expected error for unsupported connectivity")
	}
}

func TestLabelValues(t *testing.T) {
	g, err := GridFrom([][]float64{
		{1.5, 1.5, 2.5},
		{math.NaN(), 1.5, 2.5},
	}, 0, 0, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	labels, err := LabelValues(g, Connectivity4)
	if err != nil {
		t.Fatal(err)
	}
	if labels.Get(1, 0) != LabelNoData {
		t.Error("NaN cells should be background")
	}
	if labels.Get(0, 0) != labels.Get(1, 1) {
		t.Error("connected equal values should share a label")
	}
	if labels.Get(0, 0) == labels.Get(0, 2) {
		t.Error("different values should not share a label")
	}
}

func TestLabelPreservesRegistration(t *testing.T) {
	g, err := IntGridFrom([][]int{{1, 1}}, -1, -500, 250, 30, 30)
	if err != nil {
		t.Fatal(err)
	}
	labels, err := LabelRegions(g, Connectivity4)
	if err != nil {
		t.Fatal(err)
	}
	if labels.X0 != g.X0 || labels.Y0 != g.Y0 || labels.Dx != g.Dx || labels.Dy != g.Dy {
		t.Errorf("registration not preserved: %+v vs. %+v", labels, g)
	}
}

func TestRegionSizes(t *testing.T) {
	g := classGrid(t, [][]int{
		{1, 1, 2},
		{-1, 1, 2},
	})
	labels := mustLabel(t, g, Connectivity4)
	want := map[int]int{1: 3, 2: 2}
	if have := RegionSizes(labels); !reflect.DeepEqual(want, have) {
		t.Errorf("want %v but have %v", want, have)
	}
}
