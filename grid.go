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

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// Grid is a 2-D floating-point raster. Values are stored in row-major
// order with row 0 being the northernmost row, matching the layout of
// most raster file formats. Missing measurements are represented by NaN.
type Grid struct {
	// Data holds the cell values. Its shape is [Ny, Nx].
	Data *sparse.DenseArray

	X0, Y0 float64 // Coordinates of the lower-left corner of the grid.
	Dx, Dy float64 // Cell edge lengths in the x and y directions.
}

// NewGrid creates a grid with ny rows and nx columns where every
// cell is initialized to zero.
func NewGrid(ny, nx int, x0, y0, dx, dy float64) *Grid {
	return &Grid{
		Data: sparse.ZerosDense(ny, nx),
		X0:   x0,
		Y0:   y0,
		Dx:   dx,
		Dy:   dy,
	}
}

// GridFrom creates a grid from a rectangular 2-D slice, copying the
// input so later changes to it do not affect the grid. Row 0 of the
// input becomes the northernmost row.
func GridFrom(values [][]float64, x0, y0, dx, dy float64) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("gridclass: grid must have at least one row and one column")
	}
	nx := len(values[0])
	g := NewGrid(len(values), nx, x0, y0, dx, dy)
	for j, row := range values {
		if len(row) != nx {
			return nil, fmt.Errorf("gridclass: grid is not rectangular: row 0 has %d columns but row %d has %d", nx, j, len(row))
		}
		for i, v := range row {
			g.Data.Set(v, j, i)
		}
	}
	return g, nil
}

// Shape returns the number of rows and columns in the grid.
func (g *Grid) Shape() (ny, nx int) {
	return g.Data.Shape[0], g.Data.Shape[1]
}

// Get returns the value of the cell in row j and column i.
func (g *Grid) Get(j, i int) float64 { return g.Data.Get(j, i) }

// Set sets the value of the cell in row j and column i.
func (g *Grid) Set(v float64, j, i int) { g.Data.Set(v, j, i) }

// IsNoData reports whether the cell in row j and column i holds a
// missing measurement.
func (g *Grid) IsNoData(j, i int) bool { return math.IsNaN(g.Data.Get(j, i)) }

// Like creates a zero-filled grid with the same shape and spatial
// registration as g.
func (g *Grid) Like() *Grid {
	ny, nx := g.Shape()
	return NewGrid(ny, nx, g.X0, g.Y0, g.Dx, g.Dy)
}

// LikeInt creates an integer grid with the same shape and spatial
// registration as g where every cell is initialized to noData.
func (g *Grid) LikeInt(noData int) *IntGrid {
	ny, nx := g.Shape()
	return NewIntGrid(ny, nx, noData, g.X0, g.Y0, g.Dx, g.Dy)
}

// Copy returns a deep copy of g.
func (g *Grid) Copy() *Grid {
	return &Grid{
		Data: g.Data.Copy(),
		X0:   g.X0,
		Y0:   g.Y0,
		Dx:   g.Dx,
		Dy:   g.Dy,
	}
}

// Bounds returns the spatial extent of the grid.
func (g *Grid) Bounds() *geom.Bounds {
	ny, nx := g.Shape()
	return &geom.Bounds{
		Min: geom.Point{X: g.X0, Y: g.Y0},
		Max: geom.Point{
			X: g.X0 + g.Dx*float64(nx),
			Y: g.Y0 + g.Dy*float64(ny),
		},
	}
}

// CellPolygon returns the rectangular footprint of the cell in row j
// and column i.
func (g *Grid) CellPolygon(j, i int) geom.Polygon {
	ny, _ := g.Shape()
	return cellPolygon(j, i, ny, g.X0, g.Y0, g.Dx, g.Dy)
}

// alignErr returns an error if the two grids do not share the same
// shape and spatial registration.
func (g *Grid) alignErr(other *Grid) error {
	if g.Data.Shape[0] != other.Data.Shape[0] || g.Data.Shape[1] != other.Data.Shape[1] {
		return fmt.Errorf("gridclass: grid shapes don't match: [%d, %d] vs. [%d, %d]",
			g.Data.Shape[0], g.Data.Shape[1], other.Data.Shape[0], other.Data.Shape[1])
	}
	if g.X0 != other.X0 || g.Y0 != other.Y0 || g.Dx != other.Dx || g.Dy != other.Dy {
		return fmt.Errorf("gridclass: grid registrations don't match: "+
			"(x0=%g, y0=%g, dx=%g, dy=%g) vs. (x0=%g, y0=%g, dx=%g, dy=%g)",
			g.X0, g.Y0, g.Dx, g.Dy, other.X0, other.Y0, other.Dx, other.Dy)
	}
	return nil
}

// finiteValues returns the values of all cells holding finite,
// non-missing measurements.
func (g *Grid) finiteValues() []float64 {
	vals := make([]float64, 0, len(g.Data.Elements))
	for _, v := range g.Data.Elements {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	return vals
}

// IntGrid is a 2-D integer raster, typically holding class indices or
// region labels. Cells equal to NoData hold no measurement.
type IntGrid struct {
	// Data holds the cell values. Its shape is [Ny, Nx].
	Data *sparse.DenseArrayInt

	// NoData is the sentinel value marking missing cells.
	NoData int

	X0, Y0 float64 // Coordinates of the lower-left corner of the grid.
	Dx, Dy float64 // Cell edge lengths in the x and y directions.
}

// NewIntGrid creates an integer grid with ny rows and nx columns where
// every cell is initialized to noData.
func NewIntGrid(ny, nx, noData int, x0, y0, dx, dy float64) *IntGrid {
	g := &IntGrid{
		Data:   sparse.ZerosDenseInt(ny, nx),
		NoData: noData,
		X0:     x0,
		Y0:     y0,
		Dx:     dx,
		Dy:     dy,
	}
	if noData != 0 {
		for i := range g.Data.Elements {
			g.Data.Elements[i] = noData
		}
	}
	return g
}

// IntGridFrom creates an integer grid from a rectangular 2-D slice,
// copying the input. Row 0 of the input becomes the northernmost row.
func IntGridFrom(values [][]int, noData int, x0, y0, dx, dy float64) (*IntGrid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("gridclass: grid must have at least one row and one column")
	}
	nx := len(values[0])
	g := NewIntGrid(len(values), nx, noData, x0, y0, dx, dy)
	for j, row := range values {
		if len(row) != nx {
			return nil, fmt.Errorf("gridclass: grid is not rectangular: row 0 has %d columns but row %d has %d", nx, j, len(row))
		}
		for i, v := range row {
			g.Data.Set(v, j, i)
		}
	}
	return g, nil
}

// Shape returns the number of rows and columns in the grid.
func (g *IntGrid) Shape() (ny, nx int) {
	return g.Data.Shape[0], g.Data.Shape[1]
}

// Get returns the value of the cell in row j and column i.
func (g *IntGrid) Get(j, i int) int { return g.Data.Get(j, i) }

// Set sets the value of the cell in row j and column i.
func (g *IntGrid) Set(v, j, i int) { g.Data.Set(v, j, i) }

// IsNoData reports whether the cell in row j and column i holds a
// missing measurement.
func (g *IntGrid) IsNoData(j, i int) bool { return g.Data.Get(j, i) == g.NoData }

// Like creates an integer grid with the same shape, spatial
// registration, and no-data sentinel as g where every cell is
// initialized to the sentinel.
func (g *IntGrid) Like() *IntGrid {
	ny, nx := g.Shape()
	return NewIntGrid(ny, nx, g.NoData, g.X0, g.Y0, g.Dx, g.Dy)
}

// Copy returns a deep copy of g.
func (g *IntGrid) Copy() *IntGrid {
	o := g.Like()
	copy(o.Data.Elements, g.Data.Elements)
	return o
}

// Bounds returns the spatial extent of the grid.
func (g *IntGrid) Bounds() *geom.Bounds {
	ny, nx := g.Shape()
	return &geom.Bounds{
		Min: geom.Point{X: g.X0, Y: g.Y0},
		Max: geom.Point{
			X: g.X0 + g.Dx*float64(nx),
			Y: g.Y0 + g.Dy*float64(ny),
		},
	}
}

// CellPolygon returns the rectangular footprint of the cell in row j
// and column i.
func (g *IntGrid) CellPolygon(j, i int) geom.Polygon {
	ny, _ := g.Shape()
	return cellPolygon(j, i, ny, g.X0, g.Y0, g.Dx, g.Dy)
}

// cellPolygon returns the footprint of the cell in row j and column i
// of a grid with ny rows. Row 0 is the northernmost row, so the
// southern edge of row j lies (ny-j-1) cells above y0.
func cellPolygon(j, i, ny int, x0, y0, dx, dy float64) geom.Polygon {
	x := x0 + dx*float64(i)
	y := y0 + dy*float64(ny-j-1)
	return geom.Polygon{{
		{X: x, Y: y},
		{X: x + dx, Y: y},
		{X: x + dx, Y: y + dy},
		{X: x, Y: y + dy},
	}}
}
