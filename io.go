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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/sparse"
	goshp "github.com/jonas-p/go-shp"
)

// asciiNoData is the NODATA_value written to ESRI ASCII grid files.
const asciiNoData = -9999

// ReadASCIIGrid reads a raster in ESRI ASCII grid format. Cells equal
// to the file's NODATA_value become NaN. Rows in the file run north to
// south, matching the in-memory layout of Grid.
func ReadASCIIGrid(r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	next := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return scanner.Text(), nil
	}

	// Header: keyword-value pairs until the first numeric token.
	var ncols, nrows int
	var xll, yll, cellsize float64
	noData := math.NaN()
	var tok string
	var err error
	for {
		tok, err = next()
		if err != nil {
			return nil, fmt.Errorf("gridclass: reading ascii grid header: %v", err)
		}
		key := strings.ToLower(tok)
		if _, numErr := strconv.ParseFloat(tok, 64); numErr == nil {
			break // First data value.
		}
		val, err := next()
		if err != nil {
			return nil, fmt.Errorf("gridclass: reading ascii grid header value for %s: %v", key, err)
		}
		switch key {
		case "ncols":
			ncols, err = strconv.Atoi(val)
		case "nrows":
			nrows, err = strconv.Atoi(val)
		case "xllcorner":
			xll, err = strconv.ParseFloat(val, 64)
		case "yllcorner":
			yll, err = strconv.ParseFloat(val, 64)
		case "cellsize":
			cellsize, err = strconv.ParseFloat(val, 64)
		case "nodata_value":
			noData, err = strconv.ParseFloat(val, 64)
		default:
			return nil, fmt.Errorf("gridclass: unexpected ascii grid header keyword %q", tok)
		}
		if err != nil {
			return nil, fmt.Errorf("gridclass: parsing ascii grid header %s=%q: %v", key, val, err)
		}
	}
	if ncols < 1 || nrows < 1 {
		return nil, fmt.Errorf("gridclass: invalid ascii grid dimensions %d×%d", nrows, ncols)
	}
	if cellsize <= 0 {
		return nil, fmt.Errorf("gridclass: invalid ascii grid cell size %g", cellsize)
	}

	g := NewGrid(nrows, ncols, xll, yll, cellsize, cellsize)
	for i := 0; i < nrows*ncols; i++ {
		if i > 0 { // The first value was consumed while scanning the header.
			tok, err = next()
			if err != nil {
				return nil, fmt.Errorf("gridclass: ascii grid has %d of %d expected values", i, nrows*ncols)
			}
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("gridclass: parsing ascii grid value %q: %v", tok, err)
		}
		if v == noData {
			v = math.NaN()
		}
		g.Data.Elements[i] = v
	}
	return g, nil
}

// WriteASCIIGrid writes g in ESRI ASCII grid format. NaN cells are
// written as the NODATA_value. The format only supports square cells,
// so Dx must equal Dy.
func WriteASCIIGrid(w io.Writer, g *Grid) error {
	if g.Dx != g.Dy {
		return fmt.Errorf("gridclass: ascii grids require square cells but dx=%g and dy=%g", g.Dx, g.Dy)
	}
	ny, nx := g.Shape()
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "ncols %d\n", nx)
	fmt.Fprintf(b, "nrows %d\n", ny)
	fmt.Fprintf(b, "xllcorner %g\n", g.X0)
	fmt.Fprintf(b, "yllcorner %g\n", g.Y0)
	fmt.Fprintf(b, "cellsize %g\n", g.Dx)
	fmt.Fprintf(b, "NODATA_value %d\n", asciiNoData)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			v := g.Data.Get(j, i)
			if math.IsNaN(v) {
				fmt.Fprintf(b, "%d", asciiNoData)
			} else {
				fmt.Fprintf(b, "%g", v)
			}
		}
		b.WriteByte('\n')
	}
	return b.Flush()
}

// Float converts an integer grid to a floating-point grid, mapping the
// no-data sentinel to NaN. It allows class and label grids to be
// written with WriteASCIIGrid and summarized with ZonalStats.
func (g *IntGrid) Float() *Grid {
	ny, nx := g.Shape()
	o := NewGrid(ny, nx, g.X0, g.Y0, g.Dx, g.Dy)
	for i, v := range g.Data.Elements {
		if v == g.NoData {
			o.Data.Elements[i] = math.NaN()
		} else {
			o.Data.Elements[i] = float64(v)
		}
	}
	return o
}

// ReadCDF reads the named variable from a NetCDF file. The file must
// carry the global attributes x0, y0, dx, and dy describing the
// spatial registration, as written by WriteCDF.
func ReadCDF(rw cdf.ReaderWriterAt, variable string) (*Grid, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("gridclass.ReadCDF: %v", err)
	}
	dims := f.Header.Lengths(variable)
	if len(dims) != 2 {
		return nil, fmt.Errorf("gridclass.ReadCDF: variable %s has %d dimensions but rasters must have 2", variable, len(dims))
	}
	g := &Grid{Data: sparse.ZerosDense(dims...)}
	reg := func(name string) (float64, error) {
		a, ok := f.Header.GetAttribute("", name).([]float64)
		if !ok || len(a) == 0 {
			return 0, fmt.Errorf("gridclass.ReadCDF: missing registration attribute %s", name)
		}
		return a[0], nil
	}
	if g.X0, err = reg("x0"); err != nil {
		return nil, err
	}
	if g.Y0, err = reg("y0"); err != nil {
		return nil, err
	}
	if g.Dx, err = reg("dx"); err != nil {
		return nil, err
	}
	if g.Dy, err = reg("dy"); err != nil {
		return nil, err
	}

	r := f.Reader(variable, nil, nil)
	tmp := make([]float32, len(g.Data.Elements))
	if _, err := r.Read(tmp); err != nil {
		return nil, fmt.Errorf("gridclass.ReadCDF: reading variable %s: %v", variable, err)
	}
	for i, v := range tmp {
		g.Data.Elements[i] = float64(v)
	}
	return g, nil
}

// WriteCDF writes g to the NetCDF file w as the named variable,
// recording the spatial registration as global attributes.
func (g *Grid) WriteCDF(w *os.File, variable string) error {
	ny, nx := g.Shape()
	h := cdf.NewHeader([]string{"y", "x"}, []int{ny, nx})
	h.AddAttribute("", "x0", []float64{g.X0})
	h.AddAttribute("", "y0", []float64{g.Y0})
	h.AddAttribute("", "dx", []float64{g.Dx})
	h.AddAttribute("", "dy", []float64{g.Dy})
	h.AddAttribute("", "nx", []int32{int32(nx)})
	h.AddAttribute("", "ny", []int32{int32(ny)})
	h.AddVariable(variable, []string{"y", "x"}, []float32{0})
	h.Define()

	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return fmt.Errorf("gridclass.WriteCDF: %v", err)
	}
	data32 := make([]float32, len(g.Data.Elements))
	for i, v := range g.Data.Elements {
		data32[i] = float32(v)
	}
	end := f.Header.Lengths(variable)
	start := make([]int, len(end))
	wr := f.Writer(variable, start, end)
	if _, err := wr.Write(data32); err != nil {
		return fmt.Errorf("gridclass.WriteCDF: writing variable %s: %v", variable, err)
	}
	if err := cdf.UpdateNumRecs(w); err != nil {
		return fmt.Errorf("gridclass.WriteCDF: %v", err)
	}
	return nil
}

// WriteShapefile writes the non-background cells of g as square
// polygons with their value in the named attribute field, for use in
// GIS rendering tools.
func WriteShapefile(fileName string, g *IntGrid, field string) error {
	fileBase := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	fields := []goshp.Field{goshp.NumberField(field, 10)}
	shape, err := shp.NewEncoderFromFields(fileBase+".shp", goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("gridclass: creating output shapefile: %v", err)
	}
	ny, nx := g.Shape()
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v := g.Data.Get(j, i)
			if v == g.NoData {
				continue
			}
			if err := shape.EncodeFields(g.CellPolygon(j, i), v); err != nil {
				return fmt.Errorf("gridclass: writing output shapefile: %v", err)
			}
		}
	}
	shape.Close()
	return nil
}
