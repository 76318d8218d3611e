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
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
)

const testASCIIGrid = `ncols 3
nrows 2
xllcorner 100.5
yllcorner -200
cellsize 30
NODATA_value -9999
1 2 -9999
4.5 5 6
`

func TestReadASCIIGrid(t *testing.T) {
	g, err := ReadASCIIGrid(strings.NewReader(testASCIIGrid))
	if err != nil {
		t.Fatal(err)
	}
	ny, nx := g.Shape()
	if ny != 2 || nx != 3 {
		t.Fatalf("want shape (2, 3) but have (%d, %d)", ny, nx)
	}
	if g.X0 != 100.5 || g.Y0 != -200 || g.Dx != 30 || g.Dy != 30 {
		t.Errorf("unexpected registration %+v", g)
	}
	if !g.IsNoData(0, 2) {
		t.Error("NODATA_value cell should be missing")
	}
	if have := g.Get(1, 0); have != 4.5 {
		t.Errorf("want 4.5 but have %g", have)
	}
}

func TestReadASCIIGridTruncated(t *testing.T) {
	truncated := strings.Join(strings.Fields(testASCIIGrid)[:16], " ")
	if _, err := ReadASCIIGrid(strings.NewReader(truncated)); err == nil {
		t.Error("expected error for truncated file")
	}
}

func TestWriteASCIIGridRoundTrip(t *testing.T) {
	g, err := GridFrom([][]float64{
		{1, math.NaN()},
		{-3.25, 4},
	}, 10, 20, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteASCIIGrid(&buf, g); err != nil {
		t.Fatal(err)
	}
	g2, err := ReadASCIIGrid(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.alignErr(g2); err != nil {
		t.Error(err)
	}
	for i, want := range g.Data.Elements {
		have := g2.Data.Elements[i]
		if math.IsNaN(want) != math.IsNaN(have) || (!math.IsNaN(want) && want != have) {
			t.Errorf("cell %d: want %g but have %g", i, want, have)
		}
	}
}

func TestWriteASCIIGridNonSquare(t *testing.T) {
	g := NewGrid(2, 2, 0, 0, 10, 20)
	if err := WriteASCIIGrid(&bytes.Buffer{}, g); err == nil {
		t.Error("expected error for non-square cells")
	}
}

func TestCDFRoundTrip(t *testing.T) {
	g, err := GridFrom([][]float64{
		{1.5, 2},
		{3, -4},
		{5, 6},
	}, -1000, 2000, 500, 500)
	if err != nil {
		t.Fatal(err)
	}

	fname := filepath.Join(t.TempDir(), "elevation.nc")
	w, err := os.Create(fname)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.WriteCDF(w, "elevation"); err != nil {
		t.Fatal(err)
	}
	w.Close()

	r, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	g2, err := ReadCDF(r, "elevation")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.alignErr(g2); err != nil {
		t.Error(err)
	}
	for i, want := range g.Data.Elements {
		if have := g2.Data.Elements[i]; want != have {
			t.Errorf("cell %d: want %g but have %g", i, want, have)
		}
	}
}

func TestReadCDFMissingRegistration(t *testing.T) {
	// A NetCDF file without the x0/y0/dx/dy registration attributes
	// should produce an error, not a panic.
	fname := filepath.Join(t.TempDir(), "bare.nc")
	w, err := os.Create(fname)
	if err != nil {
		t.Fatal(err)
	}
	h := cdf.NewHeader([]string{"y", "x"}, []int{2, 2})
	h.AddVariable("elevation", []string{"y", "x"}, []float32{0})
	h.Define()
	if _, err := cdf.Create(w, h); err != nil {
		t.Fatal(err)
	}
	w.Close()

	r, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := ReadCDF(r, "elevation"); err == nil {
		t.Error("expected error for missing registration attributes")
	} else if !strings.Contains(err.Error(), "x0") {
		t.Errorf("error %q should name the missing attribute", err)
	}
}

func TestWriteShapefile(t *testing.T) {
	g, err := IntGridFrom([][]int{
		{1, 0},
		{2, 1},
	}, 0, 0, 0, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	fname := filepath.Join(t.TempDir(), "labels.shp")
	if err := WriteShapefile(fname, g, "label"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(fname)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("shapefile is empty")
	}
}
