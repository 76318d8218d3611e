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

// This file implements spectral indices over co-registered band grids.
// All indices are pure cell-wise transforms: the output shares the
// shape and registration of the inputs, a missing value in any input
// band yields a missing output cell, and a zero denominator yields a
// missing output cell.

// NDVI returns the normalized difference vegetation index
// (nir-red)/(nir+red).
func NDVI(nir, red *Grid) (*Grid, error) {
	return normalizedDifference(nir, red)
}

// NBR returns the normalized burn ratio (nir-swir2)/(nir+swir2).
func NBR(nir, swir2 *Grid) (*Grid, error) {
	return normalizedDifference(nir, swir2)
}

// NDMI returns the normalized difference moisture index
// (nir-swir1)/(nir+swir1).
func NDMI(nir, swir1 *Grid) (*Grid, error) {
	return normalizedDifference(nir, swir1)
}

// SAVI returns the soil-adjusted vegetation index
// (1+L)·(nir-red)/(nir+red+L) where L is the soil brightness
// correction factor, typically in [0, 1].
func SAVI(nir, red *Grid, soilFactor float64) (*Grid, error) {
	if soilFactor < -1 || soilFactor > 1 {
		return nil, fmt.Errorf("gridclass: SAVI soil factor must be in [-1, 1] but is %g", soilFactor)
	}
	if err := nir.alignErr(red); err != nil {
		return nil, err
	}
	out := nir.Like()
	for i, n := range nir.Data.Elements {
		r := red.Data.Elements[i]
		out.Data.Elements[i] = safeRatio((1+soilFactor)*(n-r), n+r+soilFactor)
	}
	return out, nil
}

// ARVI returns the atmospherically resistant vegetation index
// (nir-(2·red-blue))/(nir+(2·red-blue)).
func ARVI(nir, red, blue *Grid) (*Grid, error) {
	if err := nir.alignErr(red); err != nil {
		return nil, err
	}
	if err := nir.alignErr(blue); err != nil {
		return nil, err
	}
	out := nir.Like()
	for i, n := range nir.Data.Elements {
		rb := 2*red.Data.Elements[i] - blue.Data.Elements[i]
		out.Data.Elements[i] = safeRatio(n-rb, n+rb)
	}
	return out, nil
}

// EVI returns the enhanced vegetation index
// gain·(nir-red)/(nir+c1·red-c2·blue+soilFactor). The conventional
// coefficients are gain=2.5, c1=6, c2=7.5, soilFactor=1.
func EVI(nir, red, blue *Grid, gain, c1, c2, soilFactor float64) (*Grid, error) {
	if err := nir.alignErr(red); err != nil {
		return nil, err
	}
	if err := nir.alignErr(blue); err != nil {
		return nil, err
	}
	out := nir.Like()
	for i, n := range nir.Data.Elements {
		r := red.Data.Elements[i]
		b := blue.Data.Elements[i]
		out.Data.Elements[i] = safeRatio(gain*(n-r), n+c1*r-c2*b+soilFactor)
	}
	return out, nil
}

// GCI returns the green chlorophyll index nir/green - 1.
func GCI(nir, green *Grid) (*Grid, error) {
	if err := nir.alignErr(green); err != nil {
		return nil, err
	}
	out := nir.Like()
	for i, n := range nir.Data.Elements {
		g := green.Data.Elements[i]
		out.Data.Elements[i] = safeRatio(n-g, g)
	}
	return out, nil
}

// normalizedDifference returns (a-b)/(a+b) cell-wise.
func normalizedDifference(a, b *Grid) (*Grid, error) {
	if err := a.alignErr(b); err != nil {
		return nil, err
	}
	out := a.Like()
	for i, av := range a.Data.Elements {
		bv := b.Data.Elements[i]
		out.Data.Elements[i] = safeRatio(av-bv, av+bv)
	}
	return out, nil
}

// safeRatio returns num/denom, or NaN when the denominator is zero or
// either operand is NaN.
func safeRatio(num, denom float64) float64 {
	if denom == 0 || math.IsNaN(num) || math.IsNaN(denom) {
		return math.NaN()
	}
	return num / denom
}
