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
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ClassNoData is the sentinel value marking missing cells in class-index
// grids produced by Bin.
const ClassNoData = -1

// BinMethod specifies how class boundaries are chosen when binning a
// grid into discrete classes.
type BinMethod int

const (
	// EqualInterval divides the range of the data into classes of
	// equal width.
	EqualInterval BinMethod = iota

	// QuantileBreaks chooses boundaries so that each class contains
	// approximately the same number of cells.
	QuantileBreaks

	// NaturalBreaks chooses boundaries that minimize within-class
	// variance (Fisher-Jenks optimization).
	NaturalBreaks
)

func (m BinMethod) String() string {
	switch m {
	case EqualInterval:
		return "equal-interval"
	case QuantileBreaks:
		return "quantile"
	case NaturalBreaks:
		return "natural-breaks"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseBinMethod converts a method name to a BinMethod.
func ParseBinMethod(s string) (BinMethod, error) {
	switch s {
	case "equal-interval":
		return EqualInterval, nil
	case "quantile":
		return QuantileBreaks, nil
	case "natural-breaks":
		return NaturalBreaks, nil
	default:
		return 0, fmt.Errorf("gridclass: invalid bin method %q (valid methods are equal-interval, quantile, and natural-breaks)", s)
	}
}

// BinResult holds the output of a binning operation.
type BinResult struct {
	// ClassIndex assigns each cell of the input grid to a class in
	// [0, Classes-1]. Cells that are missing in the input are set to
	// ClassNoData.
	ClassIndex *IntGrid

	// Edges are the Classes+1 class boundaries. They are
	// non-decreasing; the first edge is the minimum finite value in
	// the input and the last edge is the maximum. Each class interval
	// is half-open except the last, which is closed so that the
	// maximum value falls in the last class.
	Edges []float64

	// Classes is the number of classes actually produced. It can be
	// less than the number requested when the data contain fewer
	// distinct values or when quantile boundaries coincide.
	Classes int
}

type binConfig struct {
	sampleSize int
}

// BinOption configures a binning operation.
type BinOption func(*binConfig)

// BinSampleSize limits natural-breaks optimization to n values chosen
// from the sorted data at a uniform stride, bounding its cost on large
// grids. The assignment of grid cells to the resulting classes always
// considers every cell. It has no effect on the other methods.
func BinSampleSize(n int) BinOption {
	return func(c *binConfig) { c.sampleSize = n }
}

// Bin classifies the cells of g into k classes using the given method.
// Missing cells are excluded from boundary computation and remain
// missing in the output. A value lying exactly on an interior boundary
// is assigned to the lower of the two adjacent classes; the maximum
// value is assigned to the last class.
func Bin(g *Grid, k int, method BinMethod, opts ...BinOption) (*BinResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("gridclass: number of classes must be at least 1 but is %d", k)
	}
	var cfg binConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	vals := g.finiteValues()
	if len(vals) == 0 {
		return nil, fmt.Errorf("gridclass: cannot bin a grid with no finite values")
	}
	sort.Float64s(vals)

	var edges []float64
	var err error
	switch method {
	case EqualInterval:
		edges = equalIntervalEdges(vals, k)
	case QuantileBreaks:
		edges = quantileEdges(vals, k)
	case NaturalBreaks:
		edges, err = naturalBreaksEdges(vals, k, cfg.sampleSize)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("gridclass: invalid bin method %v", method)
	}
	edges = dedupEdges(edges)
	classes := len(edges) - 1

	out := g.LikeInt(ClassNoData)
	for i, v := range g.Data.Elements {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out.Data.Elements[i] = classOf(v, edges)
	}
	return &BinResult{ClassIndex: out, Edges: edges, Classes: classes}, nil
}

// equalIntervalEdges returns k+1 evenly spaced boundaries spanning the
// range of the sorted values.
func equalIntervalEdges(vals []float64, k int) []float64 {
	min, max := vals[0], vals[len(vals)-1]
	if min == max {
		return []float64{min, max}
	}
	return floats.Span(make([]float64, k+1), min, max)
}

// quantileEdges returns boundaries at the i/k quantiles of the sorted
// values for i in [0, k].
func quantileEdges(vals []float64, k int) []float64 {
	edges := make([]float64, k+1)
	edges[0] = vals[0]
	edges[k] = vals[len(vals)-1]
	for i := 1; i < k; i++ {
		edges[i] = stat.Quantile(float64(i)/float64(k), stat.Empirical, vals, nil)
	}
	return edges
}

// naturalBreaksEdges returns Fisher-Jenks boundaries for the sorted
// values, optionally optimizing over a strided subsample of at most
// sampleSize values. A sampleSize of zero means no subsampling.
func naturalBreaksEdges(vals []float64, k, sampleSize int) ([]float64, error) {
	if sampleSize != 0 && sampleSize < k {
		return nil, fmt.Errorf("gridclass: natural breaks sample size %d is less than the number of classes %d", sampleSize, k)
	}
	sample := vals
	if sampleSize > 0 && len(vals) > sampleSize {
		// Deterministic stride subsampling of the sorted values,
		// always retaining the extremes. A sample of one would lose an
		// extreme, so at least two values are kept.
		n := sampleSize
		if n < 2 {
			n = 2
		}
		sample = make([]float64, n)
		for i := 0; i < n; i++ {
			sample[i] = vals[i*(len(vals)-1)/(n-1)]
		}
	}
	if n := countDistinct(sample); n < k {
		return nil, fmt.Errorf("gridclass: natural breaks requires at least %d distinct values but the data contain %d", k, n)
	}
	edges := jenksEdges(sample, k)
	// The subsample retains the global extremes so the edges span the
	// full data range.
	return edges, nil
}

// countDistinct returns the number of distinct values in a sorted
// slice.
func countDistinct(vals []float64) int {
	n := 1
	for i := 1; i < len(vals); i++ {
		if vals[i] != vals[i-1] {
			n++
		}
	}
	return n
}

// dedupEdges collapses coincident boundaries, keeping the sequence
// strictly increasing (or the two-element degenerate case when all
// values are equal) so that every class interval is non-empty.
func dedupEdges(edges []float64) []float64 {
	o := edges[:1]
	for _, e := range edges[1:] {
		if e > o[len(o)-1] {
			o = append(o, e)
		}
	}
	if len(o) == 1 {
		o = append(o, o[0])
	}
	return o
}

// classOf returns the class index of v given strictly increasing
// edges. A value on an interior boundary belongs to the lower class;
// values at or above the last edge belong to the last class.
func classOf(v float64, edges []float64) int {
	last := len(edges) - 2
	if v >= edges[len(edges)-1] {
		return last
	}
	// SearchFloat64s returns the first index holding a value >= v, so
	// a v exactly on edges[i] yields i and is placed in class i-1.
	c := sort.SearchFloat64s(edges, v) - 1
	if c < 0 {
		c = 0
	}
	if c > last {
		c = last
	}
	return c
}

// jenksEdges computes k+1 Fisher-Jenks class boundaries over sorted
// values using the standard dynamic program over lower class limits
// and within-class variance. When two partitions of a prefix tie, the
// one with the smaller lower class limit is kept, making the result
// deterministic for identical input.
func jenksEdges(vals []float64, k int) []float64 {
	n := len(vals)
	if k > n {
		k = n
	}

	lowerClassLimits := make([][]int, n+1)
	varianceCombinations := make([][]float64, n+1)
	for i := 0; i <= n; i++ {
		lowerClassLimits[i] = make([]int, k+1)
		varianceCombinations[i] = make([]float64, k+1)
	}
	for j := 1; j <= k; j++ {
		lowerClassLimits[1][j] = 1
		for i := 2; i <= n; i++ {
			varianceCombinations[i][j] = math.Inf(1)
		}
	}

	for l := 2; l <= n; l++ {
		var sum, sumSquares, variance float64
		var w float64
		for m := 1; m <= l; m++ {
			lowerClassLimit := l - m + 1
			v := vals[lowerClassLimit-1]
			w++
			sum += v
			sumSquares += v * v
			variance = sumSquares - sum*sum/w
			i4 := lowerClassLimit - 1
			if i4 == 0 {
				continue
			}
			for j := 2; j <= k; j++ {
				if varianceCombinations[l][j] >= variance+varianceCombinations[i4][j-1] {
					lowerClassLimits[l][j] = lowerClassLimit
					varianceCombinations[l][j] = variance + varianceCombinations[i4][j-1]
				}
			}
		}
		lowerClassLimits[l][1] = 1
		varianceCombinations[l][1] = variance
	}

	edges := make([]float64, k+1)
	edges[0] = vals[0]
	edges[k] = vals[n-1]
	l := n
	for j := k; j >= 2; j-- {
		edges[j-1] = vals[lowerClassLimits[l][j]-2]
		l = lowerClassLimits[l][j] - 1
	}
	return edges
}
