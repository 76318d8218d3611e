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

// ZoneStats summarizes the finite values of a grid within one zone.
type ZoneStats struct {
	Count     int
	Min, Max  float64
	Sum, Mean float64
}

// ZonalStats summarizes the values grid within each zone of the zones
// grid, keyed by zone value. Zones are typically the output of
// LabelRegions or Bin. Missing cells in either grid are skipped; zones
// containing no finite values are omitted from the result.
func ZonalStats(values *Grid, zones *IntGrid) (map[int]ZoneStats, error) {
	vny, vnx := values.Shape()
	zny, znx := zones.Shape()
	if vny != zny || vnx != znx {
		return nil, fmt.Errorf("gridclass: value and zone grid shapes don't match: [%d, %d] vs. [%d, %d]",
			vny, vnx, zny, znx)
	}
	out := make(map[int]ZoneStats)
	for i, v := range values.Data.Elements {
		z := zones.Data.Elements[i]
		if z == zones.NoData || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		s, ok := out[z]
		if !ok {
			s = ZoneStats{Min: math.Inf(1), Max: math.Inf(-1)}
		}
		s.Count++
		s.Sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		out[z] = s
	}
	for z, s := range out {
		s.Mean = s.Sum / float64(s.Count)
		out[z] = s
	}
	return out, nil
}
