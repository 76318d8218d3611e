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

// Package gridclass classifies and labels 2-D rasters. It bins numeric
// grids into ordered classes (equal-interval, quantile, or natural
// breaks), labels connected regions of equal-valued cells under 4- or
// 8-neighbor connectivity, and computes spectral indices over
// co-registered band grids. All transforms are pure: they never mutate
// their inputs, and output grids share the shape and spatial
// registration of the inputs. Missing measurements are carried as NaN
// in floating-point grids and as an explicit sentinel in integer
// grids, are excluded from all statistics, and never join a region.
package gridclass

// Version gives the version number of this version of Gridclass.
const Version = "0.1.0"
