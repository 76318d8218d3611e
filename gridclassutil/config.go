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

package gridclassutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spatialmodel/gridclass"
)

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gridclassutil: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`gridclassutil: you need to specify an output file configuration variable (for example: OutputFile="classes.asc")`)
	}
	f = os.ExpandEnv(f)
	if dir := filepath.Dir(f); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return "", fmt.Errorf("gridclassutil: the output directory doesn't exist: %v", err)
		}
	}
	return f, nil
}

// readRaster reads a raster from path, expanding any environment
// variables. Files ending in '.nc' are read as NetCDF using the given
// variable name; anything else is read as an ESRI ASCII grid.
func readRaster(path, variable string) (*gridclass.Grid, error) {
	if path == "" {
		return nil, fmt.Errorf(`gridclassutil: you need to specify an input file configuration variable (for example: InputFile="elevation.asc")`)
	}
	path = os.ExpandEnv(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gridclassutil: opening input raster: %v", err)
	}
	defer f.Close()
	if strings.HasSuffix(path, ".nc") {
		return gridclass.ReadCDF(f, variable)
	}
	return gridclass.ReadASCIIGrid(f)
}

// writeRaster writes g to path. Files ending in '.nc' are written as
// NetCDF using the given variable name; anything else is written as an
// ESRI ASCII grid.
func writeRaster(path, variable string, g *gridclass.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gridclassutil: creating output raster: %v", err)
	}
	defer f.Close()
	if strings.HasSuffix(path, ".nc") {
		return g.WriteCDF(f, variable)
	}
	return gridclass.WriteASCIIGrid(f, g)
}
