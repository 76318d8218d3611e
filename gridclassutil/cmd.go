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

// Package gridclassutil wires the gridclass library to its command-line
// interface.
package gridclassutil

import (
	"fmt"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/gridclass"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var log *logrus.Logger

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	log = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	// Options are the configuration options available to Gridclass.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFile",
			usage: `
              InputFile is the path to the raster to be processed. Files ending
              in '.nc' are read as NetCDF; anything else is read as an ESRI
              ASCII grid.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{binCmd.Flags(), labelCmd.Flags()},
		},
		{
			name: "InputVariable",
			usage: `
              InputVariable is the name of the variable to read when the input
              raster is a NetCDF file.`,
			defaultVal: "elevation",
			flagsets:   []*pflag.FlagSet{binCmd.Flags(), labelCmd.Flags(), indexCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the result raster will be written.
              Files ending in '.nc' are written as NetCDF; anything else is
              written as an ESRI ASCII grid.`,
			shorthand:  "o",
			defaultVal: "output.asc",
			flagsets:   []*pflag.FlagSet{binCmd.Flags(), labelCmd.Flags(), indexCmd.Flags()},
		},
		{
			name: "OutputShapefile",
			usage: `
              OutputShapefile, if set, additionally writes the result as one
              square polygon per cell with its class or label as an attribute,
              for rendering in GIS tools.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{binCmd.Flags(), labelCmd.Flags()},
		},
		{
			name: "Classes",
			usage: `
              Classes is the number of classes to bin the raster into.`,
			shorthand:  "k",
			defaultVal: 5,
			flagsets:   []*pflag.FlagSet{binCmd.Flags()},
		},
		{
			name: "Method",
			usage: `
              Method chooses how class boundaries are computed. Valid methods
              are equal-interval, quantile, and natural-breaks.`,
			shorthand:  "m",
			defaultVal: "equal-interval",
			flagsets:   []*pflag.FlagSet{binCmd.Flags()},
		},
		{
			name: "SampleSize",
			usage: `
              SampleSize bounds the number of values considered by
              natural-breaks optimization on large rasters. Zero means use
              every value.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{binCmd.Flags()},
		},
		{
			name: "Connectivity",
			usage: `
              Connectivity is the neighbor adjacency rule for region labeling:
              4 for axis-aligned neighbors only, or 8 to include diagonals.`,
			shorthand:  "c",
			defaultVal: 4,
			flagsets:   []*pflag.FlagSet{labelCmd.Flags()},
		},
		{
			name: "Index",
			usage: `
              Index is the spectral index to compute. Valid indices are ndvi,
              savi, arvi, evi, nbr, ndmi, and gci.`,
			defaultVal: "ndvi",
			flagsets:   []*pflag.FlagSet{indexCmd.Flags()},
		},
		{
			name: "Bands.NIR",
			usage: `
              Bands.NIR is the path to the near-infrared band raster.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{indexCmd.Flags()},
		},
		{
			name: "Bands.Red",
			usage: `
              Bands.Red is the path to the red band raster.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{indexCmd.Flags()},
		},
		{
			name: "Bands.Green",
			usage: `
              Bands.Green is the path to the green band raster.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{indexCmd.Flags()},
		},
		{
			name: "Bands.Blue",
			usage: `
              Bands.Blue is the path to the blue band raster.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{indexCmd.Flags()},
		},
		{
			name: "Bands.SWIR1",
			usage: `
              Bands.SWIR1 is the path to the shortwave-infrared band 1 raster.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{indexCmd.Flags()},
		},
		{
			name: "Bands.SWIR2",
			usage: `
              Bands.SWIR2 is the path to the shortwave-infrared band 2 raster.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{indexCmd.Flags()},
		},
		{
			name: "SoilFactor",
			usage: `
              SoilFactor is the soil brightness correction factor used by the
              savi and evi indices.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{indexCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GRIDCLASS")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(binCmd)
	Root.AddCommand(labelCmd)
	Root.AddCommand(indexCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "gridclass",
	Short: "A raster classification and region-labeling tool.",
	Long: `Gridclass bins numeric rasters into ordered classes, labels connected
regions of equal-valued cells, and computes spectral indices over
co-registered band rasters.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'GRIDCLASS_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Gridclass.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Gridclass v%s\n", gridclass.Version)
	},
	DisableAutoGenTag: true,
}

// binCmd classifies a raster into discrete classes.
var binCmd = &cobra.Command{
	Use:   "bin",
	Short: "Bin a raster into ordered classes.",
	Long: `bin reads a raster, divides its values into the requested number of
classes using the configured method, and writes the class-index raster. The
class boundaries and the number of classes actually produced are logged:
heavily tied data can yield fewer classes than requested.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readRaster(Cfg.GetString("InputFile"), Cfg.GetString("InputVariable"))
		if err != nil {
			return err
		}
		method, err := gridclass.ParseBinMethod(Cfg.GetString("Method"))
		if err != nil {
			return err
		}
		k := Cfg.GetInt("Classes")
		r, err := gridclass.Bin(g, k, method,
			gridclass.BinSampleSize(Cfg.GetInt("SampleSize")))
		if err != nil {
			return err
		}
		if r.Classes < k {
			log.Warnf("produced %d classes instead of the requested %d: "+
				"the data contain too few distinct values", r.Classes, k)
		}
		log.WithFields(logrus.Fields{
			"method":  method,
			"classes": r.Classes,
			"edges":   r.Edges,
		}).Info("binned raster")

		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		if err := writeRaster(outputFile, Cfg.GetString("InputVariable"), r.ClassIndex.Float()); err != nil {
			return err
		}
		if shpFile := Cfg.GetString("OutputShapefile"); shpFile != "" {
			return gridclass.WriteShapefile(shpFile, r.ClassIndex, "class")
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// labelCmd labels the connected regions of a raster.
var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Label connected regions of equal-valued cells.",
	Long: `label reads a raster, typically a class-index raster produced by the
bin command, assigns a unique label to every connected region of
equal-valued cells under the configured connectivity, and writes the label
raster.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readRaster(Cfg.GetString("InputFile"), Cfg.GetString("InputVariable"))
		if err != nil {
			return err
		}
		conn := gridclass.Connectivity(Cfg.GetInt("Connectivity"))
		labels, err := gridclass.LabelValues(g, conn)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"connectivity": int(conn),
			"regions":      len(gridclass.RegionSizes(labels)),
		}).Info("labeled raster")

		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		if err := writeRaster(outputFile, Cfg.GetString("InputVariable"), labels.Float()); err != nil {
			return err
		}
		if shpFile := Cfg.GetString("OutputShapefile"); shpFile != "" {
			return gridclass.WriteShapefile(shpFile, labels, "region")
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// indexCmd computes a spectral index from band rasters.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Compute a spectral index from band rasters.",
	Long: `index reads the band rasters required by the chosen spectral index,
computes the index, and writes the result raster. Missing cells in any
input band are missing in the output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := computeIndex(Cfg.GetString("Index"))
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		return writeRaster(outputFile, Cfg.GetString("Index"), g)
	},
	DisableAutoGenTag: true,
}

// computeIndex reads the bands required by the named index and
// computes it.
func computeIndex(name string) (*gridclass.Grid, error) {
	band := func(b string) (*gridclass.Grid, error) {
		path := Cfg.GetString("Bands." + b)
		if path == "" {
			return nil, fmt.Errorf("gridclassutil: the %s index requires the Bands.%s configuration variable", name, b)
		}
		return readRaster(path, Cfg.GetString("InputVariable"))
	}
	twoBand := func(a, b string, f func(x, y *gridclass.Grid) (*gridclass.Grid, error)) (*gridclass.Grid, error) {
		x, err := band(a)
		if err != nil {
			return nil, err
		}
		y, err := band(b)
		if err != nil {
			return nil, err
		}
		return f(x, y)
	}
	switch name {
	case "ndvi":
		return twoBand("NIR", "Red", gridclass.NDVI)
	case "nbr":
		return twoBand("NIR", "SWIR2", gridclass.NBR)
	case "ndmi":
		return twoBand("NIR", "SWIR1", gridclass.NDMI)
	case "gci":
		return twoBand("NIR", "Green", gridclass.GCI)
	case "savi":
		return twoBand("NIR", "Red", func(nir, red *gridclass.Grid) (*gridclass.Grid, error) {
			return gridclass.SAVI(nir, red, Cfg.GetFloat64("SoilFactor"))
		})
	case "arvi":
		nir, err := band("NIR")
		if err != nil {
			return nil, err
		}
		red, err := band("Red")
		if err != nil {
			return nil, err
		}
		blue, err := band("Blue")
		if err != nil {
			return nil, err
		}
		return gridclass.ARVI(nir, red, blue)
	case "evi":
		nir, err := band("NIR")
		if err != nil {
			return nil, err
		}
		red, err := band("Red")
		if err != nil {
			return nil, err
		}
		blue, err := band("Blue")
		if err != nil {
			return nil, err
		}
		return gridclass.EVI(nir, red, blue, 2.5, 6, 7.5, Cfg.GetFloat64("SoilFactor"))
	default:
		return nil, fmt.Errorf("gridclassutil: invalid spectral index %q (valid indices are ndvi, savi, arvi, evi, nbr, ndmi, and gci)", name)
	}
}
