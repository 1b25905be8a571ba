// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/geomesh/internal/catalog"
	"github.com/pdiddy/geomesh/internal/pipeline"
	"github.com/pdiddy/geomesh/pkg/types"
)

var extrudeCmd = &cobra.Command{
	Use:   "extrude [input.geojson]",
	Short: "Convert GeoJSON polygons to extruded mesh files",
	Long: `Extrude loads a GeoJSON FeatureCollection and writes one closed mesh per
Polygon feature to the output directory. Each feature prints one status line;
invalid polygons and write errors are reported and the batch continues.
Non-polygon features are skipped without a status line.

Values come from flags, GEOMESH_* environment variables, or geomesh.yaml,
in that order of precedence. A positional argument overrides --input.

The exit status is non-zero only when the input cannot be loaded or the
configuration is invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtrude,
}

func runExtrude(cmd *cobra.Command, args []string) error {
	cfg, err := resolveExtrudeConfig(viper.GetViper(), args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []pipeline.Option{
		pipeline.WithStatusWriter(os.Stdout),
		pipeline.WithLogger(logger),
	}
	if cfg.CatalogPath != "" {
		store, err := catalog.Open(types.CatalogConfig{Path: cfg.CatalogPath})
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, pipeline.WithRecorder(store))
	}

	summary, err := pipeline.Convert(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		logger.Warn("some features failed export", "failed", summary.Failed, "run_id", summary.RunID)
	}
	return nil
}

// extrudeFlagKeys maps config keys to the extrude flags bound to them.
var extrudeFlagKeys = map[string]string{
	"input_path":         "input",
	"output_dir":         "output-dir",
	"extrude_height":     "height",
	"format":             "format",
	"strict_orientation": "strict-orientation",
	"origin_lat":         "origin-lat",
	"origin_lon":         "origin-lon",
	"scale_factor":       "scale",
	"lon_scale":          "lon-scale",
	"offset_x":           "offset-x",
	"offset_z":           "offset-z",
	"manifest":           "manifest",
	"catalog":            "catalog",
}

// resolveExtrudeConfig builds the extrude configuration from defaults, the
// config file, environment and flags held by v. A positional argument
// replaces the input path. The result is validated.
func resolveExtrudeConfig(v *viper.Viper, args []string) (types.ExtrudeConfig, error) {
	cfg := types.DefaultExtrudeConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if len(args) == 1 {
		cfg.InputPath = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func defineExtrudeFlags(f *pflag.FlagSet) {
	d := types.DefaultExtrudeConfig()
	f.String("input", d.InputPath, "GeoJSON FeatureCollection to read")
	f.String("output-dir", d.OutputDir, "directory for mesh files")
	f.Float64("height", d.ExtrudeHeight, "extrusion height in metres")
	f.String("format", string(d.Format), "mesh format: obj or stl")
	f.Bool("strict-orientation", d.StrictOrientation, "reject clockwise rings instead of reversing them")
	f.Float64("origin-lat", d.OriginLat, "latitude mapped to the plane origin")
	f.Float64("origin-lon", d.OriginLon, "longitude mapped to the plane origin")
	f.Float64("scale", d.ScaleFactor, "metres per degree")
	f.String("lon-scale", string(d.LonScale), "longitude scaling: fixed or cosine")
	f.Float64("offset-x", d.OffsetX, "translation added to projected x")
	f.Float64("offset-z", d.OffsetZ, "translation added to projected z")
	f.String("manifest", "", "write a YAML run manifest to this path")
	f.String("catalog", "", "record exports in this SQLite catalog")
}

func bindExtrudeFlags(v *viper.Viper, f *pflag.FlagSet) error {
	for key, name := range extrudeFlagKeys {
		flag := f.Lookup(name)
		if flag == nil {
			return fmt.Errorf("no flag %q for config key %q", name, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	defineExtrudeFlags(extrudeCmd.Flags())
	if err := bindExtrudeFlags(viper.GetViper(), extrudeCmd.Flags()); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(extrudeCmd)
}
