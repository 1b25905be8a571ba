// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the geomesh CLI. geomesh turns GeoJSON
// polygon features into extruded 3D meshes, one file per feature.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/geomesh/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the diagnostic logger, configured from LOG_LEVEL and LOG_FORMAT.
var logger = logging.Discard()

// rootCmd is the base command for the geomesh CLI.
var rootCmd = &cobra.Command{
	Use:   "geomesh",
	Short: "Extrude GeoJSON polygons into 3D meshes",
	Long: `geomesh reads a GeoJSON FeatureCollection, projects each polygon onto a
local flat plane in metres, and writes one closed extruded solid per feature
as a Wavefront OBJ (or ASCII STL) file.

Exports can be recorded in a local SQLite catalog and listed later with the
catalog subcommands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
		logger = logging.FromEnv()
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./geomesh.yaml or ~/.config/geomesh/geomesh.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before running (ignored when missing)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	used, err := readConfig(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ignoring config file:", err)
		return
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// readConfig points v at cfgFile, or at geomesh.yaml in the working
// directory and ~/.config/geomesh, enables GEOMESH_* environment overrides
// and reads the file. It returns the file used; no file found is not an error.
func readConfig(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("geomesh")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "geomesh"))
		}
	}

	v.SetEnvPrefix("GEOMESH")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", err
	}
	return v.ConfigFileUsed(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
