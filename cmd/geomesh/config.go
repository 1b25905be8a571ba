// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved extrude configuration as YAML",
	Long: `Config prints the configuration extrude would run with after merging
defaults, geomesh.yaml, GEOMESH_* environment variables and flags. The
output is a valid geomesh.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveExtrudeConfig(viper.GetViper(), nil)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
