// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/geomesh/internal/catalog"
	"github.com/pdiddy/geomesh/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the mesh catalog (list, runs, export)",
	Long: `Catalog reads the SQLite database that extrude --catalog writes. Every
exported mesh is recorded with its run, feature name, file, vertex and face
counts, and planar bounds.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded mesh exports",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	meshes, err := store.List(context.Background(), listOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(os.Stdout, meshes, jsonOutput)
}

func formatListOutput(w io.Writer, meshes []types.MeshRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meshes)
	}

	if len(meshes) == 0 {
		fmt.Fprintln(w, "No meshes recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-30s  %-6s  %8s  %8s  %-36s  %s\n",
		"Index", "Feature", "Format", "Vertices", "Faces", "Run", "Path")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, m := range meshes {
		name := truncate(m.FeatureName, 30)
		fmt.Fprintf(w, "%-5d  %-30s  %-6s  %8d  %8d  %-36s  %s\n",
			m.FeatureIndex, name, m.Format, m.Vertices, m.Faces, m.RunID, m.Path)
	}

	fmt.Fprintf(w, "\n%d meshes\n", len(meshes))
	return nil
}

// --- runs subcommand ---

var catalogRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List extrude runs, newest first",
	RunE:  runCatalogRuns,
}

func runCatalogRuns(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRunsOutput(os.Stdout, runs, jsonOutput)
}

func formatRunsOutput(w io.Writer, runs []types.RunInfo, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %8s  %7s  %7s  %6s  %s\n",
		"Run", "Started", "Exported", "Skipped", "Invalid", "Failed", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %8d  %7d  %7d  %6d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Exported, r.Skipped, r.Invalid, r.Failed, r.InputPath)
	}
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export runs and meshes to YAML or JSON on stdout",
	Long: `Export writes the catalog (or the subset matching --run and --name) to
standard output. Supports the same filter flags as list.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, _ := cmd.Flags().GetString("run")
	name, _ := cmd.Flags().GetString("name")
	opts := catalog.ListOptions{RunID: runID, Name: name}

	switch format {
	case "yaml", "":
		return store.ExportYAML(context.Background(), os.Stdout, opts)
	case "json":
		return store.ExportJSON(context.Background(), os.Stdout, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// --- shared helpers ---

// openCatalog opens the catalog named by --db, falling back to the
// catalog key extrude uses.
func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = viper.GetString("catalog")
	}
	if path == "" {
		return nil, fmt.Errorf("no catalog configured: pass --db or set catalog in geomesh.yaml")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return catalog.Open(types.CatalogConfig{Path: path, MaxResults: maxResults})
}

func listOptsFromFlags(cmd *cobra.Command) catalog.ListOptions {
	runID, _ := cmd.Flags().GetString("run")
	name, _ := cmd.Flags().GetString("name")
	limit, _ := cmd.Flags().GetInt("limit")
	return catalog.ListOptions{RunID: runID, Name: name, MaxResults: limit}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("db", "", "catalog database (default: catalog from config)")
	catalogCmd.PersistentFlags().Int("max-results", 50, "default maximum number of rows")

	catalogListCmd.Flags().String("run", "", "filter by run ID")
	catalogListCmd.Flags().String("name", "", "filter by feature name")
	catalogListCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogListCmd.Flags().Bool("json", false, "output results as JSON")

	catalogRunsCmd.Flags().Int("limit", 0, "maximum runs (0 = use default)")
	catalogRunsCmd.Flags().Bool("json", false, "output runs as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("run", "", "filter by run ID for partial export")
	catalogExportCmd.Flags().String("name", "", "filter by feature name for partial export")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogRunsCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
