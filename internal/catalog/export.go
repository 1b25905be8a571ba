// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/geomesh/pkg/types"
)

const exportLimit = 100000

// Export is the document written by ExportYAML and ExportJSON.
type Export struct {
	Runs   []types.RunInfo    `json:"runs" yaml:"runs"`
	Meshes []types.MeshRecord `json:"meshes" yaml:"meshes"`
}

// ExportYAML writes the catalog (or the subset matching opts) to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, opts ListOptions) error {
	doc, err := s.export(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the catalog (or the subset matching opts) to w as JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, opts ListOptions) error {
	doc, err := s.export(ctx, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func (s *Store) export(ctx context.Context, opts ListOptions) (*Export, error) {
	opts.MaxResults = exportLimit
	meshes, err := s.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	runs, err := s.Runs(ctx, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if opts.RunID != "" {
		filtered := runs[:0]
		for _, r := range runs {
			if r.ID == opts.RunID {
				filtered = append(filtered, r)
			}
		}
		runs = filtered
	}
	return &Export{Runs: runs, Meshes: meshes}, nil
}
