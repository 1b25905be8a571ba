// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/geomesh/pkg/types"
)

// ListOptions filters catalog listings.
type ListOptions struct {
	// RunID restricts results to meshes last written by one run.
	RunID string

	// Name restricts results to one feature name (exact match).
	Name string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// List returns mesh rows ordered by run start time (newest first), then by
// feature index.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.MeshRecord, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT m.path, m.run_id, m.feature_index, m.feature_name, m.format,
			m.vertices, m.faces, m.min_x, m.min_z, m.max_x, m.max_z, m.height, m.exported_at
		FROM meshes m
		JOIN runs r ON r.id = m.run_id
		WHERE 1=1`)
	if opts.RunID != "" {
		qb.WriteString(` AND m.run_id = ?`)
		args = append(args, opts.RunID)
	}
	if opts.Name != "" {
		qb.WriteString(` AND m.feature_name = ?`)
		args = append(args, opts.Name)
	}
	qb.WriteString(` ORDER BY r.started_at DESC, m.feature_index ASC, m.path ASC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying meshes: %w", err)
	}
	defer rows.Close()

	var out []types.MeshRecord
	for rows.Next() {
		var (
			m          types.MeshRecord
			format     string
			exportedAt string
		)
		if err := rows.Scan(&m.Path, &m.RunID, &m.FeatureIndex, &m.FeatureName, &format,
			&m.Vertices, &m.Faces, &m.MinX, &m.MinZ, &m.MaxX, &m.MaxZ, &m.Height, &exportedAt); err != nil {
			return nil, fmt.Errorf("scanning mesh row: %w", err)
		}
		m.Format = types.MeshFormat(format)
		m.ExportedAt = parseTime(exportedAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Runs returns recorded runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]types.RunInfo, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, input_path, output_dir, exported, skipped, invalid, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []types.RunInfo
	for rows.Next() {
		var (
			r         types.RunInfo
			started   string
			finished  sql.NullString
			inputPath sql.NullString
			outputDir sql.NullString
		)
		if err := rows.Scan(&r.ID, &started, &finished, &inputPath, &outputDir,
			&r.Exported, &r.Skipped, &r.Invalid, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished.String)
		r.InputPath = inputPath.String
		r.OutputDir = outputDir.String
		out = append(out, r)
	}
	return out, rows.Err()
}
