// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records exported meshes and the runs that produced them in
// a SQLite database, so a scene build can find which file came from which
// feature and run.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/geomesh/pkg/types"
)

const defaultMaxResults = 50

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the catalog at cfg.Path, creating its parent
// directory and schema when missing.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			input_path TEXT,
			output_dir TEXT,
			exported INTEGER DEFAULT 0,
			skipped INTEGER DEFAULT 0,
			invalid INTEGER DEFAULT 0,
			failed INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS meshes (
			path TEXT PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			feature_index INTEGER NOT NULL,
			feature_name TEXT NOT NULL,
			format TEXT NOT NULL,
			vertices INTEGER NOT NULL,
			faces INTEGER NOT NULL,
			min_x REAL, min_z REAL, max_x REAL, max_z REAL,
			height REAL,
			exported_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_meshes_run_id ON meshes(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_meshes_feature_name ON meshes(feature_name)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun inserts the run row. Meshes reference it, so it must exist before
// RecordExport is called for the run.
func (s *Store) BeginRun(ctx context.Context, run types.RunInfo) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, input_path, output_dir) VALUES (?, ?, ?, ?)`,
		run.ID, formatTime(run.StartedAt), run.InputPath, run.OutputDir,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun stores the final counts of a run.
func (s *Store) FinishRun(ctx context.Context, run types.RunInfo) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, exported = ?, skipped = ?, invalid = ?, failed = ?
		 WHERE id = ?`,
		formatTime(run.FinishedAt), run.Exported, run.Skipped, run.Invalid, run.Failed, run.ID,
	)
	if err != nil {
		return fmt.Errorf("updating run %s: %w", run.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("updating run %s: run not found", run.ID)
	}
	return nil
}

// RecordExport upserts a mesh row keyed by file path. A later export to the
// same path replaces the earlier row, as the file itself was replaced.
func (s *Store) RecordExport(ctx context.Context, m types.MeshRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meshes (path, run_id, feature_index, feature_name, format, vertices, faces,
			min_x, min_z, max_x, max_z, height, exported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			run_id=excluded.run_id, feature_index=excluded.feature_index,
			feature_name=excluded.feature_name, format=excluded.format,
			vertices=excluded.vertices, faces=excluded.faces,
			min_x=excluded.min_x, min_z=excluded.min_z, max_x=excluded.max_x, max_z=excluded.max_z,
			height=excluded.height, exported_at=excluded.exported_at`,
		m.Path, m.RunID, m.FeatureIndex, m.FeatureName, string(m.Format), m.Vertices, m.Faces,
		m.MinX, m.MinZ, m.MaxX, m.MaxZ, m.Height, formatTime(m.ExportedAt),
	)
	if err != nil {
		return fmt.Errorf("recording mesh %s: %w", m.Path, err)
	}
	return nil
}

// timeLayout is fixed width so stored timestamps sort as strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
