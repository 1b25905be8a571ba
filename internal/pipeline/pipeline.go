// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives the GeoJSON-to-mesh conversion. Each feature runs
// through projection, validation, extrusion and writing on its own; the
// outcome is an explicit Result and one feature's failure never stops the
// batch. Only loading the input is fatal.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/geomesh/internal/export"
	"github.com/pdiddy/geomesh/internal/geometry"
	"github.com/pdiddy/geomesh/internal/load"
	"github.com/pdiddy/geomesh/internal/logging"
	"github.com/pdiddy/geomesh/internal/mesh"
	"github.com/pdiddy/geomesh/internal/project"
	"github.com/pdiddy/geomesh/pkg/types"
)

// Recorder receives run and export bookkeeping. The SQLite catalog
// implements it. Recorder errors are logged and never fail a feature.
type Recorder interface {
	BeginRun(ctx context.Context, run types.RunInfo) error
	RecordExport(ctx context.Context, m types.MeshRecord) error
	FinishRun(ctx context.Context, run types.RunInfo) error
}

// Pipeline holds everything a run needs. Build it with New.
type Pipeline struct {
	cfg       types.ExtrudeConfig
	projector *project.Projector
	encoder   export.Encoder
	geomOpts  geometry.Options
	status    io.Writer
	log       *slog.Logger
	recorder  Recorder
	runID     string
	now       func() time.Time
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithStatusWriter sets where per-feature status lines go (default io.Discard).
func WithStatusWriter(w io.Writer) Option {
	return func(p *Pipeline) { p.status = w }
}

// WithLogger sets the diagnostic logger (default discards).
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithRecorder attaches a catalog.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(p *Pipeline) { p.runID = id }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New validates cfg and builds a Pipeline.
func New(cfg types.ExtrudeConfig, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enc, err := export.NewEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		projector: project.New(cfg.ProjectionConfig),
		encoder:   enc,
		geomOpts:  geometry.Options{StrictOrientation: cfg.StrictOrientation},
		status:    io.Discard,
		log:       logging.Discard(),
		runID:     uuid.NewString(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// RunID returns the identifier of this pipeline's run.
func (p *Pipeline) RunID() string {
	return p.runID
}

// ProcessFeature takes one record through projection, validation, extrusion
// and writing, and reports where it stopped.
func (p *Pipeline) ProcessFeature(f types.FeatureRecord) Result {
	r := Result{Index: f.Index, Name: f.Name}
	log := p.log.With("feature", f.Name, "index", f.Index)

	if !f.IsPolygon() {
		r.Status = types.ExportSkipped
		r.Reason = fmt.Sprintf("unsupported geometry type %q", f.GeometryType)
		if f.DecodeError != "" {
			r.Reason = fmt.Sprintf("undecodable feature: %s", f.DecodeError)
		}
		log.Debug("skipping feature", "reason", r.Reason)
		return r
	}
	if f.DecodeError != "" {
		return r.invalid(&geometry.InvalidPolygonError{Reason: "undecodable polygon: " + f.DecodeError})
	}

	ring, err := p.projector.ProjectRing(f.Ring)
	if err != nil {
		return r.invalid(err)
	}
	log.Debug("projected ring", "vertices", len(ring))

	poly, err := geometry.NewPolygon(ring, p.geomOpts)
	if err != nil {
		return r.invalid(err)
	}
	if poly.Reoriented() {
		log.Debug("reversed clockwise ring")
	}

	solid, err := mesh.Extrude(poly, p.cfg.ExtrudeHeight)
	if err != nil {
		return r.failed(fmt.Errorf("extruding: %w", err))
	}

	path, err := export.WriteSolid(p.encoder, solid, f.Name, p.cfg.OutputDir)
	if err != nil {
		return r.failed(err)
	}

	r.Status = types.ExportDone
	r.Path = path
	r.Vertices = len(solid.Vertices)
	r.Faces = len(solid.Faces)
	r.bound = poly.Bound()
	log.Debug("exported mesh", "path", path, "vertices", r.Vertices, "faces", r.Faces)
	return r
}

// Run processes features in order, printing one status line per feature to
// the status writer. Per-feature failures are counted, not returned; the
// only error is context cancellation, checked between features.
func (p *Pipeline) Run(ctx context.Context, features []types.FeatureRecord) (Summary, error) {
	summary := Summary{RunID: p.runID}
	run := types.RunInfo{
		ID:        p.runID,
		StartedAt: p.now(),
		InputPath: p.cfg.InputPath,
		OutputDir: p.cfg.OutputDir,
	}
	if p.recorder != nil {
		if err := p.recorder.BeginRun(ctx, run); err != nil {
			p.log.Warn("catalog: recording run failed, continuing without catalog", "error", err)
			p.recorder = nil
		}
	}

	for _, f := range features {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		r := p.ProcessFeature(f)
		p.report(r)
		summary.add(r)

		if r.Status == types.ExportDone && p.recorder != nil {
			if err := p.recorder.RecordExport(ctx, p.meshRecord(r)); err != nil {
				p.log.Warn("catalog: recording export failed", "feature", r.Name, "error", err)
			}
		}
	}

	fmt.Fprintf(p.status, "\nBatch summary: %d exported, %d skipped, %d invalid, %d failed (total: %d)\n",
		summary.Exported, summary.Skipped, summary.Invalid, summary.Failed, summary.Total())

	if p.recorder != nil {
		run.FinishedAt = p.now()
		run.Exported, run.Skipped = summary.Exported, summary.Skipped
		run.Invalid, run.Failed = summary.Invalid, summary.Failed
		if err := p.recorder.FinishRun(ctx, run); err != nil {
			p.log.Warn("catalog: finishing run failed", "error", err)
		}
	}
	return summary, nil
}

// report prints the status line for r. Unsupported geometry is skipped
// silently.
func (p *Pipeline) report(r Result) {
	switch r.Status {
	case types.ExportDone:
		fmt.Fprintf(p.status, "exported: %s\n", filepath.Base(r.Path))
	case types.ExportInvalid:
		fmt.Fprintf(p.status, "skipping invalid polygon: %s (%s)\n", r.Name, r.Reason)
	case types.ExportFailed:
		fmt.Fprintf(p.status, "error processing %s: %s\n", r.Name, r.Reason)
	}
}

func (p *Pipeline) meshRecord(r Result) types.MeshRecord {
	return types.MeshRecord{
		RunID:        p.runID,
		FeatureIndex: r.Index,
		FeatureName:  r.Name,
		Path:         r.Path,
		Format:       types.MeshFormat(p.encoder.Ext()),
		Vertices:     r.Vertices,
		Faces:        r.Faces,
		MinX:         r.bound.Min[0],
		MinZ:         r.bound.Min[1],
		MaxX:         r.bound.Max[0],
		MaxZ:         r.bound.Max[1],
		Height:       p.cfg.ExtrudeHeight,
		ExportedAt:   p.now(),
	}
}

// Convert loads cfg.InputPath and runs the pipeline over it. A load failure
// is returned before any feature is processed. When cfg.ManifestPath is set
// the manifest is written after the run.
func Convert(ctx context.Context, cfg types.ExtrudeConfig, opts ...Option) (Summary, error) {
	p, err := New(cfg, opts...)
	if err != nil {
		return Summary{}, err
	}

	features, err := load.Load(cfg.InputPath)
	if err != nil {
		return Summary{}, err
	}
	p.log.Info("loaded features", "input", cfg.InputPath, "count", len(features), "run_id", p.runID)

	summary, err := p.Run(ctx, features)
	if err != nil {
		return summary, err
	}

	if cfg.ManifestPath != "" {
		if err := WriteManifest(cfg.ManifestPath, NewManifest(cfg, summary, p.now())); err != nil {
			p.log.Warn("writing manifest failed", "path", cfg.ManifestPath, "error", err)
		}
	}
	return summary, nil
}

func reasonOf(err error) string {
	var ipe *geometry.InvalidPolygonError
	if errors.As(err, &ipe) {
		return ipe.Reason
	}
	return err.Error()
}
