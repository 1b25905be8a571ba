// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"github.com/paulmach/orb"

	"github.com/pdiddy/geomesh/pkg/types"
)

// Result is the outcome of one feature.
type Result struct {
	Index  int                `json:"index" yaml:"index"`
	Name   string             `json:"name" yaml:"name"`
	Status types.ExportStatus `json:"status" yaml:"status"`

	// Reason explains a skipped, invalid or failed feature.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Path, Vertices and Faces are set for exported features.
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Vertices int    `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Faces    int    `json:"faces,omitempty" yaml:"faces,omitempty"`

	// Err is the underlying error for invalid and failed features.
	Err error `json:"-" yaml:"-"`

	bound orb.Bound
}

func (r Result) invalid(err error) Result {
	r.Status = types.ExportInvalid
	r.Reason = reasonOf(err)
	r.Err = err
	return r
}

func (r Result) failed(err error) Result {
	r.Status = types.ExportFailed
	r.Reason = reasonOf(err)
	r.Err = err
	return r
}

// Summary holds the outcome of a batch run.
type Summary struct {
	RunID    string
	Exported int
	Skipped  int
	Invalid  int
	Failed   int
	Results  []Result
}

// Total returns the number of features processed.
func (s Summary) Total() int {
	return s.Exported + s.Skipped + s.Invalid + s.Failed
}

// HasFailures reports whether any feature failed after passing validation.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

func (s *Summary) add(r Result) {
	switch r.Status {
	case types.ExportDone:
		s.Exported++
	case types.ExportSkipped:
		s.Skipped++
	case types.ExportInvalid:
		s.Invalid++
	case types.ExportFailed:
		s.Failed++
	}
	s.Results = append(s.Results, r)
}
