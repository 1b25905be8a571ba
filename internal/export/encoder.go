// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes extruded solids to mesh interchange files, one
// file per feature, named after the feature.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/geomesh/internal/mesh"
	"github.com/pdiddy/geomesh/pkg/types"
)

// Encoder writes a solid in one file format. OBJ and STL implement it.
type Encoder interface {
	// Encode writes s to w, labelled with name.
	Encode(w io.Writer, name string, s *mesh.Solid) error

	// Ext returns the file extension without the dot.
	Ext() string
}

// NewEncoder returns the encoder for format. An empty format selects OBJ.
func NewEncoder(format types.MeshFormat) (Encoder, error) {
	switch format {
	case types.FormatOBJ, "":
		return OBJEncoder{}, nil
	case types.FormatSTL:
		return STLEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported mesh format %q: use obj or stl", format)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
