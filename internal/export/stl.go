// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/geomesh/internal/mesh"
)

// STLEncoder writes ASCII STL with one facet per face and the facet normal
// taken from the face winding.
type STLEncoder struct{}

// Ext implements Encoder.
func (STLEncoder) Ext() string { return "stl" }

// Encode implements Encoder.
func (STLEncoder) Encode(w io.Writer, name string, s *mesh.Solid) error {
	// The solid name runs to the end of the line; keep it on one token.
	label := strings.Join(strings.Fields(name), "_")

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", label)
	for i, f := range s.Faces {
		n := s.Normal(i)
		fmt.Fprintf(bw, "  facet normal %s %s %s\n", formatFloat(n[0]), formatFloat(n[1]), formatFloat(n[2]))
		bw.WriteString("    outer loop\n")
		for _, idx := range f {
			if idx < 0 || idx >= len(s.Vertices) {
				return fmt.Errorf("face %d references vertex %d of %d", i, idx, len(s.Vertices))
			}
			v := s.Vertices[idx]
			fmt.Fprintf(bw, "      vertex %s %s %s\n", formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
		}
		bw.WriteString("    endloop\n")
		bw.WriteString("  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", label)
	return bw.Flush()
}
