// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pdiddy/geomesh/internal/mesh"
)

// OBJEncoder writes Wavefront OBJ: one object, "v x y z" lines followed by
// "f a b c" lines with 1-based vertex indices.
type OBJEncoder struct{}

// Ext implements Encoder.
func (OBJEncoder) Ext() string { return "obj" }

// Encode implements Encoder.
func (OBJEncoder) Encode(w io.Writer, name string, s *mesh.Solid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# geomesh: %d vertices, %d faces\n", len(s.Vertices), len(s.Faces))
	fmt.Fprintf(bw, "o %s\n", SanitizeName(name))
	for _, v := range s.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
	}
	for i, f := range s.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(s.Vertices) {
				return fmt.Errorf("face %d references vertex %d of %d", i, idx, len(s.Vertices))
			}
		}
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return bw.Flush()
}
