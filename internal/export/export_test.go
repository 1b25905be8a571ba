// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flywave/go3d/float64/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/geomesh/internal/mesh"
	"github.com/pdiddy/geomesh/pkg/types"
)

// unitTetra is a small closed solid with outward winding.
func unitTetra() *mesh.Solid {
	return &mesh.Solid{
		Vertices: []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Faces:    []mesh.Face{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
	}
}

func TestNewEncoder(t *testing.T) {
	tests := []struct {
		format  types.MeshFormat
		wantExt string
		wantErr bool
	}{
		{format: types.FormatOBJ, wantExt: "obj"},
		{format: "", wantExt: "obj"},
		{format: types.FormatSTL, wantExt: "stl"},
		{format: "fbx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			enc, err := NewEncoder(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, enc.Ext())
		})
	}
}

func TestOBJEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OBJEncoder{}.Encode(&buf, "Runway 5L", unitTetra()))

	var verts, faces []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "v "):
			verts = append(verts, line)
		case strings.HasPrefix(line, "f "):
			faces = append(faces, line)
		case strings.HasPrefix(line, "o "):
			assert.Equal(t, "o Runway_5L", line)
		}
	}

	require.Len(t, verts, 4)
	require.Len(t, faces, 4)
	assert.Equal(t, "v 1 0 0", verts[1])
	assert.Equal(t, "f 1 3 2", faces[0], "faces are 1-based")
	assert.Equal(t, "f 2 3 4", faces[3])
}

func TestOBJEncoder_BadIndex(t *testing.T) {
	s := unitTetra()
	s.Faces = append(s.Faces, mesh.Face{0, 1, 9})

	var buf bytes.Buffer
	err := OBJEncoder{}.Encode(&buf, "broken", s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vertex 9")
}

func TestSTLEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, STLEncoder{}.Encode(&buf, "Apron  North", unitTetra()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "solid Apron_North\n"))
	assert.True(t, strings.HasSuffix(out, "endsolid Apron_North\n"))
	assert.Equal(t, 4, strings.Count(out, "facet normal"))
	assert.Equal(t, 12, strings.Count(out, "vertex "))
	assert.Contains(t, out, "facet normal 0 0 -1\n", "first face points down -Z")
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Runway_5L/23R", SanitizeName("Runway 5L/23R"))
	assert.Equal(t, "__a__", SanitizeName("  a  "))
	assert.Equal(t, "Feature_3", SanitizeName("Feature_3"))
}

func TestWriteSolid(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "meshes")

	path, err := WriteSolid(OBJEncoder{}, unitTetra(), "Taxiway A", outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "Taxiway_A.obj"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "f 2 3 4")
}

func TestWriteSolid_Overwrites(t *testing.T) {
	outDir := t.TempDir()

	first := unitTetra()
	_, err := WriteSolid(OBJEncoder{}, first, "Taxiway A", outDir)
	require.NoError(t, err)

	second := unitTetra()
	second.Vertices[3] = vec3.T{0, 0, 7}
	path, err := WriteSolid(OBJEncoder{}, second, "Taxiway_A", outDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "names that sanitize alike share one file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "v 0 0 7", "last write wins")
}

func TestWriteSolid_OutputDirIsFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "meshes")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := WriteSolid(OBJEncoder{}, unitTetra(), "a", blocker)
	assert.Error(t, err)
}
