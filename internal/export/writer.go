// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/geomesh/internal/mesh"
)

// SanitizeName replaces spaces with underscores. Nothing else is escaped, so
// distinct names can map to the same file.
func SanitizeName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// FileName returns the output file name for a feature name.
func FileName(enc Encoder, name string) string {
	return SanitizeName(name) + "." + enc.Ext()
}

// WriteSolid encodes s into outDir/<sanitized name>.<ext>, creating outDir if
// needed. An existing file with the same name is overwritten. It returns the
// path written.
func WriteSolid(enc Encoder, s *mesh.Solid, name, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	path := filepath.Join(outDir, FileName(enc, name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := enc.Encode(f, name, s); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
