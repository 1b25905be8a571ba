// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolygon matches every InvalidPolygonError via errors.Is.
	ErrInvalidPolygon = errors.New("invalid polygon")

	// ErrTriangulation is returned when a polygon cannot be split into triangles.
	ErrTriangulation = errors.New("triangulation failed")
)

// InvalidPolygonError reports why a ring cannot be used as a simple polygon.
type InvalidPolygonError struct {
	Reason string
}

func (e *InvalidPolygonError) Error() string {
	return fmt.Sprintf("invalid polygon: %s", e.Reason)
}

// Is makes errors.Is(err, ErrInvalidPolygon) true for any InvalidPolygonError.
func (e *InvalidPolygonError) Is(target error) bool {
	return target == ErrInvalidPolygon
}

func invalid(format string, args ...any) error {
	return &InvalidPolygonError{Reason: fmt.Sprintf(format, args...)}
}
