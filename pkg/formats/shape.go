package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Import errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
	ErrNoGeometry        = errors.New("file contains no triangle geometry")
)

// Shape is one named group of triangle geometry.
// Positions holds 3 floats per point; Indices holds 3 point indices per
// triangle. Indices always refer into this shape's own Positions.
type Shape struct {
	Name      string
	Positions []float32
	Indices   []uint32
}

// PointCount returns the number of points in the shape.
func (s *Shape) PointCount() int {
	return len(s.Positions) / 3
}

// TriangleCount returns the number of triangles in the shape.
func (s *Shape) TriangleCount() int {
	return len(s.Indices) / 3
}

// Load reads a mesh file and returns its shapes, choosing the parser by
// file extension.
func Load(path string) ([]Shape, error) {
	var (
		shapes []Shape
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		shapes, err = LoadOBJ(path)
	case ".gltf", ".glb":
		shapes, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(shapes) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoGeometry)
	}
	return shapes, nil
}
