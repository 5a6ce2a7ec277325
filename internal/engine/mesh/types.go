// Package mesh provides the triangle mesh representation used by the
// illustrator and the normal computation algorithms that run on it.
package mesh

import (
	"fmt"

	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

// Mesh is a triangulated surface.
// Every triangle index is a valid index into Points. Normals and
// TexCoords, when set, hold exactly one entry per point.
type Mesh struct {
	Points    []math.Vec3
	Triangles [][3]uint32
	Normals   []math.Vec3
	TexCoords [][2]float32
}

// PointCount returns the number of points.
func (m *Mesh) PointCount() int {
	return len(m.Points)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Triangle returns the three corner positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math.Vec3) {
	t := m.Triangles[i]
	return m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
}

// HasNormals reports whether per-point normals are attached.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) == len(m.Points) && len(m.Points) > 0
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent per axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Union returns the smallest box containing b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Bounds returns the bounding box of all points. ok is false for a mesh
// without points.
func (m *Mesh) Bounds() (b Bounds, ok bool) {
	if len(m.Points) == 0 {
		return Bounds{}, false
	}
	b = Bounds{Min: m.Points[0], Max: m.Points[0]}
	for _, p := range m.Points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b, true
}

// NormalMode selects the normal computation algorithm.
type NormalMode int

const (
	// NormalsSmooth averages the face normals around every point.
	NormalsSmooth NormalMode = iota
	// NormalsSplit duplicates points along edges sharper than the feature angle.
	NormalsSplit
)

// String returns the config name of the mode.
func (m NormalMode) String() string {
	switch m {
	case NormalsSmooth:
		return "smooth"
	case NormalsSplit:
		return "split"
	default:
		return fmt.Sprintf("NormalMode(%d)", int(m))
	}
}

// ParseNormalMode parses "smooth" or "split".
func ParseNormalMode(s string) (NormalMode, error) {
	switch s {
	case "smooth":
		return NormalsSmooth, nil
	case "split":
		return NormalsSplit, nil
	default:
		return 0, fmt.Errorf("unknown normal mode %q", s)
	}
}
