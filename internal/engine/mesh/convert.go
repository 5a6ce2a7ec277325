package mesh

import (
	"github.com/Faultbox/mesh-illustrator/pkg/formats"
	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

// FromArrays builds a mesh from a flat position array (3 floats per point)
// and a flat index array (3 indices per triangle). Trailing partial tuples
// are ignored. Index bounds are not checked; the parser guarantees them.
// An empty position list yields an empty mesh.
func FromArrays(positions []float32, indices []uint32) *Mesh {
	m := &Mesh{}
	if len(positions) < 3 {
		return m
	}

	m.Points = make([]math.Vec3, len(positions)/3)
	for v := range m.Points {
		m.Points[v] = math.Vec3{X: positions[3*v], Y: positions[3*v+1], Z: positions[3*v+2]}
	}

	m.Triangles = make([][3]uint32, len(indices)/3)
	for f := range m.Triangles {
		m.Triangles[f] = [3]uint32{indices[3*f], indices[3*f+1], indices[3*f+2]}
	}
	return m
}

// FromShape converts one imported shape into a mesh.
func FromShape(s *formats.Shape) *Mesh {
	return FromArrays(s.Positions, s.Indices)
}
