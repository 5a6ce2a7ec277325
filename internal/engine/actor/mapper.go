package actor

import "github.com/Faultbox/mesh-illustrator/internal/engine/mesh"

// Vertex is the interleaved GPU vertex layout.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Attribute offsets in bytes within Vertex.
const (
	PositionOffset = 0
	NormalOffset   = 3 * 4
	TexCoordOffset = 6 * 4
	VertexSize     = 8 * 4
)

// Mapper holds the buffers uploaded for one mesh. Revision increases on
// every Update so the renderer knows when to re-upload.
type Mapper struct {
	Vertices []Vertex
	Indices  []uint32
	Revision uint64

	mesh *mesh.Mesh
}

// NewMapper builds buffers for m.
func NewMapper(m *mesh.Mesh) *Mapper {
	mp := &Mapper{}
	mp.SetMesh(m)
	return mp
}

// Mesh returns the source mesh.
func (mp *Mapper) Mesh() *mesh.Mesh {
	return mp.mesh
}

// SetMesh replaces the source mesh and rebuilds the buffers.
func (mp *Mapper) SetMesh(m *mesh.Mesh) {
	mp.mesh = m
	mp.Update()
}

// Update rebuilds the buffers from the current mesh. Missing normals or
// texture coordinates are left zero.
func (mp *Mapper) Update() {
	m := mp.mesh
	mp.Vertices = make([]Vertex, m.PointCount())
	for i, p := range m.Points {
		v := Vertex{Position: p.Array()}
		if i < len(m.Normals) {
			v.Normal = m.Normals[i].Array()
		}
		if i < len(m.TexCoords) {
			v.TexCoord = m.TexCoords[i]
		}
		mp.Vertices[i] = v
	}

	mp.Indices = make([]uint32, 0, 3*m.TriangleCount())
	for _, t := range m.Triangles {
		mp.Indices = append(mp.Indices, t[0], t[1], t[2])
	}
	mp.Revision++
}

// IndexCount returns the number of indices to draw.
func (mp *Mapper) IndexCount() int32 {
	return int32(len(mp.Indices))
}
