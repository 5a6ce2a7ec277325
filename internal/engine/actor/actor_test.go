package actor

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/mesh-illustrator/internal/engine/mesh"
)

func triangle() *mesh.Mesh {
	m := mesh.FromArrays([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2})
	mesh.SmoothNormals(m)
	mesh.GenerateTexCoords(m)
	return m
}

func TestNewDefaults(t *testing.T) {
	color := [3]float32{0.2, 0.4, 0.6}
	a := New(triangle(), color, 0.75)

	p := a.Property
	assert.Equal(t, color, p.AmbientColor)
	assert.Equal(t, color, p.DiffuseColor)
	assert.Equal(t, float32(1.0), p.Ambient)
	assert.Equal(t, float32(1.0), p.Diffuse)
	assert.Equal(t, float32(0.30), p.Specular)
	assert.Equal(t, float32(128), p.SpecularPower)
	assert.Equal(t, float32(0.75), p.Opacity)
	assert.False(t, p.BackfaceCulling)
	assert.Equal(t, Phong, p.Interpolation)
	assert.True(t, a.Visible)
	assert.True(t, a.Translucent())
}

func TestSetColorAndOpacity(t *testing.T) {
	a := New(triangle(), [3]float32{1, 1, 1}, 1)
	assert.False(t, a.Translucent())

	a.SetColor([3]float32{1, 0, 0})
	a.SetOpacity(0.25)
	assert.Equal(t, [3]float32{1, 0, 0}, a.Property.AmbientColor)
	assert.Equal(t, [3]float32{1, 0, 0}, a.Property.DiffuseColor)
	assert.Equal(t, float32(0.25), a.Property.Opacity)
	assert.Equal(t, float32(0.30), a.Property.Specular, "only color and opacity change")
}

func TestMapperInterleaves(t *testing.T) {
	m := triangle()
	mp := NewMapper(m)

	require.Len(t, mp.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, mp.Indices)
	assert.Equal(t, int32(3), mp.IndexCount())
	assert.Equal(t, [3]float32{1, 0, 0}, mp.Vertices[1].Position)
	assert.Equal(t, [3]float32{0, 0, 1}, mp.Vertices[1].Normal)
	assert.Equal(t, m.TexCoords[1], mp.Vertices[1].TexCoord)
	assert.Equal(t, uint64(1), mp.Revision)
}

func TestMapperWithoutNormals(t *testing.T) {
	m := mesh.FromArrays([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2})
	mp := NewMapper(m)
	for _, v := range mp.Vertices {
		assert.Equal(t, [3]float32{}, v.Normal)
		assert.Equal(t, [2]float32{}, v.TexCoord)
	}
}

func TestMapperSetMeshBumpsRevision(t *testing.T) {
	mp := NewMapper(triangle())
	mp.SetMesh(mesh.FromArrays(nil, nil))
	assert.Equal(t, uint64(2), mp.Revision)
	assert.Empty(t, mp.Vertices)
	assert.Empty(t, mp.Indices)
}

func TestVertexLayout(t *testing.T) {
	var v Vertex
	assert.Equal(t, uintptr(VertexSize), unsafe.Sizeof(v))
	assert.Equal(t, uintptr(NormalOffset), unsafe.Offsetof(v.Normal))
	assert.Equal(t, uintptr(TexCoordOffset), unsafe.Offsetof(v.TexCoord))
}
