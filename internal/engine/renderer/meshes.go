package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mesh-illustrator/internal/engine/actor"
	"github.com/Faultbox/mesh-illustrator/internal/engine/registry"
)

// gpuMesh is the uploaded copy of one actor's mapper.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	revision      uint64
}

func (m *gpuMesh) release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	*m = gpuMesh{}
}

// sync uploads new or changed mappers and frees meshes no longer registered.
func (r *Renderer) sync(reg *registry.Registry) {
	live := make(map[registry.ID]bool, reg.Len())
	for _, cm := range reg.Entries() {
		live[cm.ID] = true
		mp := cm.Actor.Mapper
		g, ok := r.meshes[cm.ID]
		if ok && g.revision == mp.Revision {
			continue
		}
		if !ok {
			g = &gpuMesh{}
			r.meshes[cm.ID] = g
		}
		upload(g, mp)
	}
	for id, g := range r.meshes {
		if !live[id] {
			g.release()
			delete(r.meshes, id)
		}
	}
}

func upload(g *gpuMesh, mp *actor.Mapper) {
	g.release()
	g.revision = mp.Revision
	g.indexCount = mp.IndexCount()
	if len(mp.Vertices) == 0 || len(mp.Indices) == 0 {
		return
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mp.Vertices)*actor.VertexSize, unsafe.Pointer(&mp.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, actor.VertexSize, actor.PositionOffset)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, actor.VertexSize, actor.NormalOffset)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, actor.VertexSize, actor.TexCoordOffset)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mp.Indices)*4, unsafe.Pointer(&mp.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
}
