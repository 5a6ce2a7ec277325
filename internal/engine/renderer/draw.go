package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mesh-illustrator/internal/engine/actor"
	"github.com/Faultbox/mesh-illustrator/internal/engine/debug"
	"github.com/Faultbox/mesh-illustrator/internal/engine/registry"
	"github.com/Faultbox/mesh-illustrator/internal/engine/shader"
	"github.com/Faultbox/mesh-illustrator/internal/session"
	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

// Frame is the camera state for one draw.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
}

// selectionColor tints selection outlines.
var selectionColor = [3]float32{1.0, 0.8, 0.2}

// Draw renders every visible entry: opaque meshes first, then translucent
// ones back to front with blending on and depth writes off, then outlines
// around the selection.
func (r *Renderer) Draw(reg *registry.Registry, u *session.Uniforms, f Frame) {
	r.sync(reg)

	opaque, translucent := reg.DrawOrder(f.Eye)
	if r.program != nil && r.program.ID() != 0 {
		r.beginMeshPass(u, f)

		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
		for _, cm := range opaque {
			r.drawMesh(cm)
		}

		if len(translucent) > 0 {
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			gl.DepthMask(false)
			for _, cm := range translucent {
				r.drawMesh(cm)
			}
			gl.DepthMask(true)
			gl.Disable(gl.BLEND)
		}
	}

	viewProj := f.Projection.Mul(f.View)
	for _, cm := range reg.Selected() {
		if b, ok := cm.Mesh.Bounds(); ok {
			r.lines.draw(debug.SelectionOutline(b), viewProj, selectionColor)
		}
	}
}

func (r *Renderer) beginMeshPass(u *session.Uniforms, f Frame) {
	id := r.program.ID()
	gl.UseProgram(id)
	loc := r.uniforms.lookup(id)

	gl.UniformMatrix4fv(loc("uView"), 1, false, f.View.Ptr())
	gl.UniformMatrix4fv(loc("uProjection"), 1, false, f.Projection.Ptr())
	gl.Uniform3f(loc("uEye"), f.Eye.X, f.Eye.Y, f.Eye.Z)
	gl.Uniform3f(loc("uLightDir"), u.LightDir.X, u.LightDir.Y, u.LightDir.Z)
	gl.Uniform3f(loc("uMouse"), u.MousePos.X, u.MousePos.Y, u.MousePos.Z)
	gl.Uniform3f(loc("uMouseNormal"), u.MouseNormal.X, u.MouseNormal.Y, u.MouseNormal.Z)
	gl.Uniform1f(loc("uBrushSize"), u.BrushSize)
	gl.Uniform1i(loc("uToon"), boolInt(u.Toon))
	gl.Uniform1i(loc("uPeerInside"), boolInt(u.PeerInside))
	gl.Uniform1i(loc("uShading"), u.Shading)
	gl.Uniform1i(loc("uShininess"), u.Shininess)
	gl.Uniform1f(loc("uDarkness"), u.Darkness)
	gl.Uniform1f(loc("uDiffTrans"), u.DiffTrans)
}

func (r *Renderer) drawMesh(cm *registry.CustomMesh) {
	g, ok := r.meshes[cm.ID]
	if !ok || g.vao == 0 {
		return
	}
	loc := r.uniforms.lookup(r.program.ID())
	p := &cm.Actor.Property

	gl.Uniform3f(loc("uAmbientColor"), p.AmbientColor[0], p.AmbientColor[1], p.AmbientColor[2])
	gl.Uniform3f(loc("uDiffuseColor"), p.DiffuseColor[0], p.DiffuseColor[1], p.DiffuseColor[2])
	gl.Uniform1f(loc("uAmbient"), p.Ambient)
	gl.Uniform1f(loc("uDiffuse"), p.Diffuse)
	gl.Uniform1f(loc("uSpecular"), p.Specular)
	gl.Uniform1f(loc("uSpecularPower"), p.SpecularPower)
	gl.Uniform1f(loc("uOpacity"), p.Opacity)
	gl.Uniform1i(loc("uFlat"), boolInt(p.Interpolation == actor.Flat))
	gl.Uniform1i(loc("uSelected"), boolInt(cm.Selected))

	if p.BackfaceCulling {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}

	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
}

// uniformCache remembers uniform locations for the current program.
type uniformCache struct {
	program uint32
	locs    map[string]int32
}

func (c *uniformCache) reset() {
	c.program = 0
	c.locs = nil
}

func (c *uniformCache) lookup(program uint32) func(string) int32 {
	if c.program != program || c.locs == nil {
		c.program = program
		c.locs = make(map[string]int32)
	}
	return func(name string) int32 {
		if l, ok := c.locs[name]; ok {
			return l
		}
		l := shader.GetUniform(program, name)
		c.locs[name] = l
		return l
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
