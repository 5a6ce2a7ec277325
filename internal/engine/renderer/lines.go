package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mesh-illustrator/internal/engine/shader"
	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

const lineVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 uViewProj;
void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `#version 410 core
uniform vec3 uColor;
out vec4 FragColor;
void main() {
	FragColor = vec4(uColor, 1.0);
}
`

// lineRenderer draws colored line lists, rebuilt every call.
type lineRenderer struct {
	program  uint32
	vao, vbo uint32
	locMVP   int32
	locColor int32
}

func newLineRenderer() (*lineRenderer, error) {
	dev := shader.GLDevice{}
	vs, err := dev.Compile(shader.KindVertex, lineVertexShader)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(vs)
	fs, err := dev.Compile(shader.KindFragment, lineFragmentShader)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(fs)
	program, err := dev.Link([]uint32{vs, fs})
	if err != nil {
		return nil, err
	}

	l := &lineRenderer{
		program:  program,
		locMVP:   shader.GetUniform(program, "uViewProj"),
		locColor: shader.GetUniform(program, "uColor"),
	}

	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)
	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return l, nil
}

func (l *lineRenderer) draw(vertices []float32, viewProj math.Mat4, color [3]float32) {
	if len(vertices) == 0 {
		return
	}
	gl.UseProgram(l.program)
	gl.UniformMatrix4fv(l.locMVP, 1, false, viewProj.Ptr())
	gl.Uniform3f(l.locColor, color[0], color[1], color[2])

	gl.BindVertexArray(l.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
	gl.BindVertexArray(0)
}

func (l *lineRenderer) release() {
	if l.vao != 0 {
		gl.DeleteVertexArrays(1, &l.vao)
	}
	if l.vbo != 0 {
		gl.DeleteBuffers(1, &l.vbo)
	}
	if l.program != 0 {
		gl.DeleteProgram(l.program)
	}
}
