package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLDevice compiles and links programs on the current OpenGL context.
type GLDevice struct{}

// Compile compiles a single shader of the given kind.
func (GLDevice) Compile(kind Kind, source string) (uint32, error) {
	shaderType := uint32(gl.VERTEX_SHADER)
	if kind == KindFragment {
		shaderType = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", kind, string(log[:logLen]))
	}

	return shader, nil
}

// Link links compiled shaders into a program.
func (GLDevice) Link(stages []uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range stages {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log[:logLen]))
	}

	for _, s := range stages {
		gl.DetachShader(program, s)
	}
	return program, nil
}

// DeleteShader releases a compiled shader.
func (GLDevice) DeleteShader(handle uint32) {
	gl.DeleteShader(handle)
}

// DeleteProgram releases a linked program.
func (GLDevice) DeleteProgram(handle uint32) {
	gl.DeleteProgram(handle)
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
