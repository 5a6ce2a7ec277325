package session

import "github.com/Faultbox/mesh-illustrator/pkg/math"

// Shading modes understood by the mesh fragment shader.
const (
	ShadingPhong = iota
	ShadingGooch
	ShadingNormals
	shadingCount
)

// ShadingName returns the config name of a shading mode.
func ShadingName(mode int32) string {
	switch mode {
	case ShadingPhong:
		return "phong"
	case ShadingGooch:
		return "gooch"
	case ShadingNormals:
		return "normals"
	default:
		return "unknown"
	}
}

// ParseShading maps a config name to a shading mode. Unknown names and
// "toon" map to phong; toon is a separate flag.
func ParseShading(name string) (mode int32, toon bool) {
	switch name {
	case "gooch":
		return ShadingGooch, false
	case "normals":
		return ShadingNormals, false
	case "toon":
		return ShadingPhong, true
	default:
		return ShadingPhong, false
	}
}

// Uniforms is the per-frame state handed to the mesh shaders.
type Uniforms struct {
	MousePos    math.Vec3
	MouseNormal math.Vec3
	BrushSize   float32
	BrushDivide float32
	Toon        bool
	PeerInside  bool
	Shading     int32
	Shininess   int32
	Darkness    float32
	DiffTrans   float32
	LightDir    math.Vec3
}

// DefaultUniforms returns the state of a fresh session.
func DefaultUniforms() Uniforms {
	return Uniforms{
		BrushSize:   1,
		BrushDivide: 20,
		Shading:     ShadingPhong,
		Shininess:   32,
		Darkness:    1,
		LightDir:    math.Vec3{Y: 1},
	}
}

// DarknessFromSlider maps a slider value in [-128, 128] to the shader's
// darkness factor in [0, 2].
func DarknessFromSlider(v int) float32 {
	return (float32(v) + 128) / 128
}
