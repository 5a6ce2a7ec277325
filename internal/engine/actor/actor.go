// Package actor turns meshes into renderable actors: CPU-side vertex and
// index buffers plus the surface appearance used by the shaders.
package actor

import (
	"github.com/Faultbox/mesh-illustrator/internal/engine/mesh"
)

// Interpolation selects how lighting is interpolated across a triangle.
type Interpolation int

const (
	Flat Interpolation = iota
	Gouraud
	Phong
)

// Default material coefficients for imported meshes.
const (
	DefaultAmbient       = 1.0
	DefaultDiffuse       = 1.0
	DefaultSpecular      = 0.30
	DefaultSpecularPower = 128.0
)

// Property is the surface appearance of an actor.
type Property struct {
	AmbientColor    [3]float32
	DiffuseColor    [3]float32
	Ambient         float32
	Diffuse         float32
	Specular        float32
	SpecularPower   float32
	Opacity         float32
	BackfaceCulling bool
	Interpolation   Interpolation
}

// DefaultProperty returns the material every imported mesh starts with.
func DefaultProperty(color [3]float32, opacity float32) Property {
	return Property{
		AmbientColor:  color,
		DiffuseColor:  color,
		Ambient:       DefaultAmbient,
		Diffuse:       DefaultDiffuse,
		Specular:      DefaultSpecular,
		SpecularPower: DefaultSpecularPower,
		Opacity:       opacity,
		Interpolation: Phong,
	}
}

// Actor binds a mapper to its appearance.
type Actor struct {
	Mapper   *Mapper
	Property Property
	Visible  bool
}

// New builds an actor for m with the default material.
func New(m *mesh.Mesh, color [3]float32, opacity float32) *Actor {
	return &Actor{
		Mapper:   NewMapper(m),
		Property: DefaultProperty(color, opacity),
		Visible:  true,
	}
}

// SetColor updates both the ambient and diffuse color.
func (a *Actor) SetColor(color [3]float32) {
	a.Property.AmbientColor = color
	a.Property.DiffuseColor = color
}

// SetOpacity sets the rendered opacity in [0, 1].
func (a *Actor) SetOpacity(opacity float32) {
	a.Property.Opacity = opacity
}

// Translucent reports whether the actor belongs in the blended pass.
func (a *Actor) Translucent() bool {
	return a.Property.Opacity < 1
}
