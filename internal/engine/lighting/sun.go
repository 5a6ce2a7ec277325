// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/mesh-illustrator/pkg/math"
)

// SunDirection converts azimuth/elevation angles in degrees to a light
// direction. Azimuth rotates around the Y axis, elevation is measured from
// the horizon. Returns a normalized vector pointing towards the light.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := azimuth * math32.Pi / 180
	el := elevation * math32.Pi / 180

	return math.Vec3{
		X: math32.Cos(el) * math32.Sin(az),
		Y: math32.Sin(el),
		Z: math32.Cos(el) * math32.Cos(az),
	}
}
