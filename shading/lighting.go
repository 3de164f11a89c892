package shading

import (
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

type AmbientLight struct {
	Color     types.Vec3
	Intensity float32
}

// A light infinitely far away in the direction of Position.
type DirectionalLight struct {
	Position  types.Vec3
	Color     types.Vec3
	Intensity float32
}

// A light whose contribution falls off with distance. Contributions beyond
// Distance are zero; a Distance of 0 disables the cutoff.
type PointLight struct {
	Position  types.Vec3
	Color     types.Vec3
	Intensity float32
	Distance  float32
	Decay     float32
}

// The set of lights illuminating lit surfaces.
type Lights struct {
	Ambient     AmbientLight
	Directional DirectionalLight
	Point       PointLight
}

// Default scene lighting: a soft white ambient term, a side directional light
// and a warm point light in front of the image.
func DefaultLights() Lights {
	white := types.XYZ(1, 1, 1)
	return Lights{
		Ambient:     AmbientLight{Color: white, Intensity: 0.5},
		Directional: DirectionalLight{Position: types.XYZ(3, 2, 5), Color: white, Intensity: 1.5},
		Point: PointLight{
			Position:  types.XYZ(0, 0, 1.5),
			Color:     types.HexColor("#FFDDAA"),
			Intensity: 2.5,
			Distance:  7,
			Decay:     2,
		},
	}
}

// Lambertian shading of albedo at pos with normal n (both world space).
func (l Lights) Shade(albedo, pos, n types.Vec3) types.Vec3 {
	irradiance := l.Ambient.Color.Mul(l.Ambient.Intensity)

	dirL := l.Directional.Position.Normalize()
	if ndl := n.Dot(dirL); ndl > 0 {
		irradiance = irradiance.Add(l.Directional.Color.Mul(l.Directional.Intensity * ndl))
	}

	toLight := l.Point.Position.Sub(pos)
	dist := toLight.Len()
	if dist > 0 {
		if ndl := n.Dot(toLight.Mul(1 / dist)); ndl > 0 {
			att := distanceAttenuation(dist, l.Point.Distance, l.Point.Decay)
			irradiance = irradiance.Add(l.Point.Color.Mul(l.Point.Intensity * ndl * att))
		}
	}

	return albedo.MulVec(irradiance)
}

// Inverse power falloff with a smooth window reaching zero at cutoff.
func distanceAttenuation(dist, cutoff, decay float32) float32 {
	falloff := 1 / math32.Max(math32.Pow(dist, decay), 0.01)
	if cutoff > 0 {
		r := dist / cutoff
		w := types.Clamp(1-r*r*r*r, 0, 1)
		falloff *= w * w
	}
	return falloff
}
