package shading

import (
	"github.com/achilleasa/parallax/asset/texture"
	"github.com/achilleasa/parallax/types"
)

// Uniforms are the per-surface parameters recomputed every tick.
type Uniforms struct {
	// Displacement scale for displaced surfaces.
	DisplacementScale float32

	BackgroundCutoff   float32
	MiddlegroundCutoff float32
	LayerBlending      float32

	LayerIndex     int
	LayerCount     int
	SliceThreshold float32
	EdgeFeather    bool

	BaseDepth       float32
	NormalIntensity float32

	// Rotation applied to local normals of lit surfaces.
	NormalMatrix types.Mat4
	Lights       Lights
}

// Vertex attributes in surface-local space.
type Vertex struct {
	Position types.Vec3
	Normal   types.Vec3
	UV       types.Vec2
}

// Interpolated fragment inputs. Position is in world space while Normal is
// still in surface-local space.
type Fragment struct {
	UV       types.Vec2
	Position types.Vec3
	Normal   types.Vec3
}

// Program shades a single surface. The textures are shared with every other
// surface and are only read.
type Program struct {
	Role     Role
	Color    *texture.Color
	Depth    *texture.Depth
	Uniforms Uniforms
}

// Run the vertex stage.
func (p *Program) Vertex(v Vertex) Vertex {
	if p.Role.Displaced() {
		v.Position = Displace(v.Position, p.Depth.Sample(v.UV), p.Uniforms.DisplacementScale)
	}
	return v
}

// Run the fragment stage returning a non-premultiplied RGBA color. The second
// return value is false if the fragment must be discarded.
func (p *Program) Fragment(f Fragment) (types.Vec4, bool) {
	u := &p.Uniforms

	switch p.Role {
	case Infill:
		return p.Color.SampleLod(f.UV, InfillLevel(p.Color.MaxLevel())), true
	case Background, Middleground, Foreground:
		alpha := ThreeBandAlpha(p.Role, p.Depth.Sample(f.UV), u.BackgroundCutoff, u.MiddlegroundCutoff, u.LayerBlending)
		if alpha < DiscardThreshold {
			return types.Vec4{}, false
		}
		c := p.Color.Sample(f.UV)
		c[3] *= alpha
		return c, true
	case Sliced:
		alpha, keep := SlicedAlpha(u.LayerIndex, u.LayerCount, p.Depth.Sample(f.UV), u.SliceThreshold, u.LayerBlending, u.EdgeFeather)
		if !keep {
			return types.Vec4{}, false
		}
		c := p.Color.Sample(f.UV)
		c[3] *= alpha
		return c, true
	case Base:
		n := PerturbNormal(p.Depth, f.UV, f.Normal, u.BaseDepth, u.NormalIntensity)
		if u.NormalMatrix != (types.Mat4{}) {
			n = types.TransformDir(u.NormalMatrix, n).Normalize()
		}
		c := p.Color.Sample(f.UV)
		lit := u.Lights.Shade(c.Vec3(), f.Position, n)
		return lit.Vec4(c[3]), true
	}
	return types.Vec4{}, false
}
