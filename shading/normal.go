package shading

import (
	"github.com/achilleasa/parallax/asset/texture"
	"github.com/achilleasa/parallax/types"
)

// Perturb the geometric normal n with a micro-normal derived from the depth
// map gradient around uv. Heights are 1 - sample.
func PerturbNormal(depth *texture.Depth, uv types.Vec2, n types.Vec3, baseDepth, normalIntensity float32) types.Vec3 {
	texel := depth.TexelSize()
	scale := baseDepth * 10 * normalIntensity

	hx0 := 1 - depth.Sample(types.XY(uv[0]-texel[0], uv[1]))
	hx1 := 1 - depth.Sample(types.XY(uv[0]+texel[0], uv[1]))
	hy0 := 1 - depth.Sample(types.XY(uv[0], uv[1]-texel[1]))
	hy1 := 1 - depth.Sample(types.XY(uv[0], uv[1]+texel[1]))

	va := types.XYZ(texel[0]*2, 0, (hx1-hx0)*scale).Normalize()
	vb := types.XYZ(0, texel[1]*2, (hy1-hy0)*scale).Normalize()
	detail := vb.Cross(va)

	return n.Sub(detail).Normalize()
}
