package shading

import "github.com/achilleasa/parallax/types"

// Offset a vertex along Z so that mid-depth stays in place.
func Displace(pos types.Vec3, depth, scale float32) types.Vec3 {
	pos[2] += (depth - 0.5) * scale
	return pos
}
