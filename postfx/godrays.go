package postfx

import (
	"github.com/achilleasa/parallax/raster"
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

const (
	DefaultGodRaysDensity  = float32(0.96)
	DefaultGodRaysDecay    = float32(0.93)
	DefaultGodRaysExposure = float32(0.54)
	DefaultGodRaysSamples  = 60
	DefaultGodRaysClampMax = float32(1)
)

var (
	// The light source sits behind the image.
	DefaultSunPosition = types.XYZ(0, 0, -2)
	DefaultSunRadius   = float32(0.2)
)

// GodRays renders light shafts by radially blurring the unoccluded part of a
// spherical light source towards its projected center. The result is screen
// blended over the frame.
type GodRays struct {
	SunPosition types.Vec3
	SunRadius   float32

	Density  float32
	Decay    float32
	Weight   float32
	Exposure float32
	Samples  int
	ClampMax float32

	Workers int
}

func (p *GodRays) Name() string {
	return "godrays"
}

// Build the occlusion mask: 1 where the sun is visible, 0 elsewhere.
func (p *GodRays) mask(src *raster.Frame, viewProj types.Mat4) ([]float32, types.Vec2, bool) {
	center, sunDepth, ok := project(viewProj, p.SunPosition)
	if !ok {
		return nil, types.Vec2{}, false
	}
	edge, _, ok := project(viewProj, p.SunPosition.Add(types.XYZ(p.SunRadius, 0, 0)))
	if !ok {
		return nil, types.Vec2{}, false
	}
	radiusPx := math32.Abs(edge[0]-center[0]) * float32(src.Width)
	cx := center[0] * float32(src.Width)
	cy := center[1] * float32(src.Height)

	mask := make([]float32, src.Width*src.Height)
	y0 := max(0, int(cy-radiusPx))
	y1 := min(src.Height-1, int(cy+radiusPx))
	x0 := max(0, int(cx-radiusPx))
	x1 := min(src.Width-1, int(cx+radiusPx))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float32(x) + 0.5 - cx
			dy := float32(y) + 0.5 - cy
			idx := y*src.Width + x
			if dx*dx+dy*dy <= radiusPx*radiusPx && src.Depth[idx] > sunDepth {
				mask[idx] = 1
			}
		}
	}
	return mask, center, true
}

func (p *GodRays) Apply(dst, src *raster.Frame, in *Inputs) {
	if p.Weight <= 0 || p.Samples <= 0 {
		copy(dst.Color, src.Color)
		return
	}
	mask, sun, ok := p.mask(src, in.ViewProj)
	if !ok {
		copy(dst.Color, src.Color)
		return
	}

	w, h := float32(src.Width), float32(src.Height)
	step := p.Density / float32(p.Samples)

	parallelRows(src.Height, p.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				u := (float32(x) + 0.5) / w
				v := (float32(y) + 0.5) / h
				du := (u - sun[0]) * step
				dv := (v - sun[1]) * step

				var shaft float32
				decay := float32(1)
				for i := 0; i < p.Samples; i++ {
					u -= du
					v -= dv
					sx := min(max(int(u*w), 0), src.Width-1)
					sy := min(max(int(v*h), 0), src.Height-1)
					shaft += mask[sy*src.Width+sx] * decay * p.Weight
					decay *= p.Decay
				}
				shaft = types.Clamp(shaft*p.Exposure, 0, p.ClampMax)

				idx := y*src.Width + x
				c := src.Color[idx]
				dst.Color[idx] = types.XYZW(screen(c[0], shaft), screen(c[1], shaft), screen(c[2], shaft), c[3])
			}
		}
	})
}

func screen(a, b float32) float32 {
	return 1 - (1-a)*(1-b)
}
