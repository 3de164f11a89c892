package postfx

import (
	"github.com/achilleasa/parallax/raster"
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

const (
	DefaultVignetteOffset   = float32(0.1)
	DefaultVignetteDarkness = float32(0.9)
)

// Vignette darkens the frame towards its corners.
type Vignette struct {
	Offset   float32
	Darkness float32
	Workers  int
}

func (p *Vignette) Name() string {
	return "vignette"
}

// Brightness multiplier at a UV coordinate.
func (p *Vignette) Factor(u, v float32) float32 {
	du, dv := u-0.5, v-0.5
	dist := math32.Sqrt(du*du + dv*dv)
	return types.Smoothstep(0.8, p.Offset*0.799, dist*(p.Darkness+p.Offset))
}

func (p *Vignette) Apply(dst, src *raster.Frame, _ *Inputs) {
	w, h := float32(src.Width), float32(src.Height)
	parallelRows(src.Height, p.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				idx := y*src.Width + x
				c := src.Color[idx]
				f := p.Factor((float32(x)+0.5)/w, (float32(y)+0.5)/h)
				dst.Color[idx] = types.XYZW(c[0]*f, c[1]*f, c[2]*f, c[3])
			}
		}
	})
}
