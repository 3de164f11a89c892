package postfx

import (
	"github.com/achilleasa/parallax/raster"
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

// Circles of confusion below this radius (in pixels) are left sharp.
const minCoC = float32(0.5)

// Depth of field approximated by a disc gather whose radius grows with the
// distance from the focus plane.
type DepthOfField struct {
	// Distance from the camera that is in perfect focus.
	FocusDistance float32

	// Distance from the focus plane at which blur reaches MaxBlur.
	FocusRange float32

	// Maximum blur radius in pixels.
	MaxBlur float32

	Workers int
}

func (p *DepthOfField) Name() string {
	return "dof"
}

// Blur radius in pixels for a fragment at the given linear depth. Empty
// pixels are treated as infinitely far away.
func (p *DepthOfField) CircleOfConfusion(depth float32) float32 {
	if p.MaxBlur <= 0 {
		return 0
	}
	if math32.IsInf(depth, 1) || p.FocusRange <= 0 {
		return p.MaxBlur
	}
	return types.Clamp(math32.Abs(depth-p.FocusDistance)/p.FocusRange, 0, 1) * p.MaxBlur
}

func (p *DepthOfField) Apply(dst, src *raster.Frame, _ *Inputs) {
	// Two rings of taps; the inner one at half radius.
	var taps [12][2]float32
	for i := 0; i < 8; i++ {
		a := 2 * math32.Pi * float32(i) / 8
		taps[i] = [2]float32{math32.Cos(a), math32.Sin(a)}
	}
	for i := 0; i < 4; i++ {
		a := 2*math32.Pi*float32(i)/4 + math32.Pi/4
		taps[8+i] = [2]float32{0.5 * math32.Cos(a), 0.5 * math32.Sin(a)}
	}

	parallelRows(src.Height, p.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				idx := y*src.Width + x
				coc := p.CircleOfConfusion(src.Depth[idx])
				if coc < minCoC {
					dst.Color[idx] = src.Color[idx]
					continue
				}

				sum := src.Color[idx]
				for _, t := range taps {
					sum = sum.Add(src.At(x+int(math32.Round(t[0]*coc)), y+int(math32.Round(t[1]*coc))))
				}
				out := sum.Mul(1.0 / float32(len(taps)+1))
				out[3] = src.Color[idx][3]
				dst.Color[idx] = out
			}
		}
	})
}
