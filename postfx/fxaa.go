package postfx

import (
	"github.com/achilleasa/parallax/raster"
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

const (
	fxaaReduceMin = float32(1.0 / 128)
	fxaaReduceMul = float32(1.0 / 8)
	fxaaSpanMax   = float32(8)
)

// Fast approximate anti-aliasing. Edges are detected from luma and blurred
// along their direction.
type FXAA struct {
	Workers int
}

func (p *FXAA) Name() string {
	return "fxaa"
}

func (p *FXAA) Apply(dst, src *raster.Frame, _ *Inputs) {
	w, h := float32(src.Width), float32(src.Height)

	parallelRows(src.Height, p.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				idx := y*src.Width + x
				center := src.Color[idx]

				lNW := luminance(src.At(x-1, y-1))
				lNE := luminance(src.At(x+1, y-1))
				lSW := luminance(src.At(x-1, y+1))
				lSE := luminance(src.At(x+1, y+1))
				lM := luminance(center)

				lMin := min(lM, lNW, lNE, lSW, lSE)
				lMax := max(lM, lNW, lNE, lSW, lSE)

				dirX := -((lNW + lNE) - (lSW + lSE))
				dirY := (lNW + lSW) - (lNE + lSE)
				if dirX == 0 && dirY == 0 {
					dst.Color[idx] = center
					continue
				}

				reduce := max((lNW+lNE+lSW+lSE)*0.25*fxaaReduceMul, fxaaReduceMin)
				rcpDirMin := 1 / (min(math32.Abs(dirX), math32.Abs(dirY)) + reduce)
				dirX = types.Clamp(dirX*rcpDirMin, -fxaaSpanMax, fxaaSpanMax) / w
				dirY = types.Clamp(dirY*rcpDirMin, -fxaaSpanMax, fxaaSpanMax) / h

				u := (float32(x) + 0.5) / w
				v := (float32(y) + 0.5) / h
				a := mix(
					sampleUV(src, u+dirX*(1.0/3-0.5), v+dirY*(1.0/3-0.5)),
					sampleUV(src, u+dirX*(2.0/3-0.5), v+dirY*(2.0/3-0.5)),
					0.5,
				)
				b := a.Mul(0.5).Add(mix(
					sampleUV(src, u-dirX*0.5, v-dirY*0.5),
					sampleUV(src, u+dirX*0.5, v+dirY*0.5),
					0.5,
				).Mul(0.5))

				out := b
				if lB := luminance(b); lB < lMin || lB > lMax {
					out = a
				}
				out[3] = center[3]
				dst.Color[idx] = out
			}
		}
	})
}
