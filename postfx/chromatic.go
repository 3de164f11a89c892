package postfx

import (
	"github.com/achilleasa/parallax/raster"
)

// ChromaticAberration shifts the red channel by the per-frame offset and
// the blue channel by its opposite.
type ChromaticAberration struct {
	Workers int
}

func (p *ChromaticAberration) Name() string {
	return "chromatic"
}

func (p *ChromaticAberration) Apply(dst, src *raster.Frame, in *Inputs) {
	off := in.ChromaticOffset
	if off[0] == 0 && off[1] == 0 {
		copy(dst.Color, src.Color)
		return
	}

	w, h := float32(src.Width), float32(src.Height)
	parallelRows(src.Height, p.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				u := (float32(x) + 0.5) / w
				v := (float32(y) + 0.5) / h
				idx := y*src.Width + x
				c := src.Color[idx]
				// Offsets are in GL orientation (+y up).
				c[0] = sampleUV(src, u+off[0], v-off[1])[0]
				c[2] = sampleUV(src, u-off[0], v+off[1])[2]
				dst.Color[idx] = c
			}
		}
	})
}
