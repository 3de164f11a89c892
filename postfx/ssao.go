package postfx

import (
	"github.com/achilleasa/parallax/raster"
	"github.com/chewxy/math32"
)

const (
	ssaoSamples = 8
	ssaoBias    = float32(0.005)
)

// Screen-space ambient occlusion estimated from the linear depth buffer.
// Neighbours on a ring of Radius world units that are closer to the camera
// than the shaded pixel darken it.
type SSAO struct {
	Intensity float32
	Radius    float32
	Workers   int
}

func (p *SSAO) Name() string {
	return "ssao"
}

func (p *SSAO) Apply(dst, src *raster.Frame, in *Inputs) {
	if p.Intensity <= 0 || p.Radius <= 0 {
		copy(dst.Color, src.Color)
		return
	}

	// Pixels per world unit at unit distance.
	focal := math32.Abs(in.ViewProj.At(1, 1)) * float32(src.Height) * 0.5

	var ring [ssaoSamples][2]float32
	for i := range ring {
		a := 2 * math32.Pi * float32(i) / ssaoSamples
		ring[i] = [2]float32{math32.Cos(a), math32.Sin(a)}
	}

	parallelRows(src.Height, p.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				idx := y*src.Width + x
				d := src.Depth[idx]
				if math32.IsInf(d, 1) {
					dst.Color[idx] = src.Color[idx]
					continue
				}

				r := p.Radius * focal / d
				var occlusion float32
				for _, dir := range ring {
					nd := src.DepthAt(x+int(dir[0]*r), y+int(dir[1]*r))
					diff := d - nd
					if diff <= ssaoBias {
						continue
					}
					// Ignore occluders far outside the sampling radius
					occlusion += min(1, p.Radius/diff)
				}

				ao := 1 - min(1, p.Intensity*occlusion/ssaoSamples)
				c := src.Color[idx]
				dst.Color[idx] = c.Mul(ao)
				dst.Color[idx][3] = c[3]
			}
		}
	})
}
