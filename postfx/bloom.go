package postfx

import (
	"image"
	"image/color"

	"github.com/achilleasa/parallax/raster"
	"github.com/achilleasa/parallax/types"
	"github.com/nfnt/resize"
)

const (
	DefaultBloomThreshold = float32(0.1)
	DefaultBloomSmoothing = float32(0.9)

	// Number of mip levels used by the blur.
	bloomLevels = 6

	// Blend factor between a mip level and the upsampled smaller level.
	bloomRadius = float32(0.85)
)

// Bloom extracts bright areas, blurs them through a mip chain and adds them
// back on top of the frame.
type Bloom struct {
	Intensity float32
	Threshold float32
	Smoothing float32
	Workers   int
}

func (p *Bloom) Name() string {
	return "bloom"
}

// Weight of a color in the bright pass.
func (p *Bloom) BrightWeight(c types.Vec4) float32 {
	return types.Smoothstep(p.Threshold, p.Threshold+p.Smoothing, luminance(c))
}

func (p *Bloom) Apply(dst, src *raster.Frame, _ *Inputs) {
	if p.Intensity <= 0 || src.Width < 2 || src.Height < 2 {
		copy(dst.Color, src.Color)
		return
	}

	bright := image.NewRGBA64(image.Rect(0, 0, src.Width, src.Height))
	parallelRows(src.Height, p.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				c := src.Color[y*src.Width+x]
				bright.SetRGBA64(x, y, toRGBA64(c.Vec3().Mul(p.BrightWeight(c))))
			}
		}
	})

	// Downsample chain.
	levels := make([]image.Image, 0, bloomLevels)
	w, h := src.Width, src.Height
	var prev image.Image = bright
	for len(levels) < bloomLevels && w > 1 && h > 1 {
		w, h = max(1, w/2), max(1, h/2)
		prev = resize.Resize(uint(w), uint(h), prev, resize.Bilinear)
		levels = append(levels, prev)
	}

	// Upsample back, mixing each level with the blurrier one below it.
	acc := levels[len(levels)-1]
	for i := len(levels) - 2; i >= 0; i-- {
		b := levels[i].Bounds()
		up := resize.Resize(uint(b.Dx()), uint(b.Dy()), acc, resize.Bilinear)
		acc = mixImages(levels[i], up, bloomRadius)
	}
	blurred := resize.Resize(uint(src.Width), uint(src.Height), acc, resize.Bilinear)

	parallelRows(src.Height, p.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				idx := y*src.Width + x
				glow := fromColor(blurred.At(x, y)).Mul(p.Intensity)
				c := src.Color[idx]
				dst.Color[idx] = types.XYZW(c[0]+glow[0], c[1]+glow[1], c[2]+glow[2], c[3])
			}
		}
	})
}

func mixImages(a, b image.Image, t float32) *image.RGBA64 {
	bounds := a.Bounds()
	out := image.NewRGBA64(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ca := fromColor(a.At(x, y))
			cb := fromColor(b.At(x, y))
			out.SetRGBA64(x, y, toRGBA64(ca.Mul(1-t).Add(cb.Mul(t))))
		}
	}
	return out
}

func toRGBA64(c types.Vec3) color.RGBA64 {
	return color.RGBA64{
		R: uint16(types.Clamp(c[0], 0, 1)*0xffff + 0.5),
		G: uint16(types.Clamp(c[1], 0, 1)*0xffff + 0.5),
		B: uint16(types.Clamp(c[2], 0, 1)*0xffff + 0.5),
		A: 0xffff,
	}
}

func fromColor(c color.Color) types.Vec3 {
	r, g, b, _ := c.RGBA()
	return types.XYZ(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff)
}
