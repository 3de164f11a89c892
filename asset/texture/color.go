package texture

import (
	"image"
	"sync/atomic"

	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Color is a mip-mapped RGBA texture. Sampling is bilinear with edge clamping.
// UV coordinates follow the GL convention: (0,0) is the bottom-left corner.
type Color struct {
	Format Format
	Width  int
	Height int

	levels   []*image.NRGBA
	released atomic.Bool
}

// Create a color texture from a decoded image and generate its full mip chain
// down to 1x1. Images larger than maxSize in either dimension are scaled down
// first; a maxSize of 0 disables the limit.
func NewColor(img image.Image, maxSize int) *Color {
	base := toNRGBA(img)
	if maxSize > 0 {
		base = fitWithin(base, maxSize)
	}

	tex := &Color{
		Format: formatOf(img),
		Width:  base.Rect.Dx(),
		Height: base.Rect.Dy(),
		levels: []*image.NRGBA{base},
	}

	w, h := tex.Width, tex.Height
	for w > 1 || h > 1 {
		w = max(1, w/2)
		h = max(1, h/2)
		prev := tex.levels[len(tex.levels)-1]
		tex.levels = append(tex.levels, toNRGBA(resize.Resize(uint(w), uint(h), prev, resize.Bilinear)))
	}

	return tex
}

// Returns true while the pixel data is available.
func (t *Color) Resident() bool {
	return t != nil && !t.released.Load()
}

// Release the pixel data. Subsequent samples return transparent black.
func (t *Color) Dispose() {
	if t.released.Swap(true) {
		return
	}
	t.levels = nil
}

// The index of the smallest mip level.
func (t *Color) MaxLevel() int {
	return len(t.levels) - 1
}

// Width / height ratio of the base level.
func (t *Color) Aspect() float32 {
	if t.Height == 0 {
		return 1
	}
	return float32(t.Width) / float32(t.Height)
}

// The base level image.
func (t *Color) Image() (*image.NRGBA, error) {
	if !t.Resident() {
		return nil, ErrReleased
	}
	return t.levels[0], nil
}

// Bilinear sample of the base level.
func (t *Color) Sample(uv types.Vec2) types.Vec4 {
	if !t.Resident() {
		return types.Vec4{}
	}
	return sampleBilinear(t.levels[0], uv)
}

// Trilinear sample at an explicit level of detail. The lod is clamped to the
// available mip range.
func (t *Color) SampleLod(uv types.Vec2, lod float32) types.Vec4 {
	if !t.Resident() {
		return types.Vec4{}
	}

	lod = types.Clamp(lod, 0, float32(t.MaxLevel()))
	lo := int(math32.Floor(lod))
	frac := lod - float32(lo)
	c0 := sampleBilinear(t.levels[lo], uv)
	if frac == 0 || lo == t.MaxLevel() {
		return c0
	}
	c1 := sampleBilinear(t.levels[lo+1], uv)
	return c0.Mul(1 - frac).Add(c1.Mul(frac))
}

func sampleBilinear(img *image.NRGBA, uv types.Vec2) types.Vec4 {
	w, h := img.Rect.Dx(), img.Rect.Dy()

	// Texel centers sit at half-integer coordinates
	fx := uv[0]*float32(w) - 0.5
	fy := (1-uv[1])*float32(h) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := texel(img, x0, y0)
	c10 := texel(img, x0+1, y0)
	c01 := texel(img, x0, y0+1)
	c11 := texel(img, x0+1, y0+1)

	top := c00.Mul(1 - tx).Add(c10.Mul(tx))
	bottom := c01.Mul(1 - tx).Add(c11.Mul(tx))
	return top.Mul(1 - ty).Add(bottom.Mul(ty))
}

// Fetch a texel with edge clamping.
func texel(img *image.NRGBA, x, y int) types.Vec4 {
	x = min(max(x, 0), img.Rect.Dx()-1)
	y = min(max(y, 0), img.Rect.Dy()-1)
	off := y*img.Stride + x*4
	p := img.Pix[off : off+4 : off+4]
	return types.Vec4{
		float32(p[0]) / 255.0,
		float32(p[1]) / 255.0,
		float32(p[2]) / 255.0,
		float32(p[3]) / 255.0,
	}
}

func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Scale img so that neither dimension exceeds maxSize, preserving the aspect ratio.
func fitWithin(img *image.NRGBA, maxSize int) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}

	scale := float32(maxSize) / float32(max(w, h))
	dw := max(1, int(float32(w)*scale))
	dh := max(1, int(float32(h)*scale))
	out := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}
