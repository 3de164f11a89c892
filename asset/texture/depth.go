package texture

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

// Depth is a single channel texture holding normalized depth values where
// 1 is nearest to the viewer and 0 is farthest. Sampling uses nearest
// filtering with edge clamping so that depth discontinuities are not smeared.
type Depth struct {
	Format Format
	Width  int
	Height int

	data     []float32
	released atomic.Bool
}

// Create a depth texture from a decoded image. Color images are reduced to
// luminance. If invert is set, black is treated as near and the values are
// flipped so that the stored convention is always 1 = near.
func NewDepth(img image.Image, invert bool) *Depth {
	b := img.Bounds()
	tex := &Depth{
		Format: formatOf(img),
		Width:  b.Dx(),
		Height: b.Dy(),
		data:   make([]float32, b.Dx()*b.Dy()),
	}

	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			v := float32(color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16).Y) / 65535.0
			if invert {
				v = 1 - v
			}
			tex.data[y*tex.Width+x] = v
		}
	}

	return tex
}

// Create a depth texture directly from normalized values laid out row by row
// starting at the top of the image.
func NewDepthFromValues(width, height int, values []float32) *Depth {
	data := make([]float32, width*height)
	copy(data, values)
	return &Depth{
		Format: Luminance32F,
		Width:  width,
		Height: height,
		data:   data,
	}
}

// A 2x2 uniform mid-gray depth map. Displacement with this map is zero
// everywhere which flattens the scene.
func NeutralDepth() *Depth {
	const mid = float32(0.5)
	return NewDepthFromValues(2, 2, []float32{mid, mid, mid, mid})
}

// Returns true while the depth values are available.
func (t *Depth) Resident() bool {
	return t != nil && !t.released.Load()
}

// Release the depth values.
func (t *Depth) Dispose() {
	if t.released.Swap(true) {
		return
	}
	t.data = nil
}

// The size of a single texel in UV units.
func (t *Depth) TexelSize() types.Vec2 {
	return types.Vec2{1.0 / float32(t.Width), 1.0 / float32(t.Height)}
}

// Fetch the value at pixel (x, y) with (0,0) at the top-left corner. Coordinates
// are clamped to the image edges.
func (t *Depth) At(x, y int) float32 {
	if !t.Resident() {
		return 0
	}
	x = min(max(x, 0), t.Width-1)
	y = min(max(y, 0), t.Height-1)
	return t.data[y*t.Width+x]
}

// Nearest sample using GL UV conventions ((0,0) is the bottom-left corner).
func (t *Depth) Sample(uv types.Vec2) float32 {
	x := int(math32.Floor(uv[0] * float32(t.Width)))
	y := int(math32.Floor((1 - uv[1]) * float32(t.Height)))
	return t.At(x, y)
}

// Convert the depth values to an 8-bit grayscale image.
func (t *Depth) Image() (*image.Gray, error) {
	if !t.Resident() {
		return nil, ErrReleased
	}
	img := image.NewGray(image.Rect(0, 0, t.Width, t.Height))
	for i, v := range t.data {
		img.Pix[i] = uint8(types.Clamp(v, 0, 1)*255 + 0.5)
	}
	return img, nil
}
