package raster

import (
	"image"

	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

// Frame is a floating point color buffer with an attached linear depth buffer.
// Colors are straight (not premultiplied) RGBA in [0, 1]; depth holds the view
// space distance of the nearest opaque-enough fragment or +Inf.
type Frame struct {
	Width  int
	Height int

	Color []types.Vec4
	Depth []float32
}

// Allocate a new frame.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize the buffers. Contents are undefined until the next Clear.
func (f *Frame) Resize(width, height int) {
	if f.Width == width && f.Height == height {
		return
	}
	f.Width, f.Height = width, height
	f.Color = make([]types.Vec4, width*height)
	f.Depth = make([]float32, width*height)
}

// Fill the color buffer with bg and reset the depth buffer.
func (f *Frame) Clear(bg types.Vec4) {
	inf := math32.Inf(1)
	for i := range f.Color {
		f.Color[i] = bg
		f.Depth[i] = inf
	}
}

// Clone the frame buffers.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		Width:  f.Width,
		Height: f.Height,
		Color:  make([]types.Vec4, len(f.Color)),
		Depth:  make([]float32, len(f.Depth)),
	}
	copy(out.Color, f.Color)
	copy(out.Depth, f.Depth)
	return out
}

// Color at (x, y) with edge clamping.
func (f *Frame) At(x, y int) types.Vec4 {
	x = min(max(x, 0), f.Width-1)
	y = min(max(y, 0), f.Height-1)
	return f.Color[y*f.Width+x]
}

// Depth at (x, y) with edge clamping.
func (f *Frame) DepthAt(x, y int) float32 {
	x = min(max(x, 0), f.Width-1)
	y = min(max(y, 0), f.Height-1)
	return f.Depth[y*f.Width+x]
}

// Convert the color buffer to an 8-bit image.
func (f *Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.CopyTo(img)
	return img
}

// Copy the color buffer into img which must match the frame size.
func (f *Frame) CopyTo(img *image.NRGBA) {
	for y := 0; y < f.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+f.Width*4]
		for x := 0; x < f.Width; x++ {
			c := f.Color[y*f.Width+x]
			row[x*4] = toByte(c[0])
			row[x*4+1] = toByte(c[1])
			row[x*4+2] = toByte(c[2])
			row[x*4+3] = toByte(c[3])
		}
	}
}

func toByte(v float32) uint8 {
	return uint8(types.Clamp(v, 0, 1)*255 + 0.5)
}
