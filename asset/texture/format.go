package texture

import (
	"image"
	"image/color"
)

// The pixel format of the decoded source image.
type Format uint32

const (
	Luminance8 Format = iota
	Luminance16
	Luminance32F
	Rgba8
	Rgba16
	Rgba32F
)

func (f Format) String() string {
	switch f {
	case Luminance8:
		return "L8"
	case Luminance16:
		return "L16"
	case Luminance32F:
		return "L32F"
	case Rgba8:
		return "RGBA8"
	case Rgba16:
		return "RGBA16"
	case Rgba32F:
		return "RGBA32F"
	}
	return "unknown"
}

// Detect the format of a decoded image from its color model.
func formatOf(img image.Image) Format {
	switch img.ColorModel() {
	case color.GrayModel:
		return Luminance8
	case color.Gray16Model:
		return Luminance16
	case color.RGBA64Model, color.NRGBA64Model:
		return Rgba16
	}
	return Rgba8
}
