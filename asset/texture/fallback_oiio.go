//go:build oiio

package texture

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/achilleasa/openimageigo"
)

// Decode formats such as EXR or HDR through OpenImageIO. OIIO only reads from
// files so the payload is spooled to a temp file first.
func fallbackDecode(name string, data []byte) (image.Image, error) {
	f, err := os.CreateTemp("", "parallax-*"+filepath.Ext(name))
	if err != nil {
		return nil, err
	}
	pathToFile := f.Name()
	defer os.Remove(pathToFile)
	_, err = f.Write(data)
	f.Close()
	if err != nil {
		return nil, err
	}

	input, err := oiio.OpenImageInput(pathToFile)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	spec := input.Spec()
	numChannels := spec.NumChannels()
	if numChannels != 1 && numChannels != 3 && numChannels != 4 {
		return nil, fmt.Errorf("%w: channel count %d while loading %s", ErrUnsupportedImage, numChannels, name)
	}
	if spec.Depth() != 1 {
		return nil, fmt.Errorf("%w: depth %d while loading %s", ErrUnsupportedImage, spec.Depth(), name)
	}

	imgData, err := input.ReadImageFormat(oiio.TypeFloat, nil)
	if err != nil {
		return nil, fmt.Errorf("texture: could not read data from %s: %s", name, err.Error())
	}
	pixels, ok := imgData.([]float32)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected pixel buffer %T while loading %s", ErrUnsupportedImage, imgData, name)
	}

	w, h := spec.Width(), spec.Height()
	toU16 := func(v float32) uint16 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 0xffff
		}
		return uint16(v*0xffff + 0.5)
	}

	if numChannels == 1 {
		img := image.NewGray16(image.Rect(0, 0, w, h))
		for i, v := range pixels {
			img.SetGray16(i%w, i/w, color.Gray16{Y: toU16(v)})
		}
		return img, nil
	}

	img := image.NewNRGBA64(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		off := i * numChannels
		c := color.NRGBA64{R: toU16(pixels[off]), G: toU16(pixels[off+1]), B: toU16(pixels[off+2]), A: 0xffff}
		if numChannels == 4 {
			c.A = toU16(pixels[off+3])
		}
		img.SetNRGBA64(i%w, i/w, c)
	}
	return img, nil
}
