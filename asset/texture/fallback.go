//go:build !oiio

package texture

import (
	"fmt"
	"image"
)

func fallbackDecode(name string, _ []byte) (image.Image, error) {
	return nil, fmt.Errorf("%w: %s (rebuild with -tags oiio for OpenImageIO support)", ErrUnsupportedImage, name)
}
