package texture

import (
	"errors"
	"fmt"
)

var (
	ErrReleased         = errors.New("texture: pixel data has been released")
	ErrUnsupportedImage = errors.New("texture: unsupported image format")
)

// AssetLoadError is returned when a color or depth image cannot be fetched or decoded.
type AssetLoadError struct {
	// The resource path that failed.
	Path string

	// The role of the image (color or depth).
	Kind string

	Err error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("texture: could not load %s image %s: %s", e.Kind, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}
