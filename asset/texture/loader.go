package texture

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/achilleasa/parallax/asset"
	"github.com/achilleasa/parallax/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var logger = log.New("texture")

// DepthProvider generates a depth map for a color image. Implementations
// typically call out to an external estimation service; failures are
// surfaced to the caller verbatim.
type DepthProvider interface {
	GenerateDepth(ctx context.Context, color image.Image) (image.Image, error)
}

// Options controlling how source images are turned into textures.
type Options struct {
	// Scale color images down so that neither dimension exceeds this
	// value. Zero disables the limit.
	MaxColorSize int

	// Treat black as near in depth maps.
	InvertDepth bool
}

// Fetch and decode the image referenced by uri. Formats not understood by the
// registered Go decoders are handed to the fallback decoder (OpenImageIO when
// built with the oiio tag).
func Decode(ctx context.Context, uri string) (image.Image, error) {
	res, err := asset.NewResourceContext(ctx, uri, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	data, err := io.ReadAll(res)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		logger.Debugf("decoded %s image %s (%dx%d)", format, res.Path(), img.Bounds().Dx(), img.Bounds().Dy())
		return img, nil
	}
	if !errors.Is(err, image.ErrFormat) {
		return nil, err
	}

	logger.Debugf("no registered decoder for %s; trying fallback decoder", res.Path())
	return fallbackDecode(res.RemotePath(), data)
}

// Load a color texture.
func LoadColor(ctx context.Context, uri string, opts Options) (*Color, error) {
	img, err := Decode(ctx, uri)
	if err != nil {
		return nil, &AssetLoadError{Path: uri, Kind: "color", Err: err}
	}
	tex := NewColor(img, opts.MaxColorSize)
	logger.Infof("loaded color texture %s: %dx%d %s with %d mip levels", uri, tex.Width, tex.Height, tex.Format, tex.MaxLevel()+1)
	return tex, nil
}

// Load a depth texture.
func LoadDepth(ctx context.Context, uri string, opts Options) (*Depth, error) {
	img, err := Decode(ctx, uri)
	if err != nil {
		return nil, &AssetLoadError{Path: uri, Kind: "depth", Err: err}
	}
	tex := NewDepth(img, opts.InvertDepth)
	logger.Infof("loaded depth texture %s: %dx%d %s", uri, tex.Width, tex.Height, tex.Format)
	return tex, nil
}

// Generate a depth texture for color using provider.
func GenerateDepth(ctx context.Context, provider DepthProvider, color *Color, opts Options) (*Depth, error) {
	src, err := color.Image()
	if err != nil {
		return nil, &AssetLoadError{Path: "generated", Kind: "depth", Err: err}
	}
	img, err := provider.GenerateDepth(ctx, src)
	if err != nil {
		return nil, &AssetLoadError{Path: "generated", Kind: "depth", Err: err}
	}
	return NewDepth(img, opts.InvertDepth), nil
}
