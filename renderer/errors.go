package renderer

import "errors"

var (
	ErrNoWorkers          = errors.New("renderer: no raster workers attached")
	ErrSceneNotDefined    = errors.New("renderer: no scene defined")
	ErrDegenerateViewport = errors.New("renderer: viewport has zero width or height")
)
