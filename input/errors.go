package input

import "errors"

var (
	ErrDegenerateViewport = errors.New("input: viewport has zero width or height")
)
