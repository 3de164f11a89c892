package preset

import "errors"

var (
	ErrInvalidPreset = errors.New("preset: invalid preset")
)
