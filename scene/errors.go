package scene

import "errors"

var (
	ErrSourceNotLoaded = errors.New("scene: color and depth images must be loaded")
	ErrLoadSuperseded  = errors.New("scene: load superseded by a newer request")
)
