package renderer

import (
	"fmt"
	"runtime"

	"github.com/achilleasa/parallax/postfx"
	"github.com/achilleasa/parallax/types"
)

// How the raw pointer signal is smoothed.
type SmoothingMode uint8

const (
	LerpSmoothing SmoothingMode = iota
	SpringSmoothing
)

func (m SmoothingMode) String() string {
	switch m {
	case LerpSmoothing:
		return "lerp"
	case SpringSmoothing:
		return "spring"
	}
	return "unknown"
}

// Parse a smoothing mode name.
func ParseSmoothingMode(name string) (SmoothingMode, error) {
	switch name {
	case "lerp":
		return LerpSmoothing, nil
	case "spring":
		return SpringSmoothing, nil
	}
	return LerpSmoothing, fmt.Errorf("renderer: unknown smoothing mode %q", name)
}

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of raster workers; 0 selects runtime.NumCPU.
	Workers int

	// Pointer smoothing.
	SmoothingMode SmoothingMode
	Smoothing     float32

	// Fixed simulation step in seconds. If zero, the wall clock time between
	// frames is used.
	TimeStep float32

	// Seed for the particle field.
	Seed uint64

	// Post-processing settings.
	PostProcessing bool
	Effects        postfx.Settings

	// Performance mode disables post-processing and thins out particles.
	PerformanceMode bool

	// Color used to clear the frame.
	Background types.Vec4
}

// Default renderer options.
func DefaultOptions() Options {
	return Options{
		FrameW:         800,
		FrameH:         600,
		Smoothing:      0.1,
		Seed:           1,
		PostProcessing: true,
		Effects:        postfx.DefaultSettings(),
		Background:     types.XYZW(0, 0, 0, 1),
	}
}

func (o Options) workerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}
