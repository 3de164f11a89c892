package postfx

import (
	"runtime"

	"github.com/achilleasa/parallax/log"
	"github.com/achilleasa/parallax/raster"
)

// Default effect intensities.
const (
	DefaultBloomIntensity = float32(0.5)
	DefaultAtmosphere     = float32(0.5)
	DefaultSSAOIntensity  = float32(1)
	DefaultSSAORadius     = float32(0.1)

	// The camera sits 2 units in front of the foreground plane.
	DefaultFocusDistance = float32(2)
	DefaultFocusRange    = float32(1)
	DefaultMaxBlur       = float32(3)
)

// Settings configure the effect stack.
type Settings struct {
	BloomIntensity float32

	// Weight of the god rays.
	Atmosphere float32

	SSAOIntensity float32
	SSAORadius    float32

	FocusDistance float32
	FocusRange    float32
	MaxBlur       float32

	// Number of goroutines per pass; 0 selects runtime.NumCPU.
	Workers int
}

// Default effect settings.
func DefaultSettings() Settings {
	return Settings{
		BloomIntensity: DefaultBloomIntensity,
		Atmosphere:     DefaultAtmosphere,
		SSAOIntensity:  DefaultSSAOIntensity,
		SSAORadius:     DefaultSSAORadius,
		FocusDistance:  DefaultFocusDistance,
		FocusRange:     DefaultFocusRange,
		MaxBlur:        DefaultMaxBlur,
	}
}

// Stack applies a fixed sequence of passes to rendered frames.
type Stack struct {
	logger  log.Logger
	enabled bool
	passes  []Pass
	scratch *raster.Frame
}

// Create an enabled stack with the passes in their fixed order: ambient
// occlusion, anti-aliasing, depth of field, bloom, god rays, chromatic
// aberration and vignette.
func NewStack(settings Settings) *Stack {
	workers := settings.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Stack{
		logger:  log.New("postfx"),
		enabled: true,
		passes: []Pass{
			&SSAO{Intensity: settings.SSAOIntensity, Radius: settings.SSAORadius, Workers: workers},
			&FXAA{Workers: workers},
			&DepthOfField{FocusDistance: settings.FocusDistance, FocusRange: settings.FocusRange, MaxBlur: settings.MaxBlur, Workers: workers},
			&Bloom{Intensity: settings.BloomIntensity, Threshold: DefaultBloomThreshold, Smoothing: DefaultBloomSmoothing, Workers: workers},
			&GodRays{
				SunPosition: DefaultSunPosition,
				SunRadius:   DefaultSunRadius,
				Density:     DefaultGodRaysDensity,
				Decay:       DefaultGodRaysDecay,
				Weight:      settings.Atmosphere,
				Exposure:    DefaultGodRaysExposure,
				Samples:     DefaultGodRaysSamples,
				ClampMax:    DefaultGodRaysClampMax,
				Workers:     workers,
			},
			&ChromaticAberration{Workers: workers},
			&Vignette{Offset: DefaultVignetteOffset, Darkness: DefaultVignetteDarkness, Workers: workers},
		},
	}
}

// Toggle the whole stack.
func (s *Stack) SetEnabled(enabled bool) {
	if s.enabled != enabled {
		s.logger.Infof("post-processing enabled: %t", enabled)
	}
	s.enabled = enabled
}

func (s *Stack) Enabled() bool {
	return s.enabled
}

// The passes in application order.
func (s *Stack) Passes() []Pass {
	return s.passes
}

// Run every pass over frame in place. A disabled stack leaves the frame
// untouched.
func (s *Stack) Apply(frame *raster.Frame, in Inputs) {
	if !s.enabled || len(s.passes) == 0 {
		return
	}

	if s.scratch == nil {
		s.scratch = raster.NewFrame(frame.Width, frame.Height)
	}
	s.scratch.Resize(frame.Width, frame.Height)
	copy(s.scratch.Depth, frame.Depth)

	src, dst := frame, s.scratch
	for _, p := range s.passes {
		p.Apply(dst, src, &in)
		src, dst = dst, src
	}

	if src != frame {
		copy(frame.Color, src.Color)
	}
}
