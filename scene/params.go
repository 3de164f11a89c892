package scene

import (
	"fmt"
	"strings"

	"github.com/achilleasa/parallax/asset/preset"
	"github.com/achilleasa/parallax/shading"
	"github.com/achilleasa/parallax/types"
)

// Strategy selects how the depth map is turned into surfaces.
type Strategy uint8

const (
	// Infill quad, background quad and displaced middleground/foreground grids.
	ThreeSurface Strategy = iota

	// A displaced, lit base grid plus a stack of undisplaced slices.
	SlicedLayers
)

func (s Strategy) String() string {
	switch s {
	case ThreeSurface:
		return "three-surface"
	case SlicedLayers:
		return "sliced"
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// Parse a strategy name as returned by String.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "three-surface", "three":
		return ThreeSurface, nil
	case "sliced", "slices":
		return SlicedLayers, nil
	}
	return 0, fmt.Errorf("scene: unknown geometry strategy %q", name)
}

const (
	DefaultLayerCount      = 8
	DefaultBaseDepth       = float32(0.1)
	DefaultNormalIntensity = float32(1)
	DefaultSubdivisions    = 256
)

// Params is the user facing parameter set.
type Params struct {
	DepthScale         float32
	LayerBlending      float32
	BackgroundCutoff   float32
	MiddlegroundCutoff float32
	LayerCount         int
	BaseDepth          float32
	NormalIntensity    float32
	IsStatic           bool
}

func DefaultParams() Params {
	return Params{
		DepthScale:         preset.DefaultDepthScale,
		LayerBlending:      preset.DefaultLayerBlending,
		BackgroundCutoff:   preset.DefaultBackgroundCutoff,
		MiddlegroundCutoff: preset.DefaultMiddlegroundCutoff,
		LayerCount:         DefaultLayerCount,
		BaseDepth:          DefaultBaseDepth,
		NormalIntensity:    DefaultNormalIntensity,
	}
}

// Set the background cutoff clamped to [0, 1]. The middleground cutoff is
// raised if needed so that it never falls below the background cutoff.
func (p *Params) SetBackgroundCutoff(v float32) {
	p.BackgroundCutoff = types.Clamp(v, 0, 1)
	if p.MiddlegroundCutoff < p.BackgroundCutoff {
		p.MiddlegroundCutoff = p.BackgroundCutoff
	}
}

// Set the middleground cutoff clamped to [0, 1]. The background cutoff is
// lowered if needed so that it never exceeds the middleground cutoff.
func (p *Params) SetMiddlegroundCutoff(v float32) {
	p.MiddlegroundCutoff = types.Clamp(v, 0, 1)
	if p.BackgroundCutoff > p.MiddlegroundCutoff {
		p.BackgroundCutoff = p.MiddlegroundCutoff
	}
}

// Return a copy with every field forced into its valid range.
func (p Params) Sanitized() Params {
	p.DepthScale = max(p.DepthScale, 0)
	if p.LayerBlending <= 0 {
		p.LayerBlending = preset.DefaultLayerBlending
	}
	p.LayerCount = max(p.LayerCount, 1)
	mid := p.MiddlegroundCutoff
	p.SetBackgroundCutoff(p.BackgroundCutoff)
	p.SetMiddlegroundCutoff(max(mid, p.BackgroundCutoff))
	return p
}

// Overwrite the parameters defined by a preset.
func (p *Params) ApplyPreset(s *preset.Settings) {
	p.DepthScale = float32(s.DepthScale)
	p.LayerBlending = float32(s.LayerBlending)
	p.BackgroundCutoff = float32(s.BackgroundCutoff)
	p.MiddlegroundCutoff = float32(s.MiddlegroundCutoff)
	p.IsStatic = s.IsStatic
	if s.LayerCount != nil {
		p.LayerCount = *s.LayerCount
	}
	if s.BaseDepth != nil {
		p.BaseDepth = float32(*s.BaseDepth)
	}
	if s.NormalIntensity != nil {
		p.NormalIntensity = float32(*s.NormalIntensity)
	}
}

// Capture the parameters as preset settings.
func (p Params) Preset() *preset.Settings {
	layers := p.LayerCount
	baseDepth := float64(p.BaseDepth)
	normalIntensity := float64(p.NormalIntensity)
	return &preset.Settings{
		BackgroundCutoff:   float64(p.BackgroundCutoff),
		MiddlegroundCutoff: float64(p.MiddlegroundCutoff),
		DepthScale:         float64(p.DepthScale),
		LayerBlending:      float64(p.LayerBlending),
		IsStatic:           p.IsStatic,
		LayerCount:         &layers,
		BaseDepth:          &baseDepth,
		NormalIntensity:    &normalIntensity,
	}
}

// LayerConfig combines the parameters with the geometry layout options.
type LayerConfig struct {
	Params

	Strategy     Strategy
	Subdivisions int

	// Depth split between the base and the slices of the sliced strategy.
	SliceThreshold float32

	// Soften the slicing boundary.
	EdgeFeather bool

	// Replace the depth map with a neutral one while IsStatic is set.
	FlattenStatic bool
}

func DefaultLayerConfig() LayerConfig {
	return LayerConfig{
		Params:         DefaultParams(),
		Strategy:       ThreeSurface,
		Subdivisions:   DefaultSubdivisions,
		SliceThreshold: shading.DefaultSliceThreshold,
	}
}

// Return a copy with every field forced into its valid range.
func (c LayerConfig) Sanitized() LayerConfig {
	c.Params = c.Params.Sanitized()
	if c.Subdivisions < 1 {
		c.Subdivisions = DefaultSubdivisions
	}
	c.SliceThreshold = types.Clamp(c.SliceThreshold, 0, 1)
	return c
}

// Returns true if switching from c to other requires new surfaces.
func (c LayerConfig) layoutChanged(other LayerConfig) bool {
	return c.Strategy != other.Strategy ||
		c.Subdivisions != other.Subdivisions ||
		c.LayerCount != other.LayerCount ||
		c.DepthScale != other.DepthScale
}
