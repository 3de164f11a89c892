package shading

import (
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

const (
	// Fragments with a lower coverage are not rasterized.
	DiscardThreshold = float32(0.01)

	// Depth split between the displaced base and the sliced layers.
	DefaultSliceThreshold = float32(0.5)

	// Mip level sampled by the infill surface.
	InfillLod = float32(5)
)

// Coverage of the three-surface model bands for a depth sample.
func ThreeBandAlpha(role Role, depth, bgCutoff, midCutoff, blend float32) float32 {
	switch role {
	case Foreground:
		return types.Smoothstep(midCutoff-blend, midCutoff+blend, depth)
	case Middleground:
		return math32.Min(
			types.Smoothstep(bgCutoff-blend, bgCutoff+blend, depth),
			1-types.Smoothstep(midCutoff-blend, midCutoff+blend, depth),
		)
	case Background:
		return 1 - types.Smoothstep(bgCutoff-blend, bgCutoff+blend, depth)
	}
	return 1
}

// Coverage of slice index out of count for a depth sample. The sample is
// flipped (d = 1 - sample) and only d >= threshold is distributed across the
// slices. The second return value is false when the fragment must be
// discarded. A single slice sits at layer depth 0.
func SlicedAlpha(index, count int, sample, threshold, blend float32, feather bool) (float32, bool) {
	d := 1 - sample
	if d < threshold {
		return 0, false
	}

	var layerDepth float32
	if count > 1 {
		layerDepth = (float32(index) / float32(count-1)) * (1 - threshold)
	}
	pixelDepth := d - threshold

	alpha := 1 - types.Smoothstep(0, blend, math32.Abs(pixelDepth-layerDepth))
	if feather {
		alpha *= types.Smoothstep(threshold-blend/2, threshold+blend/2, d)
	}
	if alpha < DiscardThreshold {
		return alpha, false
	}
	return alpha, true
}

// The level of detail sampled by the infill surface for a texture whose
// smallest mip is maxLevel.
func InfillLevel(maxLevel int) float32 {
	return math32.Min(InfillLod, float32(max(maxLevel, 0)))
}
