package renderer

import "time"

type WorkerStat struct {
	// The worker id.
	ID string

	// The block height and the percentage of total frame area it represents.
	BlockH       uint32
	FramePercent float32

	// Render time for assigned block
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Number of surfaces drawn.
	Surfaces int

	// Time spent rasterizing and post-processing.
	RasterTime time.Duration
	PostFXTime time.Duration

	// Total render time for entire frame.
	RenderTime time.Duration
}
