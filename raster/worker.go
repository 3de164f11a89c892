package raster

import (
	"fmt"
	"time"
)

// Worker statistics for the last rendered frame.
type Stats struct {
	// The rendered block start row and height.
	BlockY uint32
	BlockH uint32

	// The time for rasterizing this block.
	RenderTime time.Duration
}

// The Worker interface is implemented by objects that rasterize a horizontal
// block of the frame.
type Worker interface {
	// Get worker id.
	ID() string

	// Relative speed estimate used for the first frame split.
	SpeedEstimate() float32

	// Rasterize rows [blockY, blockY+blockH) of job.
	Render(job *Job, blockY, blockH uint32)

	// Retrieve last frame statistics.
	Stats() *Stats
}

// A worker rasterizing on the calling goroutine.
type cpuWorker struct {
	id    string
	stats Stats
}

// Create count CPU workers.
func NewCPUWorkers(count int) []Worker {
	workers := make([]Worker, count)
	for i := range workers {
		workers[i] = &cpuWorker{id: fmt.Sprintf("cpu-%d", i)}
	}
	return workers
}

func (w *cpuWorker) ID() string {
	return w.id
}

func (w *cpuWorker) SpeedEstimate() float32 {
	return 1
}

func (w *cpuWorker) Stats() *Stats {
	return &w.stats
}

func (w *cpuWorker) Render(job *Job, blockY, blockH uint32) {
	start := time.Now()
	y0, y1 := int(blockY), int(blockY+blockH)
	for i := range job.draws {
		job.draws[i].rasterize(job.frame, y0, y1)
	}
	w.stats = Stats{BlockY: blockY, BlockH: blockH, RenderTime: time.Since(start)}
}
