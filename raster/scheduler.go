package raster

import (
	"math"
	"time"
)

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign to the pool
	// of workers using feedback collected from previous frames.
	//
	// This function returns the block height assignment for each worker
	// in the input list.
	Schedule(workers []Worker, frameH uint32) []uint32
}

// The naive scheduler splits the frame according to the static speed estimate
// of each worker.
type naiveScheduler struct {
	blockAssignment []uint32
}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return &naiveScheduler{}
}

func (sch *naiveScheduler) Schedule(workers []Worker, frameH uint32) []uint32 {
	if len(sch.blockAssignment) != len(workers) {
		sch.blockAssignment = make([]uint32, len(workers))
	}
	return assignBySpeed(sch.blockAssignment, workers, frameH)
}

// The perfect scheduler assumes that the volume of rasterization work between
// two subsequent frames is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance.
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Split frame into blocks of variable height and assign to the pool
// of workers using feedback collected from previous frames.
//
// When previous frame information is available the scheduler uses the
// following formula for estimating the workload for worker w and frame i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
func (sch *perfectScheduler) Schedule(workers []Worker, frameH uint32) []uint32 {
	// If this is the first time we try to schedule or the number of workers
	// has changed we need to reset the block assignments
	if len(sch.blockAssignment) != len(workers) {
		sch.blockAssignment = make([]uint32, len(workers))
		return assignBySpeed(sch.blockAssignment, workers, frameH)
	}

	// Use last frame statistics
	var total float64
	for _, w := range workers {
		total += rowsPerNano(w.Stats())
	}
	if total == 0 {
		return assignBySpeed(sch.blockAssignment, workers, frameH)
	}

	scaler := float64(frameH) / total
	for idx, w := range workers {
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(rowsPerNano(w.Stats())*scaler)))
	}

	return balance(sch.blockAssignment, frameH)
}

func rowsPerNano(stats *Stats) float64 {
	renderTime := stats.RenderTime
	if renderTime <= 0 {
		renderTime = time.Nanosecond
	}
	return float64(stats.BlockH) / float64(renderTime)
}

// Distribute rows proportionally to the speed estimate of each worker.
func assignBySpeed(assignment []uint32, workers []Worker, frameH uint32) []uint32 {
	var total float64
	for _, w := range workers {
		total += float64(w.SpeedEstimate())
	}
	if total <= 0 {
		total = float64(len(workers))
	}

	scaler := float64(frameH) / total
	for idx, w := range workers {
		assignment[idx] = uint32(math.Max(1.0, math.Floor(float64(w.SpeedEstimate())*scaler)))
	}

	return balance(assignment, frameH)
}

// Make the assignment add up to frameH. Missing rows go to the first worker;
// excess rows (caused by the one row minimum) are taken from the largest blocks.
func balance(assignment []uint32, frameH uint32) []uint32 {
	var scheduledRows uint32
	for _, rows := range assignment {
		scheduledRows += rows
	}

	if scheduledRows <= frameH {
		assignment[0] += frameH - scheduledRows
		return assignment
	}

	for excess := scheduledRows - frameH; excess > 0; excess-- {
		largest := 0
		for idx, rows := range assignment {
			if rows > assignment[largest] {
				largest = idx
			}
		}
		if assignment[largest] == 0 {
			break
		}
		assignment[largest]--
	}
	return assignment
}
