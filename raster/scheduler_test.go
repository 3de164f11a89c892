package raster

import (
	"testing"
	"time"
)

func TestNaiveScheduler(t *testing.T) {
	type spec struct {
		speed1   float32
		speed2   float32
		frameH   uint32
		expRows1 uint32
		expRows2 uint32
	}
	specs := []spec{
		{1, 2, 10, 4, 6},
		{2, 1, 10, 7, 3},
		{1, 1000, 10, 1, 9},
	}

	for index, s := range specs {
		w1 := makeMockWorker("mock-1", s.speed1)
		w2 := makeMockWorker("mock-2", s.speed2)
		workers := []Worker{w1, w2}

		sch := NaiveScheduler()
		blockAssignment := sch.Schedule(workers, s.frameH)

		if blockAssignment[0] != s.expRows1 {
			t.Fatalf("[spec %d] expected worker 0 to be assigned %d rows; got %d", index, s.expRows1, blockAssignment[0])
		}

		if blockAssignment[1] != s.expRows2 {
			t.Fatalf("[spec %d] expected worker 1 to be assigned %d rows; got %d", index, s.expRows2, blockAssignment[1])
		}
	}
}

func TestPerfectScheduler(t *testing.T) {
	type spec struct {
		frameH   uint32
		rTime1   time.Duration
		rTime2   time.Duration
		expRows1 uint32
		expRows2 uint32
	}
	specs := []spec{
		// First call always behaves like the naive scheduler
		{10, time.Duration(1), time.Duration(5), 5, 5},
		// Second call should use the render times to assign rows
		{10, time.Duration(1), time.Duration(5), 9, 1},
		// This time worker 2 performed much better
		{10, time.Duration(5), time.Duration(1), 7, 3},
	}

	// Workers have same speed
	w1 := makeMockWorker("mock-1", 1)
	w2 := makeMockWorker("mock-2", 1)
	workers := []Worker{w1, w2}

	sch := PerfectScheduler()
	for index, s := range specs {
		w1.stats.RenderTime = s.rTime1
		w2.stats.RenderTime = s.rTime2

		blockAssignment := sch.Schedule(workers, s.frameH)

		if blockAssignment[0] != s.expRows1 {
			t.Fatalf("[spec %d] expected worker 0 to be assigned %d rows; got %d", index, s.expRows1, blockAssignment[0])
		}

		if blockAssignment[1] != s.expRows2 {
			t.Fatalf("[spec %d] expected worker 1 to be assigned %d rows; got %d", index, s.expRows2, blockAssignment[1])
		}

		w1.stats.BlockH = blockAssignment[0]
		w2.stats.BlockH = blockAssignment[1]
	}
}

func TestSchedulerMoreWorkersThanRows(t *testing.T) {
	workers := []Worker{
		makeMockWorker("mock-1", 1),
		makeMockWorker("mock-2", 1),
		makeMockWorker("mock-3", 1),
	}

	blockAssignment := NaiveScheduler().Schedule(workers, 2)
	var total uint32
	for _, rows := range blockAssignment {
		total += rows
	}
	if total != 2 {
		t.Fatalf("expected assignments to add up to 2 rows; got %d (%v)", total, blockAssignment)
	}
}

type mockWorker struct {
	id    string
	speed float32
	stats Stats
}

func makeMockWorker(id string, speed float32) *mockWorker {
	return &mockWorker{
		id:    id,
		speed: speed,
	}
}

func (mw *mockWorker) ID() string {
	return mw.id
}

func (mw *mockWorker) SpeedEstimate() float32 {
	return mw.speed
}

func (mw *mockWorker) Render(_ *Job, _, _ uint32) {
}

func (mw *mockWorker) Stats() *Stats {
	return &mw.stats
}
