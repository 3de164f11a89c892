package input

import (
	"testing"

	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

func TestTrackerUpdate(t *testing.T) {
	vp := Viewport{Left: 10, Top: 20, Width: 200, Height: 100}

	type spec struct {
		x, y float32
		exp  Signal
	}

	specs := []spec{
		{110, 70, Signal{0, 0}},
		{10, 20, Signal{-1, 1}},
		{210, 120, Signal{1, -1}},
		{160, 45, Signal{0.5, 0.5}},
	}

	tr := NewTracker()
	for index, s := range specs {
		got, err := tr.Update(s.x, s.y, vp)
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if Distance(got, s.exp) > 1e-6 {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
		if tr.Raw() != got {
			t.Fatalf("[spec %d] expected raw value to match returned signal", index)
		}
	}
}

func TestTrackerDegenerateViewport(t *testing.T) {
	tr := NewTracker()
	prev, _ := tr.Update(150, 50, Viewport{Width: 200, Height: 100})

	for index, vp := range []Viewport{{Width: 0, Height: 100}, {Width: 100, Height: 0}} {
		got, err := tr.Update(5, 5, vp)
		if err != ErrDegenerateViewport {
			t.Fatalf("[spec %d] expected ErrDegenerateViewport; got %v", index, err)
		}
		if got != prev || tr.Raw() != prev {
			t.Fatalf("[spec %d] expected previous value %v to be retained; got %v", index, prev, got)
		}
	}
}

func TestTrackerLeave(t *testing.T) {
	tr := NewTracker()
	tr.Update(0, 0, Viewport{Width: 10, Height: 10})
	tr.Leave()
	if got := tr.Raw(); got != (Signal{}) {
		t.Fatalf("expected origin after leave; got %v", got)
	}
}

func TestSmootherConvergence(t *testing.T) {
	k := float32(0.1)
	s := NewSmoother(k)
	target := Signal{1, -1}
	initial := Distance(s.Value(), target)

	for n := 1; n <= 60; n++ {
		s.Step(target, 1.0/60)
		bound := initial * math32.Pow(1-k, float32(n))
		if got := Distance(s.Value(), target); got > bound+1e-5 {
			t.Fatalf("expected distance after %d steps to be <= %f; got %f", n, bound, got)
		}
	}
}

func TestSmootherInvalidFactor(t *testing.T) {
	for _, k := range []float32{0, -1, 2} {
		if got := NewSmoother(k).Factor; got != DefaultSmoothing {
			t.Fatalf("expected factor %f to fall back to %f; got %f", k, DefaultSmoothing, got)
		}
	}
}

func TestSpringSettles(t *testing.T) {
	s := NewSpring()
	target := Signal{0.5, 0.25}
	for i := 0; i < 120; i++ {
		s.Step(target, 1.0/60)
	}
	if got := Distance(s.Value(), target); got > 1e-3 {
		t.Fatalf("expected spring to settle within 1e-3 of the target; got distance %f", got)
	}

	s.Reset(types.XY(0, 0))
	if s.Value() != (Signal{}) {
		t.Fatalf("expected reset to origin; got %v", s.Value())
	}
}

func TestSpringDeterministic(t *testing.T) {
	run := func() Signal {
		s := NewSpring()
		for i := 0; i < 30; i++ {
			s.Step(Signal{1, 1}, 1.0/60)
		}
		return s.Value()
	}

	if a, b := run(), run(); a != b {
		t.Fatalf("expected identical results for identical inputs; got %v and %v", a, b)
	}
}
