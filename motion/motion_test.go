package motion

import (
	"testing"

	"github.com/achilleasa/parallax/input"
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

const dt = float32(1.0 / 60)

func TestInteractiveTargets(t *testing.T) {
	c := NewController(Config{Smoothing: 0.1, ParticleCount: 1})
	c.SetViewSize(4, 2)

	var s State
	for i := 0; i < 400; i++ {
		s = c.Tick(input.Signal{1, 1}, dt)
	}

	type spec struct {
		name string
		got  float32
		exp  float32
	}

	specs := []spec{
		{"yaw", s.Yaw, 0.4},
		{"pitch", s.Pitch, -0.2},
		{"camera x", s.CameraOffset[0], -0.1},
		{"camera y", s.CameraOffset[1], -0.1},
		{"light x", s.LightPosition[0], 2},
		{"light y", s.LightPosition[1], 1},
		{"light z", s.LightPosition[2], 1.5},
	}
	for _, sp := range specs {
		if !types.ApproxEqual(sp.got, sp.exp, 1e-3) {
			t.Fatalf("expected %s to converge to %f; got %f", sp.name, sp.exp, sp.got)
		}
	}

	if s.LightIntensity < 2-1e-3 || s.LightIntensity > 3+1e-3 {
		t.Fatalf("expected pulsing intensity in [2, 3]; got %f", s.LightIntensity)
	}
}

func TestSmoothedTransitions(t *testing.T) {
	k := float32(0.1)
	c := NewController(Config{Smoothing: k, ParticleCount: 1})

	prev := c.State()
	for i := 0; i < 30; i++ {
		s := c.Tick(input.Signal{-1, 0.5}, dt)
		// A single tick covers at most a k fraction of the full yaw range
		if step := math32.Abs(s.Yaw - prev.Yaw); step > k*2*maxYaw+1e-6 {
			t.Fatalf("expected a smoothed yaw change; got a jump of %f at tick %d", step, i)
		}
		prev = s
	}
	if prev.Yaw >= 0 {
		t.Fatalf("expected yaw to move towards the negative pointer; got %f", prev.Yaw)
	}
}

func TestStaticReturnsToNeutral(t *testing.T) {
	c := NewController(Config{Smoothing: 0.1, ParticleCount: 1})
	c.SetViewSize(2, 2)
	for i := 0; i < 100; i++ {
		c.Tick(input.Signal{0.8, -0.6}, dt)
	}

	c.SetMode(Static)
	if c.Mode() != Static {
		t.Fatalf("expected static mode; got %s", c.Mode())
	}

	prev := c.State()
	for i := 0; i < 400; i++ {
		s := c.Tick(input.Signal{0.8, -0.6}, dt)
		if math32.Abs(s.Yaw) > math32.Abs(prev.Yaw) || math32.Abs(s.Pitch) > math32.Abs(prev.Pitch) {
			t.Fatalf("expected rotation to shrink monotonically at tick %d; got %f/%f after %f/%f", i, s.Yaw, s.Pitch, prev.Yaw, prev.Pitch)
		}
		if math32.Abs(s.LightIntensity-StaticIntensity) > math32.Abs(prev.LightIntensity-StaticIntensity) {
			t.Fatalf("expected intensity to approach %f monotonically at tick %d", StaticIntensity, i)
		}
		prev = s
	}

	neutral := NeutralState()
	if prev.Yaw != 0 || prev.Pitch != 0 || prev.CameraOffset != (types.Vec2{}) {
		t.Fatalf("expected the neutral pose; got %+v", prev)
	}
	if prev.LightPosition != neutral.LightPosition || prev.LightIntensity != neutral.LightIntensity {
		t.Fatalf("expected the neutral light; got %v @ %f", prev.LightPosition, prev.LightIntensity)
	}
}

func TestChromaticOffset(t *testing.T) {
	c := NewController(Config{Filter: input.NewSmoother(1), ParticleCount: 1})
	s := c.Tick(input.Signal{0.6, 0.8}, dt)

	exp := types.XY(0.0006, 0.0008)
	if !types.ApproxEqual(s.ChromaticOffset[0], exp[0], 1e-7) || !types.ApproxEqual(s.ChromaticOffset[1], exp[1], 1e-7) {
		t.Fatalf("expected chromatic offset %v; got %v", exp, s.ChromaticOffset)
	}

	c.SetMode(Static)
	if s = c.Tick(input.Signal{0.6, 0.8}, dt); s.ChromaticOffset != (types.Vec2{}) {
		t.Fatalf("expected no chromatic offset in static mode; got %v", s.ChromaticOffset)
	}
}

func TestParticles(t *testing.T) {
	a := NewParticles(DefaultParticleCount, 42)
	b := NewParticles(DefaultParticleCount, 42)
	if a.Len() != 200 || NewParticles(PerformanceParticleCount, 1).Len() != 50 {
		t.Fatal("unexpected particle count")
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatal("expected identical particles for identical seeds")
		}
		p := a.Positions[i]
		if math32.Abs(p[0]) > 5 || math32.Abs(p[1]) > 5 || p[2] < -3.5 || p[2] > 1.5 {
			t.Fatalf("expected particle %d inside the spawn box; got %v", i, p)
		}
	}

	p := NewParticles(2, 7)
	p.Velocities[0] = types.Vec3{}
	p.Positions[0] = types.XYZ(0, 0, 0)
	p.Velocities[1] = types.Vec3{}
	p.Positions[1] = types.XYZ(4.99, 0, 0)

	p.Update(input.Signal{-1, 0}, 0.1)
	if !types.ApproxEqual(p.Positions[0][0], 0.05, 1e-6) {
		t.Fatalf("expected the particle to move against the pointer; got %v", p.Positions[0])
	}
	if p.Positions[1][2] != particleResetZ {
		t.Fatalf("expected the particle leaving the box to respawn at z %f; got %v", particleResetZ, p.Positions[1])
	}
}
