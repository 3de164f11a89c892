package motion

import (
	"github.com/achilleasa/parallax/input"
	"github.com/achilleasa/parallax/log"
	"github.com/achilleasa/parallax/types"
	"github.com/chewxy/math32"
)

// Mode selects whether the pointer drives the scene.
type Mode uint8

const (
	Interactive Mode = iota
	Static
)

func (m Mode) String() string {
	if m == Static {
		return "static"
	}
	return "interactive"
}

const (
	maxYaw        = float32(0.4)
	maxPitch      = float32(0.2)
	cameraTravel  = float32(0.1)
	lightZ        = float32(1.5)
	baseIntensity = float32(2.5)
	pulseAmount   = float32(0.5)
	pulseRate     = float32(4)

	// Light intensity of the neutral pose.
	StaticIntensity = float32(1.5)

	chromaticScale = float32(0.001)

	// Values within this distance of their target snap to it.
	snapEpsilon = float32(1e-4)
)

// State is the smoothed output of the controller for one tick.
type State struct {
	// Smoothed pointer signal.
	Pointer input.Signal

	// Group rotation around X (pitch) and Y (yaw) in radians.
	Pitch float32
	Yaw   float32

	// Camera eye offset in the XY plane.
	CameraOffset types.Vec2

	LightPosition  types.Vec3
	LightIntensity float32

	// Chromatic aberration offset in UV units.
	ChromaticOffset types.Vec2
}

// The neutral pose reached in static mode.
func NeutralState() State {
	return State{
		LightPosition:  types.XYZ(0, 0, lightZ),
		LightIntensity: StaticIntensity,
	}
}

// Config for a motion controller.
type Config struct {
	// Exponential smoothing factor applied to every derived value.
	Smoothing float32

	// Pointer filter; defaults to a lerp smoother using Smoothing.
	Filter input.Filter

	ParticleCount int
	Seed          uint64
}

// Controller derives camera, group, light and effect parameters from the
// pointer signal every tick.
type Controller struct {
	logger log.Logger

	k       float32
	filter  input.Filter
	mode    Mode
	elapsed float32

	viewWidth  float32
	viewHeight float32

	state     State
	particles *Particles
}

// Create a controller in interactive mode at the neutral pose.
func NewController(cfg Config) *Controller {
	k := cfg.Smoothing
	if k <= 0 || k > 1 {
		k = input.DefaultSmoothing
	}
	filter := cfg.Filter
	if filter == nil {
		filter = input.NewSmoother(k)
	}

	return &Controller{
		logger:     log.New("motion"),
		k:          k,
		filter:     filter,
		viewWidth:  1,
		viewHeight: 1,
		state:      NeutralState(),
		particles:  NewParticles(cfg.ParticleCount, cfg.Seed),
	}
}

// Switch mode. Targets change immediately while the effect is smoothed over
// the following ticks.
func (c *Controller) SetMode(mode Mode) {
	if c.mode == mode {
		return
	}
	c.logger.Infof("switching to %s mode", mode)
	c.mode = mode
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// Set the world-space extents of the viewport used to place the light.
func (c *Controller) SetViewSize(width, height float32) {
	c.viewWidth, c.viewHeight = width, height
}

// The state computed by the last Tick.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Particles() *Particles {
	return c.particles
}

// Advance the controller by dt seconds using the latest raw pointer signal.
func (c *Controller) Tick(raw input.Signal, dt float32) State {
	c.elapsed += dt

	if c.mode == Static {
		raw = input.Signal{}
	}
	p := c.filter.Step(raw, dt)

	target := NeutralState()
	if c.mode == Interactive {
		target.Yaw = types.MapRange(p[0], -1, 1, -maxYaw, maxYaw)
		target.Pitch = types.MapRange(p[1], -1, 1, maxPitch, -maxPitch)
		target.CameraOffset = types.XY(
			types.MapRange(p[0], -1, 1, cameraTravel, -cameraTravel),
			types.MapRange(p[1], -1, 1, cameraTravel, -cameraTravel),
		)
		target.LightPosition = types.XYZ(p[0]*c.viewWidth/2, p[1]*c.viewHeight/2, lightZ)
		target.LightIntensity = baseIntensity + math32.Sin(c.elapsed*pulseRate)*pulseAmount
	}

	s := &c.state
	s.Pointer = p
	s.Yaw = c.approach(s.Yaw, target.Yaw)
	s.Pitch = c.approach(s.Pitch, target.Pitch)
	s.CameraOffset = types.XY(c.approach(s.CameraOffset[0], target.CameraOffset[0]), c.approach(s.CameraOffset[1], target.CameraOffset[1]))
	s.LightPosition = types.XYZ(
		c.approach(s.LightPosition[0], target.LightPosition[0]),
		c.approach(s.LightPosition[1], target.LightPosition[1]),
		lightZ,
	)
	s.LightIntensity = c.approach(s.LightIntensity, target.LightIntensity)
	s.ChromaticOffset = p.Mul(p.Len() * chromaticScale)

	c.particles.Update(p, dt)
	return c.state
}

// One exponential smoothing step towards target.
func (c *Controller) approach(current, target float32) float32 {
	next := current + (target-current)*c.k
	if math32.Abs(target-next) < snapEpsilon {
		return target
	}
	return next
}
