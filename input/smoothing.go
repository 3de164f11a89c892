package input

const (
	DefaultSmoothing = float32(0.1)

	DefaultStiffness = float32(200)
	DefaultDamping   = float32(40)
	DefaultMass      = float32(1)

	// Springs are integrated with fixed steps no larger than this so that
	// results only depend on the total elapsed time fed to Step.
	springStep = float32(1.0 / 240.0)
)

// The Filter interface is implemented by pointer smoothing strategies.
type Filter interface {
	// Advance the filter towards target by dt seconds and return the
	// smoothed value.
	Step(target Signal, dt float32) Signal

	// The current smoothed value.
	Value() Signal

	// Jump to value without any transition.
	Reset(value Signal)
}

// Smoother applies per-tick exponential smoothing: s += (target - s) * k.
// The elapsed time is ignored; one call equals one tick.
type Smoother struct {
	Factor float32
	value  Signal
}

// Create a smoother with factor k. Factors outside (0, 1] fall back to
// DefaultSmoothing.
func NewSmoother(k float32) *Smoother {
	if k <= 0 || k > 1 {
		k = DefaultSmoothing
	}
	return &Smoother{Factor: k}
}

func (s *Smoother) Step(target Signal, _ float32) Signal {
	s.value = s.value.Lerp(target, s.Factor)
	return s.value
}

func (s *Smoother) Value() Signal {
	return s.value
}

func (s *Smoother) Reset(value Signal) {
	s.value = value
}

// Spring is a damped spring integrated with semi-implicit Euler.
type Spring struct {
	Stiffness float32
	Damping   float32
	Mass      float32

	value    Signal
	velocity Signal
}

// Create a spring using the default coefficients.
func NewSpring() *Spring {
	return &Spring{
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
		Mass:      DefaultMass,
	}
}

func (s *Spring) Step(target Signal, dt float32) Signal {
	for dt > 0 {
		h := min(dt, springStep)
		dt -= h

		force := target.Sub(s.value).Mul(s.Stiffness).Sub(s.velocity.Mul(s.Damping))
		s.velocity = s.velocity.Add(force.Mul(h / s.Mass))
		s.value = s.value.Add(s.velocity.Mul(h))
	}
	return s.value
}

func (s *Spring) Value() Signal {
	return s.value
}

func (s *Spring) Reset(value Signal) {
	s.value = value
	s.velocity = Signal{}
}

// Distance between two signals.
func Distance(a, b Signal) float32 {
	return a.Sub(b).Len()
}
