package motion

import (
	"math/rand/v2"

	"github.com/achilleasa/parallax/input"
	"github.com/achilleasa/parallax/types"
)

const (
	DefaultParticleCount     = 200
	PerformanceParticleCount = 50

	particleBound    = float32(5)
	particleMaxZ     = float32(2)
	particleResetZ   = float32(-3)
	particleSpeed    = float32(50)
	particleParallax = float32(0.5)
)

// Particles is a field of slowly drifting points that react to the pointer.
type Particles struct {
	Positions  []types.Vec3
	Velocities []types.Vec3

	rng *rand.Rand
}

// Create count particles scattered in a 10x10x5 box. The seed makes the
// simulation reproducible.
func NewParticles(count int, seed uint64) *Particles {
	p := &Particles{
		Positions:  make([]types.Vec3, count),
		Velocities: make([]types.Vec3, count),
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	for i := range p.Positions {
		p.Positions[i] = types.XYZ(p.centered()*10, p.centered()*10, p.centered()*5-1)
		p.Velocities[i] = types.XYZ(p.centered()*0.002, p.centered()*0.002, p.centered()*0.002)
	}
	return p
}

// Uniform value in [-0.5, 0.5).
func (p *Particles) centered() float32 {
	return p.rng.Float32() - 0.5
}

// Advance the simulation by dt seconds. Particles drift along their velocity
// and move against the pointer; particles leaving the box are respawned at
// the back.
func (p *Particles) Update(pointer input.Signal, dt float32) {
	for i := range p.Positions {
		pos := p.Positions[i].Add(p.Velocities[i].Mul(particleSpeed * dt))
		pos[0] -= pointer[0] * dt * particleParallax
		pos[1] -= pointer[1] * dt * particleParallax

		if pos[0] > particleBound || pos[0] < -particleBound ||
			pos[1] > particleBound || pos[1] < -particleBound ||
			pos[2] > particleMaxZ {
			pos = types.XYZ(p.centered()*10, p.centered()*10, particleResetZ)
		}
		p.Positions[i] = pos
	}
}

// Number of particles.
func (p *Particles) Len() int {
	return len(p.Positions)
}
