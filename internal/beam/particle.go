package beam

import (
	"fmt"
	"math"
)

// Particle is the mutable state of one tracked charged particle.
// Field elements mutate it in place through the engine's step loop.
type Particle struct {
	Mass     float64 // kg
	Charge   float64 // C
	Position Vec3    // m
	Momentum Vec3    // kg*m/s
}

// NewParticle validates the mass invariant at the only point a
// particle enters the system.
func NewParticle(mass, charge float64, position, momentum Vec3) (*Particle, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("particle mass must be positive, got %g", mass)
	}
	return &Particle{
		Mass:     mass,
		Charge:   charge,
		Position: position,
		Momentum: momentum,
	}, nil
}

// Energy returns the total relativistic energy in GeV, recomputed from
// the current momentum. Never cached: momentum changes every step.
func (p *Particle) Energy() float64 {
	p2 := p.Momentum.X*p.Momentum.X + p.Momentum.Y*p.Momentum.Y + p.Momentum.Z*p.Momentum.Z
	c2 := SpeedOfLight * SpeedOfLight
	joules := math.Sqrt(p2*c2 + p.Mass*p.Mass*c2*c2)
	return joules / ElementaryCharge / 1e9
}

// RestEnergy returns m*c^2 in GeV, the lower bound of Energy.
func (p *Particle) RestEnergy() float64 {
	c2 := SpeedOfLight * SpeedOfLight
	return p.Mass * c2 / ElementaryCharge / 1e9
}

// Velocity returns momentum/mass, the (non-relativistic) velocity the
// field kick uses.
func (p *Particle) Velocity() Vec3 {
	return p.Momentum.Scale(1 / p.Mass)
}

// ReverseMomentum negates the momentum vector in place. Only the
// engine's direction-reversal protocol calls this.
func (p *Particle) ReverseMomentum() {
	p.Momentum = p.Momentum.Scale(-1)
}

// Clone returns an independent copy, used for recording initial
// conditions before a run mutates the original.
func (p *Particle) Clone() *Particle {
	c := *p
	return &c
}
