package elements

import "github.com/nkoval/beamsim/internal/beam"

// Quadrupole is a focusing magnet. Its transverse field components are
// linear in the transverse position (Bx = g*y, By = g*x), so the
// Lorentz force restores one plane and defocuses the other. A particle
// exactly on axis sees no field.
type Quadrupole struct {
	segment
	Gradient float64 // T/m
}

func NewQuadrupole(length, gradient float64) (*Quadrupole, error) {
	seg, err := newSegment("quadrupole", length)
	if err != nil {
		return nil, err
	}
	return &Quadrupole{segment: seg, Gradient: gradient}, nil
}

func (q *Quadrupole) Kind() string { return "quadrupole" }

func (q *Quadrupole) ApplyField(p *beam.Particle, dt float64, dir beam.Direction) error {
	field := beam.Vec3{
		X: q.Gradient * p.Position.Y,
		Y: q.Gradient * p.Position.X,
	}

	// The field geometry never changes with direction; only the sign
	// of its effect on the momentum does.
	force := p.Velocity().Cross(field).Scale(dir.Sign() * p.Charge)
	kick(p, force, dt)
	return nil
}
