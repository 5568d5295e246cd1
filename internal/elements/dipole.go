package elements

import "github.com/nkoval/beamsim/internal/beam"

// Dipole is a steering magnet: a uniform vertical field, independent
// of particle position. With zero field strength it is a no-op.
type Dipole struct {
	segment
	FieldStrength float64 // T, along the vertical axis
}

func NewDipole(length, fieldStrength float64) (*Dipole, error) {
	seg, err := newSegment("dipole", length)
	if err != nil {
		return nil, err
	}
	return &Dipole{segment: seg, FieldStrength: fieldStrength}, nil
}

func (d *Dipole) Kind() string { return "dipole" }

func (d *Dipole) ApplyField(p *beam.Particle, dt float64, dir beam.Direction) error {
	field := beam.Vec3{Y: d.FieldStrength}

	force := p.Velocity().Cross(field).Scale(dir.Sign() * p.Charge)
	kick(p, force, dt)
	return nil
}
