package elements

import (
	"fmt"
	"math"

	"github.com/nkoval/beamsim/internal/beam"
)

// RFCavity is an accelerating cavity: a longitudinal electric field
// shaped as a standing sine wave along z, oscillating in time at the
// cavity frequency. It is the one time-dependent element, so it must
// be applied through ApplyFieldAt.
type RFCavity struct {
	segment
	Frequency float64 // Hz
	Voltage   float64 // V, peak
	Phase     float64 // rad
}

func NewRFCavity(length, frequency, voltage, phase float64) (*RFCavity, error) {
	seg, err := newSegment("rf_cavity", length)
	if err != nil {
		return nil, err
	}
	if frequency <= 0 {
		return nil, fmt.Errorf("rf_cavity: frequency must be positive, got %g", frequency)
	}
	return &RFCavity{
		segment:   seg,
		Frequency: frequency,
		Voltage:   voltage,
		Phase:     phase,
	}, nil
}

func (c *RFCavity) Kind() string { return "rf_cavity" }

// ApplyField rejects the time-less path: the cavity field is undefined
// without an absolute time.
func (c *RFCavity) ApplyField(*beam.Particle, float64, beam.Direction) error {
	return beam.InvalidConfigError{
		Subject: "rf_cavity",
		Reason:  "time parameter required for oscillating field",
	}
}

func (c *RFCavity) ApplyFieldAt(p *beam.Particle, dt float64, dir beam.Direction, t float64) error {
	// Backward propagation sees the time oscillation running in
	// reverse; the spatial standing-wave term is unchanged.
	tEff := t
	if dir == beam.Backward {
		tEff = -t
	}

	ez := c.Voltage *
		math.Sin(2*math.Pi*c.Frequency*tEff+c.Phase) *
		math.Sin(math.Pi*p.Position.Z/c.length)

	force := beam.Vec3{Z: dir.Sign() * p.Charge * ez}
	kick(p, force, dt)
	return nil
}
