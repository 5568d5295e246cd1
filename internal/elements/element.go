// Package elements provides the field-applying beamline components.
//
// Each element implements [Element], the shared field-application
// contract: compute a force from the element's static field
// configuration and the particle's current momentum, fold in the
// propagation direction as a sign on the force, kick the momentum by
// force*dt, then drift the position by (momentum/mass)*dt.
//
// Elements whose field oscillates in time additionally implement
// [TimeDependent]; the engine dispatches on that capability and passes
// the absolute simulation time.
package elements

import (
	"fmt"

	"github.com/nkoval/beamsim/internal/beam"
)

// Element is the capability shared by every beamline component.
type Element interface {
	// Kind identifies the element variant for configs and run metadata.
	Kind() string
	// Length is the physical length along the beam axis in meters.
	Length() float64
	// ApplyField advances the particle through one time slice dt,
	// mutating its momentum and position in place.
	ApplyField(p *beam.Particle, dt float64, dir beam.Direction) error
}

// TimeDependent marks elements whose field oscillates in absolute
// time. The engine applies these through ApplyFieldAt; calling the
// plain ApplyField on such an element is a configuration error.
type TimeDependent interface {
	Element
	ApplyFieldAt(p *beam.Particle, dt float64, dir beam.Direction, t float64) error
}

// segment carries the attributes common to all elements. Its
// ApplyField is the abstract base: reaching it means a variant was
// constructed without a concrete field implementation.
type segment struct {
	length float64
}

func newSegment(kind string, length float64) (segment, error) {
	if length <= 0 {
		return segment{}, fmt.Errorf("%s: length must be positive, got %g", kind, length)
	}
	return segment{length: length}, nil
}

func (s segment) Length() float64 { return s.length }

func (s segment) ApplyField(*beam.Particle, float64, beam.Direction) error {
	return beam.ErrNotImplemented
}

// kick applies the shared momentum/position update: first-order
// momentum kick followed by a drift at the updated momentum.
func kick(p *beam.Particle, force beam.Vec3, dt float64) {
	p.Momentum = p.Momentum.Add(force.Scale(dt))
	p.Position = p.Position.Add(p.Momentum.Scale(dt / p.Mass))
}
