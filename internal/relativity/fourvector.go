// Package relativity holds closed-form special-relativity utilities:
// four-vector algebra, frame transforms, and relativistic collision
// kinematics. The tracking core does not depend on it; it consumes the
// same constants from the beam package and serves the CLI and tests.
package relativity

import (
	"math"

	"github.com/nkoval/beamsim/internal/beam"
)

// Axis selects the boost direction of a Lorentz transform.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// FourVector is a spacetime event (ct, x, y, z).
type FourVector struct {
	CT, X, Y, Z float64
}

func (f FourVector) Add(other FourVector) FourVector {
	return FourVector{
		CT: f.CT + other.CT,
		X:  f.X + other.X,
		Y:  f.Y + other.Y,
		Z:  f.Z + other.Z,
	}
}

// ProperTime returns the invariant interval. Spacelike separations
// yield NaN, unguarded.
func (f FourVector) ProperTime() float64 {
	return math.Sqrt(f.CT*f.CT - f.X*f.X - f.Y*f.Y - f.Z*f.Z)
}

// LorentzTransform boosts an event into a frame moving at velocity v
// along the given axis.
func LorentzTransform(event FourVector, v float64, axis Axis) (FourVector, error) {
	gamma := Gamma(v)
	beta := v / beam.SpeedOfLight

	switch axis {
	case AxisX:
		return FourVector{
			CT: gamma * (event.CT - beta*event.X),
			X:  gamma * (event.X - beta*event.CT),
			Y:  event.Y,
			Z:  event.Z,
		}, nil
	case AxisY:
		return FourVector{
			CT: gamma * (event.CT - beta*event.Y),
			X:  event.X,
			Y:  gamma * (event.Y - beta*event.CT),
			Z:  event.Z,
		}, nil
	case AxisZ:
		return FourVector{
			CT: gamma * (event.CT - beta*event.Z),
			X:  event.X,
			Y:  event.Y,
			Z:  gamma * (event.Z - beta*event.CT),
		}, nil
	default:
		return FourVector{}, beam.InvalidConfigError{
			Subject: "lorentz transform",
			Reason:  "axis must be x, y, or z",
		}
	}
}
