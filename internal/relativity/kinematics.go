package relativity

import (
	"math"

	"github.com/nkoval/beamsim/internal/beam"
)

// Gamma returns the Lorentz factor for velocity v. At or above the
// speed of light the result is Inf or NaN, unguarded.
func Gamma(v float64) float64 {
	beta := v / beam.SpeedOfLight
	return 1 / math.Sqrt(1-beta*beta)
}

// TimeDilation returns the elapsed time seen from a frame moving at v
// relative to the clock.
func TimeDilation(properTime, v float64) float64 {
	return Gamma(v) * properTime
}

// LengthContraction returns the length seen from a frame moving at v
// relative to the object.
func LengthContraction(properLength, v float64) float64 {
	return properLength / Gamma(v)
}

// Momentum returns the relativistic momentum gamma*m*v.
func Momentum(mass, v float64) float64 {
	return Gamma(v) * mass * v
}

// Energy returns the total and kinetic relativistic energy in joules.
func Energy(mass, v float64) (total, kinetic float64) {
	c2 := beam.SpeedOfLight * beam.SpeedOfLight
	total = Gamma(v) * mass * c2
	kinetic = total - mass*c2
	return total, kinetic
}

// CyclotronFrequency returns the angular revolution frequency of a
// charge q in a uniform field B, in rad/s.
func CyclotronFrequency(q, b, mass float64) float64 {
	return math.Abs(q) * b / mass
}

// Gyroradius returns the radius of circular motion for transverse
// momentum p in a uniform field B.
func Gyroradius(p, q, b float64) float64 {
	return p / (math.Abs(q) * b)
}
