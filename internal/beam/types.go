package beam

import (
	"fmt"
	"math"
)

// Physical constants (SI units, CODATA 2018).
const (
	SpeedOfLight     = 299792458.0     // m/s
	ElementaryCharge = 1.602176634e-19 // C
	ProtonMass       = 1.67262192e-27  // kg
	ElectronMass     = 9.1093837e-31   // kg
)

// Vec3 is a cartesian 3-vector. X and Y are the transverse plane,
// Z is the longitudinal (beam) axis.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{v.X * factor, v.Y * factor, v.Z * factor}
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Direction is the propagation direction of a tracking run. It carries
// its own sign multiplier so no call site does direction arithmetic.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) Sign() float64 { return float64(d) }

func (d Direction) Reversed() Direction { return -d }

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ParseDirection maps a config/CLI token to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "forward", "":
		return Forward, nil
	case "backward":
		return Backward, nil
	default:
		return Forward, fmt.Errorf("unknown direction: %s", s)
	}
}
