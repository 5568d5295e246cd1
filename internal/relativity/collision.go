package relativity

import (
	"fmt"
	"math"

	"github.com/nkoval/beamsim/internal/beam"
)

const (
	collisionMaxIter = 200
	collisionTol     = 1e-10
)

// ElasticCollision solves a head-on relativistic elastic collision for
// the final velocities, conserving relativistic momentum and total
// energy. The two-equation system has no closed form, so it is solved
// by damped Newton iteration with a finite-difference Jacobian,
// seeded with the non-relativistic elastic solution.
func ElasticCollision(m1, m2, v1, v2 float64) (v1f, v2f float64, err error) {
	if m1 <= 0 || m2 <= 0 {
		return 0, 0, fmt.Errorf("masses must be positive, got %g and %g", m1, m2)
	}

	pTotal := Momentum(m1, v1) + Momentum(m2, v2)
	e1, _ := Energy(m1, v1)
	e2, _ := Energy(m2, v2)
	eTotal := e1 + e2

	// Scale both equations to O(1); the momentum scale is m*c so the
	// equation stays meaningful when the total momentum is near zero.
	pScale := (m1 + m2) * beam.SpeedOfLight

	residual := func(a, b float64) (float64, float64) {
		ea, _ := Energy(m1, a)
		eb, _ := Energy(m2, b)
		return (Momentum(m1, a) + Momentum(m2, b) - pTotal) / pScale,
			(ea + eb - eTotal) / eTotal
	}

	// Non-relativistic elastic solution as the starting point.
	v1f = ((m1-m2)*v1 + 2*m2*v2) / (m1 + m2)
	v2f = ((m2-m1)*v2 + 2*m1*v1) / (m1 + m2)

	for iter := 0; iter < collisionMaxIter; iter++ {
		r1, r2 := residual(v1f, v2f)
		if math.Abs(r1) < collisionTol && math.Abs(r2) < collisionTol {
			return v1f, v2f, nil
		}

		h1 := stepSize(v1f)
		h2 := stepSize(v2f)
		r1a, r2a := residual(v1f+h1, v2f)
		r1b, r2b := residual(v1f, v2f+h2)

		j11 := (r1a - r1) / h1
		j12 := (r1b - r1) / h2
		j21 := (r2a - r2) / h1
		j22 := (r2b - r2) / h2

		det := j11*j22 - j12*j21
		if det == 0 || math.IsNaN(det) {
			return 0, 0, fmt.Errorf("collision solver: singular jacobian at iteration %d", iter)
		}

		d1 := (r1*j22 - r2*j12) / det
		d2 := (r2*j11 - r1*j21) / det

		// Damp steps that would push a velocity past c.
		scale := 1.0
		for math.Abs(v1f-scale*d1) >= lightSpeedMargin() ||
			math.Abs(v2f-scale*d2) >= lightSpeedMargin() {
			scale /= 2
			if scale < 1e-12 {
				return 0, 0, fmt.Errorf("collision solver: step collapsed at iteration %d", iter)
			}
		}

		v1f -= scale * d1
		v2f -= scale * d2
	}

	return 0, 0, fmt.Errorf("collision solver: no convergence after %d iterations", collisionMaxIter)
}

func stepSize(v float64) float64 {
	h := 1e-6 * math.Abs(v)
	if h < 1e-6 {
		h = 1e-6
	}
	return h
}

func lightSpeedMargin() float64 {
	return beam.SpeedOfLight * (1 - 1e-12)
}
