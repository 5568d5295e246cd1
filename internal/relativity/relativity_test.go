package relativity

import (
	"errors"
	"math"
	"testing"

	"github.com/nkoval/beamsim/internal/beam"
)

func TestGamma(t *testing.T) {
	if Gamma(0) != 1 {
		t.Errorf("gamma at rest must be 1, got %g", Gamma(0))
	}

	// beta = 0.8 gives gamma = 5/3.
	got := Gamma(0.8 * beam.SpeedOfLight)
	if math.Abs(got-5.0/3.0) > 1e-12 {
		t.Errorf("gamma(0.8c): expected 5/3, got %g", got)
	}
}

func TestTimeDilationAndLengthContraction(t *testing.T) {
	v := 0.8 * beam.SpeedOfLight

	if math.Abs(TimeDilation(1.0, v)-5.0/3.0) > 1e-12 {
		t.Errorf("time dilation at 0.8c: got %g", TimeDilation(1.0, v))
	}
	if math.Abs(LengthContraction(1.0, v)-0.6) > 1e-12 {
		t.Errorf("length contraction at 0.8c: got %g", LengthContraction(1.0, v))
	}
}

func TestProperTime(t *testing.T) {
	f := FourVector{CT: 5, X: 3}
	if math.Abs(f.ProperTime()-4) > 1e-12 {
		t.Errorf("expected proper time 4, got %g", f.ProperTime())
	}
}

func TestFourVectorAdd(t *testing.T) {
	a := FourVector{CT: 1, X: 2, Y: 3, Z: 4}
	b := FourVector{CT: 10, X: 20, Y: 30, Z: 40}

	got := a.Add(b)
	want := FourVector{CT: 11, X: 22, Y: 33, Z: 44}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLorentzTransformX(t *testing.T) {
	v := 0.6 * beam.SpeedOfLight
	gamma := Gamma(v) // 1.25

	event := FourVector{CT: 1, X: 1}
	got, err := LorentzTransform(event, v, AxisX)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	wantCT := gamma * (1 - 0.6)
	wantX := gamma * (1 - 0.6)
	if math.Abs(got.CT-wantCT) > 1e-12 || math.Abs(got.X-wantX) > 1e-12 {
		t.Errorf("expected (%g, %g), got (%g, %g)", wantCT, wantX, got.CT, got.X)
	}
	if got.Y != 0 || got.Z != 0 {
		t.Error("transverse components must be unchanged by an x boost")
	}
}

func TestLorentzTransformPreservesInterval(t *testing.T) {
	event := FourVector{CT: 10, X: 2, Y: 1, Z: 3}
	v := 0.5 * beam.SpeedOfLight

	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		transformed, err := LorentzTransform(event, v, axis)
		if err != nil {
			t.Fatalf("axis %s: %v", axis, err)
		}
		if math.Abs(transformed.ProperTime()-event.ProperTime()) > 1e-9 {
			t.Errorf("axis %s: interval not invariant: %g vs %g",
				axis, transformed.ProperTime(), event.ProperTime())
		}
	}
}

func TestLorentzTransformRejectsUnknownAxis(t *testing.T) {
	_, err := LorentzTransform(FourVector{}, 1000, Axis("w"))

	var cfgErr beam.InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected InvalidConfigError, got %v", err)
	}
}

func TestElasticCollisionEqualMassesSwap(t *testing.T) {
	m := beam.ProtonMass
	v1 := 0.5 * beam.SpeedOfLight

	v1f, v2f, err := ElasticCollision(m, m, v1, 0)
	if err != nil {
		t.Fatalf("collision: %v", err)
	}

	// Equal masses exchange velocities, relativistically too.
	if math.Abs(v1f) > 1e-3*beam.SpeedOfLight {
		t.Errorf("expected first particle to stop, got %g", v1f)
	}
	if math.Abs(v2f-v1) > 1e-3*beam.SpeedOfLight {
		t.Errorf("expected second particle at %g, got %g", v1, v2f)
	}
}

func TestElasticCollisionConservesMomentumAndEnergy(t *testing.T) {
	m1 := beam.ProtonMass
	m2 := 2 * beam.ProtonMass
	v1 := 1e7
	v2 := -5e6

	v1f, v2f, err := ElasticCollision(m1, m2, v1, v2)
	if err != nil {
		t.Fatalf("collision: %v", err)
	}

	pBefore := Momentum(m1, v1) + Momentum(m2, v2)
	pAfter := Momentum(m1, v1f) + Momentum(m2, v2f)
	e1, _ := Energy(m1, v1)
	e2, _ := Energy(m2, v2)
	e1f, _ := Energy(m1, v1f)
	e2f, _ := Energy(m2, v2f)

	pTol := 1e-9 * (m1 + m2) * beam.SpeedOfLight
	if math.Abs(pAfter-pBefore) > pTol {
		t.Errorf("momentum not conserved: %g vs %g", pBefore, pAfter)
	}
	if math.Abs((e1f+e2f)-(e1+e2)) > 1e-6*(e1+e2) {
		t.Errorf("energy not conserved: %g vs %g", e1+e2, e1f+e2f)
	}

	// The trivial (unchanged) solution also conserves; make sure the
	// solver found the scattering branch.
	if math.Abs(v1f-v1) < 1e3 {
		t.Errorf("solver returned the incoming state: v1f=%g", v1f)
	}
}

func TestCyclotronFrequencyAndGyroradius(t *testing.T) {
	q := beam.ElementaryCharge
	b := 5.0
	m := beam.ProtonMass

	omega := CyclotronFrequency(q, b, m)
	want := q * b / m
	if math.Abs(omega-want) > 1e-6*want {
		t.Errorf("cyclotron frequency: expected %g, got %g", want, omega)
	}

	r := Gyroradius(2e-20, q, b)
	if math.Abs(r-2e-20/(q*b)) > 1e-12 {
		t.Errorf("gyroradius: got %g", r)
	}
}
