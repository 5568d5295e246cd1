// Package metrics provides summary statistics accumulated over a
// tracking run.
package metrics

import (
	"math"

	"github.com/nkoval/beamsim/internal/beam"
)

// MaxDeviation tracks the largest transverse excursion from the beam
// axis, in meters, across all particles.
type MaxDeviation struct {
	max float64
}

func NewMaxDeviation() *MaxDeviation { return &MaxDeviation{} }

func (m *MaxDeviation) Name() string { return "max_deviation" }

func (m *MaxDeviation) Observe(particles []*beam.Particle, t float64) {
	for _, p := range particles {
		m.max = math.Max(m.max, math.Abs(p.Position.X))
		m.max = math.Max(m.max, math.Abs(p.Position.Y))
	}
}

func (m *MaxDeviation) Value() float64 { return m.max }
func (m *MaxDeviation) Reset()         { m.max = 0 }

// EnergyGain reports the mean particle energy change since the first
// observed step, in GeV.
type EnergyGain struct {
	initial float64
	current float64
	samples int
}

func NewEnergyGain() *EnergyGain { return &EnergyGain{} }

func (m *EnergyGain) Name() string { return "energy_gain" }

func (m *EnergyGain) Observe(particles []*beam.Particle, t float64) {
	if len(particles) == 0 {
		return
	}
	total := 0.0
	for _, p := range particles {
		total += p.Energy()
	}
	mean := total / float64(len(particles))

	if m.samples == 0 {
		m.initial = mean
	}
	m.current = mean
	m.samples++
}

func (m *EnergyGain) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.current - m.initial
}

func (m *EnergyGain) Reset() {
	m.initial = 0
	m.current = 0
	m.samples = 0
}

// PathLength accumulates the mean distance travelled by the particle
// set, in meters.
type PathLength struct {
	prev    []beam.Vec3
	total   float64
	samples int
}

func NewPathLength() *PathLength { return &PathLength{} }

func (m *PathLength) Name() string { return "path_length" }

func (m *PathLength) Observe(particles []*beam.Particle, t float64) {
	if len(particles) == 0 {
		return
	}
	if m.samples > 0 && len(m.prev) == len(particles) {
		sum := 0.0
		for i, p := range particles {
			sum += p.Position.Sub(m.prev[i]).Norm()
		}
		m.total += sum / float64(len(particles))
	}

	if cap(m.prev) < len(particles) {
		m.prev = make([]beam.Vec3, len(particles))
	}
	m.prev = m.prev[:len(particles)]
	for i, p := range particles {
		m.prev[i] = p.Position
	}
	m.samples++
}

func (m *PathLength) Value() float64 { return m.total }

func (m *PathLength) Reset() {
	m.prev = m.prev[:0]
	m.total = 0
	m.samples = 0
}
