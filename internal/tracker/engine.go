// Package tracker drives reversible particle tracking through a
// beamline: a sequential step loop that applies every field element to
// every particle, plus the direction-reversal protocol that couples
// the direction flag to particle momenta.
package tracker

import (
	"context"
	"fmt"

	"github.com/nkoval/beamsim/internal/beam"
	"github.com/nkoval/beamsim/internal/elements"
)

// Metric accumulates a summary statistic over per-step particle
// snapshots.
type Metric interface {
	Name() string
	Observe(particles []*beam.Particle, t float64)
	Value() float64
	Reset()
}

// Observer receives the particle set after each completed step.
type Observer interface {
	OnStep(particles []*beam.Particle, t float64)
}

// Result holds the read-back samples of a run: one position and one
// energy sample per particle per step.
type Result struct {
	Trajectories [][]beam.Vec3 // [particle][step]
	Energies     [][]float64   // [particle][step], GeV
	Times        []float64
	Metrics      map[string]float64
	StepsTaken   int
}

// Engine owns the particle set and the direction state for one run.
// The beamline is shared and read-only during stepping.
type Engine struct {
	beamline  *Beamline
	particles []*beam.Particle
	time      float64
	direction beam.Direction

	metrics   []Metric
	observers []Observer

	trajectories [][]beam.Vec3
	energies     [][]float64
	times        []float64
}

func NewEngine(beamline *Beamline) *Engine {
	return &Engine{
		beamline:  beamline,
		direction: beam.Forward,
	}
}

func (e *Engine) AddParticle(p *beam.Particle) {
	e.particles = append(e.particles, p)
	e.trajectories = append(e.trajectories, nil)
	e.energies = append(e.energies, nil)
}

// AddElement appends to the beamline; setup only, never mid-run.
func (e *Engine) AddElement(el elements.Element) {
	e.beamline.Append(el)
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Particles() []*beam.Particle { return e.particles }
func (e *Engine) Time() float64               { return e.time }
func (e *Engine) Direction() beam.Direction   { return e.direction }

// Trajectory returns the per-step position samples of particle i,
// for callers driving Step directly instead of Run.
func (e *Engine) Trajectory(i int) []beam.Vec3 { return e.trajectories[i] }

// EnergyHistory returns the per-step energy samples of particle i in GeV.
func (e *Engine) EnergyHistory(i int) []float64 { return e.energies[i] }

// ReverseDirection toggles the propagation direction and reverses
// every particle's momentum as one action. This is the only sanctioned
// way sign semantics change between steps.
func (e *Engine) ReverseDirection() {
	e.direction = e.direction.Reversed()
	for _, p := range e.particles {
		p.ReverseMomentum()
	}
}

// Step advances the simulation by one time slice: every element in
// beamline order is applied to every particle in insertion order, so
// later elements see state already updated within this step. The
// absolute time then advances by dt signed by the current direction.
//
// On error the step aborts; samples recorded by earlier steps remain
// available.
func (e *Engine) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", dt)
	}

	for _, el := range e.beamline.Elements() {
		for _, p := range e.particles {
			var err error
			if td, ok := el.(elements.TimeDependent); ok {
				err = td.ApplyFieldAt(p, dt, e.direction, e.time)
			} else {
				err = el.ApplyField(p, dt, e.direction)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", el.Kind(), err)
			}
		}
	}

	e.time += dt * e.direction.Sign()
	e.record()

	for _, obs := range e.observers {
		obs.OnStep(e.particles, e.time)
	}
	return nil
}

func (e *Engine) record() {
	for i, p := range e.particles {
		e.trajectories[i] = append(e.trajectories[i], p.Position)
		e.energies[i] = append(e.energies[i], p.Energy())
	}
	e.times = append(e.times, e.time)

	for _, m := range e.metrics {
		m.Observe(e.particles, e.time)
	}
}

// Run drives the step loop for a fixed step count. The context is
// checked between steps only; a single step has no suspension points.
// Samples collected before an error or cancellation are returned with
// it.
func (e *Engine) Run(ctx context.Context, steps int, dt float64) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	taken := 0
	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
			runErr = e.Step(dt)
		}
		if runErr != nil {
			break
		}
		taken++
	}

	result := &Result{
		Trajectories: e.trajectories,
		Energies:     e.energies,
		Times:        e.times,
		Metrics:      make(map[string]float64, len(e.metrics)),
		StepsTaken:   taken,
	}
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, runErr
}
