// Package experiment assembles tracking runs from configuration: it
// builds the beamline and particle set, wires the engine, and drives
// it to completion.
package experiment

import (
	"context"
	"fmt"

	"github.com/nkoval/beamsim/internal/beam"
	"github.com/nkoval/beamsim/internal/config"
	"github.com/nkoval/beamsim/internal/tracker"
)

type Experiment struct {
	cfg    *config.Config
	engine *tracker.Engine
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the beamline and particles and prepares the engine.
// For a backward run the engine direction is reversed here, which also
// flips the configured (desired final) momenta.
func (e *Experiment) Setup(registry *Registry) error {
	if len(e.cfg.Beamline) == 0 {
		return fmt.Errorf("beamline is empty")
	}
	if len(e.cfg.Particles) == 0 {
		return fmt.Errorf("no particles configured")
	}

	dir, err := beam.ParseDirection(e.cfg.Direction)
	if err != nil {
		return err
	}

	beamline, err := registry.BuildBeamline(e.cfg.Beamline)
	if err != nil {
		return err
	}

	engine := tracker.NewEngine(beamline)
	for i, pc := range e.cfg.Particles {
		mass, charge, err := pc.MassCharge()
		if err != nil {
			return fmt.Errorf("particle %d: %w", i, err)
		}
		p, err := beam.NewParticle(mass, charge,
			beam.Vec3{X: pc.Position[0], Y: pc.Position[1], Z: pc.Position[2]},
			beam.Vec3{X: pc.Momentum[0], Y: pc.Momentum[1], Z: pc.Momentum[2]},
		)
		if err != nil {
			return fmt.Errorf("particle %d: %w", i, err)
		}
		engine.AddParticle(p)
	}

	for _, m := range registry.DefaultMetrics() {
		engine.AddMetric(m)
	}

	if dir == beam.Backward {
		engine.ReverseDirection()
	}

	e.engine = engine
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*tracker.Result, error) {
	if e.engine == nil {
		return nil, fmt.Errorf("experiment not set up")
	}
	return e.engine.Run(ctx, e.cfg.Steps, e.cfg.Dt)
}

// Engine exposes the underlying engine for attaching observers.
func (e *Experiment) Engine() *tracker.Engine {
	return e.engine
}
