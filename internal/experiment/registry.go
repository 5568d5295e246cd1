package experiment

import (
	"fmt"

	"github.com/nkoval/beamsim/internal/config"
	"github.com/nkoval/beamsim/internal/elements"
	"github.com/nkoval/beamsim/internal/metrics"
	"github.com/nkoval/beamsim/internal/tracker"
)

// Registry maps element kinds to constructors. The element set is
// closed; unknown kinds fail at build time, before any stepping.
type Registry struct {
	elements map[string]func(config.ElementConfig) (elements.Element, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		elements: make(map[string]func(config.ElementConfig) (elements.Element, error)),
	}

	r.elements["quadrupole"] = func(ec config.ElementConfig) (elements.Element, error) {
		return elements.NewQuadrupole(ec.Length, ec.Gradient)
	}
	r.elements["dipole"] = func(ec config.ElementConfig) (elements.Element, error) {
		return elements.NewDipole(ec.Length, ec.Field)
	}
	r.elements["rf_cavity"] = func(ec config.ElementConfig) (elements.Element, error) {
		return elements.NewRFCavity(ec.Length, ec.Frequency, ec.Voltage, ec.Phase)
	}

	return r
}

// BuildElement constructs one element from its config.
func (r *Registry) BuildElement(ec config.ElementConfig) (elements.Element, error) {
	fn, ok := r.elements[ec.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown element kind: %s", ec.Kind)
	}
	return fn(ec)
}

// BuildBeamline assembles elements in config order.
func (r *Registry) BuildBeamline(cfgs []config.ElementConfig) (*tracker.Beamline, error) {
	beamline := tracker.NewBeamline()
	for i, ec := range cfgs {
		el, err := r.BuildElement(ec)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		beamline.Append(el)
	}
	return beamline, nil
}

// ListElements returns the registered element kinds.
func (r *Registry) ListElements() []string {
	names := make([]string, 0, len(r.elements))
	for name := range r.elements {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics are attached to every tracking experiment.
func (r *Registry) DefaultMetrics() []tracker.Metric {
	return []tracker.Metric{
		metrics.NewMaxDeviation(),
		metrics.NewEnergyGain(),
		metrics.NewPathLength(),
	}
}
