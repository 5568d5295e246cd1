package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nkoval/beamsim/internal/beam"
)

const (
	DefaultDt    = 1e-11
	DefaultSteps = 1000
)

// Config describes one tracking run: the beamline layout, the particle
// set, and the stepping parameters.
type Config struct {
	Beamline  []ElementConfig  `yaml:"beamline"`
	Particles []ParticleConfig `yaml:"particles"`
	Dt        float64          `yaml:"dt"`
	Steps     int              `yaml:"steps"`
	Direction string           `yaml:"direction"`
}

// ElementConfig carries the recognized options of every element kind.
// Which fields matter depends on Kind.
type ElementConfig struct {
	Kind      string  `yaml:"kind"`
	Length    float64 `yaml:"length"`
	Gradient  float64 `yaml:"gradient,omitempty"`  // quadrupole, T/m
	Field     float64 `yaml:"field,omitempty"`     // dipole, T
	Frequency float64 `yaml:"frequency,omitempty"` // rf_cavity, Hz
	Voltage   float64 `yaml:"voltage,omitempty"`   // rf_cavity, V
	Phase     float64 `yaml:"phase,omitempty"`     // rf_cavity, rad
}

// ParticleConfig describes an initial (or, for backward tracking,
// desired final) particle state. Species fills mass and charge when
// they are left zero.
type ParticleConfig struct {
	Species  string     `yaml:"species,omitempty"`
	Mass     float64    `yaml:"mass,omitempty"`
	Charge   float64    `yaml:"charge,omitempty"`
	Position [3]float64 `yaml:"position"`
	Momentum [3]float64 `yaml:"momentum"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:        DefaultDt,
		Steps:     DefaultSteps,
		Direction: beam.Forward.String(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MassCharge resolves the particle's mass and charge, applying species
// defaults for fields left unset.
func (p ParticleConfig) MassCharge() (mass, charge float64, err error) {
	mass, charge = p.Mass, p.Charge
	switch p.Species {
	case "proton":
		if mass == 0 {
			mass = beam.ProtonMass
		}
		if charge == 0 {
			charge = beam.ElementaryCharge
		}
	case "electron":
		if mass == 0 {
			mass = beam.ElectronMass
		}
		if charge == 0 {
			charge = -beam.ElementaryCharge
		}
	case "":
	default:
		return 0, 0, fmt.Errorf("unknown species: %s", p.Species)
	}
	return mass, charge, nil
}
