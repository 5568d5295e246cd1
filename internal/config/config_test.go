package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/nkoval/beamsim/internal/beam"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	cfg := GetPreset("backtrack")
	if cfg == nil {
		t.Fatal("backtrack preset missing")
	}

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Beamline) != len(cfg.Beamline) {
		t.Fatalf("expected %d elements, got %d", len(cfg.Beamline), len(loaded.Beamline))
	}
	if loaded.Beamline[0].Kind != "rf_cavity" {
		t.Errorf("element order lost: first kind %s", loaded.Beamline[0].Kind)
	}
	if loaded.Direction != "backward" {
		t.Errorf("expected backward direction, got %s", loaded.Direction)
	}
	if loaded.Dt != cfg.Dt || loaded.Steps != cfg.Steps {
		t.Errorf("run parameters lost: dt=%g steps=%d", loaded.Dt, loaded.Steps)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	yaml := `
beamline:
  - kind: dipole
    length: 2.0
    field: 5
particles:
  - species: proton
    position: [0, 0, 5]
    momentum: [0, 0, 2.0e-20]
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Dt != DefaultDt || cfg.Steps != DefaultSteps {
		t.Errorf("defaults not applied: dt=%g steps=%d", cfg.Dt, cfg.Steps)
	}
	if cfg.Direction != "forward" {
		t.Errorf("expected forward default, got %s", cfg.Direction)
	}
}

func TestSpeciesDefaults(t *testing.T) {
	mass, charge, err := ParticleConfig{Species: "proton"}.MassCharge()
	if err != nil {
		t.Fatalf("proton: %v", err)
	}
	if mass != beam.ProtonMass || charge != beam.ElementaryCharge {
		t.Errorf("proton defaults wrong: %g, %g", mass, charge)
	}

	mass, charge, err = ParticleConfig{Species: "electron"}.MassCharge()
	if err != nil {
		t.Fatalf("electron: %v", err)
	}
	if mass != beam.ElectronMass || charge != -beam.ElementaryCharge {
		t.Errorf("electron defaults wrong: %g, %g", mass, charge)
	}

	// Explicit values win over species defaults.
	mass, _, err = ParticleConfig{Species: "proton", Mass: 1e-26}.MassCharge()
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if mass != 1e-26 {
		t.Errorf("explicit mass must win, got %g", mass)
	}

	if _, _, err := (ParticleConfig{Species: "muon"}).MassCharge(); err == nil {
		t.Error("expected error for unknown species")
	}
}

func TestPresetsAreWellFormed(t *testing.T) {
	if len(ListPresets()) == 0 {
		t.Fatal("no presets registered")
	}

	for name, cfg := range Presets {
		if len(cfg.Beamline) == 0 {
			t.Errorf("preset %s: empty beamline", name)
		}
		if len(cfg.Particles) == 0 {
			t.Errorf("preset %s: no particles", name)
		}
		if cfg.Dt <= 0 || cfg.Steps <= 0 {
			t.Errorf("preset %s: bad run parameters", name)
		}
		if _, err := beam.ParseDirection(cfg.Direction); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
		for i, ec := range cfg.Beamline {
			if ec.Length <= 0 {
				t.Errorf("preset %s element %d: bad length", name, i)
			}
		}
	}

	bt := GetPreset("backtrack")
	if bt == nil {
		t.Fatal("backtrack preset missing")
	}
	if math.Abs(bt.Particles[0].Momentum[2]-2e-20) > 1e-30 {
		t.Error("backtrack preset must carry the desired final momentum")
	}
}
