package config

// Presets are ready-made tracking setups.
var Presets = map[string]*Config{
	// Backward tracking from a desired downstream state: infer the
	// injection conditions that produce a 2e-20 kg*m/s proton at
	// z = 5 m behind a cavity, a dipole, and a quadrupole.
	"backtrack": {
		Beamline: []ElementConfig{
			{Kind: "rf_cavity", Length: 1.0, Frequency: 1e9, Voltage: 5e6, Phase: 0},
			{Kind: "dipole", Length: 2.0, Field: 5},
			{Kind: "quadrupole", Length: 0.5, Gradient: 10},
		},
		Particles: []ParticleConfig{
			{Species: "proton", Position: [3]float64{0, 0, 5}, Momentum: [3]float64{0, 0, 2e-20}},
		},
		Dt:        1e-11,
		Steps:     1000,
		Direction: "backward",
	},
	// Alternating-gradient focusing cell.
	"fodo": {
		Beamline: []ElementConfig{
			{Kind: "quadrupole", Length: 0.5, Gradient: 10},
			{Kind: "dipole", Length: 2.0, Field: 0.5},
			{Kind: "quadrupole", Length: 0.5, Gradient: -10},
			{Kind: "dipole", Length: 2.0, Field: 0.5},
		},
		Particles: []ParticleConfig{
			{Species: "proton", Position: [3]float64{1e-3, 0, 0}, Momentum: [3]float64{0, 0, 2e-20}},
		},
		Dt:        1e-11,
		Steps:     2000,
		Direction: "forward",
	},
	// Single cavity accelerating a proton from rest momentum.
	"linac": {
		Beamline: []ElementConfig{
			{Kind: "rf_cavity", Length: 1.0, Frequency: 4e8, Voltage: 2e7, Phase: 1.5707963267948966},
		},
		Particles: []ParticleConfig{
			{Species: "proton", Position: [3]float64{0, 0, 0.5}, Momentum: [3]float64{0, 0, 1e-20}},
		},
		Dt:        1e-11,
		Steps:     5000,
		Direction: "forward",
	},
	// Uniform dipole bending an electron on a closed gyro-orbit.
	"gyro": {
		Beamline: []ElementConfig{
			{Kind: "dipole", Length: 2.0, Field: 1.0},
		},
		Particles: []ParticleConfig{
			{Species: "electron", Position: [3]float64{0, 0, 0}, Momentum: [3]float64{0, 0, 1e-22}},
		},
		Dt:        1e-13,
		Steps:     4000,
		Direction: "forward",
	},
}

// GetPreset returns the named preset or nil.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
