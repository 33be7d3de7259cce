package config

var Presets = map[string]map[string]*Config{
	"two_body": {
		"circular": {
			Scenario: "two_body", Method: "brute_force", Integrator: "semi_implicit_euler",
			Orbits: 100, StepsPerOrbit: 1000, Dim: 2, Dt: DefaultDt, Theta: 0.5, Lanes: 4, Checked: true,
		},
		"long": {
			Scenario: "two_body", Method: "brute_force_pairs", Integrator: "semi_implicit_euler",
			Orbits: 1000, StepsPerOrbit: 1000, Dim: 2, Dt: DefaultDt, Theta: 0.5, Lanes: 4, Checked: true,
		},
		"test_particle": {
			Scenario: "two_body", Method: "brute_force", Integrator: "leapfrog",
			Orbits: 50, StepsPerOrbit: 500, Dim: 3, Dt: DefaultDt, Theta: 0.5, Lanes: 4, Checked: true,
			Bodies: []BodyConfig{
				{Position: []float64{0, 0, 0}, Mu: 1},
				{Position: []float64{1, 0, 0}, Velocity: []float64{0, 1, 0}, Mu: 0},
			},
		},
	},
	"cloud": {
		"small": {
			Scenario: "cloud", Method: "barnes_hut", Integrator: "leapfrog", NumBodies: 256,
			Dim: 3, Dt: DefaultDt, Orbits: 1, StepsPerOrbit: 200, Theta: 0.5, Lanes: 4, Checked: true, Seed: 1,
		},
		"large": {
			Scenario: "cloud", Method: "parallel_barnes_hut", Integrator: "leapfrog", NumBodies: 20000,
			Dim: 3, Dt: DefaultDt, Orbits: 1, StepsPerOrbit: 50, Theta: 0.7, Lanes: 4, Checked: true, Seed: 1,
		},
	},
	"disk": {
		"galaxy": {
			Scenario: "disk", Method: "parallel_simd", Integrator: "leapfrog", NumBodies: 2000,
			Dim: 2, Dt: DefaultDt, Orbits: 1, StepsPerOrbit: 500, Theta: 0.5, Lanes: 8, Checked: true, Seed: 7,
		},
		"gpu": {
			Scenario: "disk", Method: "gpu", Memory: "shared", Integrator: "leapfrog", NumBodies: 8192,
			Dim: 3, Dt: DefaultDt, Orbits: 1, StepsPerOrbit: 200, Theta: 0.5, Lanes: 4, Checked: true, Seed: 7,
		},
	},
	"clusters": {
		"merger": {
			Scenario: "clusters", Method: "barnes_hut", Integrator: "verlet", NumBodies: 1000,
			Dim: 3, Dt: DefaultDt, Orbits: 1, StepsPerOrbit: 1000, Theta: 0.6, Lanes: 4, Checked: true, Seed: 3,
		},
	},
}

// GetPreset returns a copy of a preset, or nil if it does not exist.
func GetPreset(scenario, preset string) *Config {
	presets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := presets[preset]
	if !ok {
		return nil
	}
	return cfg.Copy()
}

func ListPresets(scenario string) []string {
	presets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	return sortedKeys(presets)
}

func ListScenarios() []string {
	return sortedKeys(Presets)
}
