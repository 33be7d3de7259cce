package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	spec, err := cfg.MethodSpec()
	require.NoError(t, err)
	assert.Equal(t, compute.KindBruteForce, spec.Kind)
}

func TestMethodSpecMerging(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		check  func(*testing.T, compute.Spec)
	}{
		{"theta from field", func(c *Config) { c.Method = "barnes_hut"; c.Theta = 0.9 }, func(t *testing.T, s compute.Spec) {
			assert.Equal(t, 0.9, s.Theta)
		}},
		{"theta inline wins", func(c *Config) { c.Method = "barnes_hut:0.2"; c.Theta = 0.9 }, func(t *testing.T, s compute.Spec) {
			assert.Equal(t, 0.2, s.Theta)
		}},
		{"lanes from field", func(c *Config) { c.Method = "simd"; c.Lanes = 8 }, func(t *testing.T, s compute.Spec) {
			assert.Equal(t, 8, s.Lanes)
		}},
		{"memory from field", func(c *Config) { c.Method = "gpu"; c.Memory = "shared" }, func(t *testing.T, s compute.Spec) {
			assert.Equal(t, gpu.Shared, s.Memory)
		}},
		{"epsilon inline wins", func(c *Config) { c.Method = "brute_force_softened:0.001"; c.Softening = 0.2 }, func(t *testing.T, s compute.Spec) {
			assert.Equal(t, 0.001, s.Epsilon)
		}},
		{"epsilon from field", func(c *Config) { c.Method = "brute_force_softened"; c.Softening = 0.2 }, func(t *testing.T, s compute.Spec) {
			assert.Equal(t, 0.2, s.Epsilon)
		}},
		{"default theta inline wins", func(c *Config) { c.Method = "barnes_hut:0.5"; c.Theta = 0.3 }, func(t *testing.T, s compute.Spec) {
			assert.Equal(t, 0.5, s.Theta)
		}},
		{"lanes inline wins", func(c *Config) { c.Method = "parallel_simd:4"; c.Lanes = 8 }, func(t *testing.T, s compute.Spec) {
			assert.Equal(t, 4, s.Lanes)
			assert.True(t, s.Checked)
		}},
		{"memory inline wins", func(c *Config) { c.Method = "gpu:global"; c.Memory = "shared" }, func(t *testing.T, s compute.Spec) {
			assert.Equal(t, gpu.Global, s.Memory)
		}},
		{"workers", func(c *Config) { c.Method = "parallel_brute_force"; c.Workers = 3 }, func(t *testing.T, s compute.Spec) {
			assert.Equal(t, 3, s.Workers)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			spec, err := cfg.MethodSpec()
			require.NoError(t, err)
			tt.check(t, spec)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"dim", func(c *Config) { c.Dim = 4 }},
		{"dt", func(c *Config) { c.Dt = 0 }},
		{"orbits", func(c *Config) { c.Orbits = 0 }},
		{"steps per orbit", func(c *Config) { c.StepsPerOrbit = -1 }},
		{"method", func(c *Config) { c.Method = "warp_drive" }},
		{"lanes", func(c *Config) { c.Method = "simd"; c.Lanes = 3 }},
		{"body dim", func(c *Config) { c.Bodies = []BodyConfig{{Position: []float64{1, 2}}} }},
		{"unchecked simd inline", func(c *Config) { c.Method = "simd:4:unchecked" }},
		{"unchecked simd field", func(c *Config) { c.Method = "parallel_simd"; c.Checked = false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRequireChecked(t *testing.T) {
	spec, err := compute.ParseSpec("simd:8:unchecked")
	require.NoError(t, err)
	assert.ErrorContains(t, RequireChecked(spec), "unchecked simd")

	spec.Checked = true
	assert.NoError(t, RequireChecked(spec))

	cfg := DefaultConfig()
	cfg.Checked = false
	_, err = cfg.MethodSpec()
	assert.NoError(t, err, "checked only applies to simd kinds")
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("two_body", "test_particle")
	require.NotNil(t, cfg)
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("method: simd:8\nnum_bodies: 10\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "simd:8", cfg.Method)
	assert.Equal(t, 10, cfg.NumBodies)
	assert.Equal(t, DefaultIntegrator, cfg.Integrator)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	for _, scenario := range ListScenarios() {
		names := ListPresets(scenario)
		require.NotEmpty(t, names, scenario)
		for _, name := range names {
			cfg := GetPreset(scenario, name)
			require.NotNil(t, cfg)
			assert.NoError(t, cfg.Validate(), "%s/%s", scenario, name)
		}
	}

	assert.Nil(t, GetPreset("two_body", "nonexistent"))
	assert.Nil(t, GetPreset("nonexistent", "circular"))
	assert.Nil(t, ListPresets("nonexistent"))

	p := GetPreset("two_body", "test_particle")
	p.Bodies[0].Mu = 42
	assert.Equal(t, 1.0, Presets["two_body"]["test_particle"].Bodies[0].Mu)
}
