package config

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/gpu"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScenario      = "two_body"
	DefaultMethod        = "brute_force"
	DefaultIntegrator    = "semi_implicit_euler"
	DefaultOrbits        = 10
	DefaultStepsPerOrbit = 1000
	DefaultBodies        = 256
	DefaultDim           = 3
	DefaultDt            = 1e-3
)

type Config struct {
	Scenario      string       `yaml:"scenario"`
	Method        string       `yaml:"method"`
	Theta         float64      `yaml:"theta"`
	Lanes         int          `yaml:"lanes"`
	Checked       bool         `yaml:"checked"`
	Softening     float64      `yaml:"softening"`
	Memory        string       `yaml:"memory"`
	Workers       int          `yaml:"workers"`
	Integrator    string       `yaml:"integrator"`
	Dt            float64      `yaml:"dt"`
	Orbits        int          `yaml:"orbits"`
	StepsPerOrbit int          `yaml:"steps_per_orbit"`
	Seed          int64        `yaml:"seed"`
	NumBodies     int          `yaml:"num_bodies"`
	Dim           int          `yaml:"dim"`
	Bodies        []BodyConfig `yaml:"bodies,omitempty"`
}

// BodyConfig is an explicit body; it overrides the scenario generator when
// present.
type BodyConfig struct {
	Position []float64 `yaml:"position"`
	Velocity []float64 `yaml:"velocity,omitempty"`
	Mu       float64   `yaml:"mu"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      DefaultScenario,
		Method:        DefaultMethod,
		Theta:         compute.DefaultTheta,
		Lanes:         compute.DefaultLanes,
		Checked:       true,
		Softening:     compute.DefaultEpsilon,
		Memory:        gpu.Global.String(),
		Integrator:    DefaultIntegrator,
		Dt:            DefaultDt,
		Orbits:        DefaultOrbits,
		StepsPerOrbit: DefaultStepsPerOrbit,
		Seed:          1,
		NumBodies:     DefaultBodies,
		Dim:           DefaultDim,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// MethodSpec combines Method with the per-method parameters. Parameters
// written into Method itself ("barnes_hut:0.3") win over the separate fields.
// Every command computes a self-interacting system, so unchecked SIMD is
// rejected.
func (c *Config) MethodSpec() (compute.Spec, error) {
	spec, err := compute.ParseSpec(c.Method)
	if err != nil {
		return compute.Spec{}, err
	}
	inline := len(strings.Split(strings.TrimSpace(c.Method), ":")) - 1

	if inline < 1 {
		spec.Theta = c.Theta
		if c.Lanes != 0 {
			spec.Lanes = c.Lanes
		}
		spec.Epsilon = c.Softening
		if c.Memory != "" {
			mem, err := gpu.ParseMemoryStrategy(c.Memory)
			if err != nil {
				return compute.Spec{}, err
			}
			spec.Memory = mem
		}
	}
	if inline < 2 {
		spec.Checked = c.Checked
	}
	spec.Workers = c.Workers

	if err := spec.Validate(); err != nil {
		return compute.Spec{}, err
	}
	if err := RequireChecked(spec); err != nil {
		return compute.Spec{}, err
	}
	return spec, nil
}

// RequireChecked fails for SIMD specs without the coincidence check, which
// yield NaN whenever a query point is also an affecting particle.
func RequireChecked(spec compute.Spec) error {
	switch spec.Kind {
	case compute.KindSIMD, compute.KindParallelSIMD:
		if !spec.Checked {
			return errors.Errorf("%s: unchecked simd is undefined for self-interacting systems", spec)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Dim != 2 && c.Dim != 3 {
		return errors.Errorf("dim must be 2 or 3, got %d", c.Dim)
	}
	if c.Dt <= 0 {
		return errors.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Orbits <= 0 {
		return errors.Errorf("orbits must be positive, got %d", c.Orbits)
	}
	// steps_per_orbit 0 means dt is used as given.
	if c.StepsPerOrbit < 0 {
		return errors.Errorf("steps_per_orbit must be non-negative, got %d", c.StepsPerOrbit)
	}
	if c.NumBodies < 0 {
		return errors.Errorf("num_bodies must be non-negative, got %d", c.NumBodies)
	}
	for i, b := range c.Bodies {
		if len(b.Position) != c.Dim {
			return errors.Errorf("body %d: position has %d components, want %d", i, len(b.Position), c.Dim)
		}
		if len(b.Velocity) != 0 && len(b.Velocity) != c.Dim {
			return errors.Errorf("body %d: velocity has %d components, want %d", i, len(b.Velocity), c.Dim)
		}
	}
	_, err := c.MethodSpec()
	return err
}

// Copy returns a deep copy, so presets can be modified safely.
func (c *Config) Copy() *Config {
	out := *c
	if c.Bodies == nil {
		return &out
	}
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		out.Bodies[i] = BodyConfig{
			Position: append([]float64(nil), b.Position...),
			Velocity: append([]float64(nil), b.Velocity...),
			Mu:       b.Mu,
		}
	}
	return &out
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
