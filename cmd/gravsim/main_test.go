package main

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFlagsOverridePreset(t *testing.T) {
	cmd := &cobra.Command{Use: "orbit"}
	addSystemFlags(cmd)
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "")
	cmd.Flags().IntVar(&orbits, "orbits", config.DefaultOrbits, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--method", "barnes_hut:0.3", "--orbits", "3"}))

	preset = "two_body/long"
	defer func() { preset = "" }()

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "barnes_hut:0.3", cfg.Method)
	assert.Equal(t, 3, cfg.Orbits)
	assert.Equal(t, 1000, cfg.StepsPerOrbit)
	assert.Equal(t, "semi_implicit_euler", cfg.Integrator)

	preset = "two_body/missing"
	_, err = loadConfig(cmd)
	assert.ErrorContains(t, err, "unknown preset: two_body/missing")
}

func TestCompareSpecs(t *testing.T) {
	cfg := config.DefaultConfig()
	specs, err := compareSpecs(cfg, nil)
	require.NoError(t, err)
	assert.Len(t, specs, len(compute.Kinds()))

	specs, err = compareSpecs(cfg, []string{"simd:8", "barnes_hut:0.2"})
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, 8, specs[0].Lanes)

	_, err = compareSpecs(cfg, []string{"fmm"})
	assert.Error(t, err)

	_, err = compareSpecs(cfg, []string{"simd:4:unchecked"})
	assert.ErrorContains(t, err, "unchecked simd")
}

func TestSystemTiming(t *testing.T) {
	cfg := config.GetPreset("two_body", "circular")
	cfg.Orbits = 2
	sys, err := build[vec.Vec2](cfg)
	require.NoError(t, err)
	defer sys.release()

	step, steps := sys.timing()
	assert.Equal(t, 2000, steps)
	assert.InDelta(t, sys.period/1000, step, 1e-15)

	cfg.StepsPerOrbit = 0
	cfg.Dt = sys.period / 8
	_, steps = sys.timing()
	assert.Equal(t, 16, steps)
	assert.False(t, math.IsNaN(step))
}
