package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	configFile    string
	preset        string
	method        string
	integrator    string
	theta         float64
	workers       int
	dt            float64
	orbits        int
	stepsPerOrbit int
	numBodies     int
	dim           int
	seed          int64
	limit         int
	outPath       string
	theme         string
	extent        float64
	stepsPerFrame int
	noSave        bool
	tolerance     float64
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gravsim: ")

	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "gravitational acceleration lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "preset as scenario/name")

	accelCmd := &cobra.Command{
		Use:   "accel",
		Short: "compute accelerations for a system",
		RunE:  runAccel,
	}
	addSystemFlags(accelCmd)
	accelCmd.Flags().IntVar(&limit, "limit", 20, "rows to print")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "integrate a system and report drift",
		RunE:  runOrbit,
	}
	addSystemFlags(orbitCmd)
	orbitCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	orbitCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep when steps-per-orbit is 0")
	orbitCmd.Flags().IntVar(&orbits, "orbits", config.DefaultOrbits, "orbits to integrate")
	orbitCmd.Flags().IntVar(&stepsPerOrbit, "steps-per-orbit", config.DefaultStepsPerOrbit, "steps per orbital period")
	orbitCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	compareCmd := &cobra.Command{
		Use:   "compare [method...]",
		Short: "compare methods against brute force",
		RunE:  runCompare,
	}
	addSystemFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "barnes-hut error against theta",
		RunE:  runSweep,
	}
	addSystemFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&tolerance, "tolerance", 1e-2, "aggregate error budget")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list compute methods",
		Run: func(cmd *cobra.Command, args []string) {
			printMethods()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			scenarios := config.ListScenarios()
			if len(args) == 1 {
				scenarios = args
			}
			for _, s := range scenarios {
				presets := config.ListPresets(s)
				if len(presets) == 0 {
					fmt.Printf("no presets for scenario: %s\n", s)
					continue
				}
				fmt.Printf("%s:\n", s)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a stored run's trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default <run_id>.svg)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "integrate a system with a live terminal view",
		RunE:  runLive,
	}
	addSystemFlags(liveCmd)
	liveCmd.Flags().StringVar(&integrator, "integrator", "leapfrog", "integrator")
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep when steps-per-orbit is 0")
	liveCmd.Flags().IntVar(&stepsPerOrbit, "steps-per-orbit", config.DefaultStepsPerOrbit, "steps per orbital period")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 10, "integration steps per frame")
	liveCmd.Flags().Float64Var(&extent, "extent", 0, "visible world radius (0 fits the system)")
	liveCmd.Flags().StringVar(&theme, "theme", "night", "color theme")

	rootCmd.AddCommand(accelCmd, orbitCmd, compareCmd, sweepCmd, methodsCmd, presetsCmd, listCmd, exportJSONCmd, exportSVGCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "compute method, e.g. barnes_hut:0.3")
	cmd.Flags().Float64Var(&theta, "theta", 0.5, "barnes-hut opening parameter")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&numBodies, "bodies", config.DefaultBodies, "number of generated bodies")
	cmd.Flags().IntVar(&dim, "dim", config.DefaultDim, "dimension (2 or 3)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		scenario, name, ok := strings.Cut(preset, "/")
		p := config.GetPreset(scenario, name)
		if !ok || p == nil {
			return nil, errors.Errorf("unknown preset: %s (see 'gravsim presets')", preset)
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("theta") {
		cfg.Theta = theta
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("bodies") {
		cfg.NumBodies = numBodies
	}
	if flags.Changed("dim") {
		cfg.Dim = dim
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	// Commands pick their own default integrator unless a file chose one.
	if f := flags.Lookup("integrator"); f != nil && (f.Changed || preset == "" && configFile == "") {
		cfg.Integrator = integrator
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("orbits") {
		cfg.Orbits = orbits
	}
	if flags.Changed("steps-per-orbit") {
		cfg.StepsPerOrbit = stepsPerOrbit
	}
	return cfg, cfg.Validate()
}
