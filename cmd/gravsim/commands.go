package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/optim"
	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/store"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
)

// system is what every command builds from a config.
type system[V vec.Vector[float64, V]] struct {
	cfg    *config.Config
	spec   compute.Spec
	bodies sim.Bodies[float64, V]
	period float64
	method compute.Method[float64, V]
}

func build[V vec.Vector[float64, V]](cfg *config.Config) (*system[V], error) {
	bodies, period, err := scenario.FromConfig[float64, V](cfg)
	if err != nil {
		return nil, err
	}
	spec, err := cfg.MethodSpec()
	if err != nil {
		return nil, err
	}
	m, err := compute.New[float64, V](spec)
	if err != nil {
		return nil, err
	}
	return &system[V]{cfg: cfg, spec: spec, bodies: bodies, period: period, method: m}, nil
}

func (s *system[V]) release() { compute.Release(s.method) }

// timing turns orbit counts into a step size and count.
func (s *system[V]) timing() (float64, int) {
	if s.cfg.StepsPerOrbit > 0 {
		return s.period / float64(s.cfg.StepsPerOrbit), max(1, s.cfg.Orbits) * s.cfg.StepsPerOrbit
	}
	return s.cfg.Dt, int(math.Ceil(float64(max(1, s.cfg.Orbits)) * s.period / s.cfg.Dt))
}

func byDim(cfg *config.Config, run2, run3 func(*config.Config) error) error {
	if cfg.Dim == 2 {
		return run2(cfg)
	}
	return run3(cfg)
}

func accelerations[V vec.Vector[float64, V]](bodies sim.Bodies[float64, V], m compute.Method[float64, V]) []V {
	return gravity.Accelerations(pointmass.Map(bodies, sim.Body[float64, V].PointMass), m)
}

func formatVec[V vec.Vector[float64, V]](v V) string {
	parts := make([]string, v.Dim())
	for i := range parts {
		parts[i] = fmt.Sprintf("%.4g", v.Axis(i))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func runAccel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return byDim(cfg, accel[vec.Vec2], accel[vec.Vec3])
}

func accel[V vec.Vector[float64, V]](cfg *config.Config) error {
	sys, err := build[V](cfg)
	if err != nil {
		return err
	}
	defer sys.release()

	start := time.Now()
	accs := accelerations(sys.bodies, sys.method)
	elapsed := time.Since(start)

	rows := make([][]string, 0, min(limit, len(accs)))
	for i, a := range accs {
		if i >= limit {
			break
		}
		b := sys.bodies[i]
		rows = append(rows, []string{fmt.Sprint(i), fmt.Sprintf("%.4g", b.GM), formatVec(b.Pos), formatVec(a)})
	}
	fmt.Printf("%s on %d bodies in %v\n", sys.method.Name(), len(sys.bodies), elapsed)
	fmt.Println(viz.Table([]string{"#", "mu", "position", "acceleration"}, rows))
	if len(accs) > limit {
		fmt.Printf("... %d more\n", len(accs)-limit)
	}
	return nil
}

func runOrbit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return byDim(cfg, orbit[vec.Vec2], orbit[vec.Vec3])
}

func orbit[V vec.Vector[float64, V]](cfg *config.Config) error {
	sys, err := build[V](cfg)
	if err != nil {
		return err
	}
	defer sys.release()

	integ, err := integrators.ByName[float64, V](cfg.Integrator)
	if err != nil {
		return err
	}
	simulator := sim.New(sys.method, integ)
	if len(sys.bodies) == 2 {
		simulator.AddMetric(metrics.NewEnergyDrift[float64, V](0, 1))
		simulator.AddMetric(metrics.NewSeparationDrift[float64, V](0, 1))
	} else if len(sys.bodies) <= 2000 {
		simulator.AddMetric(metrics.NewEnergyDrift[float64, V](0, 0))
	}
	simulator.AddMetric(metrics.NewAngularMomentumDrift[float64, V]())
	simulator.AddMetric(metrics.NewBound[float64, V](10))

	step, steps := sys.timing()
	// About 32 evenly spaced snapshots per orbit, so the period estimate
	// sees a uniform sample interval.
	every := max(1, steps/max(1, cfg.Orbits)/32)
	for steps%every != 0 {
		every--
	}
	simCfg := sim.Config{
		Dt:            step,
		Steps:         steps,
		RecordEvery:   every,
		ValidateState: true,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("integrating %d bodies for %d steps of %.3g with %s/%s", len(sys.bodies), steps, step, sys.method.Name(), integ.Name())
	start := time.Now()
	result, err := simulator.Run(ctx, sys.bodies, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	for _, e := range result.Errors {
		log.Printf("warning: %v", e)
	}

	fmt.Printf("completed %d steps in %v\n", result.StepsTaken, elapsed)
	printMetrics(result.Metrics)

	if len(sys.bodies) == 2 && len(result.Snapshots) > 2 {
		rel := analysis.Series(result, func(bs sim.Bodies[float64, V]) float64 {
			return bs[1].Pos.Sub(bs[0].Pos).Axis(0)
		})
		estimate := analysis.DominantPeriod(rel, analysis.SampleInterval(result))
		fmt.Printf("\nperiod: %.6f (expected %.6f, error %.2e)\n", estimate, sys.period, analysis.RelativePeriodError(estimate, sys.period))
		fmt.Println(viz.Chart("relative x", 8, 70, rel))
	}

	if noSave {
		return nil
	}
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.RunMetadata{
		Scenario:   cfg.Scenario,
		Method:     sys.spec.String(),
		Integrator: integ.Name(),
		Seed:       cfg.Seed,
		Dt:         step,
		Steps:      result.StepsTaken,
		Metrics:    result.Metrics,
	}, store.Flatten(result))
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %-18s %.6e\n", name, m[name])
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	specs, err := compareSpecs(cfg, args)
	if err != nil {
		return err
	}
	if cfg.Dim == 2 {
		return compare[vec.Vec2](cfg, specs)
	}
	return compare[vec.Vec3](cfg, specs)
}

// compareSpecs parses args, or lists every method with cfg's parameters.
func compareSpecs(cfg *config.Config, args []string) ([]compute.Spec, error) {
	var specs []compute.Spec
	for _, arg := range args {
		spec, err := compute.ParseSpec(arg)
		if err != nil {
			return nil, err
		}
		if err := config.RequireChecked(spec); err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if len(specs) > 0 {
		return specs, nil
	}
	for _, kind := range compute.Kinds() {
		c := cfg.Copy()
		c.Method = string(kind)
		spec, err := c.MethodSpec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func cloud[V vec.Vector[float64, V]](cfg *config.Config) sim.Bodies[float64, V] {
	return scenario.UniformCloud[float64, V](rand.New(rand.NewSource(cfg.Seed)), cfg.NumBodies, 1, 1, 8)
}

func compare[V vec.Vector[float64, V]](cfg *config.Config, specs []compute.Spec) error {
	bodies := cloud[V](cfg)
	want := accelerations(bodies, compute.Method[float64, V](compute.BruteForce[float64, V]{}))

	rows := make([][]string, 0, len(specs))
	for _, spec := range specs {
		m, err := compute.New[float64, V](spec)
		if err != nil {
			return errors.Wrap(err, spec.String())
		}
		start := time.Now()
		got := accelerations(bodies, m)
		elapsed := time.Since(start)
		compute.Release(m)

		stats := metrics.Compare(got, want)
		rows = append(rows, []string{
			spec.String(),
			elapsed.Round(time.Microsecond).String(),
			fmt.Sprintf("%.2e", stats.Mean),
			fmt.Sprintf("%.2e", stats.Max),
			fmt.Sprintf("%.2e", stats.Aggregate),
		})
	}
	fmt.Printf("%d bodies, dim %d, seed %d\n", len(bodies), cfg.Dim, cfg.Seed)
	fmt.Println(viz.Table([]string{"method", "time", "mean err", "max err", "aggregate"}, rows))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return byDim(cfg, sweep[vec.Vec2], sweep[vec.Vec3])
}

func sweep[V vec.Vector[float64, V]](cfg *config.Config) error {
	bodies := cloud[V](cfg)
	want := accelerations(bodies, compute.Method[float64, V](compute.BruteForce[float64, V]{}))

	var logErrs []float64
	rows := [][]string{}
	search := optim.NewGridSearch(optim.Linspace(0, 1.5, 16))
	points, err := search.Search(context.Background(), func(th float64) (float64, error) {
		start := time.Now()
		got := accelerations(bodies, compute.Method[float64, V](compute.BarnesHut[float64, V]{Theta: th}))
		elapsed := time.Since(start)

		agg := metrics.AggregateError(got, want)
		logErrs = append(logErrs, math.Log10(max(agg, 1e-17)))
		rows = append(rows, []string{fmt.Sprintf("%.1f", th), elapsed.Round(time.Microsecond).String(), fmt.Sprintf("%.2e", agg)})
		return agg, nil
	})
	if err != nil {
		return err
	}
	fmt.Println(viz.Table([]string{"theta", "time", "aggregate"}, rows))
	fmt.Println(viz.Chart("log10 aggregate error vs theta", 10, 60, logErrs))
	if p, ok := optim.LargestWithin(points, tolerance); ok {
		fmt.Printf("largest theta within %.0e: %.1f (error %.2e)\n", tolerance, p.Param, p.Value)
	}
	return nil
}

func printMethods() {
	rows := make([][]string, 0)
	for _, kind := range compute.Kinds() {
		rows = append(rows, []string{string(kind), compute.DefaultSpec(kind).String(), kind.Description()})
	}
	fmt.Println(viz.Table([]string{"kind", "default", "description"}, rows))
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{r.ID, r.Method, r.Integrator, fmt.Sprint(r.Bodies), fmt.Sprint(r.Steps), r.Timestamp.Format("2006-01-02 15:04:05")})
	}
	fmt.Println(viz.Table([]string{"id", "method", "integrator", "bodies", "steps", "time"}, rows))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer f.Close()
		w = f
	}
	if err := store.New(dataDir).ExportRun(args[0], w); err != nil {
		return err
	}
	if outPath != "" {
		log.Printf("exported %s to %s", args[0], outPath)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	traj, err := store.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	path := outPath
	if path == "" {
		path = args[0] + ".svg"
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer f.Close()
	if err := export.TrajectorySVG(f, traj, 800, 16); err != nil {
		return err
	}
	log.Printf("wrote %s", path)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return byDim(cfg, live[vec.Vec2], live[vec.Vec3])
}

func live[V vec.Vector[float64, V]](cfg *config.Config) error {
	sys, err := build[V](cfg)
	if err != nil {
		return err
	}
	defer sys.release()

	integ, err := integrators.ByName[float64, V](cfg.Integrator)
	if err != nil {
		return err
	}
	step, _ := sys.timing()
	model := viz.NewModel(sys.bodies, integ, sim.New(sys.method, integ).Accelerations, viz.LiveConfig{
		Title:         cfg.Scenario,
		Method:        sys.spec.String(),
		Dt:            step,
		StepsPerFrame: stepsPerFrame,
		Extent:        extent,
		Theme:         theme,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	essentials.Must(err)
	return nil
}
