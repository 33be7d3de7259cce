package sim

import (
	"context"

	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/vec"
)

// Simulator integrates a body system with accelerations from one compute
// method. It is not safe for concurrent use; see Ensemble.
type Simulator[S vec.Scalar, V vec.Vector[S, V]] struct {
	method     compute.Method[S, V]
	integrator Integrator[S, V]
	metrics    []Metric[S, V]
	observers  []Observer[S, V]
}

func New[S vec.Scalar, V vec.Vector[S, V]](method compute.Method[S, V], integrator Integrator[S, V]) *Simulator[S, V] {
	return &Simulator[S, V]{
		method:     method,
		integrator: integrator,
	}
}

func (s *Simulator[S, V]) AddMetric(m Metric[S, V])     { s.metrics = append(s.metrics, m) }
func (s *Simulator[S, V]) AddObserver(o Observer[S, V]) { s.observers = append(s.observers, o) }

func (s *Simulator[S, V]) Method() compute.Method[S, V] { return s.method }

// Accelerations evaluates the configured method for bodies.
func (s *Simulator[S, V]) Accelerations(bodies Bodies[S, V]) []V {
	pms := pointmass.Map(bodies, Body[S, V].PointMass)
	return gravity.Accelerations(pms, s.method)
}

func (s *Simulator[S, V]) Run(ctx context.Context, initial Bodies[S, V], cfg Config) (*Result[S, V], error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result[S, V]{
		Method:     s.method.Name(),
		Integrator: s.integrator.Name(),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	if r, ok := s.integrator.(Resetter); ok {
		r.Reset()
	}

	bodies := initial.Clone()
	t := 0.0
	dt := S(cfg.Dt)

	result.Snapshots = append(result.Snapshots, bodies.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(bodies, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(bodies, t)
		}

		s.integrator.Step(bodies, s.Accelerations, dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !bodies.IsValid() {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}

		last := i == cfg.Steps-1
		if last || (cfg.RecordEvery > 0 && (i+1)%cfg.RecordEvery == 0) {
			result.Snapshots = append(result.Snapshots, bodies.Clone())
			result.Times = append(result.Times, t)
		}
	}

	for _, m := range s.metrics {
		m.Observe(bodies, t)
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps until cfg.Steps or until callback returns false. The
// bodies passed to callback are only valid during the call.
func (s *Simulator[S, V]) RunWithCallback(ctx context.Context, initial Bodies[S, V], cfg Config, callback func(Bodies[S, V], float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if r, ok := s.integrator.(Resetter); ok {
		r.Reset()
	}

	pool := NewBodyPool[S, V](len(initial))
	bodies := initial.Clone()
	t := 0.0

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		view := pool.GetAndCopy(bodies)
		cont := callback(view, t)
		pool.Put(view)
		if !cont {
			return nil
		}

		s.integrator.Step(bodies, s.Accelerations, S(cfg.Dt))
		t += cfg.Dt

		if cfg.ValidateState && !bodies.IsValid() {
			return SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return errors.Errorf("dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return errors.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.RecordEvery < 0 {
		return errors.Errorf("record interval must be non-negative, got %d", cfg.RecordEvery)
	}
	return nil
}
