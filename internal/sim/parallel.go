package sim

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/vec"
)

// Ensemble runs the same initial system under several compute methods at
// once. Each run gets its own simulator, integrator and metrics, and owns its
// method exclusively.
type Ensemble[S vec.Scalar, V vec.Vector[S, V]] struct {
	methods       []compute.Method[S, V]
	newIntegrator func() Integrator[S, V]
	newMetrics    func() []Metric[S, V]
}

func NewEnsemble[S vec.Scalar, V vec.Vector[S, V]](methods []compute.Method[S, V], newIntegrator func() Integrator[S, V], newMetrics func() []Metric[S, V]) *Ensemble[S, V] {
	return &Ensemble[S, V]{methods: methods, newIntegrator: newIntegrator, newMetrics: newMetrics}
}

// Run returns results in the order of the methods.
func (e *Ensemble[S, V]) Run(ctx context.Context, initial Bodies[S, V], cfg Config) ([]*Result[S, V], error) {
	results := make([]*Result[S, V], len(e.methods))
	errs := make([]error, len(e.methods))

	var wg sync.WaitGroup
	for i, m := range e.methods {
		wg.Add(1)
		go func(idx int, m compute.Method[S, V]) {
			defer wg.Done()

			s := New(m, e.newIntegrator())
			if e.newMetrics != nil {
				for _, metric := range e.newMetrics() {
					s.AddMetric(metric)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, initial, cfg)
		}(i, m)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrap(err, e.methods[i].Name())
		}
	}

	return results, nil
}
