package sim

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/vec"
)

// Body is a point-mass with a velocity. GM is the standard gravitational
// parameter, so accelerations need no separate constant.
type Body[S vec.Scalar, V vec.Vector[S, V]] struct {
	Pos V
	Vel V
	GM  S
}

func (b Body[S, V]) Position() V { return b.Pos }
func (b Body[S, V]) Mu() S       { return b.GM }

func (b Body[S, V]) PointMass() pointmass.PointMass[S, V] {
	return pointmass.PointMass[S, V]{Position: b.Pos, Mass: b.GM}
}

type Bodies[S vec.Scalar, V vec.Vector[S, V]] []Body[S, V]

func (bs Bodies[S, V]) Clone() Bodies[S, V] {
	c := make(Bodies[S, V], len(bs))
	copy(c, bs)
	return c
}

// IsValid reports whether every position and velocity is finite.
func (bs Bodies[S, V]) IsValid() bool {
	for _, b := range bs {
		if !vec.IsFinite(b.Pos) || !vec.IsFinite(b.Vel) {
			return false
		}
	}
	return true
}

// AccelFunc returns one acceleration per body, in order.
type AccelFunc[S vec.Scalar, V vec.Vector[S, V]] func(bodies Bodies[S, V]) []V

// Integrator advances bodies in place by dt.
type Integrator[S vec.Scalar, V vec.Vector[S, V]] interface {
	Name() string
	Step(bodies Bodies[S, V], accel AccelFunc[S, V], dt S)
}

// Resetter is implemented by integrators that cache state between steps.
type Resetter interface {
	Reset()
}

type Metric[S vec.Scalar, V vec.Vector[S, V]] interface {
	Name() string
	Observe(bodies Bodies[S, V], t float64)
	Value() float64
	Reset()
}

type Observer[S vec.Scalar, V vec.Vector[S, V]] interface {
	OnStep(bodies Bodies[S, V], t float64)
}

type Config struct {
	Dt    float64
	Steps int
	// RecordEvery keeps a snapshot every n steps; 0 keeps only the first
	// and last states.
	RecordEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1e-3,
		Steps:         1000,
		RecordEvery:   10,
		ValidateState: true,
	}
}

type Result[S vec.Scalar, V vec.Vector[S, V]] struct {
	Method     string
	Integrator string
	Times      []float64
	Snapshots  []Bodies[S, V]
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

func (r *Result[S, V]) Initial() Bodies[S, V] { return r.Snapshots[0] }

func (r *Result[S, V]) Final() Bodies[S, V] { return r.Snapshots[len(r.Snapshots)-1] }

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
