package integrators

import (
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

// RK4 is the classic fourth-order Runge-Kutta method on (position, velocity).
// Accurate per step but not symplectic.
type RK4[S vec.Scalar, V vec.Vector[S, V]] struct {
	scratch sim.Bodies[S, V]
	kx, kv  [4][]V
}

func NewRK4[S vec.Scalar, V vec.Vector[S, V]]() *RK4[S, V] {
	return &RK4[S, V]{}
}

func (r *RK4[S, V]) Name() string { return "rk4" }

func (r *RK4[S, V]) ensureScratch(n int) {
	if len(r.scratch) != n {
		r.scratch = make(sim.Bodies[S, V], n)
		for k := range r.kx {
			r.kx[k] = make([]V, n)
		}
	}
}

func (r *RK4[S, V]) Step(bodies sim.Bodies[S, V], accel sim.AccelFunc[S, V], dt S) {
	n := len(bodies)
	r.ensureScratch(n)
	copy(r.scratch, bodies)

	stage := [4]S{0, dt / 2, dt / 2, dt}
	for k := 0; k < 4; k++ {
		if k > 0 {
			for i := range r.scratch {
				r.scratch[i].Pos = bodies[i].Pos.Add(r.kx[k-1][i].Scale(stage[k]))
				r.scratch[i].Vel = bodies[i].Vel.Add(r.kv[k-1][i].Scale(stage[k]))
			}
		}
		for i := range r.scratch {
			r.kx[k][i] = r.scratch[i].Vel
		}
		r.kv[k] = accel(r.scratch)
	}

	dt6 := dt / 6
	for i := range bodies {
		b := &bodies[i]
		dx := r.kx[0][i].Add(r.kx[1][i].Scale(2)).Add(r.kx[2][i].Scale(2)).Add(r.kx[3][i])
		dv := r.kv[0][i].Add(r.kv[1][i].Scale(2)).Add(r.kv[2][i].Scale(2)).Add(r.kv[3][i])
		b.Pos = b.Pos.Add(dx.Scale(dt6))
		b.Vel = b.Vel.Add(dv.Scale(dt6))
	}
}
