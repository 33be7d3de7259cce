package integrators

import (
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

// Euler is the explicit forward Euler method. It gains energy on every orbit
// and is kept as a baseline.
type Euler[S vec.Scalar, V vec.Vector[S, V]] struct{}

func NewEuler[S vec.Scalar, V vec.Vector[S, V]]() *Euler[S, V] {
	return &Euler[S, V]{}
}

func (e *Euler[S, V]) Name() string { return "euler" }

func (e *Euler[S, V]) Step(bodies sim.Bodies[S, V], accel sim.AccelFunc[S, V], dt S) {
	acc := accel(bodies)
	for i := range bodies {
		b := &bodies[i]
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Vel = b.Vel.Add(acc[i].Scale(dt))
	}
}

// SemiImplicitEuler updates velocity first and moves with the new velocity.
// It is symplectic, so orbital energy oscillates instead of drifting.
type SemiImplicitEuler[S vec.Scalar, V vec.Vector[S, V]] struct{}

func NewSemiImplicitEuler[S vec.Scalar, V vec.Vector[S, V]]() *SemiImplicitEuler[S, V] {
	return &SemiImplicitEuler[S, V]{}
}

func (e *SemiImplicitEuler[S, V]) Name() string { return "semi_implicit_euler" }

func (e *SemiImplicitEuler[S, V]) Step(bodies sim.Bodies[S, V], accel sim.AccelFunc[S, V], dt S) {
	acc := accel(bodies)
	for i := range bodies {
		b := &bodies[i]
		b.Vel = b.Vel.Add(acc[i].Scale(dt))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}
}
