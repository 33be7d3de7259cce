package integrators

import (
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

// Verlet is velocity Verlet. The acceleration at the end of a step is reused
// at the start of the next, so each step costs one evaluation. Call Reset if
// the bodies are changed between steps.
type Verlet[S vec.Scalar, V vec.Vector[S, V]] struct {
	prevAcc []V
}

func NewVerlet[S vec.Scalar, V vec.Vector[S, V]]() *Verlet[S, V] {
	return &Verlet[S, V]{}
}

func (v *Verlet[S, V]) Name() string { return "verlet" }

func (v *Verlet[S, V]) Reset() { v.prevAcc = nil }

func (v *Verlet[S, V]) Step(bodies sim.Bodies[S, V], accel sim.AccelFunc[S, V], dt S) {
	acc := v.prevAcc
	if len(acc) != len(bodies) {
		acc = accel(bodies)
	}

	halfDt2 := dt * dt / 2
	for i := range bodies {
		b := &bodies[i]
		b.Pos = b.Pos.Add(b.Vel.Scale(dt)).Add(acc[i].Scale(halfDt2))
	}

	next := accel(bodies)
	halfDt := dt / 2
	for i := range bodies {
		b := &bodies[i]
		b.Vel = b.Vel.Add(acc[i].Add(next[i]).Scale(halfDt))
	}
	v.prevAcc = next
}

// Leapfrog is kick-drift-kick with two evaluations per step and no state.
type Leapfrog[S vec.Scalar, V vec.Vector[S, V]] struct{}

func NewLeapfrog[S vec.Scalar, V vec.Vector[S, V]]() *Leapfrog[S, V] {
	return &Leapfrog[S, V]{}
}

func (l *Leapfrog[S, V]) Name() string { return "leapfrog" }

func (l *Leapfrog[S, V]) Step(bodies sim.Bodies[S, V], accel sim.AccelFunc[S, V], dt S) {
	halfDt := dt / 2

	acc := accel(bodies)
	for i := range bodies {
		b := &bodies[i]
		b.Vel = b.Vel.Add(acc[i].Scale(halfDt))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}

	acc = accel(bodies)
	for i := range bodies {
		bodies[i].Vel = bodies[i].Vel.Add(acc[i].Scale(halfDt))
	}
}
