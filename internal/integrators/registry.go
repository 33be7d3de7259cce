package integrators

import (
	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

// Names lists the integrators ByName accepts.
func Names() []string {
	return []string{"euler", "semi_implicit_euler", "leapfrog", "verlet", "rk4"}
}

func ByName[S vec.Scalar, V vec.Vector[S, V]](name string) (sim.Integrator[S, V], error) {
	switch name {
	case "euler":
		return NewEuler[S, V](), nil
	case "semi_implicit_euler", "symplectic_euler":
		return NewSemiImplicitEuler[S, V](), nil
	case "leapfrog":
		return NewLeapfrog[S, V](), nil
	case "verlet":
		return NewVerlet[S, V](), nil
	case "rk4":
		return NewRK4[S, V](), nil
	}
	return nil, errors.Errorf("unknown integrator %q", name)
}
