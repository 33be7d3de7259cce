package compute

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/vec"
)

// BruteForce sums every affecting particle for every affected one.
type BruteForce[S vec.Scalar, V vec.Vector[S, V]] struct{}

func (BruteForce[S, V]) Name() string { return "brute_force" }

func (BruteForce[S, V]) Compute(view storage.View[S, V]) []V {
	out := make([]V, len(view.Affected))
	for i, p := range view.Affected {
		out[i] = pointmass.AccelerationSum(p.Position, view.Affecting)
	}
	return out
}

// BruteForceSoftened adds Epsilon² to every squared distance, bounding the
// acceleration near close encounters.
type BruteForceSoftened[S vec.Scalar, V vec.Vector[S, V]] struct {
	Epsilon S
}

func (m BruteForceSoftened[S, V]) Name() string {
	return fmt.Sprintf("brute_force_softened(eps=%g)", float64(m.Epsilon))
}

func (m BruteForceSoftened[S, V]) Compute(view storage.View[S, V]) []V {
	eps2 := m.Epsilon * m.Epsilon
	out := make([]V, len(view.Affected))
	for i, p := range view.Affected {
		out[i] = pointmass.AccelerationSumSoftened(p.Position, view.Affecting, eps2)
	}
	return out
}

// BruteForcePairs visits each pair of affecting particles once and applies
// the force to both. It only accepts self-interacting views.
type BruteForcePairs[S vec.Scalar, V vec.Vector[S, V]] struct{}

func (BruteForcePairs[S, V]) Name() string { return "brute_force_pairs" }

func (BruteForcePairs[S, V]) Compute(view storage.View[S, V]) []V {
	if !view.SelfInteracting() {
		panic("compute: brute_force_pairs requires a self-interacting view")
	}
	if len(view.Affecting) == 0 {
		return make([]V, len(view.Affected))
	}
	return PairsRestricted(view.Affected, len(view.Affecting))
}

// PairsRestricted computes accelerations for all particles where only
// particles[:restrictLen] exert any. Pairs within the prefix share one force
// evaluation; the tail is summed against the prefix directly.
func PairsRestricted[S vec.Scalar, V vec.Vector[S, V]](particles []pointmass.PointMass[S, V], restrictLen int) []V {
	if restrictLen <= 0 || restrictLen > len(particles) {
		panic(fmt.Sprintf("compute: restricted length %d out of range (0, %d]", restrictLen, len(particles)))
	}

	out := make([]V, len(particles))
	for i := 0; i < restrictLen; i++ {
		pi := particles[i]
		for j := i + 1; j < restrictLen; j++ {
			pj := particles[j]
			dir := pj.Position.Sub(pi.Position)
			mag2 := dir.NormSquared()
			if mag2 == 0 {
				continue
			}
			force := dir.Div(mag2 * vec.Sqrt(mag2))
			out[i] = out[i].Add(force.Scale(pj.Mass))
			out[j] = out[j].Sub(force.Scale(pi.Mass))
		}
	}

	affecting := particles[:restrictLen]
	for i := restrictLen; i < len(particles); i++ {
		out[i] = pointmass.AccelerationSum(particles[i].Position, affecting)
	}
	return out
}
