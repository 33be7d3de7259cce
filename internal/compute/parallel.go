package compute

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/simd"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/tree"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/unixpickle/essentials"
)

// Parallel variants split the affected particles across Workers goroutines
// (0 means GOMAXPROCS). Each worker runs the sequential kernel and writes only
// its own output slots.

type ParallelBruteForce[S vec.Scalar, V vec.Vector[S, V]] struct {
	Workers int
}

func (ParallelBruteForce[S, V]) Name() string { return "parallel_brute_force" }

func (m ParallelBruteForce[S, V]) Compute(view storage.View[S, V]) []V {
	out := make([]V, len(view.Affected))
	essentials.ConcurrentMap(m.Workers, len(out), func(i int) {
		out[i] = pointmass.AccelerationSum(view.Affected[i].Position, view.Affecting)
	})
	return out
}

type ParallelSIMD[L simd.Lanes[L], S vec.Scalar, V vec.Vector[S, V]] struct {
	Checked bool
	Workers int
}

func (m ParallelSIMD[L, S, V]) Name() string {
	return "parallel_" + SIMD[L, S, V]{Checked: m.Checked}.Name()
}

func (m ParallelSIMD[L, S, V]) Compute(view storage.View[S, V]) []V {
	groups := simd.Pack[L](view.Affecting)
	out := make([]V, len(view.Affected))
	essentials.ConcurrentMap(m.Workers, len(out), func(i int) {
		out[i] = simd.AccelerationAt[L, S, V](view.Affected[i].Position, groups, m.Checked)
	})
	return out
}

// ParallelBarnesHut builds the tree once, then queries it concurrently.
type ParallelBarnesHut[S vec.Scalar, V vec.Vector[S, V]] struct {
	Theta   S
	Workers int
}

func (m ParallelBarnesHut[S, V]) Name() string {
	return fmt.Sprintf("parallel_barnes_hut(theta=%g)", float64(m.Theta))
}

func (m ParallelBarnesHut[S, V]) Compute(view storage.View[S, V]) []V {
	root, t := tree.BuildGravity(view.Affecting)
	out := make([]V, len(view.Affected))
	essentials.ConcurrentMap(m.Workers, len(out), func(i int) {
		out[i] = tree.AccelerationAt(t, root, view.Affected[i].Position, m.Theta)
	})
	return out
}
