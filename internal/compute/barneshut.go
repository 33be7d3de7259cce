package compute

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/tree"
	"github.com/san-kum/gravsim/internal/vec"
)

// BarnesHut approximates distant groups by their center of mass. A node is
// opened when Theta < width/distance; Theta = 0 is exact.
type BarnesHut[S vec.Scalar, V vec.Vector[S, V]] struct {
	Theta S
}

func (m BarnesHut[S, V]) Name() string {
	return fmt.Sprintf("barnes_hut(theta=%g)", float64(m.Theta))
}

func (m BarnesHut[S, V]) Compute(view storage.View[S, V]) []V {
	root, t := tree.BuildGravity(view.Affecting)
	out := make([]V, len(view.Affected))
	for i, p := range view.Affected {
		out[i] = tree.AccelerationAt(t, root, p.Position, m.Theta)
	}
	return out
}
