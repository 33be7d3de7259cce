package compute

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/simd"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/vec"
)

// SIMD is brute force over lane groups of width L. With Checked unset the
// zero-distance guard is skipped, so affected positions must not coincide
// with any affecting particle.
type SIMD[L simd.Lanes[L], S vec.Scalar, V vec.Vector[S, V]] struct {
	Checked bool
}

func (m SIMD[L, S, V]) Name() string {
	var z L
	if m.Checked {
		return fmt.Sprintf("simd%d", z.Width())
	}
	return fmt.Sprintf("simd%d(unchecked)", z.Width())
}

func (m SIMD[L, S, V]) Compute(view storage.View[S, V]) []V {
	groups := simd.Pack[L](view.Affecting)
	out := make([]V, len(view.Affected))
	for i, p := range view.Affected {
		out[i] = simd.AccelerationAt[L, S, V](p.Position, groups, m.Checked)
	}
	return out
}
