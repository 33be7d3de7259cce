package simd

import (
	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/vec"
)

// Group holds up to L point-masses, one per lane, axis-major.
type Group[L Lanes[L]] struct {
	Position [vec.MaxDim]L
	Mass     L
}

// Pack groups ps into lanes. The trailing group is padded with zero-mass
// entries placed on the group's first particle, so they contribute nothing
// even without the coincidence guard as long as queries avoid that particle.
func Pack[L Lanes[L], S vec.Scalar, V vec.Vector[S, V]](ps []pointmass.PointMass[S, V]) []Group[L] {
	var z L
	width := z.Width()
	groups := make([]Group[L], 0, (len(ps)+width-1)/width)
	for start := 0; start < len(ps); start += width {
		var g Group[L]
		pad := ps[start]
		for lane := 0; lane < width; lane++ {
			p := pad
			p.Mass = 0
			if start+lane < len(ps) {
				p = ps[start+lane]
			}
			for j := 0; j < p.Position.Dim(); j++ {
				g.Position[j] = g.Position[j].Set(lane, float64(p.Position.Axis(j)))
			}
			g.Mass = g.Mass.Set(lane, float64(p.Mass))
		}
		groups = append(groups, g)
	}
	return groups
}

// AccelerationAt folds every group into the acceleration at query. With
// checked set, lanes whose particle coincides with query contribute zero.
func AccelerationAt[L Lanes[L], S vec.Scalar, V vec.Vector[S, V]](query V, groups []Group[L], checked bool) V {
	var z L
	dim := query.Dim()

	var q, acc [vec.MaxDim]L
	for j := 0; j < dim; j++ {
		q[j] = z.Splat(float64(query.Axis(j)))
	}

	for gi := range groups {
		g := &groups[gi]
		var dir [vec.MaxDim]L
		var mag2 L
		for j := 0; j < dim; j++ {
			dir[j] = g.Position[j].Sub(q[j])
			mag2 = mag2.Add(dir[j].Mul(dir[j]))
		}
		f := g.Mass.Div(mag2.Mul(mag2.Sqrt()))
		if checked {
			f = f.ZeroWhere(mag2)
		}
		for j := 0; j < dim; j++ {
			acc[j] = acc[j].Add(dir[j].Mul(f))
		}
	}

	var out V
	for j := 0; j < dim; j++ {
		out = out.WithAxis(j, S(acc[j].ReduceAdd()))
	}
	return out
}
