package pointmass

import "github.com/san-kum/gravsim/internal/vec"

// CenterOfMass aggregates ps into a single point-mass carrying their total
// mass at their mass-weighted mean position. When the total mass is zero the
// unweighted centroid is used. Coincident points keep their exact shared
// position, so a query at that position sees zero distance.
func CenterOfMass[S vec.Scalar, V vec.Vector[S, V]](ps []PointMass[S, V]) PointMass[S, V] {
	var (
		weighted V
		centroid V
		total    S
	)
	same := len(ps) > 0
	for _, p := range ps {
		same = same && p.Position == ps[0].Position
		weighted = weighted.Add(p.Position.Scale(p.Mass))
		centroid = centroid.Add(p.Position)
		total += p.Mass
	}
	if same {
		return PointMass[S, V]{Position: ps[0].Position, Mass: total}
	}
	if total != 0 {
		return PointMass[S, V]{Position: weighted.Div(total), Mass: total}
	}
	if len(ps) == 0 {
		return PointMass[S, V]{}
	}
	return PointMass[S, V]{Position: centroid.Div(S(len(ps))), Mass: 0}
}
