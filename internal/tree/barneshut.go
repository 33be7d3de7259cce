package tree

import (
	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/vec"
)

// Gravity is an orthtree whose nodes carry the center of mass of their subtree.
type Gravity[S vec.Scalar, V vec.Vector[S, V]] = Orthtree[S, V, pointmass.PointMass[S, V]]

func BuildGravity[S vec.Scalar, V vec.Vector[S, V]](particles []pointmass.PointMass[S, V]) (NodeID, *Gravity[S, V]) {
	return Build[S](
		particles,
		func(p pointmass.PointMass[S, V]) V { return p.Position },
		pointmass.CenterOfMass[S, V],
	)
}

// AccelerationAt evaluates the Barnes-Hut approximation of the acceleration at
// query. A node is opened when theta < width/distance; otherwise its center of
// mass stands in for the whole subtree. theta = 0 opens every internal node.
func AccelerationAt[S vec.Scalar, V vec.Vector[S, V]](t *Gravity[S, V], node NodeID, query V, theta S) V {
	if node == None {
		var zero V
		return zero
	}

	p2 := t.Data[node]
	dir := p2.Position.Sub(query)
	mag2 := dir.NormSquared()
	if mag2 == 0 {
		return dir
	}

	n := &t.Nodes[node]
	mag := vec.Sqrt(mag2)
	if n.Internal && theta < n.Box.Width()/mag {
		var acc V
		for _, c := range n.Children {
			acc = acc.Add(AccelerationAt(t, c, query, theta))
		}
		return acc
	}
	return dir.Scale(p2.Mass / (mag2 * mag))
}
