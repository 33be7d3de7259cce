// Package pointmass holds the position+mass particle representation and the
// inverse-square kernels every compute method is built from.
//
// Mass here is the standard gravitational parameter (mass times G), so the
// kernels return accelerations directly.
package pointmass

import "github.com/san-kum/gravsim/internal/vec"

type PointMass[S vec.Scalar, V vec.Vector[S, V]] struct {
	Position V
	Mass     S
}

func New[S vec.Scalar, V vec.Vector[S, V]](position V, mass S) PointMass[S, V] {
	return PointMass[S, V]{Position: position, Mass: mass}
}

// IsMassive reports whether p exerts any acceleration.
func (p PointMass[S, V]) IsMassive() bool { return p.Mass != 0 }

func (p PointMass[S, V]) IsMassless() bool { return p.Mass == 0 }

// Body is anything exposing a position and a standard gravitational parameter.
type Body[S vec.Scalar, V vec.Vector[S, V]] interface {
	Position() V
	Mu() S
}

func FromBody[S vec.Scalar, V vec.Vector[S, V]](b Body[S, V]) PointMass[S, V] {
	return PointMass[S, V]{Position: b.Position(), Mass: b.Mu()}
}

func FromBodies[S vec.Scalar, V vec.Vector[S, V], B Body[S, V]](bodies []B) []PointMass[S, V] {
	out := make([]PointMass[S, V], len(bodies))
	for i, b := range bodies {
		out[i] = PointMass[S, V]{Position: b.Position(), Mass: b.Mu()}
	}
	return out
}

// Map converts arbitrary caller values into point-masses with an adapter.
func Map[T any, S vec.Scalar, V vec.Vector[S, V]](items []T, adapt func(T) PointMass[S, V]) []PointMass[S, V] {
	out := make([]PointMass[S, V], len(items))
	for i, item := range items {
		out[i] = adapt(item)
	}
	return out
}

func Positions[S vec.Scalar, V vec.Vector[S, V]](ps []PointMass[S, V]) []V {
	out := make([]V, len(ps))
	for i, p := range ps {
		out[i] = p.Position
	}
	return out
}
