package storage

import (
	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/vec"
)

// View is what a compute method consumes: Affected gets one acceleration each,
// Affecting is the source of those accelerations.
type View[S vec.Scalar, V vec.Vector[S, V]] struct {
	Affected  []pointmass.PointMass[S, V]
	Affecting []pointmass.PointMass[S, V]

	self bool
}

// Between pairs two independent sequences. Massless entries of affecting are
// harmless but still cost work; order them first when that matters.
func Between[S vec.Scalar, V vec.Vector[S, V]](affected, affecting []pointmass.PointMass[S, V]) View[S, V] {
	return View[S, V]{Affected: affected, Affecting: affecting}
}

// Self is the view of an ordered system acting on itself: every particle is
// affected and the affecting prefix is the source.
func Self[S vec.Scalar, V vec.Vector[S, V]](o Ordered[S, V]) View[S, V] {
	o.check()
	return View[S, V]{
		Affected:  o.Particles,
		Affecting: o.Particles[:o.AffectingLen],
		self:      true,
	}
}

// SelfInteracting reports whether Affecting is a prefix of Affected.
func (v View[S, V]) SelfInteracting() bool { return v.self }

func (v View[S, V]) Ordered() Ordered[S, V] {
	return Ordered[S, V]{Particles: v.Affected, AffectingLen: len(v.Affecting)}
}
