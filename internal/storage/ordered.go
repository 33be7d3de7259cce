// Package storage partitions particle collections into an affecting prefix and
// a non-affecting remainder, and maps results computed in that order back to
// the caller's original order.
package storage

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/vec"
)

// Predicate classifies a particle as affecting (it exerts acceleration).
type Predicate[S vec.Scalar, V vec.Vector[S, V]] func(pointmass.PointMass[S, V]) bool

// IsAffecting is the default predicate: a particle is affecting iff its mass is non-zero.
func IsAffecting[S vec.Scalar, V vec.Vector[S, V]](p pointmass.PointMass[S, V]) bool {
	return p.Mass != 0
}

// Ordered holds particles with every affecting particle in Particles[:AffectingLen].
type Ordered[S vec.Scalar, V vec.Vector[S, V]] struct {
	Particles    []pointmass.PointMass[S, V]
	AffectingLen int
}

// Order performs a stable partition of particles: affecting first, then the
// rest, relative order preserved within each group. The input is not modified.
func Order[S vec.Scalar, V vec.Vector[S, V]](particles []pointmass.PointMass[S, V], isAffecting Predicate[S, V]) Ordered[S, V] {
	out := make([]pointmass.PointMass[S, V], 0, len(particles))
	for _, p := range particles {
		if isAffecting(p) {
			out = append(out, p)
		}
	}
	k := len(out)
	for _, p := range particles {
		if !isAffecting(p) {
			out = append(out, p)
		}
	}
	return Ordered[S, V]{Particles: out, AffectingLen: k}
}

func (o Ordered[S, V]) Len() int { return len(o.Particles) }

func (o Ordered[S, V]) Affecting() []pointmass.PointMass[S, V] {
	return o.Particles[:o.AffectingLen]
}

func (o Ordered[S, V]) NonAffecting() []pointmass.PointMass[S, V] {
	return o.Particles[o.AffectingLen:]
}

func (o Ordered[S, V]) check() {
	if o.AffectingLen < 0 || o.AffectingLen > len(o.Particles) {
		panic(fmt.Sprintf("storage: affecting length %d out of range [0, %d]", o.AffectingLen, len(o.Particles)))
	}
}
