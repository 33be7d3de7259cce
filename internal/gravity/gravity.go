// Package gravity turns collections of caller values into accelerations
// using any compute.Method, returning results in the caller's order.
package gravity

import (
	"fmt"
	"iter"

	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/vec"
)

// Accelerations computes the acceleration of every body caused by all the
// others. Massless bodies are moved out of the affecting set before the
// method runs and results are returned in input order.
func Accelerations[S vec.Scalar, V vec.Vector[S, V]](bodies []pointmass.PointMass[S, V], m compute.Method[S, V]) []V {
	r := storage.NewReordered(bodies, storage.IsAffecting[S, V])
	return r.Interactions(m.Compute(r.Self())).Collect()
}

// Between computes the acceleration of each affected point caused by the
// affecting set. The two sets are independent.
func Between[S vec.Scalar, V vec.Vector[S, V]](affected, affecting []pointmass.PointMass[S, V], m compute.Method[S, V]) []V {
	sources := storage.Order(affecting, storage.IsAffecting[S, V]).Affecting()
	return m.Compute(storage.Between(affected, sources))
}

// Map adapts items to point-masses and yields each item with its
// acceleration, in input order.
func Map[T any, S vec.Scalar, V vec.Vector[S, V]](items []T, adapt func(T) pointmass.PointMass[S, V], m compute.Method[S, V]) iter.Seq2[T, V] {
	return Zip(items, Accelerations(pointmass.Map(items, adapt), m))
}

// FromBodies is Map for values implementing pointmass.Body.
func FromBodies[S vec.Scalar, V vec.Vector[S, V], B pointmass.Body[S, V]](bodies []B, m compute.Method[S, V]) iter.Seq2[B, V] {
	return Zip(bodies, Accelerations(pointmass.FromBodies[S, V](bodies), m))
}

// Zip pairs items with accelerations. Both must have the same length.
func Zip[T any, V any](items []T, accs []V) iter.Seq2[T, V] {
	if len(items) != len(accs) {
		panic(fmt.Sprintf("gravity: %d items for %d accelerations", len(items), len(accs)))
	}
	return func(yield func(T, V) bool) {
		for i, item := range items {
			if !yield(item, accs[i]) {
				return
			}
		}
	}
}

// Indexed yields (index, acceleration) pairs so callers can update their own
// slice in place.
func Indexed[V any](accs []V) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i, a := range accs {
			if !yield(i, a) {
				return
			}
		}
	}
}
