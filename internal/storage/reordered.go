package storage

import (
	"fmt"
	"iter"

	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/vec"
)

// Reordered is an Ordered view that remembers the unordered input so results
// can be scattered back to it.
type Reordered[S vec.Scalar, V vec.Vector[S, V]] struct {
	Unordered   []pointmass.PointMass[S, V]
	Ordered     Ordered[S, V]
	isAffecting Predicate[S, V]
}

func NewReordered[S vec.Scalar, V vec.Vector[S, V]](unordered []pointmass.PointMass[S, V], isAffecting Predicate[S, V]) *Reordered[S, V] {
	return &Reordered[S, V]{
		Unordered:   unordered,
		Ordered:     Order(unordered, isAffecting),
		isAffecting: isAffecting,
	}
}

// Self returns the self-interacting view over the ordered particles.
func (r *Reordered[S, V]) Self() View[S, V] {
	return Self(r.Ordered)
}

// Interactions pairs results, computed in ordered order, with the original
// sequence. len(results) must equal the particle count.
func (r *Reordered[S, V]) Interactions(results []V) *ReorderedInteractions[S, V] {
	if len(results) != len(r.Unordered) {
		panic(fmt.Sprintf("storage: %d results for %d particles", len(results), len(r.Unordered)))
	}
	return &ReorderedInteractions[S, V]{
		r:            r,
		results:      results,
		nonAffecting: r.Ordered.AffectingLen,
	}
}

// ReorderedInteractions walks the original sequence, classifying each particle
// again and taking its result from the affecting or the non-affecting cursor.
type ReorderedInteractions[S vec.Scalar, V vec.Vector[S, V]] struct {
	r            *Reordered[S, V]
	results      []V
	pos          int
	affecting    int
	nonAffecting int
}

func (it *ReorderedInteractions[S, V]) Next() (V, bool) {
	if it.pos >= len(it.r.Unordered) {
		var zero V
		return zero, false
	}
	p := it.r.Unordered[it.pos]
	it.pos++
	if it.r.isAffecting(p) {
		v := it.results[it.affecting]
		it.affecting++
		return v, true
	}
	v := it.results[it.nonAffecting]
	it.nonAffecting++
	return v, true
}

// All yields (original index, result) pairs.
func (it *ReorderedInteractions[S, V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for {
			i := it.pos
			v, ok := it.Next()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

func (it *ReorderedInteractions[S, V]) Collect() []V {
	out := make([]V, 0, len(it.r.Unordered)-it.pos)
	for _, v := range it.All() {
		out = append(out, v)
	}
	return out
}
