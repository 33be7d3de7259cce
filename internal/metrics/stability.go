package metrics

import (
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

// Bound is the fraction of observed steps in which every body stayed within
// radius of the origin.
type Bound[S vec.Scalar, V vec.Vector[S, V]] struct {
	name       string
	radius2    S
	violations int
	samples    int
}

func NewBound[S vec.Scalar, V vec.Vector[S, V]](radius S) *Bound[S, V] {
	return &Bound[S, V]{name: "bound", radius2: radius * radius}
}

func (b *Bound[S, V]) Name() string { return b.name }

func (b *Bound[S, V]) Observe(bodies sim.Bodies[S, V], t float64) {
	b.samples++
	for _, body := range bodies {
		if body.Pos.NormSquared() > b.radius2 {
			b.violations++
			break
		}
	}
}

func (b *Bound[S, V]) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bound[S, V]) Reset() {
	b.violations = 0
	b.samples = 0
}
