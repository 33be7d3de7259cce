package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

// SpecificOrbitalEnergy is v²/2 - mu/r of the relative orbit of a and b.
func SpecificOrbitalEnergy[S vec.Scalar, V vec.Vector[S, V]](a, b sim.Body[S, V]) float64 {
	v2 := float64(b.Vel.Sub(a.Vel).NormSquared())
	r := float64(vec.Norm(b.Pos.Sub(a.Pos)))
	return v2/2 - float64(a.GM+b.GM)/r
}

func Separation[S vec.Scalar, V vec.Vector[S, V]](a, b sim.Body[S, V]) float64 {
	return float64(vec.Norm(b.Pos.Sub(a.Pos)))
}

// TotalEnergy is kinetic plus potential energy in units where G = 1, so each
// body's mass equals its GM. Massless bodies contribute nothing.
func TotalEnergy[S vec.Scalar, V vec.Vector[S, V]](bodies sim.Bodies[S, V]) float64 {
	var ke, pe float64
	for i, b := range bodies {
		m := float64(b.GM)
		ke += 0.5 * m * float64(b.Vel.NormSquared())
		for _, o := range bodies[i+1:] {
			r := float64(vec.Norm(o.Pos.Sub(b.Pos)))
			if r > 0 {
				pe -= m * float64(o.GM) / r
			}
		}
	}
	return ke + pe
}

// Drift tracks the largest relative change of a scalar quantity from its
// first observed value.
type Drift[S vec.Scalar, V vec.Vector[S, V]] struct {
	name     string
	quantity func(sim.Bodies[S, V]) float64

	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewDrift[S vec.Scalar, V vec.Vector[S, V]](name string, quantity func(sim.Bodies[S, V]) float64) *Drift[S, V] {
	return &Drift[S, V]{name: name, quantity: quantity}
}

// NewEnergyDrift tracks the specific orbital energy of bodies i and j, or
// the total energy when i == j.
func NewEnergyDrift[S vec.Scalar, V vec.Vector[S, V]](i, j int) *Drift[S, V] {
	if i == j {
		return NewDrift("energy_drift", TotalEnergy[S, V])
	}
	return NewDrift("energy_drift", func(bs sim.Bodies[S, V]) float64 {
		return SpecificOrbitalEnergy(bs[i], bs[j])
	})
}

func NewSeparationDrift[S vec.Scalar, V vec.Vector[S, V]](i, j int) *Drift[S, V] {
	return NewDrift("separation_drift", func(bs sim.Bodies[S, V]) float64 {
		return Separation(bs[i], bs[j])
	})
}

func (d *Drift[S, V]) Name() string { return d.name }

func (d *Drift[S, V]) Observe(bodies sim.Bodies[S, V], t float64) {
	q := d.quantity(bodies)
	if d.samples == 0 {
		d.initial = q
	}
	d.current = q
	d.samples++

	if d.initial != 0 {
		d.maxDrift = math.Max(d.maxDrift, math.Abs(q-d.initial)/math.Abs(d.initial))
	}
}

// Value is the largest relative drift seen so far.
func (d *Drift[S, V]) Value() float64 { return d.maxDrift }

// Final is the relative drift of the last observation.
func (d *Drift[S, V]) Final() float64 {
	if d.initial == 0 {
		return 0
	}
	return math.Abs(d.current-d.initial) / math.Abs(d.initial)
}

func (d *Drift[S, V]) Reset() {
	d.initial = 0
	d.current = 0
	d.maxDrift = 0
	d.samples = 0
}
