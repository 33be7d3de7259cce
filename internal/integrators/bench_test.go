package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

func benchmarkIntegrator(b *testing.B, integ sim.Integrator[float64, vec.Vec2]) {
	bs := circular()
	dt := 2 * math.Pi / 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(bs, central, dt)
	}
}

func BenchmarkEuler(b *testing.B) {
	benchmarkIntegrator(b, NewEuler[float64, vec.Vec2]())
}

func BenchmarkSemiImplicitEuler(b *testing.B) {
	benchmarkIntegrator(b, NewSemiImplicitEuler[float64, vec.Vec2]())
}

func BenchmarkLeapfrog(b *testing.B) {
	benchmarkIntegrator(b, NewLeapfrog[float64, vec.Vec2]())
}

func BenchmarkVerlet(b *testing.B) {
	benchmarkIntegrator(b, NewVerlet[float64, vec.Vec2]())
}

func BenchmarkRK4(b *testing.B) {
	benchmarkIntegrator(b, NewRK4[float64, vec.Vec2]())
}
