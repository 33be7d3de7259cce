package compute_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/simd"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/vec"
)

type pm3 = pointmass.PointMass[float64, vec.Vec3]
type method3 = compute.Method[float64, vec.Vec3]

// cloud returns n particles in a 100-wide cube; every fourth is massless.
func cloud(seed int64, n int) []pm3 {
	rng := rand.New(rand.NewSource(seed))
	ps := make([]pm3, n)
	for i := range ps {
		ps[i].Position = vec.Vec3{rng.Float64()*100 - 50, rng.Float64()*100 - 50, rng.Float64()*100 - 50}
		if i%4 != 0 {
			ps[i].Mass = 1 + rng.Float64()*1e3
		}
	}
	return ps
}

// analytic is Newton's law summed pair by pair, skipping coincident points.
func analytic(affected, affecting []pm3) [][3]float64 {
	out := make([][3]float64, len(affected))
	for i, a := range affected {
		for _, b := range affecting {
			dx := b.Position[0] - a.Position[0]
			dy := b.Position[1] - a.Position[1]
			dz := b.Position[2] - a.Position[2]
			r := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if r == 0 {
				continue
			}
			f := b.Mass / (r * r * r)
			out[i][0] += dx * f
			out[i][1] += dy * f
			out[i][2] += dz * f
		}
	}
	return out
}

func expectClose(got []vec.Vec3, want [][3]float64, rel float64) {
	ExpectWithOffset(1, got).To(HaveLen(len(want)))
	for i := range want {
		w := vec.Vec3(want[i])
		diff := vec.Norm(got[i].Sub(w))
		ExpectWithOffset(1, diff).To(BeNumerically("<=", rel*vec.Norm(w)+1e-12), "particle %d", i)
	}
}

func exactMethods() []method3 {
	return []method3{
		compute.BruteForce[float64, vec.Vec3]{},
		compute.BruteForcePairs[float64, vec.Vec3]{},
		compute.SIMD[simd.F64x4, float64, vec.Vec3]{Checked: true},
		compute.SIMD[simd.F64x8, float64, vec.Vec3]{Checked: true},
		compute.BarnesHut[float64, vec.Vec3]{Theta: 0},
		compute.ParallelBruteForce[float64, vec.Vec3]{Workers: 3},
		compute.ParallelSIMD[simd.F64x8, float64, vec.Vec3]{Checked: true},
		compute.ParallelBarnesHut[float64, vec.Vec3]{Theta: 0, Workers: 2},
		compute.NewGPU[float64, vec.Vec3](0),
	}
}

var _ = Describe("Methods", func() {
	var particles []pm3
	var ordered storage.Ordered[float64, vec.Vec3]

	BeforeEach(func() {
		particles = cloud(42, 211)
		ordered = storage.Order(particles, storage.IsAffecting[float64, vec.Vec3])
	})

	It("agree with the analytic sum on a self-interacting set", func() {
		want := analytic(ordered.Particles, ordered.Affecting())
		for _, m := range exactMethods() {
			By(m.Name())
			rel := 1e-9
			if _, ok := m.(*compute.GPU[float64, vec.Vec3]); ok {
				rel = 1e-2
			}
			expectClose(m.Compute(storage.Self(ordered)), want, rel)
			compute.Release(m)
		}
	})

	It("agree on disjoint sets, unchecked SIMD included", func() {
		queries := cloud(7, 37)
		for i := range queries {
			queries[i].Position[0] += 1000
		}
		view := storage.Between(queries, ordered.Affecting())
		want := analytic(queries, ordered.Affecting())

		methods := append(exactMethods(),
			compute.SIMD[simd.F64x4, float64, vec.Vec3]{Checked: false},
			compute.ParallelSIMD[simd.F64x4, float64, vec.Vec3]{Checked: false},
		)
		for _, m := range methods {
			if _, ok := m.(compute.BruteForcePairs[float64, vec.Vec3]); ok {
				continue
			}
			By(m.Name())
			rel := 1e-9
			if _, ok := m.(*compute.GPU[float64, vec.Vec3]); ok {
				rel = 1e-2
			}
			expectClose(m.Compute(view), want, rel)
			compute.Release(m)
		}
	})

	It("keep the Barnes-Hut error small at theta 0.5", func() {
		want := analytic(ordered.Particles, ordered.Affecting())
		got := compute.BarnesHut[float64, vec.Vec3]{Theta: 0.5}.Compute(storage.Self(ordered))
		var errSum, normSum float64
		for i := range want {
			w := vec.Vec3(want[i])
			errSum += vec.Norm(got[i].Sub(w))
			normSum += vec.Norm(w)
		}
		Expect(errSum / normSum).To(BeNumerically("<", 2e-2))

		par := compute.ParallelBarnesHut[float64, vec.Vec3]{Theta: 0.5}.Compute(storage.Self(ordered))
		Expect(par).To(Equal(got))
	})

	It("return zeros when every particle is massless", func() {
		for i := range particles {
			particles[i].Mass = 0
		}
		ordered = storage.Order(particles, storage.IsAffecting[float64, vec.Vec3])
		Expect(ordered.AffectingLen).To(Equal(0))

		methods := append(exactMethods(),
			compute.BarnesHut[float64, vec.Vec3]{Theta: 0.8},
			compute.BruteForceSoftened[float64, vec.Vec3]{Epsilon: 0.1},
		)
		for _, m := range methods {
			By(m.Name())
			got := m.Compute(storage.Self(ordered))
			Expect(got).To(HaveLen(len(particles)))
			for _, a := range got {
				Expect(a).To(Equal(vec.Vec3{}))
			}
			compute.Release(m)
		}
	})

	It("handle an empty view", func() {
		for _, m := range exactMethods() {
			Expect(m.Compute(storage.Self(storage.Ordered[float64, vec.Vec3]{}))).To(BeEmpty())
			compute.Release(m)
		}
	})
})

var _ = Describe("Two-body scenario", func() {
	type pm2 = pointmass.PointMass[float64, vec.Vec2]

	bodies := []pm2{
		{Position: vec.Vec2{100, 0}, Mass: 0},
		{Position: vec.Vec2{0, 0}, Mass: 1e6},
	}

	DescribeTable("a massless body falls toward a massive one",
		func(m compute.Method[float64, vec.Vec2], tolerance float64) {
			defer compute.Release(m)
			r := storage.NewReordered(bodies, storage.IsAffecting[float64, vec.Vec2])
			accs := r.Interactions(m.Compute(r.Self())).Collect()

			Expect(accs).To(HaveLen(2))
			Expect(accs[0][0]).To(BeNumerically("~", -100, tolerance))
			Expect(accs[0][1]).To(BeNumerically("~", 0, tolerance))
			Expect(accs[1]).To(Equal(vec.Vec2{}))
		},
		Entry("brute_force", compute.BruteForce[float64, vec.Vec2]{}, 1e-12),
		Entry("brute_force_pairs", compute.BruteForcePairs[float64, vec.Vec2]{}, 1e-12),
		Entry("simd4", compute.SIMD[simd.F64x4, float64, vec.Vec2]{Checked: true}, 1e-12),
		Entry("simd8", compute.SIMD[simd.F64x8, float64, vec.Vec2]{Checked: true}, 1e-12),
		Entry("barnes_hut", compute.BarnesHut[float64, vec.Vec2]{Theta: 0.5}, 1e-12),
		Entry("parallel_brute_force", compute.ParallelBruteForce[float64, vec.Vec2]{}, 1e-12),
		Entry("parallel_barnes_hut", compute.ParallelBarnesHut[float64, vec.Vec2]{Theta: 0.5}, 1e-12),
		Entry("gpu", compute.NewGPU[float64, vec.Vec2](1), 1e-3),
	)
})

var _ = Describe("BruteForcePairs", func() {
	It("rejects views that are not self-interacting", func() {
		ps := cloud(1, 8)
		Expect(func() {
			compute.BruteForcePairs[float64, vec.Vec3]{}.Compute(storage.Between(ps, ps))
		}).To(Panic())
	})

	It("asserts the restricted length", func() {
		ps := cloud(1, 8)
		Expect(func() { compute.PairsRestricted(ps, 0) }).To(Panic())
		Expect(func() { compute.PairsRestricted(ps, 9) }).To(Panic())
		Expect(compute.PairsRestricted(ps, 8)).To(HaveLen(8))
	})

	It("matches brute force when only a prefix is affecting", func() {
		ps := cloud(3, 40)
		got := compute.PairsRestricted(ps, 13)
		want := analytic(ps, ps[:13])
		expectClose(got, want, 1e-9)
	})
})

var _ = Describe("BruteForceSoftened", func() {
	It("bounds the acceleration between nearly coincident particles", func() {
		ps := []pm3{
			{Position: vec.Vec3{0, 0, 0}, Mass: 1},
			{Position: vec.Vec3{1e-6, 0, 0}, Mass: 1},
		}
		view := storage.Self(storage.Order(ps, storage.IsAffecting[float64, vec.Vec3]))
		got := compute.BruteForceSoftened[float64, vec.Vec3]{Epsilon: 0.1}.Compute(view)
		for _, a := range got {
			Expect(vec.Norm(a)).To(BeNumerically("<", 1e-3))
		}
		Expect(got[0][0]).To(BeNumerically(">", 0))
		Expect(got[1][0]).To(BeNumerically("<", 0))
	})

	It("approaches brute force far from encounters", func() {
		ordered := storage.Order(cloud(5, 64), storage.IsAffecting[float64, vec.Vec3])
		want := analytic(ordered.Particles, ordered.Affecting())
		got := compute.BruteForceSoftened[float64, vec.Vec3]{Epsilon: 1e-4}.Compute(storage.Self(ordered))
		expectClose(got, want, 1e-3)
	})
})
