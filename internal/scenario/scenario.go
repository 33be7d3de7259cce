// Package scenario generates initial body systems: circular two-body orbits,
// uniform clouds, rotating disks and cluster pairs.
package scenario

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
	"gonum.org/v1/gonum/spatial/r2"
)

// OrbitalPeriod is Kepler's third law for semi-major axis a around mu.
func OrbitalPeriod(mu, a float64) float64 {
	return 2 * math.Pi * math.Sqrt(a*a*a/mu)
}

func planar[S vec.Scalar, V vec.Vector[S, V]](p r2.Vec) V {
	var v V
	return v.WithAxis(0, S(p.X)).WithAxis(1, S(p.Y))
}

// CircularTwoBody places two bodies at separation r on axis 0 with
// barycentric velocities along axis 1 for a circular orbit. The barycenter is
// at rest at the origin.
func CircularTwoBody[S vec.Scalar, V vec.Vector[S, V]](mu1, mu2, r float64) (sim.Bodies[S, V], float64) {
	total := mu1 + mu2
	vrel := math.Sqrt(total / r)
	bodies := sim.Bodies[S, V]{
		{
			Pos: planar[S, V](r2.Vec{X: -r * mu2 / total}),
			Vel: planar[S, V](r2.Vec{Y: -vrel * mu2 / total}),
			GM:  S(mu1),
		},
		{
			Pos: planar[S, V](r2.Vec{X: r * mu1 / total}),
			Vel: planar[S, V](r2.Vec{Y: vrel * mu1 / total}),
			GM:  S(mu2),
		},
	}
	return bodies, OrbitalPeriod(total, r)
}

// UniformCloud scatters n bodies uniformly in a ball of radius at rest. The
// total mu is shared equally; every masslessEvery-th body is massless
// (0 disables).
func UniformCloud[S vec.Scalar, V vec.Vector[S, V]](rng *rand.Rand, n int, radius, totalMu float64, masslessEvery int) sim.Bodies[S, V] {
	dim := vec.Dim[S, V]()
	bodies := make(sim.Bodies[S, V], n)
	massive := n
	if masslessEvery > 0 {
		massive = n - (n+masslessEvery-1)/masslessEvery
	}
	for i := range bodies {
		var p V
		for {
			var r2sum float64
			for j := 0; j < dim; j++ {
				x := rng.Float64()*2 - 1
				p = p.WithAxis(j, S(x*radius))
				r2sum += x * x
			}
			if r2sum <= 1 {
				break
			}
		}
		bodies[i].Pos = p
		if (masslessEvery <= 0 || i%masslessEvery != 0) && massive > 0 {
			bodies[i].GM = S(totalMu / float64(massive))
		}
	}
	return bodies
}

// Disk is a central body with n light bodies on circular orbits between inner
// and outer radius in the plane of axes 0 and 1.
func Disk[S vec.Scalar, V vec.Vector[S, V]](rng *rand.Rand, n int, centralMu, diskMu, inner, outer float64) sim.Bodies[S, V] {
	bodies := make(sim.Bodies[S, V], 0, n+1)
	bodies = append(bodies, sim.Body[S, V]{GM: S(centralMu)})
	for i := 0; i < n; i++ {
		r := inner + (outer-inner)*math.Sqrt(rng.Float64())
		pos := r2.Rotate(r2.Vec{X: r}, rng.Float64()*2*math.Pi, r2.Vec{})
		speed := math.Sqrt(centralMu / r)
		dir := r2.Rotate(r2.Unit(pos), math.Pi/2, r2.Vec{})
		bodies = append(bodies, sim.Body[S, V]{
			Pos: planar[S, V](pos),
			Vel: planar[S, V](r2.Scale(speed, dir)),
			GM:  S(diskMu / float64(n)),
		})
	}
	return bodies
}

// Clusters places k uniform clouds evenly on a circle of radius separation.
func Clusters[S vec.Scalar, V vec.Vector[S, V]](rng *rand.Rand, k, perCluster int, spread, separation, totalMu float64) sim.Bodies[S, V] {
	bodies := make(sim.Bodies[S, V], 0, k*perCluster)
	for c := 0; c < k; c++ {
		center := planar[S, V](r2.Rotate(r2.Vec{X: separation}, 2*math.Pi*float64(c)/float64(k), r2.Vec{}))
		for _, b := range UniformCloud[S, V](rng, perCluster, spread, totalMu/float64(k), 0) {
			b.Pos = b.Pos.Add(center)
			bodies = append(bodies, b)
		}
	}
	return bodies
}

// FromConfig builds the system cfg describes. Explicit bodies take precedence
// over the scenario generator. The returned period is the time unit used for
// orbit counts.
func FromConfig[S vec.Scalar, V vec.Vector[S, V]](cfg *config.Config) (sim.Bodies[S, V], float64, error) {
	if vec.Dim[S, V]() != cfg.Dim {
		return nil, 0, errors.Errorf("config dim %d does not match vector dim %d", cfg.Dim, vec.Dim[S, V]())
	}
	if len(cfg.Bodies) > 0 {
		return fromBodyConfigs[S, V](cfg.Bodies), explicitPeriod(cfg.Bodies), nil
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	n := cfg.NumBodies
	switch cfg.Scenario {
	case "two_body":
		bodies, period := CircularTwoBody[S, V](1, 1e-3, 1)
		return bodies, period, nil
	case "cloud":
		return UniformCloud[S, V](rng, n, 1, 1, 8), OrbitalPeriod(1, 1), nil
	case "disk":
		return Disk[S, V](rng, n, 1, 0.01, 0.2, 1), OrbitalPeriod(1, 1), nil
	case "clusters":
		return Clusters[S, V](rng, 2, n/2, 0.25, 1, 1), OrbitalPeriod(1, 1), nil
	}
	return nil, 0, errors.Errorf("unknown scenario %q", cfg.Scenario)
}

func fromBodyConfigs[S vec.Scalar, V vec.Vector[S, V]](cs []config.BodyConfig) sim.Bodies[S, V] {
	bodies := make(sim.Bodies[S, V], len(cs))
	for i, c := range cs {
		for j, x := range c.Position {
			bodies[i].Pos = bodies[i].Pos.WithAxis(j, S(x))
		}
		for j, x := range c.Velocity {
			bodies[i].Vel = bodies[i].Vel.WithAxis(j, S(x))
		}
		bodies[i].GM = S(c.Mu)
	}
	return bodies
}

// explicitPeriod uses the first two bodies as a Kepler pair when possible.
func explicitPeriod(cs []config.BodyConfig) float64 {
	if len(cs) < 2 {
		return 1
	}
	var d2 float64
	for j := range cs[0].Position {
		d := cs[1].Position[j] - cs[0].Position[j]
		d2 += d * d
	}
	mu := cs[0].Mu + cs[1].Mu
	if mu <= 0 || d2 == 0 {
		return 1
	}
	return OrbitalPeriod(mu, math.Sqrt(d2))
}

// Names lists the scenarios FromConfig knows.
func Names() []string {
	return []string{"two_body", "cloud", "disk", "clusters"}
}
