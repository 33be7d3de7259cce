package metrics

import (
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/unixpickle/model3d/model3d"
)

// AngularMomentum is Σ m·(r × v) about the origin. Planar systems are
// embedded in the z = 0 plane, so their momentum lies along z.
func AngularMomentum[S vec.Scalar, V vec.Vector[S, V]](bodies sim.Bodies[S, V]) vec.Vec3 {
	var total model3d.Coord3D
	for _, b := range bodies {
		r := embed3(b.Pos).Coord3D()
		v := embed3(b.Vel).Coord3D()
		total = total.Add(r.Cross(v).Scale(float64(b.GM)))
	}
	return vec.FromCoord3D(total)
}

// NewAngularMomentumDrift tracks the magnitude of the total angular momentum.
func NewAngularMomentumDrift[S vec.Scalar, V vec.Vector[S, V]]() *Drift[S, V] {
	return NewDrift("angular_momentum_drift", func(bs sim.Bodies[S, V]) float64 {
		return AngularMomentum(bs).Coord3D().Norm()
	})
}

func embed3[S vec.Scalar, V vec.Vector[S, V]](v V) vec.Vec3 {
	var out vec.Vec3
	for i := 0; i < min(v.Dim(), 3); i++ {
		out[i] = float64(v.Axis(i))
	}
	return out
}
