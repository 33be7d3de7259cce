package gpu

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/pointmass"
	"github.com/san-kum/gravsim/internal/vec"
)

// MaxDim is the largest dimension the shader layout carries.
const MaxDim = 3

// PointMass mirrors the shader struct { vec3 position; float mass; }. Under
// std430 the vec3 is 16-byte aligned and mass fills its padding slot.
type PointMass struct {
	Position [3]float32
	Mass     float32
}

// Acceleration is a vec3 padded to vec4, the std430 array stride for vec3.
type Acceleration struct {
	Value [3]float32
	_     float32
}

const (
	pointMassSize    = 16
	accelerationSize = 16
)

// Encode narrows ps into dst, growing it if needed, and returns the filled slice.
func Encode[S vec.Scalar, V vec.Vector[S, V]](ps []pointmass.PointMass[S, V], dst []PointMass) []PointMass {
	if len(ps) > 0 && ps[0].Position.Dim() > MaxDim {
		panic(fmt.Sprintf("gpu: dimension %d exceeds shader layout of %d", ps[0].Position.Dim(), MaxDim))
	}
	if cap(dst) < len(ps) {
		dst = make([]PointMass, len(ps))
	}
	dst = dst[:len(ps)]
	for i, p := range ps {
		var e PointMass
		for j := 0; j < p.Position.Dim(); j++ {
			e.Position[j] = float32(p.Position.Axis(j))
		}
		e.Mass = float32(p.Mass)
		dst[i] = e
	}
	return dst
}

// Decode widens shader output back into vectors of type V.
func Decode[S vec.Scalar, V vec.Vector[S, V]](src []Acceleration) []V {
	out := make([]V, len(src))
	for i, a := range src {
		var v V
		for j := 0; j < v.Dim(); j++ {
			v = v.WithAxis(j, S(a.Value[j]))
		}
		out[i] = v
	}
	return out
}
