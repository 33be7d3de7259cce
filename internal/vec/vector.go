package vec

import (
	"math"

	"golang.org/x/exp/constraints"
)

// MaxDim is the largest dimension any concrete vector in this package has.
const MaxDim = 4

type Scalar interface {
	constraints.Float
}

// Vector is the arithmetic contract shared by all vector representations.
// Self is the implementing type, so operations return concrete values.
type Vector[S Scalar, Self any] interface {
	comparable

	Add(Self) Self
	Sub(Self) Self
	Scale(S) Self
	Div(S) Self
	NormSquared() S

	Dim() int
	Axis(i int) S
	WithAxis(i int, s S) Self
	Fill(s S) Self
}

func Zero[V any]() V {
	var z V
	return z
}

func Sqrt[S Scalar](s S) S {
	return S(math.Sqrt(float64(s)))
}

func Norm[S Scalar, V Vector[S, V]](v V) S {
	return Sqrt(v.NormSquared())
}

// Splat returns a vector with every component set to s.
func Splat[S Scalar, V Vector[S, V]](s S) V {
	var z V
	return z.Fill(s)
}

// Dim reports the dimension of V without needing a value.
func Dim[S Scalar, V Vector[S, V]]() int {
	var z V
	return z.Dim()
}

func IsFinite[S Scalar, V Vector[S, V]](v V) bool {
	for i := 0; i < v.Dim(); i++ {
		f := float64(v.Axis(i))
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
