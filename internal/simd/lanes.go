package simd

import "math"

// Lanes is a fixed-width pack of float64 values. Every operation is applied
// lane by lane; ReduceAdd is the only horizontal operation.
type Lanes[L any] interface {
	Width() int
	Splat(v float64) L
	Set(i int, v float64) L
	Get(i int) float64

	Add(L) L
	Sub(L) L
	Mul(L) L
	Div(L) L
	Sqrt() L

	// ZeroWhere clears the lanes whose counterpart in cond is zero.
	ZeroWhere(cond L) L
	ReduceAdd() float64
}

// F64x4 matches a 256-bit register of float64.
type F64x4 [4]float64

func (a F64x4) Width() int { return 4 }

func (a F64x4) Splat(v float64) F64x4 {
	return F64x4{v, v, v, v}
}

func (a F64x4) Set(i int, v float64) F64x4 {
	a[i] = v
	return a
}

func (a F64x4) Get(i int) float64 { return a[i] }

func (a F64x4) Add(b F64x4) F64x4 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (a F64x4) Sub(b F64x4) F64x4 {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

func (a F64x4) Mul(b F64x4) F64x4 {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

func (a F64x4) Div(b F64x4) F64x4 {
	for i := range a {
		a[i] /= b[i]
	}
	return a
}

func (a F64x4) Sqrt() F64x4 {
	for i := range a {
		a[i] = math.Sqrt(a[i])
	}
	return a
}

func (a F64x4) ZeroWhere(cond F64x4) F64x4 {
	for i := range a {
		if cond[i] == 0 {
			a[i] = 0
		}
	}
	return a
}

func (a F64x4) ReduceAdd() float64 {
	return a[0] + a[1] + a[2] + a[3]
}

// F64x8 matches a 512-bit register of float64.
type F64x8 [8]float64

func (a F64x8) Width() int { return 8 }

func (a F64x8) Splat(v float64) F64x8 {
	return F64x8{v, v, v, v, v, v, v, v}
}

func (a F64x8) Set(i int, v float64) F64x8 {
	a[i] = v
	return a
}

func (a F64x8) Get(i int) float64 { return a[i] }

func (a F64x8) Add(b F64x8) F64x8 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (a F64x8) Sub(b F64x8) F64x8 {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

func (a F64x8) Mul(b F64x8) F64x8 {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

func (a F64x8) Div(b F64x8) F64x8 {
	for i := range a {
		a[i] /= b[i]
	}
	return a
}

func (a F64x8) Sqrt() F64x8 {
	for i := range a {
		a[i] = math.Sqrt(a[i])
	}
	return a
}

func (a F64x8) ZeroWhere(cond F64x8) F64x8 {
	for i := range a {
		if cond[i] == 0 {
			a[i] = 0
		}
	}
	return a
}

func (a F64x8) ReduceAdd() float64 {
	return a[0] + a[1] + a[2] + a[3] + a[4] + a[5] + a[6] + a[7]
}
