package tree

import "github.com/san-kum/gravsim/internal/vec"

type BoundingBox[S vec.Scalar, V vec.Vector[S, V]] struct {
	Min, Max V
}

// SquareAround returns the smallest axis-aligned hypercube containing every
// position, centered on their bounding box. No padding is added.
func SquareAround[S vec.Scalar, V vec.Vector[S, V]](positions []V) BoundingBox[S, V] {
	if len(positions) == 0 {
		return BoundingBox[S, V]{}
	}
	lo, hi := positions[0], positions[0]
	dim := lo.Dim()
	for _, p := range positions[1:] {
		for j := 0; j < dim; j++ {
			c := p.Axis(j)
			if c < lo.Axis(j) {
				lo = lo.WithAxis(j, c)
			}
			if c > hi.Axis(j) {
				hi = hi.WithAxis(j, c)
			}
		}
	}

	var size S
	for j := 0; j < dim; j++ {
		size = max(size, hi.Axis(j)-lo.Axis(j))
	}
	center := lo.Add(hi).Scale(0.5)
	half := center.Fill(size / 2)
	return BoundingBox[S, V]{Min: center.Sub(half), Max: center.Add(half)}
}

func (b BoundingBox[S, V]) Center() V { return b.Min.Add(b.Max).Scale(0.5) }

func (b BoundingBox[S, V]) Size() V { return b.Max.Sub(b.Min) }

// Width is the extent along axis 0, the characteristic length of a cubic node.
func (b BoundingBox[S, V]) Width() S { return b.Max.Axis(0) - b.Min.Axis(0) }

// OrthantOf returns the child index of p relative to center: bit j is set iff
// p lies below center on axis j.
func OrthantOf[S vec.Scalar, V vec.Vector[S, V]](p, center V) int {
	o := 0
	for j := 0; j < p.Dim(); j++ {
		if p.Axis(j) < center.Axis(j) {
			o |= 1 << j
		}
	}
	return o
}

// Orthant returns the sub-box for child index o, using the same bit
// convention as OrthantOf.
func (b BoundingBox[S, V]) Orthant(o int, center V) BoundingBox[S, V] {
	for j := 0; j < center.Dim(); j++ {
		if o&(1<<j) != 0 {
			b.Max = b.Max.WithAxis(j, center.Axis(j))
		} else {
			b.Min = b.Min.WithAxis(j, center.Axis(j))
		}
	}
	return b
}
