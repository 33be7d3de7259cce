// Package optim searches a parameter grid for the best trade-off.
package optim

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is one evaluated grid value.
type Point struct {
	Param float64
	Value float64
}

type GridSearch struct {
	values []float64
}

func NewGridSearch(values []float64) *GridSearch {
	return &GridSearch{values: values}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Search evaluates every grid value in order. It stops early when ctx is
// done or eval fails, returning the points evaluated so far.
func (g *GridSearch) Search(ctx context.Context, eval func(param float64) (float64, error)) ([]Point, error) {
	points := make([]Point, 0, len(g.values))
	for _, v := range g.values {
		if err := ctx.Err(); err != nil {
			return points, err
		}
		val, err := eval(v)
		if err != nil {
			return points, err
		}
		points = append(points, Point{Param: v, Value: val})
	}
	return points, nil
}

// Best returns the point with the smallest value.
func Best(points []Point) (Point, bool) {
	best, ok := Point{Value: math.Inf(1)}, false
	for _, p := range points {
		if p.Value < best.Value {
			best, ok = p, true
		}
	}
	return best, ok
}

// LargestWithin returns the point with the largest parameter whose value is
// at most tol.
func LargestWithin(points []Point, tol float64) (Point, bool) {
	var best Point
	ok := false
	for _, p := range points {
		if p.Value <= tol && (!ok || p.Param > best.Param) {
			best, ok = p, true
		}
	}
	return best, ok
}
