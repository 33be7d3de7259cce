package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/vec"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RelativeErrors is |got_i - want_i| / |want_i| per entry. Entries where want
// is zero report the absolute error instead.
func RelativeErrors[S vec.Scalar, V vec.Vector[S, V]](got, want []V) []float64 {
	if len(got) != len(want) {
		panic("metrics: length mismatch")
	}
	out := make([]float64, len(got))
	for i := range got {
		diff := float64(vec.Norm(got[i].Sub(want[i])))
		if n := float64(vec.Norm(want[i])); n > 0 {
			diff /= n
		}
		out[i] = diff
	}
	return out
}

// AggregateError is Σ|got - want| / Σ|want|, which is not dominated by
// particles whose forces nearly cancel.
func AggregateError[S vec.Scalar, V vec.Vector[S, V]](got, want []V) float64 {
	var errSum, normSum float64
	for i := range got {
		errSum += float64(vec.Norm(got[i].Sub(want[i])))
		normSum += float64(vec.Norm(want[i]))
	}
	if normSum == 0 {
		return errSum
	}
	return errSum / normSum
}

type ErrorStats struct {
	Mean      float64
	StdDev    float64
	Median    float64
	Max       float64
	RMS       float64
	Aggregate float64
}

func Summarize(errs []float64) ErrorStats {
	if len(errs) == 0 {
		return ErrorStats{}
	}
	sorted := append([]float64(nil), errs...)
	floats.Argsort(sorted, make([]int, len(sorted)))

	return ErrorStats{
		Mean:   stat.Mean(errs, nil),
		StdDev: stat.StdDev(errs, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:    floats.Max(errs),
		RMS:    math.Sqrt(floats.Dot(errs, errs) / float64(len(errs))),
	}
}

// Compare summarizes per-particle relative errors and the aggregate error.
func Compare[S vec.Scalar, V vec.Vector[S, V]](got, want []V) ErrorStats {
	s := Summarize(RelativeErrors(got, want))
	s.Aggregate = AggregateError(got, want)
	return s
}
