package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
)

// PowerSpectrum returns |X_k| for k in [0, n/2) after removing the mean.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	var mean float64
	for _, x := range data {
		mean += x
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, x := range data {
		centered[i] = x - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod estimates the period of the strongest oscillation in data
// sampled every dt. The peak bin is refined by parabolic interpolation. It
// returns 0 when no oscillation is present.
func DominantPeriod(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 3 {
		return 0
	}
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0
	}

	freq := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if denom := a - 2*b + c; denom != 0 {
			freq += 0.5 * (a - c) / denom
		}
	}
	return float64(len(data)) * dt / freq
}

// Series extracts one value per recorded snapshot.
func Series[S vec.Scalar, V vec.Vector[S, V]](r *sim.Result[S, V], f func(sim.Bodies[S, V]) float64) []float64 {
	out := make([]float64, len(r.Snapshots))
	for i, s := range r.Snapshots {
		out[i] = f(s)
	}
	return out
}

// SampleInterval is the spacing of the recorded snapshots, assuming they are
// evenly spaced.
func SampleInterval[S vec.Scalar, V vec.Vector[S, V]](r *sim.Result[S, V]) float64 {
	if len(r.Times) < 2 {
		return 0
	}
	return (r.Times[len(r.Times)-1] - r.Times[0]) / float64(len(r.Times)-1)
}

// RelativePeriodError compares an estimate against the expected period.
func RelativePeriodError(estimate, expected float64) float64 {
	return math.Abs(estimate-expected) / expected
}
