package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		n      int
		dt     float64
	}{
		{"whole cycles", 2.0, 512, 0.05},
		{"fractional cycles", 3.7, 1000, 0.05},
		{"fast", 0.5, 256, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, tt.n)
			for i := range data {
				data[i] = 3 + math.Cos(2*math.Pi*float64(i)*tt.dt/tt.period)
			}
			got := DominantPeriod(data, tt.dt)
			assert.Less(t, RelativePeriodError(got, tt.period), 0.05, "got %v", got)
		})
	}
}

func TestDominantPeriodDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, DominantPeriod(nil, 1))
	assert.Equal(t, 0.0, DominantPeriod([]float64{1, 1, 1, 1, 1, 1, 1, 1}, 1))
	assert.Nil(t, PowerSpectrum(nil))
}

func TestSeries(t *testing.T) {
	r := &sim.Result[float64, vec.Vec2]{
		Times: []float64{0, 0.5, 1},
		Snapshots: []sim.Bodies[float64, vec.Vec2]{
			{{Pos: vec.Vec2{1, 0}}},
			{{Pos: vec.Vec2{2, 0}}},
			{{Pos: vec.Vec2{3, 0}}},
		},
	}
	xs := Series(r, func(bs sim.Bodies[float64, vec.Vec2]) float64 { return bs[0].Pos[0] })
	assert.Equal(t, []float64{1, 2, 3}, xs)
	assert.Equal(t, 0.5, SampleInterval(r))
}
