package pointmass

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/vec"
	"github.com/stretchr/testify/assert"
)

type planet struct {
	pos vec.Vec2
	mu  float64
}

func (p planet) Position() vec.Vec2 { return p.pos }
func (p planet) Mu() float64        { return p.mu }

func TestAccelerationInverseSquare(t *testing.T) {
	a := New(vec.Vec2{0, 0}, 1e6)
	got := Acceleration(vec.Vec2{100, 0}, a)

	assert.InDelta(t, -100.0, got[0], 1e-9)
	assert.InDelta(t, 0.0, got[1], 1e-12)
}

func TestAccelerationCoincident(t *testing.T) {
	p := New(vec.Vec3{1, 2, 3}, 5.0)

	assert.Equal(t, vec.Vec3{}, Acceleration(vec.Vec3{1, 2, 3}, p))
	assert.Equal(t, vec.Vec3{}, AccelerationSoftened(vec.Vec3{1, 2, 3}, p, 0))
}

func TestAccelerationUncheckedCoincidentIsNaN(t *testing.T) {
	p := New(vec.Vec2{1, 1}, 2.0)
	got := AccelerationUnchecked(vec.Vec2{1, 1}, p)
	assert.True(t, math.IsNaN(got[0]))
}

func TestAccelerationSoftenedBounded(t *testing.T) {
	p := New(vec.Vec2{1e-6, 0}, 1.0)
	hard := Acceleration(vec.Vec2{}, p)
	soft := AccelerationSoftened(vec.Vec2{}, p, 0.01)

	assert.Greater(t, hard[0], soft[0])
	assert.Less(t, soft[0], 2e-3)
}

func TestAccelerationSumSkipsSelf(t *testing.T) {
	ps := []PointMass[float64, vec.Vec2]{
		New(vec.Vec2{0, 0}, 1.0),
		New(vec.Vec2{2, 0}, 1.0),
	}
	got := AccelerationSum(ps[0].Position, ps)
	assert.InDelta(t, 0.25, got[0], 1e-12)
	assert.InDelta(t, 0.0, got[1], 1e-12)
}

func TestCenterOfMass(t *testing.T) {
	tests := []struct {
		name string
		ps   []PointMass[float64, vec.Vec2]
		want PointMass[float64, vec.Vec2]
	}{
		{"empty", nil, PointMass[float64, vec.Vec2]{}},
		{
			"weighted",
			[]PointMass[float64, vec.Vec2]{New(vec.Vec2{0, 0}, 3.0), New(vec.Vec2{4, 0}, 1.0)},
			New(vec.Vec2{1, 0}, 4.0),
		},
		{
			"massless centroid",
			[]PointMass[float64, vec.Vec2]{New(vec.Vec2{0, 0}, 0.0), New(vec.Vec2{2, 4}, 0.0)},
			New(vec.Vec2{1, 2}, 0.0),
		},
		{
			"single inexact",
			[]PointMass[float64, vec.Vec2]{New(vec.Vec2{0.1, 0.7}, 3.0)},
			New(vec.Vec2{0.1, 0.7}, 3.0),
		},
		{
			"coincident keeps position",
			[]PointMass[float64, vec.Vec2]{New(vec.Vec2{0.1, 0.7}, 3.0), New(vec.Vec2{0.1, 0.7}, 0.3)},
			New(vec.Vec2{0.1, 0.7}, 3.3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CenterOfMass(tt.ps))
		})
	}
}

func TestFromBodies(t *testing.T) {
	bodies := []planet{{vec.Vec2{1, 0}, 2}, {vec.Vec2{0, 1}, 0}}
	ps := FromBodies[float64, vec.Vec2](bodies)

	assert.Len(t, ps, 2)
	assert.True(t, ps[0].IsMassive())
	assert.True(t, ps[1].IsMassless())
	assert.Equal(t, []vec.Vec2{{1, 0}, {0, 1}}, Positions(ps))
}
