package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/spatial/r3"
)

func sumAll[S Scalar, V Vector[S, V]](vs ...V) V {
	var acc V
	for _, v := range vs {
		acc = acc.Add(v)
	}
	return acc
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{3, 3, 3}, b.Sub(a))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, Vec3{2, 2.5, 3}, b.Div(2))
	assert.Equal(t, 14.0, a.NormSquared())
	assert.InDelta(t, math.Sqrt(14), Norm[float64](a), 1e-12)
}

func TestGenericAcrossRepresentations(t *testing.T) {
	assert.Equal(t, Vec2{3, 3}, sumAll[float64](Vec2{1, 2}, Vec2{2, 1}))
	assert.Equal(t, Vec4{1, 1, 1, 1}, sumAll[float64](Vec4{1, 0, 0, 0}, Vec4{0, 1, 1, 1}))
	assert.Equal(t, Vec3f{1.5, 0, -1}, sumAll[float32](Vec3f{1, 0, 0}, Vec3f{0.5, 0, -1}))
}

func TestAxisAccess(t *testing.T) {
	tests := []struct {
		name string
		dim  int
		got  int
	}{
		{"vec2", 2, Dim[float64, Vec2]()},
		{"vec3", 3, Dim[float64, Vec3]()},
		{"vec4", 4, Dim[float64, Vec4]()},
		{"vec2f", 2, Dim[float32, Vec2f]()},
		{"vec3f", 3, Dim[float32, Vec3f]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dim, tt.got)
		})
	}

	v := Vec3{1, 2, 3}.WithAxis(1, 7)
	assert.Equal(t, Vec3{1, 7, 3}, v)
	assert.Equal(t, 7.0, v.Axis(1))
	assert.Equal(t, Vec4{2, 2, 2, 2}, Splat[float64, Vec4](2))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite[float64](Vec2{1, 2}))
	assert.False(t, IsFinite[float64](Vec2{math.NaN(), 2}))
	assert.False(t, IsFinite[float64](Vec3{0, math.Inf(1), 0}))
}

func TestInterop(t *testing.T) {
	v := FromR3(r3.Vec{X: 1, Y: 2, Z: 3})
	assert.Equal(t, Vec3{1, 2, 3}, v)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, v.R3())

	c := model3d.XYZ(4, 5, 6)
	assert.Equal(t, Vec3{4, 5, 6}, FromCoord3D(c))
	assert.Equal(t, c, FromCoord3D(c).Coord3D())

	assert.Equal(t, Vec3{0.5, 1, 2}, Vec3{0.5, 1, 2}.F32().F64())
}
