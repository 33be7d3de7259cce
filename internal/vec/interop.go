package vec

import (
	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func FromR2(v r2.Vec) Vec2 { return Vec2{v.X, v.Y} }

func (v Vec2) R2() r2.Vec { return r2.Vec{X: v[0], Y: v[1]} }

func FromR3(v r3.Vec) Vec3 { return Vec3{v.X, v.Y, v.Z} }

func (v Vec3) R3() r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

func FromCoord3D(c model3d.Coord3D) Vec3 { return Vec3{c.X, c.Y, c.Z} }

func (v Vec3) Coord3D() model3d.Coord3D { return model3d.XYZ(v[0], v[1], v[2]) }

// F32 narrows v to float32 components.
func (v Vec3) F32() Vec3f { return Vec3f{float32(v[0]), float32(v[1]), float32(v[2])} }

func (v Vec3f) F64() Vec3 { return Vec3{float64(v[0]), float64(v[1]), float64(v[2])} }

func (v Vec2) F32() Vec2f { return Vec2f{float32(v[0]), float32(v[1])} }

func (v Vec2f) F64() Vec2 { return Vec2{float64(v[0]), float64(v[1])} }
