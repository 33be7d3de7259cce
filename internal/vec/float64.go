package vec

// Vec2 is a 2D float64 vector.
type Vec2 [2]float64

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v[0] + o[0], v[1] + o[1]}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v[0] - o[0], v[1] - o[1]}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

func (v Vec2) Div(s float64) Vec2 {
	return Vec2{v[0] / s, v[1] / s}
}

func (v Vec2) NormSquared() float64 {
	return v[0]*v[0] + v[1]*v[1]
}

func (v Vec2) Dim() int { return 2 }

func (v Vec2) Axis(i int) float64 { return v[i] }

func (v Vec2) WithAxis(i int, s float64) Vec2 {
	v[i] = s
	return v
}

func (v Vec2) Fill(s float64) Vec2 {
	return Vec2{s, s}
}

// Vec3 is a 3D float64 vector.
type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Div(s float64) Vec3 {
	return Vec3{v[0] / s, v[1] / s, v[2] / s}
}

func (v Vec3) NormSquared() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

func (v Vec3) Dim() int { return 3 }

func (v Vec3) Axis(i int) float64 { return v[i] }

func (v Vec3) WithAxis(i int, s float64) Vec3 {
	v[i] = s
	return v
}

func (v Vec3) Fill(s float64) Vec3 {
	return Vec3{s, s, s}
}

type Vec4 [4]float64

func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

func (v Vec4) Sub(o Vec4) Vec4 {
	return Vec4{v[0] - o[0], v[1] - o[1], v[2] - o[2], v[3] - o[3]}
}

func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

func (v Vec4) Div(s float64) Vec4 {
	return Vec4{v[0] / s, v[1] / s, v[2] / s, v[3] / s}
}

func (v Vec4) NormSquared() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3]
}

func (v Vec4) Dim() int { return 4 }

func (v Vec4) Axis(i int) float64 { return v[i] }

func (v Vec4) WithAxis(i int, s float64) Vec4 {
	v[i] = s
	return v
}

func (v Vec4) Fill(s float64) Vec4 {
	return Vec4{s, s, s, s}
}

