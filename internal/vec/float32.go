package vec

// Vec2f is the float32 counterpart of Vec2.
type Vec2f [2]float32

func (v Vec2f) Add(o Vec2f) Vec2f {
	return Vec2f{v[0] + o[0], v[1] + o[1]}
}

func (v Vec2f) Sub(o Vec2f) Vec2f {
	return Vec2f{v[0] - o[0], v[1] - o[1]}
}

func (v Vec2f) Scale(s float32) Vec2f {
	return Vec2f{v[0] * s, v[1] * s}
}

func (v Vec2f) Div(s float32) Vec2f {
	return Vec2f{v[0] / s, v[1] / s}
}

func (v Vec2f) NormSquared() float32 {
	return v[0]*v[0] + v[1]*v[1]
}

func (v Vec2f) Dim() int { return 2 }

func (v Vec2f) Axis(i int) float32 { return v[i] }

func (v Vec2f) WithAxis(i int, s float32) Vec2f {
	v[i] = s
	return v
}

func (v Vec2f) Fill(s float32) Vec2f {
	return Vec2f{s, s}
}

// Vec3f is the float32 counterpart of Vec3. It is the component type of
// GPU buffers once padded to four lanes.
type Vec3f [3]float32

func (v Vec3f) Add(o Vec3f) Vec3f {
	return Vec3f{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3f) Sub(o Vec3f) Vec3f {
	return Vec3f{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3f) Scale(s float32) Vec3f {
	return Vec3f{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3f) Div(s float32) Vec3f {
	return Vec3f{v[0] / s, v[1] / s, v[2] / s}
}

func (v Vec3f) NormSquared() float32 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

func (v Vec3f) Dim() int { return 3 }

func (v Vec3f) Axis(i int) float32 { return v[i] }

func (v Vec3f) WithAxis(i int, s float32) Vec3f {
	v[i] = s
	return v
}

func (v Vec3f) Fill(s float32) Vec3f {
	return Vec3f{s, s, s}
}

