package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera projects world positions onto a canvas. Extent is the world radius
// that fills the smaller canvas side at zoom 1.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	Extent           float64
	Distance         float64
}

func NewCamera(extent float64) *Camera {
	if extent <= 0 {
		extent = 1
	}
	return &Camera{Zoom: 1, Extent: extent, Distance: 10 * extent}
}

func (c *Camera) Rotate(axis byte, a float64) {
	switch axis {
	case 'x':
		c.RotX += a
	case 'y':
		c.RotY += a
	case 'z':
		c.RotZ += a
	}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(50, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.02, c.Zoom/1.2) }

// Apply rotates p about x, then y, then z.
func (c *Camera) Apply(p r3.Vec) r3.Vec {
	p = r3.NewRotation(c.RotX, r3.Vec{X: 1}).Rotate(p)
	p = r3.NewRotation(c.RotY, r3.Vec{Y: 1}).Rotate(p)
	return r3.NewRotation(c.RotZ, r3.Vec{Z: 1}).Rotate(p)
}

// Project maps p to canvas dots. Points behind the eye or off canvas are not
// visible.
func (c *Camera) Project(p r3.Vec, sw, sh int) (x, y int, depth float64, visible bool) {
	rot := c.Apply(p)
	if rot.Z >= c.Distance {
		return 0, 0, 0, false
	}
	perspective := c.Distance / (c.Distance - rot.Z)
	half := float64(min(sw, sh)) / 2
	scale := perspective * c.Zoom * half / c.Extent
	x = int(math.Round(rot.X*scale)) + sw/2
	y = int(math.Round(-rot.Y*scale)) + sh/2
	return x, y, rot.Z, x >= 0 && x < sw && y >= 0 && y < sh
}
