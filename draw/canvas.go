// Package draw defines the backend-neutral drawing surface the simulation
// renders into, plus the curve flattening and polygon rasterization helpers
// shared by the raylib and terminal backends.
package draw

import (
	"image/color"
	"math"

	"github.com/pthm-cable/fishtank/vecmath"
)

// Canvas receives filled shapes in world coordinates.
type Canvas interface {
	FillPolygon(points []vecmath.Vec, c color.RGBA)
	FillEllipse(e Ellipse, c color.RGBA)
	FillCircle(center vecmath.Vec, radius float64, c color.RGBA)
}

// Ellipse is a rotated ellipse with semi-axes RX (along Rotation) and RY.
type Ellipse struct {
	Center   vecmath.Vec
	RX, RY   float64
	Rotation float64
}

// Polygon approximates the ellipse outline with n points.
func (e Ellipse) Polygon(n int) []vecmath.Vec {
	if n < 3 {
		n = 3
	}
	cos, sin := math.Cos(e.Rotation), math.Sin(e.Rotation)
	pts := make([]vecmath.Vec, n)
	for i := range pts {
		t := vecmath.TwoPi * float64(i) / float64(n)
		lx := math.Cos(t) * e.RX
		ly := math.Sin(t) * e.RY
		pts[i] = vecmath.V(
			e.Center.X+lx*cos-ly*sin,
			e.Center.Y+lx*sin+ly*cos,
		)
	}
	return pts
}

// Contains reports whether p lies inside the ellipse.
func (e Ellipse) Contains(p vecmath.Vec) bool {
	if e.RX <= 0 || e.RY <= 0 {
		return false
	}
	dx, dy := p.X-e.Center.X, p.Y-e.Center.Y
	cos, sin := math.Cos(-e.Rotation), math.Sin(-e.Rotation)
	lx := dx*cos - dy*sin
	ly := dx*sin + dy*cos
	return (lx*lx)/(e.RX*e.RX)+(ly*ly)/(e.RY*e.RY) <= 1
}
