// Package vecmath provides the small set of 2D vector and angle helpers
// shared by the chain solver, fish geometry and steering.
package vecmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector with value semantics.
type Vec = r2.Vec

// V builds a vector from components.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// FromAngle returns a vector of the given length pointing along theta.
func FromAngle(theta, length float64) Vec {
	return Vec{X: math.Cos(theta) * length, Y: math.Sin(theta) * length}
}

// Heading returns the angle of v in radians. The zero vector has heading 0.
func Heading(v Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Offset returns p moved by length along theta.
func Offset(p Vec, theta, length float64) Vec {
	return r2.Add(p, FromAngle(theta, length))
}

// Normalize returns the unit vector along v.
// ok is false for zero-length or non-finite input, in which case v is returned unchanged.
func Normalize(v Vec) (unit Vec, ok bool) {
	n := r2.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return v, false
	}
	return r2.Scale(1/n, v), true
}

// Limit caps the magnitude of v at max, preserving direction.
func Limit(v Vec, max float64) Vec {
	n2 := r2.Norm2(v)
	if n2 <= max*max || n2 == 0 {
		return v
	}
	return r2.Scale(max/math.Sqrt(n2), v)
}

// Lerp linearly interpolates from a toward b by t.
func Lerp(a, b Vec, t float64) Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// IsFinite reports whether both components are finite numbers.
func IsFinite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
