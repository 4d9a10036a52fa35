package draw

import "github.com/pthm-cable/fishtank/vecmath"

// ClosedCatmullRom smooths a closed loop of control points into a polygon.
// The curve passes through every control point; each span between two
// control points is sampled with steps segments.
func ClosedCatmullRom(ctrl []vecmath.Vec, steps int) []vecmath.Vec {
	n := len(ctrl)
	if n < 3 || steps < 1 {
		out := make([]vecmath.Vec, n)
		copy(out, ctrl)
		return out
	}

	out := make([]vecmath.Vec, 0, n*steps)
	for i := 0; i < n; i++ {
		p0 := ctrl[(i-1+n)%n]
		p1 := ctrl[i]
		p2 := ctrl[(i+1)%n]
		p3 := ctrl[(i+2)%n]
		for s := 0; s < steps; s++ {
			out = append(out, catmullRom(p0, p1, p2, p3, float64(s)/float64(steps)))
		}
	}
	return out
}

// catmullRom evaluates a uniform Catmull-Rom segment between p1 and p2.
func catmullRom(p0, p1, p2, p3 vecmath.Vec, t float64) vecmath.Vec {
	t2 := t * t
	t3 := t2 * t
	f := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b + (-a+c)*t + (2*a-5*b+4*c-d)*t2 + (-a+3*b-3*c+d)*t3)
	}
	return vecmath.V(f(p0.X, p1.X, p2.X, p3.X), f(p0.Y, p1.Y, p2.Y, p3.Y))
}

// CubicBezier samples a cubic Bezier from p0 to p3 with the given control points.
// The start point is omitted so consecutive segments can be chained; the end
// point is always included.
func CubicBezier(p0, c1, c2, p3 vecmath.Vec, steps int) []vecmath.Vec {
	if steps < 1 {
		steps = 1
	}
	out := make([]vecmath.Vec, 0, steps)
	for s := 1; s <= steps; s++ {
		t := float64(s) / float64(steps)
		u := 1 - t
		a := u * u * u
		b := 3 * u * u * t
		c := 3 * u * t * t
		d := t * t * t
		out = append(out, vecmath.V(
			a*p0.X+b*c1.X+c*c2.X+d*p3.X,
			a*p0.Y+b*c1.Y+c*c2.Y+d*p3.Y,
		))
	}
	return out
}
