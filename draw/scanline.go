package draw

import (
	"math"
	"sort"

	"github.com/pthm-cable/fishtank/vecmath"
)

// Span is one horizontal run of a filled polygon, sampled at row center Y.
type Span struct {
	Y      float64
	X0, X1 float64
}

// Scanline converts a closed polygon into horizontal spans using the even-odd
// rule. Rows are step units tall and sampled at their centers, starting from
// the row containing the polygon's lowest Y. Self-intersecting outlines are
// allowed; overlapping lobes simply cancel.
func Scanline(points []vecmath.Vec, step float64) []Span {
	if len(points) < 3 || step <= 0 {
		return nil
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		if !vecmath.IsFinite(p) {
			return nil
		}
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	var spans []Span
	xs := make([]float64, 0, 8)
	n := len(points)

	for row := math.Floor(minY/step) * step; row <= maxY; row += step {
		y := row + step/2
		xs = xs[:0]

		for i := 0; i < n; i++ {
			a := points[i]
			b := points[(i+1)%n]
			// Half-open test so shared vertices count once.
			if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
				t := (y - a.Y) / (b.Y - a.Y)
				xs = append(xs, a.X+t*(b.X-a.X))
			}
		}
		if len(xs) < 2 {
			continue
		}

		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			if xs[i+1] > xs[i] {
				spans = append(spans, Span{Y: y, X0: xs[i], X1: xs[i+1]})
			}
		}
	}
	return spans
}
