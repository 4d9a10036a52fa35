package fish

import (
	"math"

	"github.com/pthm-cable/fishtank/draw"
	"github.com/pthm-cable/fishtank/spine"
	"github.com/pthm-cable/fishtank/vecmath"
)

// Curve sampling density for rendering.
const (
	curveSteps  = 4
	bezierSteps = 8
	finPoints   = 18
)

// Shape is the geometry of a fish at one instant. Outline, Tail and Dorsal
// hold control points; Draw smooths them into filled polygons.
type Shape struct {
	Outline []vecmath.Vec // right side, belly, left side, head cap
	Tail    []vecmath.Vec // caudal fin: lower edge then upper edge
	Dorsal  []vecmath.Vec // sampled Bezier loop anchored on the mid spine
	Fins    [4]draw.Ellipse
	Eyes    [2]draw.Ellipse

	// Curvature summaries the fins are sized from.
	HeadToMid1 float64
	HeadToMid2 float64
	HeadToTail float64

	Colors Palette
}

// Fin indices into Shape.Fins.
const (
	PectoralRight = iota
	PectoralLeft
	VentralRight
	VentralLeft
)

// Shape derives the fish's geometry from the spine's current state.
// It never mutates the spine.
func (b *Body) Shape() Shape {
	j := b.Spine.Joints()
	l := b.layout
	s := b.scale

	headToMid1 := vecmath.AngleDiff(j[0].Angle, j[l.mid1].Angle)
	headToMid2 := vecmath.AngleDiff(j[0].Angle, j[l.mid2].Angle)
	headToTail := headToMid1 + vecmath.AngleDiff(j[l.mid1].Angle, j[l.tail].Angle)

	return Shape{
		Outline: b.outline(j),
		Tail:    b.caudal(j, headToTail),
		Dorsal:  b.dorsal(j, headToMid1, headToMid2),
		Fins: [4]draw.Ellipse{
			PectoralRight: b.fin(j, l.pectoral, math.Pi/3, -math.Pi/4, 160*s, 64*s),
			PectoralLeft:  b.fin(j, l.pectoral, -math.Pi/3, math.Pi/4, 160*s, 64*s),
			VentralRight:  b.fin(j, l.ventral, math.Pi/2, -math.Pi/4, 96*s, 32*s),
			VentralLeft:   b.fin(j, l.ventral, -math.Pi/2, math.Pi/4, 96*s, 32*s),
		},
		Eyes: [2]draw.Ellipse{
			b.eye(j, math.Pi/2),
			b.eye(j, -math.Pi/2),
		},
		HeadToMid1: headToMid1,
		HeadToMid2: headToMid2,
		HeadToTail: headToTail,
		Colors:     b.colors,
	}
}

// side returns the point at the body's edge next to joint i, turned by
// angleOffset from the joint heading and pushed out by lengthOffset.
func (b *Body) side(j []spine.Joint, i int, angleOffset, lengthOffset float64) vecmath.Vec {
	return vecmath.Offset(j[i].Pos, j[i].Angle+angleOffset, b.widths[i]+lengthOffset)
}

func (b *Body) outline(j []spine.Joint) []vecmath.Vec {
	n := b.layout.outline
	pts := make([]vecmath.Vec, 0, 2*n+4)

	for i := 0; i < n; i++ {
		pts = append(pts, b.side(j, i, math.Pi/2, 0))
	}
	pts = append(pts, b.side(j, n-1, math.Pi, 0))
	for i := n - 1; i >= 0; i-- {
		pts = append(pts, b.side(j, i, -math.Pi/2, 0))
	}

	// Rounded snout.
	pts = append(pts,
		b.side(j, 0, -math.Pi/6, 0),
		b.side(j, 0, 0, 4*b.scale),
		b.side(j, 0, math.Pi/6, 0),
	)
	return pts
}

// caudal builds the tail fin. The lower edge fans out quadratically with
// distance from the tail's pivot joint; the upper edge is a clamped offset.
// Both grow with the accumulated head-to-tail bend.
func (b *Body) caudal(j []spine.Joint, headToTail float64) []vecmath.Vec {
	l := b.layout
	s := b.scale
	pts := make([]vecmath.Vec, 0, 2*(l.tail-l.tailStart+1))

	for i := l.tailStart; i <= l.tail; i++ {
		d := float64(i - l.tailStart)
		w := 1.5 * headToTail * d * d * s
		pts = append(pts, vecmath.Offset(j[i].Pos, j[i].Angle-math.Pi/2, w))
	}

	w := vecmath.Clamp(headToTail*6*s, -13*s, 13*s)
	for i := l.tail; i >= l.tailStart; i-- {
		pts = append(pts, vecmath.Offset(j[i].Pos, j[i].Angle+math.Pi/2, w))
	}
	return pts
}

// dorsal traces along four mid-spine joints and back along a curve pushed
// out in proportion to the bend between head and mid body.
func (b *Body) dorsal(j []spine.Joint, headToMid1, headToMid2 float64) []vecmath.Vec {
	d := b.layout.dorsal
	s := b.scale
	p0, p1, p2, p3 := j[d].Pos, j[d+1].Pos, j[d+2].Pos, j[d+3].Pos

	back1 := vecmath.Offset(p2, j[d+2].Angle+math.Pi/2, headToMid2*16*s)
	back2 := vecmath.Offset(p1, j[d+1].Angle+math.Pi/2, headToMid1*16*s)

	pts := []vecmath.Vec{p0}
	pts = append(pts, draw.CubicBezier(p0, p1, p2, p3, bezierSteps)...)
	pts = append(pts, draw.CubicBezier(p3, back1, back2, p0, bezierSteps)...)
	// The second curve ends back on p0; drop the duplicate.
	return pts[:len(pts)-1]
}

// fin places a paired fin at the edge of joint i, rotated from the preceding
// joint's heading by bias. Width and height are full diameters.
func (b *Body) fin(j []spine.Joint, i int, angleOffset, bias, width, height float64) draw.Ellipse {
	return draw.Ellipse{
		Center:   b.side(j, i, angleOffset, 0),
		RX:       width / 2,
		RY:       height / 2,
		Rotation: j[i-1].Angle + bias,
	}
}

func (b *Body) eye(j []spine.Joint, angleOffset float64) draw.Ellipse {
	r := 12 * b.scale
	return draw.Ellipse{
		Center: b.side(j, 0, angleOffset, -18*b.scale),
		RX:     r,
		RY:     r,
	}
}

// Draw paints the shape back to front: paired fins, tail, body, dorsal fin, eyes.
func (s Shape) Draw(c draw.Canvas) {
	for _, f := range s.Fins {
		c.FillEllipse(f, s.Colors.Fin)
	}
	c.FillPolygon(draw.ClosedCatmullRom(s.Tail, curveSteps), s.Colors.Fin)
	c.FillPolygon(draw.ClosedCatmullRom(s.Outline, curveSteps), s.Colors.Body)
	c.FillPolygon(s.Dorsal, s.Colors.Fin)
	for _, e := range s.Eyes {
		c.FillEllipse(e, s.Colors.Eye)
	}
}

// Bounds returns the axis-aligned box around the outline, tail and fins.
func (s Shape) Bounds() (lo, hi vecmath.Vec) {
	lo = vecmath.V(math.Inf(1), math.Inf(1))
	hi = vecmath.V(math.Inf(-1), math.Inf(-1))
	grow := func(p vecmath.Vec) {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	for _, p := range s.Outline {
		grow(p)
	}
	for _, p := range s.Tail {
		grow(p)
	}
	for _, f := range s.Fins {
		for _, p := range f.Polygon(finPoints) {
			grow(p)
		}
	}
	return lo, hi
}
