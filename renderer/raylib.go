package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishtank/draw"
	"github.com/pthm-cable/fishtank/vecmath"
)

// ellipseSegments is the outline resolution for fins and eyes.
const ellipseSegments = 24

// Canvas draws into the current raylib frame. World coordinates map 1:1 to
// screen pixels; the part of the scene beyond the window is clipped.
type Canvas struct {
	// Step is the scanline height in pixels used for polygon fills.
	Step float64
}

// NewCanvas returns a canvas filling polygons one pixel row at a time.
func NewCanvas() *Canvas {
	return &Canvas{Step: 1}
}

func rlColor(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func rlVec(v vecmath.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

// FillPolygon fills an arbitrary, possibly concave, outline.
func (c *Canvas) FillPolygon(points []vecmath.Vec, col color.RGBA) {
	step := c.Step
	if step <= 0 {
		step = 1
	}
	rc := rlColor(col)
	for _, s := range draw.Scanline(points, step) {
		rl.DrawRectangleRec(rl.Rectangle{
			X:      float32(s.X0),
			Y:      float32(s.Y - step/2),
			Width:  float32(s.X1 - s.X0),
			Height: float32(step),
		}, rc)
	}
}

// FillEllipse fills a rotated ellipse.
func (c *Canvas) FillEllipse(e draw.Ellipse, col color.RGBA) {
	c.FillPolygon(e.Polygon(ellipseSegments), col)
}

// FillCircle fills a circle.
func (c *Canvas) FillCircle(center vecmath.Vec, radius float64, col color.RGBA) {
	rl.DrawCircleV(rlVec(center), float32(radius), rlColor(col))
}

// DrawBackdrop paints the gradient and ripple lines. Sparkles are drawn with
// the same canvas so every backend shows them alike.
func (c *Canvas) DrawBackdrop(b *Backdrop, frame uint64, seconds float64) {
	w, h := b.Size()
	rl.DrawRectangleGradientV(0, 0, int32(w), int32(h), rlColor(b.Top()), rlColor(b.Bottom()))

	rc := rlColor(RippleColor)
	for _, row := range b.Ripples(frame) {
		for i := 0; i+1 < len(row); i++ {
			rl.DrawLineEx(rlVec(row[i]), rlVec(row[i+1]), rippleWidth, rc)
		}
	}
	b.DrawSparkles(c, seconds)
}
