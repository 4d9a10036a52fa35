package renderer

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/fishtank/camera"
	"github.com/pthm-cable/fishtank/draw"
	"github.com/pthm-cable/fishtank/vecmath"
)

// halfBlock shows the upper pixel as foreground and the lower as background.
const halfBlock = '▀'

// Terminal rasterizes into a pixel buffer two pixels per terminal cell and
// flushes it to a tcell screen.
type Terminal struct {
	screen tcell.Screen
	view   *camera.Viewport
	pix    []colorful.Color
	w, h   int
}

// NewTerminal sizes the pixel buffer from the screen and sets the viewport
// to match.
func NewTerminal(screen tcell.Screen, view *camera.Viewport) *Terminal {
	t := &Terminal{screen: screen, view: view}
	t.Resize()
	return t
}

// Resize reallocates the buffer after the screen changed size. It reports
// whether the viewport changed.
func (t *Terminal) Resize() bool {
	cols, rows := t.screen.Size()
	changed := t.view.Resize(cols, rows*2)
	t.w, t.h = t.view.ViewportW, t.view.ViewportH
	if len(t.pix) != t.w*t.h {
		t.pix = make([]colorful.Color, t.w*t.h)
	}
	return changed
}

// Size returns the pixel buffer dimensions.
func (t *Terminal) Size() (w, h int) {
	return t.w, t.h
}

// Pixel returns the buffered color at (x, y).
func (t *Terminal) Pixel(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		return color.RGBA{}
	}
	r, g, b := t.pix[y*t.w+x].Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

func (t *Terminal) blend(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= t.w || y >= t.h || c.A == 0 {
		return
	}
	src := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	i := y*t.w + x
	t.pix[i] = t.pix[i].BlendRgb(src, float64(c.A)/255)
}

func (t *Terminal) toScreen(p vecmath.Vec) vecmath.Vec {
	x, y := t.view.WorldToScreen(p.X, p.Y)
	return vecmath.V(x, y)
}

// FillPolygon fills pixels whose centers fall inside the outline.
func (t *Terminal) FillPolygon(points []vecmath.Vec, c color.RGBA) {
	screen := make([]vecmath.Vec, len(points))
	for i, p := range points {
		screen[i] = t.toScreen(p)
	}
	for _, s := range draw.Scanline(screen, 1) {
		y := int(math.Floor(s.Y))
		x0 := int(math.Ceil(s.X0 - 0.5))
		x1 := int(math.Floor(s.X1 - 0.5))
		for x := x0; x <= x1; x++ {
			t.blend(x, y, c)
		}
	}
}

// FillEllipse fills a rotated ellipse.
func (t *Terminal) FillEllipse(e draw.Ellipse, c color.RGBA) {
	t.FillPolygon(e.Polygon(16), c)
}

// FillCircle fills pixels whose centers lie within radius. A circle smaller
// than a pixel still marks the pixel containing its center.
func (t *Terminal) FillCircle(center vecmath.Vec, radius float64, c color.RGBA) {
	p := t.toScreen(center)
	r := radius / t.view.Zoom

	hit := false
	for y := int(math.Floor(p.Y - r)); y <= int(math.Ceil(p.Y+r)); y++ {
		for x := int(math.Floor(p.X - r)); x <= int(math.Ceil(p.X+r)); x++ {
			dx, dy := float64(x)+0.5-p.X, float64(y)+0.5-p.Y
			if dx*dx+dy*dy <= r*r {
				t.blend(x, y, c)
				hit = true
			}
		}
	}
	if !hit {
		t.blend(int(math.Floor(p.X)), int(math.Floor(p.Y)), c)
	}
}

// DrawBackdrop paints the gradient, ripple lines and sparkles.
func (t *Terminal) DrawBackdrop(b *Backdrop, frame uint64, seconds float64) {
	for y := 0; y < t.h; y++ {
		_, wy := t.view.PixelCenter(0, y)
		c, _ := colorful.MakeColor(b.ColorAt(wy))
		for x := 0; x < t.w; x++ {
			t.pix[y*t.w+x] = c
		}
	}

	for _, row := range b.Ripples(frame) {
		for i := 0; i+1 < len(row); i++ {
			t.line(t.toScreen(row[i]), t.toScreen(row[i+1]), RippleColor)
		}
	}
	b.DrawSparkles(t, seconds)
}

// line plots one pixel per step along a segment.
func (t *Terminal) line(a, b vecmath.Vec, c color.RGBA) {
	n := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	for i := 0; i < n; i++ {
		p := vecmath.Lerp(a, b, float64(i)/float64(n))
		t.blend(int(math.Floor(p.X)), int(math.Floor(p.Y)), c)
	}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Flush copies the buffer into the screen's cells. The caller presents the
// screen, usually after drawing text on top.
func (t *Terminal) Flush() {
	rows := t.h / 2
	for row := 0; row < rows; row++ {
		for col := 0; col < t.w; col++ {
			top := t.pix[(2*row)*t.w+col]
			bottom := t.pix[(2*row+1)*t.w+col]
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			t.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
}

// DrawText writes text over the picture starting at cell (col, row).
func (t *Terminal) DrawText(col, row int, text string, style tcell.Style) {
	for _, r := range text {
		t.screen.SetContent(col, row, r, nil, style)
		col++
	}
}
