// Package renderer draws the aquarium: a cosmetic backdrop shared by every
// backend, a raylib canvas for the window host and a tcell canvas for the
// terminal host.
package renderer

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/draw"
	"github.com/pthm-cable/fishtank/vecmath"
)

const (
	rippleStart  = -50.0 // first ripple row, above the top edge
	rippleStepX  = 40.0
	rippleBottom = 100.0 // rows continue this far past the bottom edge
	rippleWidth  = 1.2
)

// RippleColor is the translucent white of the ripple lines.
var RippleColor = color.RGBA{255, 255, 255, 28}

// Sparkle is a pulsing point of light.
type Sparkle struct {
	X, Y   float64
	Offset float64
}

// Pulse returns the sparkle diameter and alpha at time t seconds.
func (s Sparkle) Pulse(t float64) (size float64, alpha uint8) {
	p := (math.Sin(t*2+s.Offset) + 1) * 0.5
	return 1 + p*3, uint8(25 + p*60)
}

// Backdrop holds the cosmetic water: a vertical gradient, wavy ripple lines
// and sparkles. It knows nothing about creatures or food.
type Backdrop struct {
	top, bottom colorful.Color
	spacing     float64
	noiseAmp    float64
	noise       opensimplex.Noise
	sparkles    []Sparkle
	w, h        float64
}

// NewBackdrop scatters the sparkles over a w×h canvas.
func NewBackdrop(cfg config.BackgroundConfig, w, h float64, rng *rand.Rand) *Backdrop {
	top, _ := colorful.MakeColor(cfg.TopColor.Opaque())
	bottom, _ := colorful.MakeColor(cfg.BottomColor.Opaque())

	b := &Backdrop{
		top:      top,
		bottom:   bottom,
		spacing:  cfg.RippleSpacing,
		noiseAmp: cfg.RippleNoise,
		noise:    opensimplex.New(rng.Int63()),
		sparkles: make([]Sparkle, cfg.Sparkles),
		w:        w,
		h:        h,
	}
	if b.spacing <= 0 {
		b.spacing = 120
	}
	for i := range b.sparkles {
		b.sparkles[i] = Sparkle{
			X:      rng.Float64() * w,
			Y:      rng.Float64() * h,
			Offset: rng.Float64() * 1000,
		}
	}
	return b
}

// Resize changes the canvas size. Sparkles keep their positions.
func (b *Backdrop) Resize(w, h float64) {
	if w > 0 && h > 0 {
		b.w, b.h = w, h
	}
}

// Size returns the canvas size.
func (b *Backdrop) Size() (w, h float64) {
	return b.w, b.h
}

// ColorAt returns the gradient color at height y.
func (b *Backdrop) ColorAt(y float64) color.RGBA {
	t := 0.0
	if b.h > 0 {
		t = vecmath.Clamp(y/b.h, 0, 1)
	}
	r, g, bl := b.top.BlendRgb(b.bottom, t).Clamped().RGB255()
	return color.RGBA{r, g, bl, 255}
}

// Top returns the gradient's top color.
func (b *Backdrop) Top() color.RGBA { return b.ColorAt(0) }

// Bottom returns the gradient's bottom color.
func (b *Backdrop) Bottom() color.RGBA { return b.ColorAt(b.h) }

// Ripples returns one polyline per ripple row at the given frame.
func (b *Backdrop) Ripples(frame uint64) [][]vecmath.Vec {
	f := float64(frame)
	var rows [][]vecmath.Vec
	for y := rippleStart; y < b.h+rippleBottom; y += b.spacing {
		var row []vecmath.Vec
		for x := 0.0; x < b.w; x += rippleStepX {
			wave := math.Sin(x*0.015+f*0.01+y*0.02)*18 +
				math.Sin(x*0.03+f*0.02)*9
			if b.noiseAmp != 0 {
				wave += b.noise.Eval2(x*0.01, y*0.01+f*0.005) * b.noiseAmp
			}
			row = append(row, vecmath.V(x, y+wave))
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// Sparkles returns the sparkle positions.
func (b *Backdrop) Sparkles() []Sparkle {
	return b.sparkles
}

// DrawSparkles fills every sparkle at time t seconds.
func (b *Backdrop) DrawSparkles(c draw.Canvas, t float64) {
	for _, s := range b.sparkles {
		size, alpha := s.Pulse(t)
		c.FillCircle(vecmath.V(s.X, s.Y), size/2, color.RGBA{255, 255, 255, alpha})
	}
}
