// Package food implements the sinking, fading pellets dropped into the tank.
package food

import (
	"image/color"

	"github.com/pthm-cable/fishtank/draw"
	"github.com/pthm-cable/fishtank/vecmath"
)

// Params holds the fixed properties every new pellet starts with.
type Params struct {
	Size         float64 // diameter
	Speed        float64 // sink per tick
	DecayRate    float64 // alpha lost per tick
	InitialAlpha float64
}

// DefaultParams returns the reference pellet.
func DefaultParams() Params {
	return Params{
		Size:         8,
		Speed:        1.5,
		DecayRate:    1.5,
		InitialAlpha: 255,
	}
}

// Particle is a single food pellet.
type Particle struct {
	Pos       vecmath.Vec
	Alpha     float64
	Size      float64
	Speed     float64
	DecayRate float64
}

// New creates a pellet at pos.
func New(pos vecmath.Vec, p Params) Particle {
	return Particle{
		Pos:       pos,
		Alpha:     p.InitialAlpha,
		Size:      p.Size,
		Speed:     p.Speed,
		DecayRate: p.DecayRate,
	}
}

// Update sinks the pellet and fades it. Alpha is allowed to go negative;
// IsGone reports when it should be removed.
func (p *Particle) Update() {
	p.Pos.Y += p.Speed
	p.Alpha -= p.DecayRate
}

// IsGone reports whether the pellet has faded out or sunk below bottom.
func (p Particle) IsGone(bottom float64) bool {
	return p.Alpha <= 0 || p.Pos.Y > bottom
}

// Color returns the pellet's yellow fill at its current opacity.
func (p Particle) Color() color.RGBA {
	a := vecmath.Clamp(p.Alpha, 0, 255)
	return color.RGBA{R: 255, G: 204, B: 0, A: uint8(a)}
}

// Draw paints the pellet as a filled circle.
func (p Particle) Draw(c draw.Canvas) {
	c.FillCircle(p.Pos, p.Size/2, p.Color())
}
