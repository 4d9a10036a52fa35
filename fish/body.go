// Package fish derives a fish's renderable geometry from its spine.
//
// A Body owns one spine chain plus a fixed width profile and palette. Nothing
// about the outline, fins, tail or eyes is stored: Shape recomputes all of it
// from the current joint positions and headings every time it is called.
package fish

import (
	"image/color"
	"math"

	"github.com/pthm-cable/fishtank/spine"
	"github.com/pthm-cable/fishtank/vecmath"
)

// MinJoints is the smallest chain that still has room for head, fins and tail.
const MinJoints = 8

// Config describes a fish's proportions. Lengths are in unscaled units and
// multiplied by Scale when the body is built.
type Config struct {
	JointCount      int
	LinkSize        float64
	AngleConstraint float64
	Scale           float64
	Widths          []float64
	BodyColor       color.RGBA
	FinColor        color.RGBA
	EyeColor        color.RGBA
}

// DefaultConfig returns the proportions of the reference fish.
func DefaultConfig() Config {
	return Config{
		JointCount:      12,
		LinkSize:        64,
		AngleConstraint: math.Pi / 8,
		Scale:           0.15,
		Widths:          []float64{68, 81, 84, 83, 77, 64, 51, 38, 32, 19},
		BodyColor:       color.RGBA{R: 58, G: 124, B: 165, A: 255},
		FinColor:        color.RGBA{R: 129, G: 195, B: 215, A: 255},
		EyeColor:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Body is a fish: a spine, its scaled width profile and colors.
type Body struct {
	Spine  *spine.Chain
	widths []float64
	scale  float64
	colors Palette
	layout layout
}

// Palette holds the fill colors of a fish.
type Palette struct {
	Body, Fin, Eye color.RGBA
}

// layout names the joints each feature hangs from.
type layout struct {
	outline   int // joints covered by the body outline
	pectoral  int
	ventral   int
	dorsal    int // first dorsal anchor; the fin spans dorsal..dorsal+3
	mid1      int
	mid2      int
	tailStart int
	tail      int
}

func newLayout(joints, widths int) layout {
	mid := joints / 2
	outline := widths
	if outline > joints {
		outline = joints
	}
	return layout{
		outline:   outline,
		pectoral:  joints / 4,
		ventral:   mid + 1,
		dorsal:    mid - 2,
		mid1:      mid,
		mid2:      mid + 1,
		tailStart: joints - 4,
		tail:      joints - 1,
	}
}

// New builds a fish whose head sits at origin.
func New(origin vecmath.Vec, cfg Config) *Body {
	joints := cfg.JointCount
	if joints < MinJoints {
		joints = MinJoints
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}

	// Pad a short profile with its last entry so every joint has a width.
	widths := make([]float64, joints)
	for i := range widths {
		w := 0.0
		switch {
		case i < len(cfg.Widths):
			w = cfg.Widths[i]
		case len(cfg.Widths) > 0:
			w = cfg.Widths[len(cfg.Widths)-1]
		}
		widths[i] = w * scale
	}

	outlined := len(cfg.Widths)
	if outlined < 2 {
		outlined = joints - 2
	}

	return &Body{
		Spine:  spine.New(origin, joints, cfg.LinkSize*scale, cfg.AngleConstraint),
		widths: widths,
		scale:  scale,
		colors: Palette{Body: cfg.BodyColor, Fin: cfg.FinColor, Eye: cfg.EyeColor},
		layout: newLayout(joints, outlined),
	}
}

// Resolve moves the head to target, dragging the spine behind it.
func (b *Body) Resolve(target vecmath.Vec) {
	b.Spine.Resolve(target)
}

// Head returns the head joint position.
func (b *Body) Head() vecmath.Vec {
	return b.Spine.Head()
}

// Width returns the scaled half-width at joint i.
func (b *Body) Width(i int) float64 {
	return b.widths[i]
}

// Scale returns the size multiplier applied to the configured proportions.
func (b *Body) Scale() float64 {
	return b.scale
}

// Palette returns the fish's colors.
func (b *Body) Palette() Palette {
	return b.colors
}
