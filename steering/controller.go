// Package steering drives a fish's head each tick: a wandering baseline,
// an eased pull toward nearby food, and a bounce off the padded viewport.
package steering

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/fish"
	"github.com/pthm-cable/fishtank/vecmath"
)

// Params holds the steering tuning constants.
type Params struct {
	WanderJitter   float64 // max wander angle change per tick, radians
	WanderStrength float64 // velocity nudge along the wander angle
	MaxSpeed       float64 // cap applied after wandering
	DetectRadius   float64
	EatRadius      float64
	ChaseMin       float64 // chase speed at the detection boundary
	ChaseMax       float64 // chase speed at zero distance
	SteerBlend     float64 // lerp factor toward the chase velocity
	Padding        float64 // how far past the viewport a fish may go
}

// DefaultParams returns the reference tuning.
func DefaultParams() Params {
	return Params{
		WanderJitter:   0.08,
		WanderStrength: 0.15,
		MaxSpeed:       1,
		DetectRadius:   350,
		EatRadius:      25,
		ChaseMin:       2,
		ChaseMax:       6,
		SteerBlend:     0.2,
		Padding:        150,
	}
}

// Rand is the random source a controller draws wander jitter from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Bounds is the viewport size the padded rectangle is built around.
type Bounds struct {
	W, H float64
}

// Sighting is the nearest food seen by a fish this tick.
type Sighting struct {
	Pos  vecmath.Vec
	Dist float64
}

// Result summarizes one controller tick.
type Result struct {
	Eat      bool // nearest food is within eat radius and should be removed
	Seeking  bool
	Bounced  bool
	Velocity vecmath.Vec
}

// Controller steers one fish.
type Controller struct {
	Fish        *fish.Body
	Vel         vecmath.Vec
	WanderAngle float64
	params      Params
}

// New wraps a fish with an initial velocity.
func New(f *fish.Body, vel vecmath.Vec, p Params) *Controller {
	return &Controller{Fish: f, Vel: vel, params: p}
}

// Params returns the controller's tuning.
func (c *Controller) Params() Params {
	return c.params
}

// Head returns the fish's head position.
func (c *Controller) Head() vecmath.Vec {
	return c.Fish.Head()
}

// Wander jitters the wander angle, nudges velocity along it and caps speed.
func (c *Controller) Wander(rng Rand) {
	p := c.params
	c.WanderAngle += (rng.Float64()*2 - 1) * p.WanderJitter
	c.WanderAngle = vecmath.NormalizeAngle(c.WanderAngle)
	c.Vel = r2.Add(c.Vel, vecmath.FromAngle(c.WanderAngle, p.WanderStrength))
	c.Vel = vecmath.Limit(c.Vel, p.MaxSpeed)
}

// ChaseSpeed maps a food distance onto the chase speed range: ChaseMin at
// the detection radius rising linearly to ChaseMax at zero distance.
func (c *Controller) ChaseSpeed(dist float64) float64 {
	p := c.params
	return vecmath.MapRange(dist, p.DetectRadius, 0, p.ChaseMin, p.ChaseMax, true)
}

// Seek eases velocity toward food inside the detection radius. It reports
// whether it steered; food sitting exactly on the head is ignored.
func (c *Controller) Seek(food Sighting) bool {
	p := c.params
	if !(food.Dist < p.DetectRadius) {
		return false
	}
	dir, ok := vecmath.Normalize(r2.Sub(food.Pos, c.Head()))
	if !ok {
		return false
	}
	target := r2.Scale(c.ChaseSpeed(food.Dist), dir)
	c.Vel = vecmath.Lerp(c.Vel, target, p.SteerBlend)
	return true
}

// CanEat reports whether food at the given distance is close enough to eat.
func (c *Controller) CanEat(food Sighting) bool {
	return food.Dist < c.params.EatRadius
}

// AvoidBounds flips velocity on each axis whose projected head position
// leaves the padded viewport, turning the wander angle a quarter turn per
// flipped axis.
func (c *Controller) AvoidBounds(b Bounds) bool {
	pad := c.params.Padding
	next := r2.Add(c.Head(), c.Vel)
	bounced := false

	if next.X < -pad || next.X > b.W+pad {
		c.Vel.X = -c.Vel.X
		c.WanderAngle = vecmath.NormalizeAngle(c.WanderAngle + math.Pi/2)
		bounced = true
	}
	if next.Y < -pad || next.Y > b.H+pad {
		c.Vel.Y = -c.Vel.Y
		c.WanderAngle = vecmath.NormalizeAngle(c.WanderAngle + math.Pi/2)
		bounced = true
	}
	return bounced
}

// Commit moves the head by the current velocity and resolves the spine.
func (c *Controller) Commit() {
	c.Fish.Resolve(r2.Add(c.Head(), c.Vel))
}

// Update runs one tick: wander, seek, eat check, boundary avoid, resolve.
// food is nil when the scene has no food at all.
func (c *Controller) Update(rng Rand, food *Sighting, b Bounds) Result {
	var r Result
	c.Wander(rng)
	if food != nil {
		r.Seeking = c.Seek(*food)
		r.Eat = c.CanEat(*food)
	}
	r.Bounced = c.AvoidBounds(b)
	c.Commit()
	r.Velocity = c.Vel
	return r
}
