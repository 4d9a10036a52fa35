// Package scene holds all mutable state of one aquarium session: the fish,
// the food pellets, the random source and the viewport bounds.
//
// A Scene is driven by its host. Tick advances the simulation by one step,
// Feed drops a pellet and Render draws the current state. The scene never
// starts goroutines, performs I/O or keeps timers, so a host may simply stop
// calling it.
package scene

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/draw"
	"github.com/pthm-cable/fishtank/fish"
	"github.com/pthm-cable/fishtank/food"
	"github.com/pthm-cable/fishtank/steering"
	"github.com/pthm-cable/fishtank/vecmath"
)

// Feed errors. Hosts treat all of them as non-fatal.
var (
	ErrFeedingDisabled = errors.New("feeding mode is off")
	ErrInvalidPosition = errors.New("position is not finite")
	ErrFoodLimit       = errors.New("food limit reached")
)

// Config describes a scene at startup.
type Config struct {
	Width, Height float64 // initial canvas size
	Creatures     int
	MaxFood       int // 0 means unlimited
	Fish          fish.Config
	Steering      steering.Params
	Food          food.Params
}

// DefaultConfig returns the reference tank: 15 fish on a 1280x720 canvas.
func DefaultConfig() Config {
	return Config{
		Width:     1280,
		Height:    720,
		Creatures: 15,
		Fish:      fish.DefaultConfig(),
		Steering:  steering.DefaultParams(),
		Food:      food.DefaultParams(),
	}
}

// TickInfo is the per-tick signal from the host. A zero Width or Height
// keeps the current bounds.
type TickInfo struct {
	Width, Height float64
	Frame         uint64
	Elapsed       time.Duration
}

// TickReport summarizes what happened during one tick.
type TickReport struct {
	Frame    uint64
	Eaten    int
	Expired  int
	Seeking  int
	Bounced  int
	FoodLeft int

	// EatAges holds, per eaten pellet, the ticks between drop and eating.
	EatAges []uint64
	// Speeds holds each creature's speed after steering, in creature order.
	Speeds []float64
}

// Scene is the sole owner of creature and food state.
type Scene struct {
	cfg Config
	rng *rand.Rand

	world      *ecs.World
	foodMap    *ecs.Map2[food.Particle, components.Drop]
	foodFilter *ecs.Filter2[food.Particle, components.Drop]
	foodCount  int
	nextSeq    uint64

	creatures []*steering.Controller

	bounds  steering.Bounds
	feeding bool
	frame   uint64

	gone []ecs.Entity
}

// New builds a scene and spawns its creatures off-screen along random edges.
// rng is owned by the scene from here on.
func New(cfg Config, rng *rand.Rand) *Scene {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	world := ecs.NewWorld()

	s := &Scene{
		cfg:        cfg,
		rng:        rng,
		world:      world,
		foodMap:    ecs.NewMap2[food.Particle, components.Drop](world),
		foodFilter: ecs.NewFilter2[food.Particle, components.Drop](world),
		bounds:     steering.Bounds{W: cfg.Width, H: cfg.Height},
	}

	s.creatures = make([]*steering.Controller, 0, cfg.Creatures)
	for i := 0; i < cfg.Creatures; i++ {
		s.creatures = append(s.creatures, s.spawn())
	}
	return s
}

func (s *Scene) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// spawn places a fish just past one of the four padded edges, chosen with
// equal probability, and gives it a gentle random velocity.
func (s *Scene) spawn() *steering.Controller {
	pad := s.cfg.Steering.Padding
	w, h := s.bounds.W, s.bounds.H

	var origin vecmath.Vec
	switch s.rng.Intn(4) {
	case 0: // left
		origin = vecmath.V(-pad, s.uniform(-pad, h+pad))
	case 1: // right
		origin = vecmath.V(w+pad, s.uniform(-pad, h+pad))
	case 2: // top
		origin = vecmath.V(s.uniform(-pad, w+pad), -pad)
	default: // bottom
		origin = vecmath.V(s.uniform(-pad, w+pad), h+pad)
	}

	vel := vecmath.V(s.uniform(-0.5, 0.5), s.uniform(-1.5, 1.5))
	return steering.New(fish.New(origin, s.cfg.Fish), vel, s.cfg.Steering)
}

// Tick advances the simulation by one step.
//
// Each creature in order looks up its nearest pellet, steers, eats that
// pellet if close enough and resolves its spine. A pellet eaten by one
// creature is gone for the creatures after it. All pellets then sink and
// fade, and every pellet that became invalid is removed before returning.
func (s *Scene) Tick(info TickInfo) TickReport {
	if info.Width > 0 && info.Height > 0 {
		s.Resize(info.Width, info.Height)
	}
	s.frame++

	rep := TickReport{
		Frame:  s.frame,
		Speeds: make([]float64, 0, len(s.creatures)),
	}

	for _, c := range s.creatures {
		nearest, entity, drop := s.nearestFood(c.Head())

		var res steering.Result
		if entity.IsZero() {
			res = c.Update(s.rng, nil, s.bounds)
		} else {
			res = c.Update(s.rng, &nearest, s.bounds)
		}

		if res.Seeking {
			rep.Seeking++
		}
		if res.Bounced {
			rep.Bounced++
		}
		if res.Eat {
			s.world.RemoveEntity(entity)
			s.foodCount--
			rep.Eaten++
			rep.EatAges = append(rep.EatAges, s.frame-drop.Tick)
		}
		rep.Speeds = append(rep.Speeds, r2.Norm(res.Velocity))
	}

	rep.Expired = s.updateFood()
	rep.FoodLeft = s.foodCount
	return rep
}

// nearestFood scans every pellet for the one closest to head. Ties go to
// the earlier drop. The zero entity means there is no food at all.
func (s *Scene) nearestFood(head vecmath.Vec) (steering.Sighting, ecs.Entity, components.Drop) {
	var (
		best     steering.Sighting
		bestEnt  ecs.Entity
		bestDrop components.Drop
		found    bool
	)

	query := s.foodFilter.Query()
	for query.Next() {
		p, d := query.Get()
		dist := vecmath.Dist(head, p.Pos)
		if !found || dist < best.Dist || (dist == best.Dist && d.Seq < bestDrop.Seq) {
			best = steering.Sighting{Pos: p.Pos, Dist: dist}
			bestEnt = query.Entity()
			bestDrop = *d
			found = true
		}
	}
	return best, bestEnt, bestDrop
}

// updateFood sinks and fades every pellet, then removes the invalid ones.
func (s *Scene) updateFood() int {
	s.gone = s.gone[:0]

	query := s.foodFilter.Query()
	for query.Next() {
		p, _ := query.Get()
		p.Update()
		if p.IsGone(s.bounds.H) {
			s.gone = append(s.gone, query.Entity())
		}
	}

	for _, e := range s.gone {
		s.world.RemoveEntity(e)
	}
	s.foodCount -= len(s.gone)
	return len(s.gone)
}

// Feed drops a pellet at (x, y). It fails when feeding mode is off, the
// position is not finite or the food limit is reached.
func (s *Scene) Feed(x, y float64) error {
	if !s.feeding {
		return fmt.Errorf("feed at (%.1f, %.1f): %w", x, y, ErrFeedingDisabled)
	}
	pos := vecmath.V(x, y)
	if !vecmath.IsFinite(pos) {
		return fmt.Errorf("feed at (%v, %v): %w", x, y, ErrInvalidPosition)
	}
	if s.cfg.MaxFood > 0 && s.foodCount >= s.cfg.MaxFood {
		return fmt.Errorf("feed at (%.1f, %.1f): %w (%d pellets)", x, y, ErrFoodLimit, s.foodCount)
	}

	p := food.New(pos, s.cfg.Food)
	d := components.Drop{Seq: s.nextSeq, Tick: s.frame}
	s.nextSeq++
	s.foodMap.NewEntity(&p, &d)
	s.foodCount++
	return nil
}

// SetFeeding turns feeding mode on or off.
func (s *Scene) SetFeeding(on bool) {
	s.feeding = on
}

// Feeding reports whether feeding mode is on.
func (s *Scene) Feeding() bool {
	return s.feeding
}

// Resize changes the bounds used for boundary avoidance and food expiry.
// Creatures and pellets are left where they are. Non-positive or non-finite
// sizes are ignored.
func (s *Scene) Resize(w, h float64) {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return
	}
	s.bounds = steering.Bounds{W: w, H: h}
}

// Bounds returns the current viewport size.
func (s *Scene) Bounds() steering.Bounds {
	return s.bounds
}

// Frame returns the number of ticks run so far.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// Creatures returns the controllers in tick order. The slice is shared.
func (s *Scene) Creatures() []*steering.Controller {
	return s.creatures
}

// FoodCount returns the number of live pellets.
func (s *Scene) FoodCount() int {
	return s.foodCount
}

// Foods returns a snapshot of every live pellet in drop order.
func (s *Scene) Foods() []food.Particle {
	type entry struct {
		seq uint64
		p   food.Particle
	}
	entries := make([]entry, 0, s.foodCount)
	query := s.foodFilter.Query()
	for query.Next() {
		p, d := query.Get()
		entries = append(entries, entry{seq: d.Seq, p: *p})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.seq, b.seq)
	})

	out := make([]food.Particle, len(entries))
	for i, e := range entries {
		out[i] = e.p
	}
	return out
}

// Render draws every creature, then every pellet on top.
func (s *Scene) Render(c draw.Canvas) {
	for _, ctl := range s.creatures {
		ctl.Fish.Shape().Draw(c)
	}
	for _, p := range s.Foods() {
		p.Draw(c)
	}
}
