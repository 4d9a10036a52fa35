package scene

import (
	"errors"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/fishtank/draw"
	"github.com/pthm-cable/fishtank/spine"
	"github.com/pthm-cable/fishtank/vecmath"
)

func newScene(t *testing.T, creatures int, seed int64) *Scene {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 800, 600
	cfg.Creatures = creatures
	return New(cfg, rand.New(rand.NewSource(seed)))
}

func TestSpawnOnPaddedEdges(t *testing.T) {
	s := newScene(t, 400, 1)
	pad := s.cfg.Steering.Padding
	b := s.Bounds()

	edges := map[string]int{}
	for i, c := range s.Creatures() {
		h := c.Head()
		switch {
		case h.X == -pad:
			edges["left"]++
		case h.X == b.W+pad:
			edges["right"]++
		case h.Y == -pad:
			edges["top"]++
		case h.Y == b.H+pad:
			edges["bottom"]++
		default:
			t.Fatalf("creature %d spawned inside the tank at %v", i, h)
		}
		if h.X < -pad || h.X > b.W+pad || h.Y < -pad || h.Y > b.H+pad {
			t.Errorf("creature %d outside padded rectangle at %v", i, h)
		}
		if math.Abs(c.Vel.X) > 0.5 || math.Abs(c.Vel.Y) > 1.5 {
			t.Errorf("creature %d initial velocity %v out of range", i, c.Vel)
		}
	}
	for _, edge := range []string{"left", "right", "top", "bottom"} {
		if edges[edge] == 0 {
			t.Errorf("no creature spawned on the %s edge: %v", edge, edges)
		}
	}
}

func TestTickIsReproducible(t *testing.T) {
	a := newScene(t, 15, 99)
	b := newScene(t, 15, 99)
	a.SetFeeding(true)
	b.SetFeeding(true)

	for tick := 0; tick < 200; tick++ {
		if tick%20 == 0 {
			if err := a.Feed(400, 100); err != nil {
				t.Fatal(err)
			}
			if err := b.Feed(400, 100); err != nil {
				t.Fatal(err)
			}
		}
		ra := a.Tick(TickInfo{})
		rb := b.Tick(TickInfo{})
		if ra.Eaten != rb.Eaten || ra.FoodLeft != rb.FoodLeft {
			t.Fatalf("tick %d diverged: %+v vs %+v", tick, ra, rb)
		}
	}
	for i := range a.Creatures() {
		if a.Creatures()[i].Head() != b.Creatures()[i].Head() {
			t.Fatalf("creature %d diverged", i)
		}
	}
}

func TestFeedErrors(t *testing.T) {
	tests := []struct {
		name    string
		feeding bool
		maxFood int
		preload int
		x, y    float64
		want    error
	}{
		{"feeding off", false, 0, 0, 10, 10, ErrFeedingDisabled},
		{"NaN x", true, 0, 0, math.NaN(), 10, ErrInvalidPosition},
		{"infinite y", true, 0, 0, 10, math.Inf(1), ErrInvalidPosition},
		{"limit reached", true, 2, 2, 10, 10, ErrFoodLimit},
		{"accepted", true, 2, 1, 10, 10, nil},
		{"unlimited", true, 0, 50, 10, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Creatures = 0
			cfg.MaxFood = tt.maxFood
			s := New(cfg, rand.New(rand.NewSource(1)))

			s.SetFeeding(true)
			for i := 0; i < tt.preload; i++ {
				if err := s.Feed(5, 5); err != nil {
					t.Fatalf("preload: %v", err)
				}
			}
			s.SetFeeding(tt.feeding)

			before := s.FoodCount()
			err := s.Feed(tt.x, tt.y)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Feed() error = %v, want %v", err, tt.want)
			}
			wantCount := before
			if tt.want == nil {
				wantCount++
			}
			if s.FoodCount() != wantCount {
				t.Errorf("food count = %d, want %d", s.FoodCount(), wantCount)
			}
		})
	}
}

func TestFoodFadesOutAfterLifetime(t *testing.T) {
	s := newScene(t, 0, 1)
	s.SetFeeding(true)
	if err := s.Feed(50, 50); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 169; i++ {
		if rep := s.Tick(TickInfo{}); rep.Expired != 0 {
			t.Fatalf("pellet expired early at tick %d", i+1)
		}
	}
	if s.FoodCount() != 1 {
		t.Fatalf("expected 1 pellet, got %d", s.FoodCount())
	}

	rep := s.Tick(TickInfo{})
	if rep.Expired != 1 || rep.FoodLeft != 0 || s.FoodCount() != 0 {
		t.Errorf("report %+v, count %d; want pellet pruned on tick 170", rep, s.FoodCount())
	}
}

func TestFoodPrunedBelowBottom(t *testing.T) {
	s := newScene(t, 0, 1)
	s.Resize(800, 100)
	s.SetFeeding(true)
	if err := s.Feed(10, 95); err != nil {
		t.Fatal(err)
	}

	// 95 -> 96.5 -> 98 -> 99.5 -> 101
	for i := 0; i < 3; i++ {
		s.Tick(TickInfo{})
	}
	if s.FoodCount() != 1 {
		t.Fatalf("pellet pruned too early")
	}
	if rep := s.Tick(TickInfo{}); rep.Expired != 1 || s.FoodCount() != 0 {
		t.Errorf("pellet below bottom not pruned: %+v", rep)
	}
}

func TestTickInfoResizes(t *testing.T) {
	s := newScene(t, 3, 1)
	s.Tick(TickInfo{Width: 1024, Height: 768})
	if b := s.Bounds(); b.W != 1024 || b.H != 768 {
		t.Errorf("bounds = %+v after resize", b)
	}
	s.Tick(TickInfo{})
	if b := s.Bounds(); b.W != 1024 || b.H != 768 {
		t.Errorf("zero size should keep bounds, got %+v", b)
	}
	s.Resize(-5, 10)
	if b := s.Bounds(); b.W != 1024 {
		t.Errorf("negative resize applied: %+v", b)
	}
}

func TestResizeKeepsCreaturesAndFood(t *testing.T) {
	s := newScene(t, 4, 3)
	s.SetFeeding(true)
	for _, pos := range []vecmath.Vec{vecmath.V(400, 100), vecmath.V(400, 500)} {
		if err := s.Feed(pos.X, pos.Y); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 3; i++ {
		s.Tick(TickInfo{})
	}

	type fishState struct {
		joints []spine.Joint
		vel    vecmath.Vec
		wander float64
	}
	var before []fishState
	for _, c := range s.Creatures() {
		before = append(before, fishState{c.Fish.Spine.Joints(), c.Vel, c.WanderAngle})
	}
	foods := s.Foods()

	s.Resize(800, 450)

	if b := s.Bounds(); b.W != 800 || b.H != 450 {
		t.Fatalf("bounds = %+v, want 800x450", b)
	}
	for i, c := range s.Creatures() {
		if c.Vel != before[i].vel || c.WanderAngle != before[i].wander {
			t.Errorf("creature %d steering changed by resize", i)
		}
		for j, jt := range c.Fish.Spine.Joints() {
			if jt != before[i].joints[j] {
				t.Errorf("creature %d joint %d moved: %+v -> %+v", i, j, before[i].joints[j], jt)
			}
		}
	}
	after := s.Foods()
	if len(after) != len(foods) {
		t.Fatalf("food count %d -> %d on resize", len(foods), len(after))
	}
	for i := range foods {
		if after[i].Pos != foods[i].Pos || after[i].Alpha != foods[i].Alpha {
			t.Errorf("pellet %d changed: %+v -> %+v", i, foods[i], after[i])
		}
	}

	// The pellet now below the bottom goes on the very next tick.
	rep := s.Tick(TickInfo{})
	if rep.Expired != 1 || s.FoodCount() != 1 {
		t.Errorf("expired = %d, food = %d; want 1, 1", rep.Expired, s.FoodCount())
	}
	if left := s.Foods(); len(left) != 1 || left[0].Pos.Y > 450 {
		t.Errorf("wrong pellet kept: %+v", left)
	}
}

func TestResizeRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"+Inf both", math.Inf(1), math.Inf(1)},
		{"+Inf width", math.Inf(1), 600},
		{"-Inf height", 800, math.Inf(-1)},
		{"NaN", math.NaN(), 600},
		{"zero", 0, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScene(t, 0, 1)
			s.Resize(tt.w, tt.h)
			if b := s.Bounds(); b.W != 800 || b.H != 600 {
				t.Errorf("bounds = %+v, want 800x600", b)
			}
		})
	}

	// Pellets still expire by position after a rejected resize.
	s := newScene(t, 0, 1)
	s.SetFeeding(true)
	if err := s.Feed(400, 590); err != nil {
		t.Fatal(err)
	}
	s.Resize(math.Inf(1), math.Inf(1))
	for i := 0; i < 20; i++ {
		s.Tick(TickInfo{})
	}
	if s.FoodCount() != 0 {
		t.Errorf("pellet below the bottom still live")
	}
}

func TestEatenFoodIsGoneForLaterCreatures(t *testing.T) {
	s := newScene(t, 2, 5)
	spot := vecmath.V(400, 300)
	for _, c := range s.Creatures() {
		c.Fish.Resolve(spot)
		c.Vel = vecmath.V(0, 0)
	}

	s.SetFeeding(true)
	if err := s.Feed(spot.X, spot.Y); err != nil {
		t.Fatal(err)
	}

	rep := s.Tick(TickInfo{})
	if rep.Eaten != 1 {
		t.Fatalf("eaten = %d, want exactly 1", rep.Eaten)
	}
	if s.FoodCount() != 0 {
		t.Errorf("food count = %d after eating", s.FoodCount())
	}
	if len(rep.EatAges) != 1 || rep.EatAges[0] != 1 {
		t.Errorf("eat ages = %v, want [1]", rep.EatAges)
	}
}

func TestCreatureEatsOnlyNearest(t *testing.T) {
	s := newScene(t, 1, 5)
	c := s.Creatures()[0]
	c.Fish.Resolve(vecmath.V(400, 300))
	c.Vel = vecmath.V(0, 0)

	s.SetFeeding(true)
	for _, p := range []vecmath.Vec{vecmath.V(405, 300), vecmath.V(400, 300), vecmath.V(395, 300)} {
		if err := s.Feed(p.X, p.Y); err != nil {
			t.Fatal(err)
		}
	}

	rep := s.Tick(TickInfo{})
	if rep.Eaten != 1 || s.FoodCount() != 2 {
		t.Fatalf("eaten %d, left %d; want 1 and 2", rep.Eaten, s.FoodCount())
	}
	for _, p := range s.Foods() {
		if p.Pos.X == 400 {
			t.Errorf("the nearest pellet should have been eaten, found %v", p.Pos)
		}
	}
}

type countingCanvas struct {
	polygons, ellipses, circles int
}

func (c *countingCanvas) FillPolygon([]vecmath.Vec, color.RGBA) { c.polygons++ }
func (c *countingCanvas) FillEllipse(draw.Ellipse, color.RGBA) { c.ellipses++ }
func (c *countingCanvas) FillCircle(vecmath.Vec, float64, color.RGBA) { c.circles++ }

func TestRenderDrawsEverything(t *testing.T) {
	s := newScene(t, 4, 2)
	s.SetFeeding(true)
	for i := 0; i < 3; i++ {
		if err := s.Feed(float64(100+i*50), 100); err != nil {
			t.Fatal(err)
		}
	}

	c := &countingCanvas{}
	s.Render(c)
	if c.polygons != 4*3 || c.ellipses != 4*6 || c.circles != 3 {
		t.Errorf("drew %+v", *c)
	}
}

func TestFoodsInDropOrder(t *testing.T) {
	s := newScene(t, 0, 1)
	s.SetFeeding(true)
	for i := 0; i < 5; i++ {
		if err := s.Feed(float64(i), 0); err != nil {
			t.Fatal(err)
		}
	}
	for i, p := range s.Foods() {
		if p.Pos.X != float64(i) {
			t.Errorf("pellet %d at x=%v", i, p.Pos.X)
		}
	}
}
