package game

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fishtank/config"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(40, 12)

	term, err := NewTerminal(screen, config.Default(), Options{Seed: 5})
	if err != nil {
		t.Fatalf("NewTerminal: %v", err)
	}
	t.Cleanup(func() {
		term.Game().Unload()
		screen.Fini()
	})
	return term, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestTerminalFitsSceneToScreen(t *testing.T) {
	term, _ := newTestTerminal(t)
	term.Step()

	// 40x24 half-block pixels at 8 world units each, plus the 200 margin.
	b := term.Game().Scene().Bounds()
	if b.W != 520 || b.H != 392 {
		t.Errorf("bounds = %vx%v, want 520x392", b.W, b.H)
	}
}

func TestTerminalKeys(t *testing.T) {
	term, _ := newTestTerminal(t)
	g := term.Game()

	if !term.HandleEvent(key('f')) || !g.Scene().Feeding() {
		t.Fatal("'f' should turn feeding on")
	}
	term.HandleEvent(key(' '))
	if !g.paused {
		t.Error("space should pause")
	}
	term.Step()
	if g.Tick() != 0 {
		t.Error("paused terminal ticked")
	}

	before := term.view.Zoom
	term.HandleEvent(key('-'))
	if term.view.Zoom <= before {
		t.Errorf("'-' should zoom out: %v -> %v", before, term.view.Zoom)
	}

	tests := []struct {
		name string
		ev   tcell.Event
	}{
		{"q", key('q')},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if term.HandleEvent(tt.ev) {
				t.Error("expected quit")
			}
		})
	}
}

func TestTerminalMouseFeeds(t *testing.T) {
	term, _ := newTestTerminal(t)
	g := term.Game()
	g.SetFeeding(true)

	press := tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone)
	release := tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone)

	term.HandleEvent(press)
	term.HandleEvent(press) // held, not a new click
	if len(g.pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(g.pending))
	}
	want := g.pending[0]
	if want.X != 84 || want.Y != 88 {
		t.Errorf("drop at (%v, %v), want cell center (84, 88)", want.X, want.Y)
	}

	term.HandleEvent(release)
	term.HandleEvent(press)
	term.Step()
	if got := g.Scene().FoodCount(); got != 2 {
		t.Errorf("food count = %d, want 2", got)
	}
}

func TestTerminalStatusBarToggles(t *testing.T) {
	term, screen := newTestTerminal(t)
	g := term.Game()

	term.HandleEvent(tcell.NewEventMouse(3, 0, tcell.Button1, tcell.ModNone))
	if !g.Scene().Feeding() {
		t.Fatal("click on the status bar should toggle feeding")
	}
	if len(g.pending) != 0 {
		t.Error("click on the status bar queued a drop")
	}

	term.Draw()
	if r, _, _, _ := screen.GetContent(1, 0); r != 'F' {
		t.Errorf("status bar starts with %q, want the feed label", r)
	}
	if r, _, _, _ := screen.GetContent(5, 8); r != '▀' {
		t.Errorf("tank cell = %q, want half block", r)
	}
}

func TestTerminalResize(t *testing.T) {
	term, screen := newTestTerminal(t)

	screen.SetSize(60, 20)
	term.HandleEvent(tcell.NewEventResize(60, 20))
	term.Step()

	b := term.Game().Scene().Bounds()
	if b.W != 680 || b.H != 520 {
		t.Errorf("bounds = %vx%v, want 680x520", b.W, b.H)
	}
}

func TestTerminalRunStopsAtMaxTicks(t *testing.T) {
	term, _ := newTestTerminal(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := term.Run(ctx, 3); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("run hit the timeout instead of max ticks")
	}
	if term.Game().Tick() < 3 {
		t.Errorf("tick = %d, want >= 3", term.Game().Tick())
	}
}
