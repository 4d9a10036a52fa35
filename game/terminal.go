package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fishtank/camera"
	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/renderer"
	"github.com/pthm-cable/fishtank/ui"
)

const (
	// terminalZoom is the world size of one half-block pixel.
	terminalZoom = 8.0
	frameTime    = 16 * time.Millisecond // ~60 FPS
)

// Terminal runs the aquarium inside a tcell screen. Row 0 is a status bar
// that doubles as the feeding toggle.
type Terminal struct {
	game   *Game
	screen tcell.Screen
	view   *camera.Viewport
	canvas *renderer.Terminal

	lastButtons tcell.ButtonMask
}

// NewTerminal builds a headless game drawn into an initialized screen.
func NewTerminal(screen tcell.Screen, cfg *config.Config, opts Options) (*Terminal, error) {
	opts.Headless = true
	g, err := NewGame(cfg, opts)
	if err != nil {
		return nil, err
	}

	screen.EnableMouse()
	t := &Terminal{
		game:   g,
		screen: screen,
		view:   camera.New(1, 1, terminalZoom),
	}
	t.canvas = renderer.NewTerminal(screen, t.view)
	t.fitScene()
	return t, nil
}

// Game returns the hosted game.
func (t *Terminal) Game() *Game {
	return t.game
}

// fitScene sizes the scene to the visible world plus the canvas margin.
func (t *Terminal) fitScene() {
	w, h := t.view.WorldSize()
	margin := float64(t.game.cfg.Screen.Margin)
	t.game.resizeCanvas(w+margin, h+margin)
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'f':
			t.game.SetFeeding(!t.game.scene.Feeding())
		case ' ':
			t.game.paused = !t.game.paused
		case 's':
			t.game.snapshot()
		case '+', '=':
			t.zoom(1 / 1.25)
		case '-':
			t.zoom(1.25)
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && t.lastButtons&tcell.Button1 == 0
		t.lastButtons = buttons
		if pressed {
			t.click(ev.Position())
		}

	case *tcell.EventResize:
		t.screen.Sync()
		if t.canvas.Resize() {
			t.fitScene()
		}
	}
	return true
}

// click toggles feeding on the status bar and requests a drop elsewhere.
func (t *Terminal) click(col, row int) {
	if row == 0 {
		t.game.SetFeeding(!t.game.scene.Feeding())
		return
	}
	// Aim at the middle of the cell, which spans two pixel rows.
	x, y := t.view.ScreenToWorld(float64(col)+0.5, float64(2*row+1))
	t.game.RequestFeed(x, y)
}

func (t *Terminal) zoom(factor float64) {
	before := t.view.Zoom
	t.view.ZoomBy(factor)
	if t.view.Zoom != before {
		t.fitScene()
	}
}

// Step advances the scene and draws a frame.
func (t *Terminal) Step() {
	t.game.UpdateHeadless()
	t.Draw()
}

// Draw renders the backdrop, the scene and the status bar.
func (t *Terminal) Draw() {
	g := t.game
	t.canvas.DrawBackdrop(g.backdrop, g.scene.Frame(), time.Since(g.start).Seconds())
	g.scene.Render(t.canvas)
	t.canvas.Flush()

	status := ui.StatusLine(ui.HUDData{
		Creatures: len(g.scene.Creatures()),
		Food:      g.scene.FoodCount(),
		Tick:      g.scene.Frame(),
		Feeding:   g.scene.Feeding(),
		Paused:    g.paused,
	})
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightCyan)
	if g.scene.Feeding() {
		style = style.Background(tcell.ColorYellow)
	}
	t.canvas.DrawText(0, 0, fmt.Sprintf(" %s | %s ", ui.FeedLabel(g.scene.Feeding()), status), style)
	t.screen.Show()
}

// Run polls events and ticks at ~60 FPS until the context ends or the user
// quits.
func (t *Terminal) Run(ctx context.Context, maxTicks uint64) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.Step()
			if maxTicks > 0 && t.game.Tick() >= maxTicks {
				slog.Info("max ticks reached", "tick", t.game.Tick())
				return nil
			}
		}
	}
}

// RunTerminal opens the terminal, runs the aquarium and restores the
// terminal on exit.
func RunTerminal(ctx context.Context, cfg *config.Config, opts Options, maxTicks uint64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	t, err := NewTerminal(screen, cfg, opts)
	if err != nil {
		return err
	}
	defer t.game.Unload()

	return t.Run(ctx, maxTicks)
}
