// Package game hosts the aquarium scene: a raylib window, a headless loop
// for batch runs and a terminal loop. Hosts own input, rendering, sound and
// telemetry; the scene only simulates.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/fishtank/audio"
	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/renderer"
	"github.com/pthm-cable/fishtank/scene"
	"github.com/pthm-cable/fishtank/telemetry"
	"github.com/pthm-cable/fishtank/ui"
)

// Options configures a host run.
type Options struct {
	Seed           int64   // RNG seed (0 = time-based)
	LogStats       bool    // log window stats via slog
	StatsWindowSec float64 // stats window override (0 = use config)
	OutputDir      string  // CSV and config snapshot directory (empty = disabled)
	Headless       bool    // no window, no raylib calls
	StepsPerUpdate int     // scene ticks per Update call
	Sound          bool    // play sound cues

	// StatsCallback receives every closed stats window (optional).
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete host state around one scene.
type Game struct {
	cfg   *config.Config
	seed  int64
	rng   *rand.Rand
	scene *scene.Scene

	// Rendering (nil when headless)
	backdrop  *renderer.Backdrop
	canvas    *renderer.Canvas
	button    *ui.FeedButton
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	showPerf  bool

	sound *audio.Player

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	bookmarks     *telemetry.BookmarkDetector
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	autofeed *autofeeder
	pending  []feedRequest

	// State
	headless       bool
	paused         bool
	stepsPerUpdate int
	start          time.Time

	// Window size, and a canvas resize waiting for the next tick.
	screenWidth, screenHeight int32
	resize                    *scene.TickInfo
}

// feedRequest is a drop asked for by input, applied at the next tick.
type feedRequest struct {
	X, Y float64
}

// NewGame builds a host around a fresh scene.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		seed:           seed,
		rng:            rand.New(rand.NewSource(seed + 1)),
		scene:          scene.New(cfg.SceneConfig(), rand.New(rand.NewSource(seed))),
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		start:          time.Now(),
		screenWidth:    int32(cfg.Screen.Width),
		screenHeight:   int32(cfg.Screen.Height),
	}

	w, h := cfg.CanvasSize()
	g.backdrop = renderer.NewBackdrop(cfg.Background, w, h, g.rng)
	if !g.headless {
		g.canvas = renderer.NewCanvas()
		g.button = ui.NewFeedButton(g.screenWidth, g.screenHeight)
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(10, 100)
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(statsWindow, g.dt())
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarks = telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("write config snapshot: %w", err)
	}
	g.outputManager = om

	if opts.Sound {
		p := audio.NewPlayer(cfg.Audio.SampleRate, cfg.Audio.Volume)
		if err := p.Init(); err != nil {
			slog.Warn("sound disabled", "error", err)
		} else {
			g.sound = p
		}
	}

	if cfg.Autofeed.Interval > 0 {
		g.autofeed = newAutofeeder(cfg.Autofeed, g.rng)
		g.scene.SetFeeding(true)
	}

	slog.Info("aquarium ready",
		"seed", seed,
		"creatures", len(g.scene.Creatures()),
		"canvas_w", w,
		"canvas_h", h,
		"headless", g.headless,
		"autofeed_interval", cfg.Autofeed.Interval,
	)
	return g, nil
}

// dt is the simulated time per tick.
func (g *Game) dt() float64 {
	return 1.0 / float64(g.cfg.Screen.TargetFPS)
}

// Scene returns the hosted scene.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// Tick returns the number of scene ticks run so far.
func (g *Game) Tick() uint64 {
	return g.scene.Frame()
}

// SetFeeding switches feeding mode and logs the change.
func (g *Game) SetFeeding(on bool) {
	if g.scene.Feeding() == on {
		return
	}
	g.scene.SetFeeding(on)
	slog.Debug("feeding mode", "on", on, "tick", g.scene.Frame())
}

// RequestFeed queues a drop at a canvas position for the next tick.
func (g *Game) RequestFeed(x, y float64) {
	g.pending = append(g.pending, feedRequest{X: x, Y: y})
}

// Unload releases sound and closes output files.
func (g *Game) Unload() {
	g.sound.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
