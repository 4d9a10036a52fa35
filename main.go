package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("terminal", false, "Run in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logFile := flag.String("log-file", "", "Write logs to this file (terminal mode discards logs otherwise)")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	sound := flag.Bool("sound", false, "Play sound cues")
	debug := flag.Bool("debug", false, "Log feeding and eating events")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var out io.Writer = os.Stdout
	if *terminal {
		out = io.Discard
	}
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			slog.Error("failed to open log file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		Sound:          *sound,
	}

	switch {
	case *terminal:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := game.RunTerminal(ctx, cfg, opts, uint64(*maxTicks)); err != nil {
			slog.Error("terminal run failed", "error", err)
			os.Exit(1)
		}

	case *headless:
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.NewGame(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"stats_window", *statsWindow,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && g.Tick() >= uint64(*maxTicks) {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}

	default:
		rl.SetConfigFlags(rl.FlagWindowResizable)
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g, err := game.NewGame(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			return
		}
		defer g.Unload()

		for !rl.WindowShouldClose() {
			g.Update()
			g.Draw()

			if *maxTicks > 0 && g.Tick() >= uint64(*maxTicks) {
				break
			}
		}
	}
}
