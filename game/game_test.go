package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/telemetry"
)

func newHeadless(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	g, err := NewGame(cfg, opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestUpdateHeadlessSteps(t *testing.T) {
	g := newHeadless(t, config.Default(), Options{StepsPerUpdate: 5})

	for i := 0; i < 20; i++ {
		g.UpdateHeadless()
	}
	if g.Tick() != 100 {
		t.Errorf("tick = %d, want 100", g.Tick())
	}
	if n := len(g.Scene().Creatures()); n != 15 {
		t.Errorf("creatures = %d, want 15", n)
	}
}

func TestPausedHeadlessDoesNotTick(t *testing.T) {
	g := newHeadless(t, config.Default(), Options{})
	g.paused = true

	g.UpdateHeadless()
	if g.Tick() != 0 {
		t.Errorf("paused game ticked to %d", g.Tick())
	}
}

func TestFeedRequestsRespectFeedingMode(t *testing.T) {
	g := newHeadless(t, config.Default(), Options{})

	g.RequestFeed(400, 300)
	g.UpdateHeadless()
	if got := g.Scene().FoodCount(); got != 0 {
		t.Fatalf("food dropped with feeding off: %d", got)
	}
	if len(g.pending) != 0 {
		t.Error("rejected request stayed queued")
	}

	g.SetFeeding(true)
	g.RequestFeed(400, 300)
	g.UpdateHeadless()
	if got := g.Scene().FoodCount(); got != 1 {
		t.Errorf("food count = %d, want 1", got)
	}
}

func TestWindowResizeReachesScene(t *testing.T) {
	g := newHeadless(t, config.Default(), Options{})

	g.applyWindowSize(800, 600)
	g.UpdateHeadless()

	b := g.Scene().Bounds()
	if b.W != 1000 || b.H != 800 {
		t.Errorf("bounds = %vx%v, want 1000x800 (window + margin)", b.W, b.H)
	}
	if w, h := g.backdrop.Size(); w != 1000 || h != 800 {
		t.Errorf("backdrop = %vx%v, want 1000x800", w, h)
	}

	// Same size again is a no-op.
	g.applyWindowSize(800, 600)
	if g.resize != nil {
		t.Error("unchanged size scheduled a resize")
	}
}

func TestClickOnFeedButtonNeverFeeds(t *testing.T) {
	g, err := NewGame(config.Default(), Options{Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	r := g.button.Bounds
	g.handleClick(r.X+r.Width/2, r.Y+r.Height/2)
	if len(g.pending) != 0 {
		t.Errorf("click on the toggle queued %d drops", len(g.pending))
	}

	g.handleClick(100, 100)
	if len(g.pending) != 1 {
		t.Errorf("click in the tank queued %d drops, want 1", len(g.pending))
	}
}

func TestAutofeedWritesOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	cfg := config.Default()
	cfg.Autofeed.Interval = 10
	cfg.Autofeed.Burst = 2

	g, err := NewGame(cfg, Options{
		Seed:           11,
		Headless:       true,
		OutputDir:      dir,
		StatsWindowSec: 0.51, // 30 ticks at 60 FPS
		StepsPerUpdate: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !g.Scene().Feeding() {
		t.Error("autofeed should switch feeding on")
	}
	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	feeds := readLines(t, filepath.Join(dir, "feeds.csv"))
	// header + 10 bursts of 2
	if len(feeds) != 21 {
		t.Errorf("feeds.csv has %d lines, want 21", len(feeds))
	}
	for _, line := range feeds[1:] {
		if !strings.Contains(line, "true") {
			t.Errorf("autofeed drop rejected: %s", line)
		}
	}

	stats := readLines(t, filepath.Join(dir, "telemetry.csv"))
	// header + windows ending at 30, 60 and 90
	if len(stats) != 4 {
		t.Errorf("telemetry.csv has %d lines, want 4", len(stats))
	}
	if len(readLines(t, filepath.Join(dir, "perf.csv"))) != 4 {
		t.Error("perf.csv should have one row per stats window")
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestStatsCallbackSeesEveryWindow(t *testing.T) {
	var windows []uint64
	g := newHeadless(t, config.Default(), Options{
		StatsWindowSec: 0.51,
		StepsPerUpdate: 10,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s.WindowEndTick)
		},
	})
	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	want := []uint64{30, 60, 90}
	if len(windows) != len(want) {
		t.Fatalf("windows = %v, want %v", windows, want)
	}
	for i := range want {
		if windows[i] != want[i] {
			t.Errorf("window %d ends at %d, want %d", i, windows[i], want[i])
		}
	}
}

func TestSaveSnapshotUnderOutputDir(t *testing.T) {
	dir := t.TempDir()
	g := newHeadless(t, config.Default(), Options{OutputDir: dir})
	g.UpdateHeadless()

	path, err := g.SaveSnapshot(nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "snapshots", "snapshot_1.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if snap.RNGSeed != 7 || len(snap.Fish) != 15 {
		t.Errorf("snapshot seed %d with %d fish", snap.RNGSeed, len(snap.Fish))
	}
}

func TestAutofeederTiming(t *testing.T) {
	cfg := config.Default()
	cfg.Autofeed.Interval = 3
	cfg.Autofeed.Burst = 4
	g := newHeadless(t, cfg, Options{})
	a := g.autofeed

	var counts []int
	for i := 0; i < 6; i++ {
		drops := a.next(300, 90)
		counts = append(counts, len(drops))
		for _, d := range drops {
			if d.X < 0 || d.X >= 300 || d.Y < 0 || d.Y >= 30 {
				t.Errorf("drop outside the top third: %+v", d)
			}
		}
	}
	want := []int{0, 0, 4, 0, 0, 4}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("drops per tick = %v, want %v", counts, want)
		}
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
