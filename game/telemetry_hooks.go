package game

import (
	"log/slog"
	"path/filepath"

	"github.com/pthm-cable/fishtank/telemetry"
)

// flushTelemetry closes the stats window when it is due, then logs and
// writes it.
func (g *Game) flushTelemetry() {
	tick := g.scene.Frame()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, len(g.scene.Creatures()), g.scene.FoodCount())
	perfStats := g.perfCollector.Stats()

	for _, b := range g.bookmarks.Check(stats) {
		b.LogBookmark()
		if g.outputManager.Dir() != "" {
			if _, err := g.SaveSnapshot(&b); err != nil {
				slog.Error("failed to save snapshot", "error", err)
			}
		}
	}

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// PerfStats returns the rolling tick timings.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// snapshotDir is where snapshots go: under the output directory when one
// is set, else ./snapshots.
func (g *Game) snapshotDir() string {
	if dir := g.outputManager.Dir(); dir != "" {
		return filepath.Join(dir, "snapshots")
	}
	return "snapshots"
}

// SaveSnapshot writes the current tank state. bookmark may be nil.
func (g *Game) SaveSnapshot(bookmark *telemetry.Bookmark) (string, error) {
	path, err := telemetry.SaveSnapshot(telemetry.NewSnapshot(g.seed, g.scene, bookmark), g.snapshotDir())
	if err != nil {
		return "", err
	}
	slog.Info("snapshot saved", "path", path, "tick", g.scene.Frame())
	return path, nil
}
