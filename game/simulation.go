package game

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/scene"
	"github.com/pthm-cable/fishtank/telemetry"
)

// autofeeder drops bursts of food at random spots near the surface.
type autofeeder struct {
	interval int
	burst    int
	rng      *rand.Rand
	wait     int
}

func newAutofeeder(cfg config.AutofeedConfig, rng *rand.Rand) *autofeeder {
	return &autofeeder{
		interval: cfg.Interval,
		burst:    cfg.Burst,
		rng:      rng,
		wait:     cfg.Interval,
	}
}

// next counts down one tick and returns the drops due now.
func (a *autofeeder) next(w, h float64) []feedRequest {
	a.wait--
	if a.wait > 0 {
		return nil
	}
	a.wait = a.interval

	drops := make([]feedRequest, a.burst)
	for i := range drops {
		drops[i] = feedRequest{
			X: a.rng.Float64() * w,
			Y: a.rng.Float64() * h / 3,
		}
	}
	return drops
}

// step runs one scene tick with its host phases around it.
func (g *Game) step(info scene.TickInfo) scene.TickReport {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	for _, r := range g.pending {
		g.feed(r.X, r.Y)
	}
	g.pending = g.pending[:0]

	g.perfCollector.StartPhase(telemetry.PhaseAutofeed)
	if g.autofeed != nil {
		b := g.scene.Bounds()
		for _, r := range g.autofeed.next(b.W, b.H) {
			g.feed(r.X, r.Y)
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseScene)
	rep := g.scene.Tick(info)

	g.perfCollector.StartPhase(telemetry.PhaseFeedback)
	g.feedback(rep)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(rep)
	g.flushTelemetry()

	g.perfCollector.EndTick()
	return rep
}

// feed drops one pellet and records the outcome. Rejections are expected
// (feeding off, tank full) and only logged at debug level.
func (g *Game) feed(x, y float64) error {
	err := g.scene.Feed(x, y)
	g.collector.RecordFeed(err)
	if werr := g.outputManager.WriteFeed(telemetry.NewFeedEvent(g.scene.Frame(), x, y, err)); werr != nil {
		slog.Error("failed to write feed event", "error", werr)
	}

	if err != nil {
		level := slog.LevelDebug
		if errors.Is(err, scene.ErrInvalidPosition) {
			level = slog.LevelWarn
		}
		slog.Log(context.Background(), level, "feed rejected", "error", err)
		return err
	}
	g.sound.PlayDrop()
	return nil
}

// feedback turns a tick report into sound and log lines.
func (g *Game) feedback(rep scene.TickReport) {
	if rep.Eaten > 0 {
		g.sound.PlayGulp()
		slog.Debug("yum", "tick", rep.Frame, "eaten", rep.Eaten, "food_left", rep.FoodLeft)
	}
	if rep.Expired > 0 {
		slog.Debug("food expired", "tick", rep.Frame, "expired", rep.Expired)
	}
}

// UpdateHeadless runs stepsPerUpdate ticks without touching raylib.
func (g *Game) UpdateHeadless() {
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.takeResize())
	}
}

// takeResize returns the pending canvas resize once, then zero info.
func (g *Game) takeResize() scene.TickInfo {
	if g.resize == nil {
		return scene.TickInfo{}
	}
	info := *g.resize
	g.resize = nil
	return info
}

// resizeCanvas schedules new bounds for the next tick and resizes the
// backdrop right away.
func (g *Game) resizeCanvas(w, h float64) {
	g.resize = &scene.TickInfo{Width: w, Height: h}
	g.backdrop.Resize(w, h)
}
