package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/game"
	"github.com/pthm-cable/fishtank/telemetry"
)

// Autofeed used when the base config has none: evaluation needs a steady
// supply of pellets to chase.
const (
	defaultFeedInterval = 45
	defaultFeedBurst    = 3
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    uint64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastEatRate float64 // from the most recent Evaluate call
	lastEatTime float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks uint64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5.0,
	}
}

// Last returns the eat rate and mean time to eat of the most recent
// evaluation.
func (fe *FitnessEvaluator) Last() (eatRate, eatTime float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastEatRate, fe.lastEatTime
}

// qualityWarmupWindows skips windows before the first pellets settle.
const qualityWarmupWindows = 1

// foraging sums the settled pellets of a run.
type foraging struct {
	eaten, expired int
	eatTimeSum     float64 // seconds, summed over eaten pellets
}

func (f foraging) eatRate() float64 {
	if settled := f.eaten + f.expired; settled > 0 {
		return float64(f.eaten) / float64(settled)
	}
	return 0
}

func (f foraging) meanEatTime() float64 {
	if f.eaten == 0 {
		return 0
	}
	return f.eatTimeSum / float64(f.eaten)
}

// summarize folds the window stats of one run, skipping the warmup.
func summarize(windows []telemetry.WindowStats) foraging {
	var f foraging
	if len(windows) <= qualityWarmupWindows {
		return f
	}
	for _, w := range windows[qualityWarmupWindows:] {
		f.eaten += w.Eaten
		f.expired += w.Expired
		f.eatTimeSum += w.TimeToEatMean * float64(w.Eaten)
	}
	return f
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	lifetime := pelletLifetime(cfg)

	// Run all seeds in parallel
	results := make([]foraging, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = summarize(fe.runSimulation(cfg, s))
		}(i, seed)
	}
	wg.Wait()

	var total foraging
	var fitness float64
	for _, r := range results {
		fitness += computeFitness(r, lifetime)
		total.eaten += r.eaten
		total.expired += r.expired
		total.eatTimeSum += r.eatTimeSum
	}
	fitness /= float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastEatRate = total.eatRate()
	fe.lastEatTime = total.meanEatTime()
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes a single headless run and returns its windows.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) []telemetry.WindowStats {
	var windows []telemetry.WindowStats
	g, err := game.NewGame(cfg, game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// copyConfig returns a deep copy of the base config with autofeed enabled.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Fish.WidthProfile = append([]float64(nil), fe.baseConfig.Fish.WidthProfile...)
	if cfg.Autofeed.Interval == 0 {
		cfg.Autofeed.Interval = defaultFeedInterval
		cfg.Autofeed.Burst = defaultFeedBurst
	}
	return &cfg
}

// pelletLifetime is how long an uneaten pellet lasts, in seconds.
func pelletLifetime(cfg *config.Config) float64 {
	ticks := cfg.Food.InitialAlpha / cfg.Food.DecayRate
	return ticks / float64(cfg.Screen.TargetFPS)
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(eatRate × (1 + 0.2 × promptness))
// The eat rate dominates; promptness rewards eating pellets early in their
// lifetime and separates configs that eat the same share.
func computeFitness(f foraging, lifetime float64) float64 {
	promptness := 0.0
	if f.eaten > 0 && lifetime > 0 {
		promptness = clamp01(1 - f.meanEatTime()/lifetime)
	}
	return -(f.eatRate() * (1.0 + 0.2*promptness))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(x, 1))
}
