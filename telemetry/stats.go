package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// State at window end
	Creatures int `csv:"creatures"`
	FoodLeft  int `csv:"food_left"`

	// Food events during window
	Dropped  int     `csv:"dropped"`
	Rejected int     `csv:"rejected"`
	Eaten    int     `csv:"eaten"`
	Expired  int     `csv:"expired"`
	EatRate  float64 `csv:"eat_rate"` // eaten / (eaten + expired)

	// Seconds from drop to being eaten
	TimeToEatMean float64 `csv:"time_to_eat_mean"`
	TimeToEatP10  float64 `csv:"time_to_eat_p10"`
	TimeToEatP50  float64 `csv:"time_to_eat_p50"`
	TimeToEatP90  float64 `csv:"time_to_eat_p90"`

	// Creature speed across every tick of the window
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Steering
	SeekingFrac float64 `csv:"seeking_frac"` // mean share of creatures chasing food per tick
	Bounces     int     `csv:"bounces"`
}

// Quantile returns the p-th empirical quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Describe computes mean, population standard deviation and deciles.
// values is not modified.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  Quantile(sorted, 0.10),
		P50:  Quantile(sorted, 0.50),
		P90:  Quantile(sorted, 0.90),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("creatures", s.Creatures),
		slog.Int("food_left", s.FoodLeft),
		slog.Int("dropped", s.Dropped),
		slog.Int("rejected", s.Rejected),
		slog.Int("eaten", s.Eaten),
		slog.Int("expired", s.Expired),
		slog.Float64("eat_rate", s.EatRate),
		slog.Float64("time_to_eat_mean", s.TimeToEatMean),
		slog.Float64("time_to_eat_p50", s.TimeToEatP50),
		slog.Float64("time_to_eat_p90", s.TimeToEatP90),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("seeking_frac", s.SeekingFrac),
		slog.Int("bounces", s.Bounces),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
