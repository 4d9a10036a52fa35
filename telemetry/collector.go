package telemetry

import "github.com/pthm-cable/fishtank/scene"

// Collector accumulates scene events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks uint64
	dt                  float64

	// Current window tracking
	windowStartTick uint64
	ticks           int

	// Event counters for current window
	dropped    int
	rejected   int
	eaten      int
	expired    int
	bounces    int
	seekingSum float64

	eatTimes []float64
	speeds   []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := uint64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordFeed records a feed request and whether the scene accepted it.
func (c *Collector) RecordFeed(err error) {
	if err != nil {
		c.rejected++
		return
	}
	c.dropped++
}

// RecordTick folds one tick report into the window.
func (c *Collector) RecordTick(rep scene.TickReport) {
	c.ticks++
	c.eaten += rep.Eaten
	c.expired += rep.Expired
	c.bounces += rep.Bounced
	if n := len(rep.Speeds); n > 0 {
		c.seekingSum += float64(rep.Seeking) / float64(n)
	}
	for _, age := range rep.EatAges {
		c.eatTimes = append(c.eatTimes, float64(age)*c.dt)
	}
	c.speeds = append(c.speeds, rep.Speeds...)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// creatures and foodLeft describe the scene at currentTick.
func (c *Collector) Flush(currentTick uint64, creatures, foodLeft int) WindowStats {
	var eatRate, seeking float64
	if settled := c.eaten + c.expired; settled > 0 {
		eatRate = float64(c.eaten) / float64(settled)
	}
	if c.ticks > 0 {
		seeking = c.seekingSum / float64(c.ticks)
	}

	eat := Describe(c.eatTimes)
	speed := Describe(c.speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Creatures: creatures,
		FoodLeft:  foodLeft,

		Dropped:  c.dropped,
		Rejected: c.rejected,
		Eaten:    c.eaten,
		Expired:  c.expired,
		EatRate:  eatRate,

		TimeToEatMean: eat.Mean,
		TimeToEatP10:  eat.P10,
		TimeToEatP50:  eat.P50,
		TimeToEatP90:  eat.P90,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP90:  speed.P90,

		SeekingFrac: seeking,
		Bounces:     c.bounces,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.ticks = 0
	c.dropped = 0
	c.rejected = 0
	c.eaten = 0
	c.expired = 0
	c.bounces = 0
	c.seekingSum = 0
	c.eatTimes = c.eatTimes[:0]
	c.speeds = c.speeds[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() uint64 {
	return c.windowDurationTicks
}
