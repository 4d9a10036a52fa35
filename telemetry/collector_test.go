package telemetry

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/fishtank/scene"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 0.1) // 10 ticks per window

	if c.WindowDurationTicks() != 10 {
		t.Fatalf("window = %d ticks, want 10", c.WindowDurationTicks())
	}
	if c.ShouldFlush(9) {
		t.Error("flushed early")
	}
	if !c.ShouldFlush(10) {
		t.Error("expected flush at tick 10")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.5)

	c.RecordFeed(nil)
	c.RecordFeed(nil)
	c.RecordFeed(errors.New("feeding mode is off"))

	c.RecordTick(scene.TickReport{
		Eaten:   1,
		Seeking: 1,
		EatAges: []uint64{4},
		Speeds:  []float64{1, 3},
	})
	c.RecordTick(scene.TickReport{
		Expired: 1,
		Bounced: 2,
		Seeking: 2,
		Speeds:  []float64{1, 3},
	})

	s := c.Flush(2, 2, 0)

	if s.Dropped != 2 || s.Rejected != 1 || s.Eaten != 1 || s.Expired != 1 || s.Bounces != 2 {
		t.Errorf("counts = %+v", s)
	}
	if math.Abs(s.EatRate-0.5) > 1e-9 {
		t.Errorf("eat rate = %v, want 0.5", s.EatRate)
	}
	if math.Abs(s.TimeToEatMean-2.0) > 1e-9 {
		t.Errorf("time to eat = %v, want 2s", s.TimeToEatMean)
	}
	if math.Abs(s.SpeedMean-2) > 1e-9 || math.Abs(s.SpeedStd-1) > 1e-9 {
		t.Errorf("speed mean/std = %v/%v, want 2/1", s.SpeedMean, s.SpeedStd)
	}
	// (1/2 + 2/2) / 2 ticks
	if math.Abs(s.SeekingFrac-0.75) > 1e-9 {
		t.Errorf("seeking frac = %v, want 0.75", s.SeekingFrac)
	}
	if math.Abs(s.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %v", s.SimTimeSec)
	}

	// Counters reset for the next window.
	next := c.Flush(4, 2, 0)
	if next.WindowStartTick != 2 || next.Dropped != 0 || next.Eaten != 0 || next.SpeedMean != 0 {
		t.Errorf("window not reset: %+v", next)
	}
}
