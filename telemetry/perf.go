package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one host tick.
const (
	PhaseInput     = "input"
	PhaseAutofeed  = "autofeed"
	PhaseScene     = "scene"
	PhaseFeedback  = "feedback"
	PhaseTelemetry = "telemetry"
)

// hostPhases lists the host tick phases in the order they run.
var hostPhases = [...]string{PhaseInput, PhaseAutofeed, PhaseScene, PhaseFeedback, PhaseTelemetry}

// phaseRing keeps one duration per tick for a single phase.
type phaseRing struct {
	name string
	ring []time.Duration
	used bool
}

// PerfCollector keeps rolling tick and per-phase timings.
// A nil collector ignores every call, so hosts can leave it unset.
type PerfCollector struct {
	window int
	ticks  []time.Duration
	next   int
	filled int

	rings  []*phaseRing
	index  map[string]int
	active int

	tickStart time.Time
	mark      time.Time

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	p := &PerfCollector{
		window: window,
		ticks:  make([]time.Duration, window),
		index:  make(map[string]int, len(hostPhases)),
		active: -1,
	}
	for _, name := range hostPhases {
		p.ringFor(name)
	}
	return p
}

// ringFor returns the slot for a phase, adding one for names outside the host set.
func (p *PerfCollector) ringFor(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	p.rings = append(p.rings, &phaseRing{name: name, ring: make([]time.Duration, p.window)})
	p.index[name] = len(p.rings) - 1
	return len(p.rings) - 1
}

// closePhase charges the time since the last mark to the active phase.
func (p *PerfCollector) closePhase(now time.Time) {
	if p.active >= 0 {
		p.rings[p.active].ring[p.next] += now.Sub(p.mark)
	}
	p.mark = now
}

// StartTick begins timing a tick and clears this tick's slot in every ring.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = time.Now()
	p.mark = p.tickStart
	p.active = -1
	for _, r := range p.rings {
		r.ring[p.next] = 0
	}
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	p.closePhase(time.Now())
	p.active = p.ringFor(phase)
	p.rings[p.active].used = true
}

// EndTick closes the running phase and commits the tick to the window.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := time.Now()
	p.closePhase(now)
	p.active = -1
	p.ticks[p.next] = now.Sub(p.tickStart)
	p.next = (p.next + 1) % p.window
	if p.filled < p.window {
		p.filled++
	}
}

// RecordFrame notes the time between consecutive rendered frames.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{PhaseAvg: map[string]time.Duration{}, PhasePct: map[string]float64{}}
	if p == nil {
		return out
	}
	out.FrameDuration = p.frame
	if p.frame > 0 {
		out.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return out
	}

	n := time.Duration(p.filled)
	var total time.Duration
	for i, d := range p.ticks[:p.filled] {
		total += d
		if i == 0 || d < out.MinTickDuration {
			out.MinTickDuration = d
		}
		out.MaxTickDuration = max(out.MaxTickDuration, d)
	}
	out.AvgTickDuration = total / n
	if out.AvgTickDuration > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTickDuration)
	}

	for _, r := range p.rings {
		if !r.used {
			continue
		}
		var sum time.Duration
		for _, d := range r.ring[:p.filled] {
			sum += d
		}
		avg := sum / n
		out.PhaseAvg[r.name] = avg
		if out.AvgTickDuration > 0 {
			out.PhasePct[r.name] = float64(avg) / float64(out.AvgTickDuration) * 100
		}
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range hostPhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range hostPhases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	AutofeedPct  float64 `csv:"autofeed_pct"`
	ScenePct     float64 `csv:"scene_pct"`
	FeedbackPct  float64 `csv:"feedback_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		AutofeedPct:  s.PhasePct[PhaseAutofeed],
		ScenePct:     s.PhasePct[PhaseScene],
		FeedbackPct:  s.PhasePct[PhaseFeedback],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
