package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns every left-channel sample.
func drain(s beep.Streamer) []float64 {
	var out []float64
	buf := make([][2]float64, 64)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
}

func TestBloopLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := NewBloop(rate, 900, 300, 100*time.Millisecond)

	samples := drain(s)
	if len(samples) != rate.N(100*time.Millisecond) {
		t.Errorf("got %d samples, want %d", len(samples), rate.N(100*time.Millisecond))
	}
	for i, v := range samples {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of range: %f", i, v)
		}
	}
	if s.Err() != nil {
		t.Errorf("unexpected error: %v", s.Err())
	}
}

func TestBloopDecays(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples := drain(NewBloop(rate, 400, 400, 200*time.Millisecond))

	peak := func(vals []float64) float64 {
		var m float64
		for _, v := range vals {
			m = math.Max(m, math.Abs(v))
		}
		return m
	}
	q := len(samples) / 4
	head, tail := peak(samples[:q]), peak(samples[len(samples)-q:])
	if tail >= head/2 {
		t.Errorf("expected decay: head peak %v, tail peak %v", head, tail)
	}
}

// constant streams a fixed value forever.
type constant float64

func (c constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i][0], samples[i][1] = float64(c), float64(c)
	}
	return len(samples), true
}

func (c constant) Err() error { return nil }

func TestFadeOut(t *testing.T) {
	s := NewFadeOut(beep.Take(100, constant(1)), 100)
	samples := drain(s)

	if len(samples) != 100 {
		t.Fatalf("got %d samples, want 100", len(samples))
	}
	if samples[0] != 1 {
		t.Errorf("first sample = %v, want 1", samples[0])
	}
	if math.Abs(samples[50]-0.5) > 1e-9 {
		t.Errorf("midpoint = %v, want 0.5", samples[50])
	}
	for i := 1; i < len(samples); i++ {
		if samples[i] > samples[i-1] {
			t.Fatalf("fade rose at sample %d", i)
		}
	}
}

func TestPlayerGracefulDegradation(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sound operations panicked: %v", r)
		}
	}()

	var nilPlayer *Player
	nilPlayer.PlayDrop()
	nilPlayer.PlayGulp()
	nilPlayer.Close()
	if err := nilPlayer.Init(); err != nil {
		t.Errorf("nil Init: %v", err)
	}

	// Not initialized: cues are dropped silently.
	p := NewPlayer(44100, 0.5)
	p.PlayDrop()
	p.PlayGulp()
	p.Close()
}

func TestPlayerInit(t *testing.T) {
	p := NewPlayer(44100, 2)
	if p.volume != 1 {
		t.Errorf("volume = %v, want clamped to 1", p.volume)
	}

	// Speaker initialization may fail without an audio device.
	if err := p.Init(); err != nil {
		t.Logf("sound initialization failed (expected without audio device): %v", err)
		return
	}
	if err := p.Init(); err != nil {
		t.Errorf("second Init should be a no-op, got %v", err)
	}
	p.PlayDrop()
	p.PlayGulp()
	p.Close()
}
