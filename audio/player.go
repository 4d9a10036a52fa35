// Package audio plays the aquarium's sound cues: a plop when food is dropped
// and a gulp when a fish eats. Sound is optional; every method is safe on an
// uninitialized or nil Player.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	dropDuration = 180 * time.Millisecond
	gulpDuration = 90 * time.Millisecond
	gulpFreq     = 170.0
)

// Player manages speaker output for sound cues.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64 // 0..1
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player. volume is clamped to [0, 1].
func NewPlayer(sampleRate int, volume float64) *Player {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Player{
		rate:   beep.SampleRate(sampleRate),
		volume: math.Max(0, math.Min(volume, 1)),
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker. Calling it again is a no-op.
func (p *Player) Init() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlayDrop plays the food-dropped plop.
func (p *Player) PlayDrop() {
	if p == nil {
		return
	}
	p.play(func() beep.Streamer {
		return NewBloop(p.rate, 900, 300, dropDuration)
	})
}

// PlayGulp plays the food-eaten gulp.
func (p *Player) PlayGulp() {
	if p == nil {
		return
	}
	p.play(func() beep.Streamer {
		tone, err := generators.SineTone(p.rate, gulpFreq)
		if err != nil {
			return nil
		}
		n := p.rate.N(gulpDuration)
		return NewFadeOut(beep.Take(n, tone), n)
	})
}

func (p *Player) play(build func() beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := build()
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(p.withVolume(s))
	speaker.Unlock()
}

// withVolume maps the linear 0..1 volume onto beep's logarithmic control.
func (p *Player) withVolume(s beep.Streamer) beep.Streamer {
	if p.volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(p.volume)}
}

// Close silences all cues. The speaker itself stays open.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
