package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// bloop is a sine whose pitch glides from one frequency to another while
// its amplitude decays exponentially, like a bubble popping.
type bloop struct {
	rate     beep.SampleRate
	from, to float64
	phase    float64
	position int
	duration int
}

// NewBloop creates a bubble sound lasting d.
func NewBloop(rate beep.SampleRate, from, to float64, d time.Duration) beep.Streamer {
	n := rate.N(d)
	if n < 1 {
		n = 1
	}
	return &bloop{rate: rate, from: from, to: to, duration: n}
}

func (b *bloop) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.position >= b.duration {
			return i, i > 0
		}
		t := float64(b.position) / float64(b.duration)
		freq := b.from + (b.to-b.from)*t
		val := math.Sin(2*math.Pi*b.phase) * math.Exp(-5*t)

		samples[i][0] = val
		samples[i][1] = val

		b.phase += freq / float64(b.rate)
		b.phase -= math.Floor(b.phase)
		b.position++
	}
	return len(samples), true
}

func (b *bloop) Err() error { return nil }

// fadeOut ramps a stream linearly to silence over total samples.
type fadeOut struct {
	streamer beep.Streamer
	position int
	total    int
}

// NewFadeOut wraps s so its amplitude falls from 1 to 0 over total samples.
func NewFadeOut(s beep.Streamer, total int) beep.Streamer {
	if total < 1 {
		total = 1
	}
	return &fadeOut{streamer: s, total: total}
}

func (f *fadeOut) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1 - float64(f.position)/float64(f.total)
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.position++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.streamer.Err() }
