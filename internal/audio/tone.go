package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// note is one tone in a sound effect.
type note struct {
	freq     float64
	duration time.Duration
	wave     Wave
}

// tone is a fixed-length oscillator with a linear fade-out over its last
// quarter so notes do not click.
type tone struct {
	freq    float64
	wave    Wave
	rate    beep.SampleRate
	phase   float64
	pos     int
	total   int
	release int
}

func newTone(n note, rate beep.SampleRate) *tone {
	total := rate.N(n.duration)
	return &tone{
		freq:    n.freq,
		wave:    n.wave,
		rate:    rate,
		total:   total,
		release: total / 4,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}

		if left := t.total - t.pos; t.release > 0 && left < t.release {
			v *= float64(left) / float64(t.release)
		}

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// sequence plays notes back to back at the given linear volume.
func sequence(rate beep.SampleRate, vol float64, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = newTone(n, rate)
	}
	return withVolume(beep.Seq(parts...), vol)
}

// withVolume scales s by a linear factor in (0, 1]; zero or less is silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
