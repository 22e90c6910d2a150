// Package audio plays synthesized sound effects for game events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/samdwyer/dungeondelve/internal/game"
	"github.com/samdwyer/dungeondelve/internal/logger"
)

const sampleRate = beep.SampleRate(44100)

// effectVolume keeps effects well below clipping when several overlap.
const effectVolume = 0.3

// Sound returns the effect for an event kind, or nil when the event is
// silent.
func Sound(kind game.EventKind, rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	switch kind {
	case game.EventSwordSwing:
		return sequence(rate, effectVolume,
			note{880, ms(30), WaveSaw},
			note{440, ms(50), WaveSaw},
		)
	case game.EventEnemyDied:
		return sequence(rate, effectVolume,
			note{440, ms(60), WaveSquare},
			note{220, ms(120), WaveSquare},
		)
	case game.EventLevelDescended:
		return sequence(rate, effectVolume,
			note{262, ms(90), WaveSine},
			note{330, ms(90), WaveSine},
			note{392, ms(180), WaveSine},
		)
	case game.EventThemeChanged:
		return sequence(rate, effectVolume, note{110, ms(400), WaveSine})
	case game.EventDescendRejected:
		return sequence(rate, effectVolume, note{120, ms(150), WaveSaw})
	case game.EventPlayerDied:
		return sequence(rate, effectVolume,
			note{330, ms(150), WaveSquare},
			note{262, ms(150), WaveSquare},
			note{196, ms(150), WaveSquare},
			note{131, ms(400), WaveSquare},
		)
	default:
		return nil
	}
}

// Player mixes event sounds onto the speaker. It is a game.Listener; until
// Init succeeds every event is dropped.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

var _ game.Listener = (*Player)(nil)

// NewPlayer creates a silent player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the audio device and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// OnEvent queues the sound for ev, if any.
func (p *Player) OnEvent(ev game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := Sound(ev.Kind, sampleRate)
	if s == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	logger.Log.WithField("event", ev.Kind.String()).Trace("sound queued")
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.initialized = false
}
