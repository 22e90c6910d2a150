package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/samdwyer/dungeondelve/internal/game"
)

// drain streams s to the end and returns the number of samples produced.
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10_000; i++ {
		n, ok := s.Stream(buf)
		total += n
		for j := 0; j < n; j++ {
			if buf[j][0] < -1 || buf[j][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total-n+j, buf[j][0])
			}
		}
		if !ok {
			return total
		}
	}
	t.Fatal("stream never ended")
	return 0
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, w := range []Wave{WaveSine, WaveSquare, WaveSaw} {
		tn := newTone(note{440, 100 * time.Millisecond, w}, rate)
		if got, want := drain(t, tn), rate.N(100*time.Millisecond); got != want {
			t.Errorf("wave %d: got %d samples, want %d", w, got, want)
		}
	}
}

func TestToneFadesOut(t *testing.T) {
	rate := beep.SampleRate(8000)
	tn := newTone(note{1000, 100 * time.Millisecond, WaveSquare}, rate)

	buf := make([][2]float64, rate.N(100*time.Millisecond))
	n, _ := tn.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d samples, want %d", n, len(buf))
	}
	if last := buf[n-1][0]; last > 0.01 || last < -0.01 {
		t.Errorf("last sample = %f, want close to silence", last)
	}
	if first := buf[0][0]; first != 1 {
		t.Errorf("first square sample = %f, want 1", first)
	}
}

func TestSoundPerEvent(t *testing.T) {
	rate := beep.SampleRate(22050)
	audible := []game.EventKind{
		game.EventSwordSwing,
		game.EventEnemyDied,
		game.EventLevelDescended,
		game.EventThemeChanged,
		game.EventDescendRejected,
		game.EventPlayerDied,
	}
	for _, kind := range audible {
		t.Run(kind.String(), func(t *testing.T) {
			s := Sound(kind, rate)
			if s == nil {
				t.Fatal("expected a sound")
			}
			if drain(t, s) == 0 {
				t.Error("sound produced no samples")
			}
		})
	}

	if s := Sound(game.EventLevelCleared, rate); s != nil {
		t.Error("level cleared should be silent")
	}
}

func TestSoundDurations(t *testing.T) {
	rate := beep.SampleRate(1000)
	tests := []struct {
		kind game.EventKind
		want int
	}{
		{game.EventSwordSwing, 80},
		{game.EventEnemyDied, 180},
		{game.EventLevelDescended, 360},
		{game.EventPlayerDied, 850},
	}
	for _, tt := range tests {
		if got := drain(t, Sound(tt.kind, rate)); got != tt.want {
			t.Errorf("%s: %d samples, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestPlayerDropsEventsBeforeInit(t *testing.T) {
	p := NewPlayer()
	p.OnEvent(game.Event{Kind: game.EventSwordSwing})
	p.Close()
}
