// Package sound plays the game's sound events through beep. Every effect is
// synthesized, so there are no audio assets to ship.
package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

// SampleRate is the rate used for the speaker and every synthesized effect.
const SampleRate = beep.SampleRate(44100)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Note is one tone of an effect.
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
}

// effects lists the notes played for each sound, in order.
var effects = map[core.Sound][]Note{
	core.SoundShoot:   {{Freq: 660, Duration: 40 * time.Millisecond, Wave: WaveSaw}},
	core.SoundPop:     {{Freq: 880, Duration: 60 * time.Millisecond, Wave: WaveSine}},
	core.SoundStick:   {{Freq: 220, Duration: 40 * time.Millisecond, Wave: WaveSine}},
	core.SoundExplode: {{Duration: 250 * time.Millisecond, Wave: WaveNoise}},
	core.SoundWin: {
		{Freq: 523.25, Duration: 90 * time.Millisecond, Wave: WaveSquare},
		{Freq: 659.25, Duration: 90 * time.Millisecond, Wave: WaveSquare},
		{Freq: 783.99, Duration: 90 * time.Millisecond, Wave: WaveSquare},
		{Freq: 1046.5, Duration: 180 * time.Millisecond, Wave: WaveSquare},
	},
	core.SoundLose: {
		{Freq: 392, Duration: 150 * time.Millisecond, Wave: WaveSaw},
		{Freq: 311.13, Duration: 150 * time.Millisecond, Wave: WaveSaw},
		{Freq: 261.63, Duration: 300 * time.Millisecond, Wave: WaveSaw},
	},
}

// Effect returns a finite streamer for s, or nil for unknown sounds.
func Effect(s core.Sound, sr beep.SampleRate) beep.Streamer {
	notes, ok := effects[s]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, NewTone(n, sr))
	}
	return beep.Seq(parts...)
}

// tone is an oscillator with a short linear attack and release so notes do
// not click.
type tone struct {
	note     Note
	sr       beep.SampleRate
	phase    float64
	position int
	total    int
	edge     int
}

// NewTone creates a streamer playing one note.
func NewTone(n Note, sr beep.SampleRate) beep.Streamer {
	total := sr.N(n.Duration)
	edge := sr.N(5 * time.Millisecond)
	if edge*2 > total {
		edge = total / 2
	}
	return &tone{note: n, sr: sr, total: total, edge: edge}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		var val float64
		switch t.note.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (t.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		val *= t.gain()

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.note.Freq / float64(t.sr)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) gain() float64 {
	if t.edge == 0 {
		return 1
	}
	switch {
	case t.position < t.edge:
		return float64(t.position) / float64(t.edge)
	case t.position >= t.total-t.edge:
		return float64(t.total-t.position) / float64(t.edge)
	}
	return 1
}

func (t *tone) Err() error { return nil }
