package sound

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/engine"
)

// Output plays finished streamers.
type Output interface {
	Play(s beep.Streamer)
}

// speakerOutput mixes effects into the one stream the speaker plays.
type speakerOutput struct {
	mixer *beep.Mixer
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Player turns sound events into audio.
type Player struct {
	out    Output
	sr     beep.SampleRate
	volume float64
	muted  atomic.Bool
	log    *log.Logger
}

// NewPlayer creates a player writing to out. Volume is in powers of two,
// 0 keeps the synthesized level and -1 halves it.
func NewPlayer(out Output, sr beep.SampleRate, volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{out: out, sr: sr, volume: volume, log: logger}
}

// NewSpeakerPlayer initializes the system speaker and returns a player for it.
func NewSpeakerPlayer(volume float64, logger *log.Logger) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("sound: cannot init speaker: %w", err)
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	return NewPlayer(&speakerOutput{mixer: mixer}, SampleRate, volume, logger), nil
}

// SetMuted silences or restores output.
func (p *Player) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// Handle plays every sound event in events.
func (p *Player) Handle(events []core.Event) {
	for _, ev := range events {
		se, ok := ev.(core.SoundEvent)
		if !ok {
			continue
		}
		st := Effect(se.Sound, p.sr)
		if st == nil {
			p.log.Debug("no effect for sound", "sound", se.Sound)
			continue
		}
		p.out.Play(&effects.Volume{
			Streamer: st,
			Base:     2,
			Volume:   p.volume,
			Silent:   p.muted.Load(),
		})
	}
}

// Watch subscribes to s and plays its sounds until ctx ends or the session
// stops.
func (p *Player) Watch(ctx context.Context, s *engine.Session) {
	sub := s.Subscribe(engine.DefaultBuffer)
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-sub.C():
				if !ok {
					return
				}
				p.Handle(f.Events)
			}
		}
	}()
}
