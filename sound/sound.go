// Package sound plays short procedural cues for puzzle journal events.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/snapfit/puzzle"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes cues onto the speaker. Every method is a no-op until Init
// succeeds, so hosts can run without an audio device.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer returns an uninitialized player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker and starts the mixer.
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

// Cue plays the sound for kind, if it has one.
func (p *Player) Cue(kind puzzle.EventKind) {
	s := Streamer(kind, sampleRate)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all cues and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Streamer builds the finite cue for kind at sr, or nil for silent kinds.
func Streamer(kind puzzle.EventKind, sr beep.SampleRate) beep.Streamer {
	switch kind {
	case puzzle.EventPiecePlaced:
		return chime(sr)
	case puzzle.EventSessionWon:
		return arpeggio(sr)
	case puzzle.EventSessionLost:
		return beep.Take(sr.N(400*time.Millisecond), &buzz{sr: sr, freq: 110})
	case puzzle.EventPieceReset:
		return tone(sr, 330, 60*time.Millisecond, 30)
	}
	return nil
}

func chime(sr beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(sr, 880, 90*time.Millisecond, 20),
		tone(sr, 1320, 160*time.Millisecond, 12),
	)
}

func arpeggio(sr beep.SampleRate) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	parts := make([]beep.Streamer, 0, len(notes))
	for i, freq := range notes {
		length := 140 * time.Millisecond
		if i == len(notes)-1 {
			length = 450 * time.Millisecond
		}
		parts = append(parts, tone(sr, freq, length, 6))
	}
	return beep.Seq(parts...)
}

// tone is a sine note of the given length with an exponential decay.
func tone(sr beep.SampleRate, freq float64, length time.Duration, decay float64) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return beep.Silence(sr.N(length))
	}
	return beep.Take(sr.N(length), &envelope{sr: sr, src: sine, decay: decay, gain: 0.25})
}

type envelope struct {
	sr    beep.SampleRate
	src   beep.Streamer
	pos   int
	decay float64
	gain  float64
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.src.Stream(samples)
	for i := range samples[:n] {
		t := float64(e.pos) / float64(e.sr)
		attack := math.Min(t/0.005, 1)
		amp := e.gain * attack * math.Exp(-t*e.decay)
		samples[i][0] *= amp
		samples[i][1] *= amp
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error {
	return e.src.Err()
}

// buzz is a harsh three-harmonic drone.
type buzz struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func (b *buzz) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(b.pos) / float64(b.sr)
		s := 0.3*math.Sin(2*math.Pi*b.freq*t) +
			0.15*math.Sin(2*math.Pi*b.freq*2*t) +
			0.075*math.Sin(2*math.Pi*b.freq*3*t)
		s *= math.Min(t/0.02, 1) * 0.5
		samples[i][0] = s
		samples[i][1] = s
		b.pos++
	}
	return len(samples), true
}

func (b *buzz) Err() error {
	return nil
}
