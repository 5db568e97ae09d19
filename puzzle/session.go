package puzzle

import (
	"fmt"
	"math"
	"time"
)

// Phase is the session state.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseRunning:
		return "Running"
	case PhaseWon:
		return "Won"
	case PhaseLost:
		return "Lost"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Terminal reports whether p is Won or Lost.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Session tracks the countdown and the number of correctly placed pieces.
// It is the only state shared between pieces and is changed only through
// Start, Tick and OnObjectPlaced. Won and Lost are terminal until Start.
type Session struct {
	Duration  time.Duration
	Required  int
	Correct   int
	Remaining time.Duration
	Phase     Phase

	// Sink may be nil; transitions still happen, nothing is shown.
	Sink Display
}

// NewSession returns a session in NotStarted.
func NewSession(duration time.Duration, required int, sink Display) Session {
	return Session{
		Duration:  duration,
		Required:  required,
		Remaining: duration,
		Sink:      sink,
	}
}

// Start begins a new play-through from any phase.
func (s *Session) Start() {
	s.Phase = PhaseRunning
	s.Correct = 0
	s.Remaining = s.Duration
	s.show(FormatCountdown(s.Remaining))
}

// Tick advances the countdown by dt seconds.
func (s *Session) Tick(dt float64) {
	if s.Phase != PhaseRunning {
		return
	}

	s.Remaining -= time.Duration(dt * float64(time.Second))
	if s.Remaining < 0 {
		s.Remaining = 0
	}
	s.show(FormatCountdown(s.Remaining))

	if s.Remaining <= 0 && s.Correct < s.Required {
		s.Phase = PhaseLost
		s.show(LoseText)
	}
}

// OnObjectPlaced counts one correctly placed piece.
func (s *Session) OnObjectPlaced() {
	if s.Phase != PhaseRunning {
		return
	}

	s.Correct++
	if s.Correct >= s.Required {
		s.Phase = PhaseWon
		s.show(WinText)
	}
}

func (s *Session) show(text string) {
	if s.Sink != nil {
		s.Sink.Display(text)
	}
}

// FormatCountdown renders d as "Time Left: MM:SS", flooring both fields.
func FormatCountdown(d time.Duration) string {
	secs := math.Max(0, d.Seconds())
	minutes := int(math.Floor(secs / 60))
	seconds := int(math.Floor(math.Mod(secs, 60)))
	return fmt.Sprintf("Time Left: %02d:%02d", minutes, seconds)
}
