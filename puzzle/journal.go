package puzzle

import (
	"fmt"
	"time"
)

// EventKind classifies journal entries.
type EventKind uint8

const (
	EventSessionStarted EventKind = iota + 1
	EventPiecePlaced
	EventPieceReset
	EventSessionWon
	EventSessionLost
)

func (k EventKind) String() string {
	switch k {
	case EventSessionStarted:
		return "SessionStarted"
	case EventPiecePlaced:
		return "PlacedCorrectly"
	case EventPieceReset:
		return "PieceReset"
	case EventSessionWon:
		return "SessionWon"
	case EventSessionLost:
		return "SessionLost"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is one journal entry. Piece is zero for session-level events.
type Event struct {
	Seq       uint64
	Kind      EventKind
	Piece     PieceID
	Frame     uint64
	Remaining time.Duration
	Correct   int
}

func (e Event) String() string {
	if e.Piece != 0 {
		return fmt.Sprintf("#%d %s piece=%d frame=%d correct=%d", e.Seq, e.Kind, e.Piece, e.Frame, e.Correct)
	}
	return fmt.Sprintf("#%d %s frame=%d correct=%d remaining=%s", e.Seq, e.Kind, e.Frame, e.Correct, e.Remaining)
}

const journalCapacity = 256

// Journal keeps the most recent events. Readers track the last Seq they
// consumed and call Since.
type Journal struct {
	Frame  uint64
	events []Event
	seq    uint64
}

// Record stamps e with the next sequence number and the current frame.
func (j *Journal) Record(e Event) Event {
	j.seq++
	e.Seq = j.seq
	e.Frame = j.Frame
	j.events = append(j.events, e)
	if len(j.events) > 2*journalCapacity {
		j.events = append(j.events[:0], j.events[len(j.events)-journalCapacity:]...)
	}
	return e
}

// Since returns the retained events with Seq greater than seq.
func (j *Journal) Since(seq uint64) []Event {
	for i, e := range j.events {
		if e.Seq > seq {
			return j.events[i:]
		}
	}
	return nil
}

// Tail returns at most n of the newest events.
func (j *Journal) Tail(n int) []Event {
	if n >= len(j.events) {
		return j.events
	}
	return j.events[len(j.events)-n:]
}

// LastSeq is the sequence number of the newest event.
func (j *Journal) LastSeq() uint64 {
	return j.seq
}
