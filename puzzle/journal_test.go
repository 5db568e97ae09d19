package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRecordStampsSeqAndFrame(t *testing.T) {
	var j Journal
	j.Frame = 4

	first := j.Record(Event{Kind: EventSessionStarted})
	j.Frame = 9
	second := j.Record(Event{Kind: EventPiecePlaced, Piece: 2})

	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, uint64(4), first.Frame)
	assert.Equal(t, uint64(2), second.Seq)
	assert.Equal(t, uint64(9), second.Frame)
	assert.Equal(t, uint64(2), j.LastSeq())
}

func TestJournalSince(t *testing.T) {
	var j Journal
	for range 5 {
		j.Record(Event{Kind: EventPieceReset})
	}

	assert.Len(t, j.Since(0), 5)
	assert.Len(t, j.Since(3), 2)
	assert.Equal(t, uint64(4), j.Since(3)[0].Seq)
	assert.Empty(t, j.Since(5))
}

func TestJournalTrimsOldEvents(t *testing.T) {
	var j Journal
	for range 2*journalCapacity + 1 {
		j.Record(Event{Kind: EventPiecePlaced})
	}

	all := j.Since(0)
	require.Len(t, all, journalCapacity)
	assert.Equal(t, uint64(journalCapacity+2), all[0].Seq)
	assert.Equal(t, uint64(2*journalCapacity+1), all[len(all)-1].Seq)

	tail := j.Tail(3)
	require.Len(t, tail, 3)
	assert.Equal(t, j.LastSeq(), tail[2].Seq)
	assert.Len(t, j.Tail(10000), journalCapacity)
}

func TestEventString(t *testing.T) {
	e := Event{Seq: 3, Kind: EventPiecePlaced, Piece: 2, Frame: 10, Correct: 1}
	assert.Equal(t, "#3 PlacedCorrectly piece=2 frame=10 correct=1", e.String())
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
}
