package puzzle_test

import (
	"bytes"
	"log"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/snapfit/ecs"
	"github.com/plus3/snapfit/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type screen struct {
	lines []string
}

func (s *screen) Display(text string) {
	s.lines = append(s.lines, text)
}

func (s *screen) count(text string) int {
	n := 0
	for _, line := range s.lines {
		if line == text {
			n++
		}
	}
	return n
}

func newTestWorld(t *testing.T, opts ...puzzle.Option) (*puzzle.World, []puzzle.PieceID) {
	t.Helper()
	cfg := puzzle.DefaultConfig()
	cfg.Seed = 11
	w, err := puzzle.NewWorld(cfg, opts...)
	require.NoError(t, err)
	ids := w.DefaultPieces()
	w.Start()
	return w, ids
}

// moveNear puts a piece offset away from its correct position.
func moveNear(t *testing.T, w *puzzle.World, id puzzle.PieceID, offset mgl64.Vec3) {
	t.Helper()
	entity, ok := w.Entity(id)
	require.True(t, ok)
	tr := ecs.ReadComponent[puzzle.Transform](w.Storage(), entity)
	require.NotNil(t, tr)
	st, err := w.Piece(id)
	require.NoError(t, err)
	tr.Position = st.Correct.Position.Add(offset)
}

func tickN(w *puzzle.World, n int, dt float64) {
	for range n {
		w.Tick(dt, puzzle.InputSample{})
	}
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := puzzle.DefaultConfig()
	cfg.RequiredCorrect = 0

	_, err := puzzle.NewWorld(cfg)
	assert.ErrorIs(t, err, puzzle.ErrInvalidConfig)
}

func TestStartScattersPieces(t *testing.T) {
	w, ids := newTestWorld(t)
	require.Len(t, ids, 5)

	assert.Equal(t, puzzle.PhaseRunning, w.Session().Phase)
	for _, st := range w.Pieces() {
		assert.Equal(t, st.Spawn, st.Pose)
		assert.InDelta(t, 0.0, st.Correct.Position.Y(), 1e-12)
		assert.GreaterOrEqual(t, st.Pose.Position.Y(), 1.0)
		assert.GreaterOrEqual(t, st.Distance, 1.0)
		assert.False(t, st.Snapped)
	}

	events := w.Journal().Since(0)
	require.NotEmpty(t, events)
	assert.Equal(t, puzzle.EventSessionStarted, events[len(events)-1].Kind)
}

func TestSeedMakesSpawnsRepeatable(t *testing.T) {
	a, _ := newTestWorld(t)
	b, _ := newTestWorld(t)

	for i, st := range a.Pieces() {
		assert.Equal(t, st.Spawn, b.Pieces()[i].Spawn)
	}
}

func TestFivePiecesNearCorrectWin(t *testing.T) {
	sink := &screen{}
	w, ids := newTestWorld(t, puzzle.WithDisplay(sink))

	for _, id := range ids {
		moveNear(t, w, id, mgl64.Vec3{0.5, 0, 0})
	}
	tickN(w, 20, 0.1)

	session := w.Session()
	assert.Equal(t, puzzle.PhaseWon, session.Phase)
	assert.Equal(t, 5, session.Correct)
	assert.Equal(t, 1, sink.count(puzzle.WinText))
	assert.Zero(t, sink.count(puzzle.LoseText))

	for _, st := range w.Pieces() {
		assert.True(t, st.Snapped)
		assert.Equal(t, st.Correct.Position, st.Pose.Position)
	}
}

func TestTimeoutLoses(t *testing.T) {
	sink := &screen{}
	w, _ := newTestWorld(t, puzzle.WithDisplay(sink))

	w.Tick(300, puzzle.InputSample{})

	session := w.Session()
	assert.Equal(t, puzzle.PhaseLost, session.Phase)
	assert.Equal(t, 0, session.Correct)
	assert.Equal(t, 1, sink.count(puzzle.LoseText))

	events := w.Journal().Tail(1)
	require.Len(t, events, 1)
	assert.Equal(t, puzzle.EventSessionLost, events[0].Kind)
}

func TestTimeoutIsDecidedBeforeSnapping(t *testing.T) {
	w, ids := newTestWorld(t)
	moveNear(t, w, ids[0], mgl64.Vec3{0, 0, 0.001})

	w.Tick(300, puzzle.InputSample{})

	assert.Equal(t, puzzle.PhaseLost, w.Session().Phase)
	assert.Equal(t, 0, w.Session().Correct)
	st, err := w.Piece(ids[0])
	require.NoError(t, err)
	assert.False(t, st.Snapped)
}

func TestResetAfterSnap(t *testing.T) {
	w, ids := newTestWorld(t)
	id := ids[2]
	moveNear(t, w, id, mgl64.Vec3{0, 0.2, 0})
	tickN(w, 10, 0.1)
	require.Equal(t, 1, w.Session().Correct)

	require.NoError(t, w.ResetPiece(id))

	st, err := w.Piece(id)
	require.NoError(t, err)
	assert.Equal(t, st.Spawn, st.Pose)
	assert.False(t, st.Snapped)
	assert.True(t, st.Counted)
	assert.Equal(t, 1, w.Session().Correct, "reset does not uncount the piece")

	moveNear(t, w, id, mgl64.Vec3{0, 0.2, 0})
	tickN(w, 10, 0.1)

	st, err = w.Piece(id)
	require.NoError(t, err)
	assert.True(t, st.Snapped)
	assert.Equal(t, 1, w.Session().Correct, "a re-snapped piece is not counted twice")
}

func TestResetUnknownPiece(t *testing.T) {
	w, _ := newTestWorld(t)

	assert.ErrorIs(t, w.ResetPiece(99), puzzle.ErrUnknownPiece)
	assert.ErrorIs(t, w.Press(0), puzzle.ErrUnknownPiece)
	_, err := w.Piece(42)
	assert.ErrorIs(t, err, puzzle.ErrUnknownPiece)
}

func TestDesignationEdgesDriveDragging(t *testing.T) {
	w, ids := newTestWorld(t)
	id := ids[1]
	before, err := w.Piece(id)
	require.NoError(t, err)

	w.Tick(0.5, puzzle.InputSample{Pressed: []puzzle.PieceID{id}, Move: puzzle.MoveRight})

	st, err := w.Piece(id)
	require.NoError(t, err)
	assert.True(t, st.Dragging)
	assert.True(t, st.Selected)
	assert.InDelta(t, before.Pose.Position.X()+1, st.Pose.Position.X(), 1e-9)

	for _, other := range w.Pieces() {
		if other.ID != id {
			assert.Equal(t, other.Spawn.Position, other.Pose.Position, "undesignated pieces stay put")
		}
	}

	w.Tick(0.5, puzzle.InputSample{Released: []puzzle.PieceID{id}, Move: puzzle.MoveRight})
	st, err = w.Piece(id)
	require.NoError(t, err)
	assert.False(t, st.Dragging)
	assert.InDelta(t, before.Pose.Position.X()+1, st.Pose.Position.X(), 1e-9)
}

func TestRotationCommandsTurnSelectedPiece(t *testing.T) {
	w, ids := newTestWorld(t)
	id := ids[0]
	require.NoError(t, w.Press(id))
	before, err := w.Piece(id)
	require.NoError(t, err)

	w.Tick(1, puzzle.InputSample{Rotations: []puzzle.RotationCommand{puzzle.RotateRight, puzzle.RotateRight}})

	st, err := w.Piece(id)
	require.NoError(t, err)
	want := before.Pose.Orientation.Mul(mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0}))
	assert.True(t, puzzle.SameOrientation(want, st.Pose.Orientation, 1e-9))

	other, err := w.Piece(ids[1])
	require.NoError(t, err)
	assert.True(t, puzzle.SameOrientation(other.Spawn.Orientation, other.Pose.Orientation, 1e-12))
}

func TestTerminalWorldIgnoresInput(t *testing.T) {
	w, ids := newTestWorld(t)
	w.Tick(300, puzzle.InputSample{})
	require.Equal(t, puzzle.PhaseLost, w.Session().Phase)

	require.NoError(t, w.Press(ids[0]))
	before, err := w.Piece(ids[0])
	require.NoError(t, err)
	w.Tick(1, puzzle.InputSample{Move: puzzle.MoveUp, Rotations: []puzzle.RotationCommand{puzzle.RotateDown}})

	after, err := w.Piece(ids[0])
	require.NoError(t, err)
	assert.Equal(t, before.Pose, after.Pose)
	assert.Equal(t, puzzle.PhaseLost, w.Session().Phase)
}

func TestReplayKeepsCorrectPoses(t *testing.T) {
	w, ids := newTestWorld(t)
	first := w.Pieces()
	moveNear(t, w, ids[0], mgl64.Vec3{})
	tickN(w, 3, 0.1)
	require.Equal(t, 1, w.Session().Correct)

	w.Start()

	assert.Equal(t, puzzle.PhaseRunning, w.Session().Phase)
	assert.Equal(t, 0, w.Session().Correct)
	for i, st := range w.Pieces() {
		assert.Equal(t, first[i].Correct, st.Correct)
		assert.False(t, st.Counted)
		assert.False(t, st.Snapped)
	}
}

func TestPieceAt(t *testing.T) {
	w, ids := newTestWorld(t)
	st, err := w.Piece(ids[3])
	require.NoError(t, err)

	got, ok := w.PieceAt(st.Pose.Position.X()+0.1, st.Pose.Position.Z(), 0.2)
	require.True(t, ok)
	assert.Equal(t, ids[3], got)

	_, ok = w.PieceAt(100, 100, 0.5)
	assert.False(t, ok)
}

func TestWorldLogsEvents(t *testing.T) {
	var buf bytes.Buffer
	cfg := puzzle.DefaultConfig()
	cfg.Seed = 3
	w, err := puzzle.NewWorld(cfg, puzzle.WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)
	w.AddPiece("cube", puzzle.NewPose(mgl64.Vec3{}))

	w.Start()

	assert.Contains(t, buf.String(), "SessionStarted")
}

func TestFreeStandingRotator(t *testing.T) {
	w, _ := newTestWorld(t)
	entity := w.AddRotator(mgl64.QuatIdent())
	rotator := ecs.ReadComponent[puzzle.Rotator](w.Storage(), entity)
	require.NotNil(t, rotator)
	rotator.SetSelected(true)

	w.Tick(1, puzzle.InputSample{Rotations: []puzzle.RotationCommand{puzzle.RotateRollPos}})

	tr := ecs.ReadComponent[puzzle.Transform](w.Storage(), entity)
	require.NotNil(t, tr)
	assert.True(t, puzzle.SameOrientation(puzzle.QuarterTurn(puzzle.AxisZ, 1), tr.Orientation, 1e-9))
	assert.Len(t, w.Pieces(), 5, "a bare rotator is not a piece")
}
