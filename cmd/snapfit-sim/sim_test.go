package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/snapfit/ecs"
	"github.com/plus3/snapfit/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimWorld(t *testing.T, pieces int) (*puzzle.World, []puzzle.PieceID) {
	t.Helper()
	cfg := puzzle.DefaultConfig()
	cfg.Seed = 3
	cfg.RequiredCorrect = min(cfg.RequiredCorrect, pieces)
	world, err := puzzle.NewWorld(cfg)
	require.NoError(t, err)
	ids := addPieces(world, pieces)
	world.Start()
	return world, ids
}

func run(world *puzzle.World, pilot *autopilot, dt float64) int {
	frames := 0
	for world.Session().Phase == puzzle.PhaseRunning {
		world.Tick(dt, pilot.Next())
		frames++
	}
	return frames
}

func TestAutopilotSolvesStockPuzzle(t *testing.T) {
	world, ids := newSimWorld(t, 5)
	pilot := newAutopilot(world, ids)

	run(world, pilot, 1.0/30.0)

	assert.Equal(t, puzzle.PhaseWon, world.Session().Phase)
	assert.Equal(t, 5, world.Session().Correct)
	for _, st := range world.Pieces() {
		assert.True(t, st.Snapped, st.Name)
	}
}

func TestAutopilotPartialSolveLoses(t *testing.T) {
	world, ids := newSimWorld(t, 5)
	pilot := newAutopilot(world, ids[:2])

	run(world, pilot, 0.25)

	assert.Equal(t, puzzle.PhaseLost, world.Session().Phase)
	assert.Equal(t, 2, world.Session().Correct)
	assert.True(t, pilot.Done())
}

func TestAutopilotHandsOffBetweenPieces(t *testing.T) {
	world, ids := newSimWorld(t, 2)
	pilot := newAutopilot(world, ids)

	first := pilot.Next()
	assert.Equal(t, []puzzle.PieceID{ids[0]}, first.Pressed)
	assert.Empty(t, first.Released)
	world.Tick(1.0/30.0, first)

	var handoff puzzle.InputSample
	for world.Session().Phase == puzzle.PhaseRunning {
		sample := pilot.Next()
		if len(sample.Released) > 0 {
			handoff = sample
			break
		}
		world.Tick(1.0/30.0, sample)
	}
	assert.Equal(t, []puzzle.PieceID{ids[0]}, handoff.Released)
	assert.Equal(t, []puzzle.PieceID{ids[1]}, handoff.Pressed)
}

func TestAddPiecesExtendsStockSet(t *testing.T) {
	world, ids := newSimWorld(t, 7)

	assert.Len(t, ids, 7)
	assert.Len(t, world.Pieces(), 7)
	st, err := world.Piece(ids[6])
	require.NoError(t, err)
	assert.Equal(t, "extra-6", st.Name)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Pieces:   5,
		Solving:  5,
		Required: 5,
		Seed:     9,
		Dt:       0.05,
		Session:  5 * time.Minute,
		Outcome:  "Won",
		Correct:  5,
		Frames:   120,
		Elapsed:  6 * time.Second,
		Placements: []Placement{
			{Piece: 2, Frame: 40, At: 2 * time.Second},
		},
		Systems: []ecs.SystemStats{{Name: "PlacementSystem", ExecutionCount: 120}},
		Storage: &ecs.StorageStats{
			TotalEntityCount: 5,
			ArchetypeCount:   1,
			SingletonTypes:   []string{"Input", "Session"},
			ArchetypeBreakdown: []ecs.ArchetypeStats{
				{ID: 1, EntityCount: 5, ComponentTypes: []string{"Piece", "Rotator"}},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "- **Result:** Won")
	assert.Contains(t, out, "- **Placed:** 5/5")
	assert.Contains(t, out, "- piece-2 at frame 40 (2s)")
	assert.Contains(t, out, "| PlacementSystem | 120 |")
	assert.Contains(t, out, "- **Singletons:** Input, Session")
	assert.Contains(t, out, "- archetype 1: 5 x [Piece, Rotator]")
}
