package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/snapfit/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moveSystem struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *moveSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Movers.Values() {
		item.Position.X += item.Velocity.DX * frame.DeltaTime
		item.Position.Y += item.Velocity.DY * frame.DeltaTime
		item.Position.Z += item.Velocity.DZ * frame.DeltaTime
	}
}

type clockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *clockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	clock.Frames++
	clock.Elapsed += frame.DeltaTime
}

type recordingSystem struct {
	name string
	log  *[]string
}

func (s *recordingSystem) Execute(frame *ecs.UpdateFrame) {
	*s.log = append(*s.log, s.name)
}

type spawnOnceSystem struct {
	done bool
}

func (s *spawnOnceSystem) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(Position{X: 1}, Velocity{DX: 1})
}

type countSystem struct {
	Positions ecs.Query[struct{ *Position }]
	seen      []int
}

func (s *countSystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = append(s.seen, s.Positions.Len())
}

type tagSystem struct {
	Items ecs.Query[struct {
		ecs.EntityId
		*Position
	}]
}

func (s *tagSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Items.Values() {
		if item.Position.X > 0 {
			frame.Commands.Delete(item.EntityId)
		}
	}
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var log []string
	scheduler.Register(&recordingSystem{name: "timer", log: &log})
	scheduler.Register(&recordingSystem{name: "input", log: &log})
	scheduler.Register(&recordingSystem{name: "placement", log: &log})

	scheduler.Once(0.016)
	scheduler.Once(0.016)

	assert.Equal(t, []string{"timer", "input", "placement", "timer", "input", "placement"}, log)
}

func TestSchedulerInitializesQueriesAndSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Clock{})
	id := storage.Spawn(Position{}, Velocity{DX: 2, DY: -1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&moveSystem{})
	scheduler.Register(&clockSystem{})

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	pos := ecs.ReadComponent[Position](storage, id)
	assert.InDelta(t, 2.0, pos.X, 1e-9)
	assert.InDelta(t, -1.0, pos.Y, 1e-9)

	var clock *Clock
	require.True(t, storage.ReadSingleton(&clock))
	assert.Equal(t, 2, clock.Frames)
	assert.InDelta(t, 1.0, clock.Elapsed, 1e-9)
}

func TestSchedulerFlushesCommandsAfterFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	counter := &countSystem{}
	scheduler.Register(&spawnOnceSystem{})
	scheduler.Register(counter)

	scheduler.Once(0.1)
	scheduler.Once(0.1)

	assert.Equal(t, []int{0, 1}, counter.seen, "spawns become visible on the next frame")
}

func TestSchedulerDeferredDelete(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	keep := storage.Spawn(Position{X: 0})
	drop := storage.Spawn(Position{X: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&tagSystem{})
	scheduler.Once(0)

	assert.True(t, storage.Alive(keep))
	assert.False(t, storage.Alive(drop))
}

func TestCommandsDeferRunsLast(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Position{})

	var alive bool
	cmds := &ecs.Commands{}
	cmds.Defer(func() { alive = storage.Alive(victim) })
	cmds.Delete(victim)
	cmds.Flush(storage)

	assert.False(t, alive)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Clock{})
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&clockSystem{})
	scheduler.Register(&moveSystem{})

	for range 3 {
		scheduler.Once(0.01)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "clockSystem", stats.Systems[0].Name)
	assert.Equal(t, "moveSystem", stats.Systems[1].Name)
	for _, st := range stats.Systems {
		assert.Equal(t, int64(3), st.ExecutionCount)
		assert.LessOrEqual(t, st.MinDuration, st.MaxDuration)
		assert.Equal(t, st.TotalDuration/3, st.AvgDuration)
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Clock{})
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&clockSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	scheduler.Run(ctx, 5*time.Millisecond)

	var clock *Clock
	require.True(t, storage.ReadSingleton(&clock))
	assert.Positive(t, clock.Frames)
}
