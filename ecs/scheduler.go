package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats summarizes system execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds timings for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type storageBinder interface {
	Init(*Storage)
}

type frameQuery interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []frameQuery
	stats   SystemStats
}

// Scheduler runs registered systems in registration order.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem
}

// NewScheduler creates a scheduler over storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register appends system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	rs := &registeredSystem{system: system}

	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanSet() || field.Kind() != reflect.Struct {
				continue
			}
			binder, ok := field.Addr().Interface().(storageBinder)
			if !ok {
				continue
			}
			binder.Init(s.storage)
			if q, ok := binder.(frameQuery); ok {
				rs.queries = append(rs.queries, q)
			}
		}
	}

	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	rs.stats = SystemStats{
		Name:        t.Name(),
		MinDuration: time.Duration(1<<63 - 1),
	}
	s.systems = append(s.systems, rs)
}

// Once runs every system for a single frame of dt seconds and then flushes
// the frame's commands. Each system sees queries executed just before it runs,
// so component edits made by earlier systems are visible.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, rs := range s.systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		elapsed := time.Since(start)

		st := &rs.stats
		st.ExecutionCount++
		st.LastDuration = elapsed
		st.TotalDuration += elapsed
		st.MinDuration = min(st.MinDuration, elapsed)
		st.MaxDuration = max(st.MaxDuration, elapsed)
	}

	frame.Commands.Flush(s.storage)
}

// Run calls Once every interval until ctx is done, passing the measured wall
// time as dt.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Once(dt)
		}
	}
}

// GetStats returns a copy of the execution statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, rs := range s.systems {
		st := rs.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		}
		stats.Systems[i] = st
		stats.TotalExecutions += st.ExecutionCount
	}
	return stats
}
