package ecs_test

import (
	"testing"

	"github.com/plus3/snapfit/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	only := storage.Spawn(Position{X: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, 1.0, item.Position.X)
	assert.Equal(t, 2.0, item.Velocity.DX)

	assert.Nil(t, view.Get(only), "entity without Velocity must not match")
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1})

	view := ecs.NewView[struct{ *Position }](storage)
	view.Get(id).Position.X = 9

	assert.Equal(t, 9.0, ecs.ReadComponent[Position](storage, id).X)
}

func TestViewOptionalAndEntityId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	held := storage.Spawn(Position{X: 1}, Grabbed{By: "mouse"})
	free := storage.Spawn(Position{X: 2})
	storage.Spawn(Label("no position"))

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		Grab *Grabbed `ecs:"optional"`
	}](storage)

	seen := map[ecs.EntityId]string{}
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.EntityId)
		if item.Grab != nil {
			seen[id] = item.Grab.By
		} else {
			seen[id] = ""
		}
	}

	assert.Equal(t, map[ecs.EntityId]string{held: "mouse", free: ""}, seen)
}

func TestViewSkipsDeletedEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2})
	storage.Delete(a)

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
	}](storage)

	var ids []ecs.EntityId
	for item := range view.Values() {
		ids = append(ids, item.EntityId)
	}
	assert.Equal(t, []ecs.EntityId{b}, ids)
	assert.Nil(t, view.Get(a))
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 7})
	ref := storage.CreateEntityRef(id)

	view := ecs.NewView[struct{ *Position }](storage)
	require.NotNil(t, view.GetRef(ref))
	assert.Equal(t, 7.0, view.GetRef(ref).Position.X)

	storage.Delete(id)
	assert.Nil(t, view.GetRef(ref))
}

func TestViewRejectsBadStructs(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		ecs.NewView[Position](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct{ P Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}

func TestQueryRequiresExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	assert.Panics(t, func() {
		for range query.Iter() {
		}
	})

	storage.Spawn(Position{})
	storage.Spawn(Position{})
	query.Execute()
	assert.Equal(t, 2, query.Len())

	storage.Spawn(Position{}, Velocity{})
	query.Execute()
	assert.Equal(t, 3, query.Len(), "new archetypes are picked up on the next Execute")
}
