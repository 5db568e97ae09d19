package puzzle

import (
	"fmt"

	"github.com/plus3/snapfit/ecs"
)

// PieceID identifies a piece within one World. Zero is never assigned.
type PieceID uint32

func (id PieceID) String() string {
	return fmt.Sprintf("piece-%d", uint32(id))
}

// Piece tags an entity as a puzzle piece.
type Piece struct {
	ID    PieceID
	Name  string
	Color [3]uint8
}

// registerComponents adds every puzzle component type to registry.
func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Piece](registry)
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Placement](registry)
	ecs.RegisterComponent[Rotator](registry)
}

// pieceItem is the full projection of a piece entity. Rotator is optional so
// a placement-only piece still matches.
type pieceItem struct {
	ecs.EntityId
	Piece     *Piece
	Transform *Transform
	Placement *Placement
	Rotator   *Rotator `ecs:"optional"`
}

// PieceState is a read-only snapshot of one piece.
type PieceState struct {
	ID       PieceID
	Name     string
	Color    [3]uint8
	Pose     Pose
	Correct  Pose
	Spawn    Pose
	Distance float64
	Dragging bool
	Selected bool
	Snapped  bool
	Counted  bool
}

func (item *pieceItem) state() PieceState {
	st := PieceState{
		ID:       item.Piece.ID,
		Name:     item.Piece.Name,
		Color:    item.Piece.Color,
		Pose:     item.Transform.Pose(),
		Correct:  item.Placement.Correct,
		Spawn:    item.Placement.Spawn,
		Distance: item.Placement.Distance(item.Transform),
		Dragging: item.Placement.Dragging,
		Snapped:  item.Placement.Snapped,
		Counted:  item.Placement.Counted,
	}
	if item.Rotator != nil {
		st.Selected = item.Rotator.Selected
	}
	return st
}
