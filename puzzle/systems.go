package puzzle

import "github.com/plus3/snapfit/ecs"

// SessionTimerSystem advances the frame counter and the session countdown.
// It runs first, so a timeout is decided before any piece moves that frame.
type SessionTimerSystem struct {
	Session ecs.Singleton[Session]
	Journal ecs.Singleton[Journal]
}

func (s *SessionTimerSystem) Execute(frame *ecs.UpdateFrame) {
	journal := s.Journal.Get()
	journal.Frame++

	session := s.Session.Get()
	before := session.Phase
	session.Tick(frame.DeltaTime)
	if before == PhaseRunning && session.Phase == PhaseLost {
		journal.Record(Event{Kind: EventSessionLost, Remaining: session.Remaining, Correct: session.Correct})
	}
}

// InputSystem applies designation edges and rotation commands from the
// frame's InputSample.
type InputSystem struct {
	Input   ecs.Singleton[Input]
	Session ecs.Singleton[Session]

	Pieces ecs.Query[struct {
		*Piece
		Placement *Placement `ecs:"optional"`
		Rotator   *Rotator   `ecs:"optional"`
	}]
	Rotators ecs.Query[struct{ *Rotator }]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	sample := &s.Input.Get().Sample

	if len(sample.Pressed) > 0 || len(sample.Released) > 0 {
		for item := range s.Pieces.Values() {
			active, ok := designation(sample, item.Piece.ID)
			if !ok {
				continue
			}
			if item.Placement != nil {
				item.Placement.SetDragging(active)
			}
			if item.Rotator != nil {
				item.Rotator.SetSelected(active)
			}
		}
	}

	if s.Session.Get().Phase != PhaseRunning {
		return
	}
	for _, cmd := range sample.Rotations {
		for item := range s.Rotators.Values() {
			item.Rotator.OnRotationCommand(cmd)
		}
	}
}

// designation reports the final edge for id in this sample. A release wins
// over a press in the same frame.
func designation(sample *InputSample, id PieceID) (active, ok bool) {
	for _, p := range sample.Pressed {
		if p == id {
			active, ok = true, true
		}
	}
	for _, r := range sample.Released {
		if r == id {
			active, ok = false, true
		}
	}
	return active, ok
}

// PlacementSystem moves dragged pieces and snaps pieces near their correct
// pose, reporting each first snap to the session.
type PlacementSystem struct {
	Session ecs.Singleton[Session]
	Input   ecs.Singleton[Input]
	Journal ecs.Singleton[Journal]

	Pieces ecs.Query[pieceItem]
}

func (s *PlacementSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.Phase != PhaseRunning {
		return
	}
	journal := s.Journal.Get()
	move := s.Input.Get().Sample.Move.Vector()

	for item := range s.Pieces.Values() {
		if session.Phase != PhaseRunning {
			return
		}
		if !item.Placement.Tick(item.Transform, frame.DeltaTime, move) {
			continue
		}
		if item.Rotator != nil {
			item.Rotator.Align(item.Transform.Orientation)
		}

		session.OnObjectPlaced()
		journal.Record(Event{Kind: EventPiecePlaced, Piece: item.Piece.ID, Remaining: session.Remaining, Correct: session.Correct})
		if session.Phase == PhaseWon {
			journal.Record(Event{Kind: EventSessionWon, Remaining: session.Remaining, Correct: session.Correct})
		}
	}
}

// RotationSystem eases every rotator's transform toward its target.
type RotationSystem struct {
	Session ecs.Singleton[Session]

	Rotators ecs.Query[struct {
		*Rotator
		*Transform
	}]
}

func (s *RotationSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Session.Get().Phase != PhaseRunning {
		return
	}
	for item := range s.Rotators.Values() {
		item.Rotator.Tick(item.Transform, frame.DeltaTime)
	}
}
