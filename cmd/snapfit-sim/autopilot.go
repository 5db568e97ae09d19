package main

import "github.com/plus3/snapfit/puzzle"

const steerDeadband = 0.05

// autopilot grabs each target in turn and steers it onto its correct
// position until it snaps.
type autopilot struct {
	world   *puzzle.World
	targets []puzzle.PieceID
	next    int
	held    bool
}

func newAutopilot(world *puzzle.World, targets []puzzle.PieceID) *autopilot {
	return &autopilot{world: world, targets: targets}
}

// Done reports whether every target has been handled.
func (a *autopilot) Done() bool {
	return a.next >= len(a.targets)
}

// Next builds the input sample for the coming frame.
func (a *autopilot) Next() puzzle.InputSample {
	var sample puzzle.InputSample
	for !a.Done() {
		id := a.targets[a.next]
		st, err := a.world.Piece(id)
		if err != nil || st.Snapped {
			if a.held {
				sample.Released = append(sample.Released, id)
				a.held = false
			}
			a.next++
			continue
		}
		if !a.held {
			sample.Pressed = append(sample.Pressed, id)
			a.held = true
		}
		sample.Move = puzzle.Steer(st.Pose.Position, st.Correct.Position, steerDeadband)
		break
	}
	return sample
}
