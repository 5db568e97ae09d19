package puzzle

import "github.com/go-gl/mathgl/mgl64"

// Direction is a set of held movement keys.
type Direction uint8

const (
	MoveLeft Direction = 1 << iota
	MoveRight
	MoveUp
	MoveDown
	MoveForward
	MoveBack
)

// Vector sums the unit-axis deltas of the held directions.
func (d Direction) Vector() mgl64.Vec3 {
	var v mgl64.Vec3
	if d&MoveLeft != 0 {
		v[0]--
	}
	if d&MoveRight != 0 {
		v[0]++
	}
	if d&MoveUp != 0 {
		v[1]++
	}
	if d&MoveDown != 0 {
		v[1]--
	}
	if d&MoveForward != 0 {
		v[2]++
	}
	if d&MoveBack != 0 {
		v[2]--
	}
	return v
}

// RotationCommand is a one-shot signed quarter turn about a local axis.
type RotationCommand struct {
	Axis Axis
	Sign int
}

// The six rotation keys.
var (
	RotateLeft    = RotationCommand{Axis: AxisY, Sign: -1}
	RotateRight   = RotationCommand{Axis: AxisY, Sign: 1}
	RotateUp      = RotationCommand{Axis: AxisX, Sign: -1}
	RotateDown    = RotationCommand{Axis: AxisX, Sign: 1}
	RotateRollPos = RotationCommand{Axis: AxisZ, Sign: 1}
	RotateRollNeg = RotationCommand{Axis: AxisZ, Sign: -1}
)

// InputSample is everything the host observed for one frame. Pressed and
// Released are the designation edges (mouse down / up on a piece).
type InputSample struct {
	Move      Direction
	Rotations []RotationCommand
	Pressed   []PieceID
	Released  []PieceID
}

// Input is the singleton holding the current frame's sample.
type Input struct {
	Sample InputSample
}

// Steer returns the directions that move from toward to, leaving out any
// axis already within deadband.
func Steer(from, to mgl64.Vec3, deadband float64) Direction {
	var d Direction
	diff := to.Sub(from)
	switch {
	case diff.X() > deadband:
		d |= MoveRight
	case diff.X() < -deadband:
		d |= MoveLeft
	}
	switch {
	case diff.Y() > deadband:
		d |= MoveUp
	case diff.Y() < -deadband:
		d |= MoveDown
	}
	switch {
	case diff.Z() > deadband:
		d |= MoveForward
	case diff.Z() < -deadband:
		d |= MoveBack
	}
	return d
}
