package puzzle

import "github.com/go-gl/mathgl/mgl64"

// Rotator turns an entity in 90 degree steps while it is selected and eases
// the visible orientation toward the accumulated target every frame.
type Rotator struct {
	Selected bool
	Target   mgl64.Quat
	Speed    float64
}

// NewRotator returns a rotator with an identity target.
func NewRotator(speed float64) Rotator {
	return Rotator{Target: mgl64.QuatIdent(), Speed: speed}
}

// SetSelected toggles whether rotation commands are accepted.
func (r *Rotator) SetSelected(active bool) {
	r.Selected = active
}

// Align replaces the target, used when something else sets the orientation.
func (r *Rotator) Align(q mgl64.Quat) {
	r.Target = q
}

// OnRotationCommand composes a quarter turn about the local axis onto the
// target. Ignored unless selected.
func (r *Rotator) OnRotationCommand(cmd RotationCommand) bool {
	if !r.Selected {
		return false
	}
	r.Target = r.Target.Mul(QuarterTurn(cmd.Axis, cmd.Sign)).Normalize()
	return true
}

// Tick moves t's orientation a Speed*dt fraction of the way to the target.
func (r *Rotator) Tick(t *Transform, dt float64) {
	t.Orientation = slerpShortest(t.Orientation, r.Target, r.Speed*dt)
}
