package puzzle

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

var quarterAngles = [...]float64{0, 90, 180, 270}

// Placement is the drag-and-snap state of one piece. The piece's live pose
// is its Transform; Placement owns the correct and spawn poses.
type Placement struct {
	Correct Pose
	Spawn   Pose

	Dragging bool
	// Snapped is sticky: once set it only clears through Reset or a new
	// session.
	Snapped bool
	// Counted marks that this piece already reported a placement in the
	// current session.
	Counted bool
	// Anchored is set once Correct has been recorded.
	Anchored bool

	MoveSpeed    float64
	SnapDistance float64
	SnapSpeed    float64
	SnapEpsilon  float64
}

// NewPlacement returns an unanchored placement using cfg's tuning.
func NewPlacement(cfg Config) Placement {
	return Placement{
		MoveSpeed:    cfg.MoveSpeed,
		SnapDistance: cfg.SnapDistance,
		SnapSpeed:    cfg.SnapSpeed,
		SnapEpsilon:  cfg.SnapEpsilon,
	}
}

// OnSessionStart records the current pose as the correct pose (first call
// only), draws a new spawn pose inside bounds and moves the piece there.
func (p *Placement) OnSessionStart(t *Transform, rng *rand.Rand, bounds SpawnBounds) {
	if !p.Anchored {
		p.Correct = t.Pose()
		p.Anchored = true
	}

	p.Spawn = Pose{
		Position: mgl64.Vec3{
			uniform(rng, -bounds.HalfExtent, bounds.HalfExtent),
			uniform(rng, bounds.MinY, bounds.MaxY),
			uniform(rng, -bounds.HalfExtent, bounds.HalfExtent),
		},
		Orientation: EulerDegrees(
			quarterAngles[rng.IntN(len(quarterAngles))],
			quarterAngles[rng.IntN(len(quarterAngles))],
			quarterAngles[rng.IntN(len(quarterAngles))],
		),
	}

	t.Set(p.Spawn)
	p.Snapped = false
	p.Counted = false
}

// SetDragging turns drag input on or off for this piece.
func (p *Placement) SetDragging(active bool) {
	p.Dragging = active
}

// Distance is how far the piece is from its correct position.
func (p *Placement) Distance(t *Transform) float64 {
	return p.Correct.Position.Sub(t.Position).Len()
}

// Tick applies one frame of drag movement and magnetic snapping. It returns
// true the first time in a session the piece locks onto its correct pose.
func (p *Placement) Tick(t *Transform, dt float64, move mgl64.Vec3) bool {
	if p.Dragging {
		t.Position = t.Position.Add(move.Mul(p.MoveSpeed * dt))
	}

	if p.Snapped || p.Distance(t) >= p.SnapDistance {
		return false
	}

	t.Position = lerpVec(t.Position, p.Correct.Position, p.SnapSpeed*dt)
	if p.Distance(t) >= p.SnapEpsilon {
		return false
	}

	t.Set(p.Correct)
	p.Snapped = true
	if p.Counted {
		return false
	}
	p.Counted = true
	return true
}

// Reset puts the piece back on its spawn pose and clears Snapped. It does
// not touch Counted, so a reset piece is never counted twice in a session.
func (p *Placement) Reset(t *Transform) {
	t.Set(p.Spawn)
	p.Snapped = false
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
