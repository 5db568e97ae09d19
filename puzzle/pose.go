package puzzle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a position plus a unit-quaternion orientation.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewPose returns a pose at position with identity orientation.
func NewPose(position mgl64.Vec3) Pose {
	return Pose{Position: position, Orientation: mgl64.QuatIdent()}
}

// Transform is the live pose of an entity in the scene.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Pose returns the transform as a Pose value.
func (t *Transform) Pose() Pose {
	return Pose{Position: t.Position, Orientation: t.Orientation}
}

// Set overwrites the transform with p.
func (t *Transform) Set(p Pose) {
	t.Position = p.Position
	t.Orientation = p.Orientation
}

// Axis is one of the three local rotation axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vec returns the unit vector of the axis.
func (a Axis) Vec() mgl64.Vec3 {
	switch a {
	case AxisX:
		return mgl64.Vec3{1, 0, 0}
	case AxisY:
		return mgl64.Vec3{0, 1, 0}
	default:
		return mgl64.Vec3{0, 0, 1}
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}

// QuarterTurn is a signed 90 degree rotation about axis.
func QuarterTurn(axis Axis, sign int) mgl64.Quat {
	angle := math.Pi / 2
	if sign < 0 {
		angle = -angle
	}
	return mgl64.QuatRotate(angle, axis.Vec())
}

// EulerDegrees builds an orientation from per-axis angles, applying Z first,
// then X, then Y.
func EulerDegrees(x, y, z float64) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(x), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(mgl64.DegToRad(y), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(z), mgl64.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz).Normalize()
}

// SameOrientation reports whether a and b describe the same rotation within
// eps. q and -q are the same rotation.
func SameOrientation(a, b mgl64.Quat, eps float64) bool {
	return 1-math.Abs(a.Normalize().Dot(b.Normalize())) <= eps
}

func clamp01(t float64) float64 {
	return mgl64.Clamp(t, 0, 1)
}

func lerpVec(from, to mgl64.Vec3, t float64) mgl64.Vec3 {
	return from.Add(to.Sub(from).Mul(clamp01(t)))
}

// slerpShortest interpolates along the shorter arc between from and to.
func slerpShortest(from, to mgl64.Quat, t float64) mgl64.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, clamp01(t)).Normalize()
}
