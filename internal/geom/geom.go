// Package geom holds the transform types shared by the controller, the mover
// and the hosts. Angles are degrees, Y is up, +Z is forward.
package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Right   = mgl64.Vec3{1, 0, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

// Euler is an orientation in degrees: X is pitch, Y is yaw, Z is roll.
type Euler struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Quat composes roll, then pitch, then yaw.
func (e Euler) Quat() mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(e.Y), Up)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(e.X), Right)
	roll := mgl64.QuatRotate(mgl64.DegToRad(e.Z), Forward)
	return yaw.Mul(pitch).Mul(roll)
}

// Transform is a position and orientation relative to Parent, or to the
// world when Parent is nil.
type Transform struct {
	Position mgl64.Vec3
	Rotation Euler
	Parent   *Transform
}

func (t *Transform) WorldRotation() mgl64.Quat {
	if t == nil {
		return mgl64.QuatIdent()
	}
	return t.Parent.WorldRotation().Mul(t.Rotation.Quat())
}

func (t *Transform) WorldPosition() mgl64.Vec3 {
	if t == nil {
		return mgl64.Vec3{}
	}
	if t.Parent == nil {
		return t.Position
	}
	return t.Parent.WorldPosition().Add(t.Parent.WorldRotation().Rotate(t.Position))
}

// IsChildOf reports whether ancestor appears anywhere above t.
func (t *Transform) IsChildOf(ancestor *Transform) bool {
	if t == nil || ancestor == nil {
		return false
	}
	for p := t.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// TransformDirection rotates a local-space vector into world space. Scale
// and position do not apply.
func (t *Transform) TransformDirection(v mgl64.Vec3) mgl64.Vec3 {
	if t == nil {
		return v
	}
	return t.WorldRotation().Rotate(v)
}

// Forward returns the world-space direction the transform faces.
func (t *Transform) Forward() mgl64.Vec3 {
	return t.TransformDirection(Forward)
}

func FormatQuat(q mgl64.Quat) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f, %.1f)", q.V[0], q.V[1], q.V[2], q.W)
}

func FormatVec3(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
