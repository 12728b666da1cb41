package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approxVec(t *testing.T, got, want mgl64.Vec3, field string) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("%s = %v, want %v", field, got, want)
		}
	}
}

func TestTransformDirection_YawTurnsForwardToRight(t *testing.T) {
	tr := &Transform{Rotation: Euler{Y: 90}}

	approxVec(t, tr.TransformDirection(Forward), mgl64.Vec3{1, 0, 0}, "forward")
	approxVec(t, tr.TransformDirection(Right), mgl64.Vec3{0, 0, -1}, "right")
}

func TestTransformDirection_IgnoresPosition(t *testing.T) {
	tr := &Transform{Position: mgl64.Vec3{5, 6, 7}}
	approxVec(t, tr.TransformDirection(mgl64.Vec3{1, 0, 2}), mgl64.Vec3{1, 0, 2}, "direction")
}

func TestTransformDirection_NilTransformIsIdentity(t *testing.T) {
	var tr *Transform
	approxVec(t, tr.TransformDirection(Forward), Forward, "direction")
}

func TestEulerQuat(t *testing.T) {
	tests := []struct {
		name  string
		euler Euler
		want  string
	}{
		{"identity", Euler{}, "(0.0, 0.0, 0.0, 1.0)"},
		{"yaw 180", Euler{Y: 180}, "(0.0, 1.0, 0.0, 0.0)"},
		{"pitch 90", Euler{X: 90}, "(0.7, 0.0, 0.0, 0.7)"},
		{"yaw 90", Euler{Y: 90}, "(0.0, 0.7, 0.0, 0.7)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatQuat(tt.euler.Quat()); got != tt.want {
				t.Fatalf("FormatQuat(%+v) = %s, want %s", tt.euler, got, tt.want)
			}
		})
	}
}

func TestEulerQuat_PitchAppliesInsideYaw(t *testing.T) {
	tr := &Transform{Rotation: Euler{X: 90, Y: 90}}
	// Pitching +90 looks straight down regardless of yaw.
	approxVec(t, tr.Forward(), mgl64.Vec3{0, -1, 0}, "forward")
}

func TestAABBIntersects(t *testing.T) {
	unit := Box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	tests := []struct {
		name  string
		other AABB
		want  bool
	}{
		{"overlap", Box(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{2, 2, 2}), true},
		{"touching face", Box(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 1, 1}), false},
		{"apart", Box(mgl64.Vec3{3, 3, 3}, mgl64.Vec3{4, 4, 4}), false},
		{"contained", Box(mgl64.Vec3{0.2, 0.2, 0.2}, mgl64.Vec3{0.4, 0.4, 0.4}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unit.Intersects(tt.other); got != tt.want {
				t.Fatalf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBExtend(t *testing.T) {
	b := Box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}).Extend(mgl64.Vec3{2, -1, 0})
	approxVec(t, b.Min, mgl64.Vec3{0, -1, 0}, "min")
	approxVec(t, b.Max, mgl64.Vec3{3, 1, 1}, "max")
}

func TestChildTransform(t *testing.T) {
	player := &Transform{Position: mgl64.Vec3{1, 0, 1}, Rotation: Euler{Y: 90}}
	camera := &Transform{Position: mgl64.Vec3{0, 1.6, 0.5}, Rotation: Euler{X: 30}, Parent: player}

	approxVec(t, camera.WorldPosition(), mgl64.Vec3{1.5, 1.6, 1}, "camera world position")
	if !camera.IsChildOf(player) || player.IsChildOf(camera) {
		t.Fatal("IsChildOf mismatch")
	}

	want := player.Rotation.Quat().Mul(camera.Rotation.Quat())
	if got := camera.WorldRotation(); !got.ApproxEqual(want) {
		t.Fatalf("WorldRotation = %v, want %v", got, want)
	}
	// Yaw from the parent still turns the camera's forward.
	fwd := camera.Forward()
	if fwd[0] <= 0 || math.Abs(fwd[2]) > 1e-9 {
		t.Fatalf("camera forward = %v, want +X with downward tilt", fwd)
	}
}
