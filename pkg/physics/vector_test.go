package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func vecApproxEqual(a, b mgl64.Vec3, tol float64) bool {
	return math.Abs(a.X()-b.X()) < tol &&
		math.Abs(a.Y()-b.Y()) < tol &&
		math.Abs(a.Z()-b.Z()) < tol
}

func TestForward_IdentityOrientation(t *testing.T) {
	forward := Forward(mgl64.QuatIdent())
	if !vecApproxEqual(forward, UnitZ, epsilon) {
		t.Errorf("Forward(identity) = %v, want %v", forward, UnitZ)
	}
}

func TestForward_YawRotation(t *testing.T) {
	// 90 degrees about Y turns +Z into +X.
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	forward := Forward(q)
	want := mgl64.Vec3{1, 0, 0}
	if !vecApproxEqual(forward, want, 1e-9) {
		t.Errorf("Forward(yaw 90) = %v, want %v", forward, want)
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		incident mgl64.Vec3
		normal   mgl64.Vec3
		want     mgl64.Vec3
	}{
		{
			name:     "head-on reverses",
			incident: mgl64.Vec3{0, 0, -1},
			normal:   mgl64.Vec3{0, 0, 1},
			want:     mgl64.Vec3{0, 0, 1},
		},
		{
			name:     "45 degree glance",
			incident: mgl64.Vec3{1, -1, 0},
			normal:   mgl64.Vec3{0, 1, 0},
			want:     mgl64.Vec3{1, 1, 0},
		},
		{
			name:     "tangential unchanged",
			incident: mgl64.Vec3{1, 0, 0},
			normal:   mgl64.Vec3{0, 1, 0},
			want:     mgl64.Vec3{1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflect(tt.incident, tt.normal)
			if !vecApproxEqual(got, tt.want, epsilon) {
				t.Errorf("Reflect(%v, %v) = %v, want %v", tt.incident, tt.normal, got, tt.want)
			}
		})
	}
}

func TestRotationBetween_MapsVector(t *testing.T) {
	tests := []struct {
		name string
		from mgl64.Vec3
		to   mgl64.Vec3
	}{
		{"right angle", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}},
		{"opposite", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}},
		{"small angle", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0.1, 0, 1}.Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := RotationBetween(tt.from, tt.to)
			got := q.Rotate(tt.from)
			if !vecApproxEqual(got, tt.to, 1e-6) {
				t.Errorf("RotationBetween(%v, %v).Rotate = %v, want %v", tt.from, tt.to, got, tt.to)
			}
		})
	}
}

func TestClampMagnitude(t *testing.T) {
	tests := []struct {
		name  string
		v     float64
		limit float64
		want  float64
	}{
		{"within limit", 0.5, 1.0, 0.5},
		{"above limit", 2.0, 1.0, 1.0},
		{"below negative limit", -2.0, 1.0, -1.0},
		{"exact limit", 1.0, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampMagnitude(tt.v, tt.limit); got != tt.want {
				t.Errorf("ClampMagnitude(%f, %f) = %f, want %f", tt.v, tt.limit, got, tt.want)
			}
		})
	}
}

func TestLerpConvergesToTarget(t *testing.T) {
	v := 1.0
	for i := 0; i < 200; i++ {
		v = Lerp(v, 0, 0.1)
	}
	if math.Abs(v) > 1e-6 {
		t.Errorf("Lerp did not converge to 0, got %f", v)
	}
}
