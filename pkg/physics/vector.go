// Package physics provides the 3D math helpers and collision resolution used
// by the flight controller. Vector and quaternion types come from
// go-gl/mathgl's mgl64 package; this package adds the handful of operations
// the simulator needs on top of them.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// UnitZ is the craft-local forward axis.
var UnitZ = mgl64.Vec3{0, 0, 1}

// Forward returns the craft-local forward axis rotated into world space.
func Forward(orientation mgl64.Quat) mgl64.Vec3 {
	return orientation.Rotate(UnitZ)
}

// Reflect mirrors the incident vector about the unit normal n.
func Reflect(incident, n mgl64.Vec3) mgl64.Vec3 {
	return incident.Sub(n.Mul(2 * incident.Dot(n)))
}

// RotationBetween returns the quaternion that rotates unit vector a onto
// unit vector b. Antiparallel inputs are handled by mathgl's fallback axis.
func RotationBetween(a, b mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatBetweenVectors(a, b)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// ClampMagnitude limits the absolute value of v to limit, preserving sign.
// Camera smoothing uses it to cap look offsets and banking rotation.
func ClampMagnitude(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// Lerp linearly interpolates from a toward b by factor t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates each component of a toward b by factor t.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
