package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Sphere is the collision proxy for a massive body.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Contains reports whether the point penetrates the sphere inflated by threshold.
func (s Sphere) Contains(point mgl64.Vec3, threshold float64) bool {
	return Distance(point, s.Center) < s.Radius+threshold
}

// BounceConfig tunes the sphere collision response.
type BounceConfig struct {
	// Threshold inflates the sphere so the craft never visually clips the surface.
	Threshold float64
	// Pushback is the extra clearance added when repositioning a penetrating craft.
	Pushback float64
	// Damping scales speed after a bounce. Must be < 1.
	Damping float64
}

// SphereHit is the outcome of resolving a tentative position against a sphere.
// When Collided is false the input pose is returned unchanged.
type SphereHit struct {
	Collided    bool
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Speed       float64
	Normal      mgl64.Vec3
}

// ResolveSphere tests the tentative position against the sphere. On
// penetration it repositions the craft outside the inflated surface along the
// outward radial, reflects the heading about the radial normal, and damps the
// speed. The caller applies the returned pose in place of the tentative one.
func ResolveSphere(next mgl64.Vec3, orientation mgl64.Quat, speed float64, s Sphere, cfg BounceConfig) SphereHit {
	delta := next.Sub(s.Center)
	dist := delta.Len()

	if dist >= s.Radius+cfg.Threshold {
		return SphereHit{
			Collided:    false,
			Position:    next,
			Orientation: orientation,
			Speed:       speed,
		}
	}

	normal := mgl64.Vec3{0, 1, 0}
	if dist > 0 {
		normal = delta.Mul(1 / dist)
	}

	position := s.Center.Add(normal.Mul(s.Radius + cfg.Threshold + cfg.Pushback))

	incident := Forward(orientation)
	reflected := Reflect(incident, normal).Normalize()
	turn := RotationBetween(incident, reflected)

	return SphereHit{
		Collided:    true,
		Position:    position,
		Orientation: turn.Mul(orientation).Normalize(),
		Speed:       speed * cfg.Damping,
		Normal:      normal,
	}
}
