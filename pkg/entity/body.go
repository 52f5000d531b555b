// Package entity defines the world objects the flight controller reads and
// mutates: the player craft, the massive bodies it flies among, and the
// craft's animated appendages.
package entity

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/physics"
)

// ID is a unique identifier for an entity.
type ID uint64

var nextID uint64

// GenerateID returns a process-unique entity ID.
func GenerateID() ID {
	return ID(atomic.AddUint64(&nextID, 1))
}

// BodyKind classifies a massive body.
type BodyKind int

const (
	Planet BodyKind = iota
	Moon
	Sun
	Ship
)

// String returns the kind name for logs and config files.
func (k BodyKind) String() string {
	switch k {
	case Planet:
		return "planet"
	case Moon:
		return "moon"
	case Sun:
		return "sun"
	case Ship:
		return "ship"
	default:
		return "unknown"
	}
}

// BodyKindFromString converts a config string to a BodyKind.
func BodyKindFromString(s string) BodyKind {
	switch s {
	case "moon":
		return Moon
	case "sun":
		return Sun
	case "ship":
		return Ship
	default:
		return Planet
	}
}

// Body is a read-only snapshot of one massive body supplied by the world.
// The controller never creates or destroys bodies, only queries them.
type Body struct {
	ID       ID
	Name     string
	Position mgl64.Vec3
	Radius   float64
	Kind     BodyKind
}

// Sphere returns the body's collision proxy.
func (b *Body) Sphere() physics.Sphere {
	return physics.Sphere{Center: b.Position, Radius: b.Radius}
}

// Enterable reports whether the craft can descend into a surface sub-scene
// on this body. Suns and ships have no surface to enter.
func (b *Body) Enterable() bool {
	return b.Kind == Planet || b.Kind == Moon
}
