// Package flight implements the flight dynamics and scene-transition
// controller: per-frame craft kinematics from the latched command vector,
// collision response against massive bodies and terrain, the camera rig
// hookup, surface entry/exit with hysteresis, and the hyperspace overdrive.
//
// All components run synchronously once per render frame in a fixed order;
// there is no locking because there is a single logical thread of execution.
package flight

import (
	"time"

	"github.com/opd-ai/go-starflight/pkg/entity"
)

// GameMode is the session's top-level scene state.
type GameMode int

const (
	// ModeMenu is the start/menu state before the first flight.
	ModeMenu GameMode = iota
	// ModeSpace is open flight among the massive bodies.
	ModeSpace
	// ModeSurface is a planet or moon surface sub-scene.
	ModeSurface
)

// String returns the mode name for logs.
func (m GameMode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeSpace:
		return "space"
	case ModeSurface:
		return "surface"
	default:
		return "unknown"
	}
}

// HyperspaceState tracks the overdrive mode. Active can only become true
// from a fully-false state; a second activation attempt while active is a
// no-op, not an error.
type HyperspaceState struct {
	Active    bool
	StartTime time.Time
	Duration  time.Duration
}

// SessionState is the cross-cutting mode state every component consults.
// It is passed explicitly into each component call; there are no hidden
// package-level singletons.
type SessionState struct {
	Mode GameMode

	// Cockpit selects the first-person camera offset table when true.
	Cockpit bool

	Hyperspace HyperspaceState

	// ActiveSurface is the body whose surface sub-scene is authoritative
	// while Mode is ModeSurface; zero otherwise.
	ActiveSurface entity.ID
}

// NewSessionState returns a session resting in the menu.
func NewSessionState() *SessionState {
	return &SessionState{Mode: ModeMenu}
}

// InFlight reports whether the player has left the menu.
func (s *SessionState) InFlight() bool {
	return s.Mode == ModeSpace || s.Mode == ModeSurface
}
