package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/physics"
)

// Pose is the craft's kinematic state: position, orientation and scalar
// speed. It is exclusively owned by the kinematics integrator; the collision
// resolver mutates it in place during the same frame, and everything else
// reads it only.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Speed       float64
}

// Forward returns the pose's world-space forward vector.
func (p *Pose) Forward() mgl64.Vec3 {
	return physics.Forward(p.Orientation)
}

// Steerable is the capability interface for craft variants that carry a
// switchable cockpit view. Dispatch is a typed interface call rather than a
// runtime existence probe.
type Steerable interface {
	ToggleView()
	UpdateCockpit(commands CockpitInput)
}

// CockpitInput carries the per-frame command summary a cockpit overlay needs.
type CockpitInput struct {
	Boost bool
	Brake bool
	Fire  bool
}

// Craft is the player-controlled vehicle.
type Craft struct {
	ID   ID
	Name string
	Pose Pose

	// BoundingRadius is the craft's collision radius against terrain.
	BoundingRadius float64

	// Wings animates the four appendages; hyperspace and boost drive it.
	Wings *WingAnimator

	// Cockpit tracks whether the first-person view is active on this craft;
	// the camera rig consults the session view mode, this flag only gates
	// the cockpit overlay.
	Cockpit bool

	throttleIndicator float64
}

// NewCraft creates a craft at the given position, facing +Z at rest.
func NewCraft(name string, position mgl64.Vec3, wings *WingAnimator) *Craft {
	return &Craft{
		ID:   GenerateID(),
		Name: name,
		Pose: Pose{
			Position:    position,
			Orientation: mgl64.QuatIdent(),
		},
		BoundingRadius: 12,
		Wings:          wings,
	}
}

// ToggleView implements Steerable. Calling it twice returns to the original
// view; the camera rig keeps its own smoothing state across toggles.
func (c *Craft) ToggleView() {
	c.Cockpit = !c.Cockpit
}

// UpdateCockpit implements Steerable. It advances the cockpit overlay's
// throttle indicator toward the current command state.
func (c *Craft) UpdateCockpit(commands CockpitInput) {
	if !c.Cockpit {
		return
	}
	target := 0.5
	if commands.Boost {
		target = 1.0
	} else if commands.Brake {
		target = 0.1
	}
	c.throttleIndicator = physics.Lerp(c.throttleIndicator, target, 0.2)
}

// ThrottleIndicator returns the smoothed cockpit throttle gauge in [0,1].
func (c *Craft) ThrottleIndicator() float64 {
	return c.throttleIndicator
}
