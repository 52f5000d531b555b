// Package camera implements the cinematic chase/cockpit camera rig. The rig
// derives all of its targets from the live command vector and mode flags
// every frame, and carries no memory beyond its smoothing state, so
// releasing a key always drives the corresponding offset back to zero.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/entity"
	"github.com/opd-ai/go-starflight/pkg/input"
	"github.com/opd-ai/go-starflight/pkg/physics"
)

// ModeFlags is the per-frame mode summary the rig consults. The controller
// derives it from the session state and command vector.
type ModeFlags struct {
	Hyperspace bool
	Boost      bool
	Brake      bool
	Cockpit    bool
}

// Pose is the final camera placement written out each frame.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	FOV         float64
}

// State holds the rig's smoothing state. One instance exists per active
// scene and is never shared between scenes.
type State struct {
	currentOffset mgl64.Vec3

	currentPitchOffset float64
	currentYawOffset   float64

	currentLocalPitch float64
	currentLocalYaw   float64

	currentFOV float64
}

// Rig owns a CameraState and updates it once per frame from the craft pose.
type Rig struct {
	cfg   config.CameraConfig
	state State
}

// NewRig creates a rig resting at the chase-view base offset.
func NewRig(cfg config.CameraConfig) *Rig {
	return &Rig{
		cfg: cfg,
		state: State{
			currentOffset: offsetVec(cfg.Chase.Base),
			currentFOV:    cfg.BaseFOV,
		},
	}
}

// Update runs the rig's three smoothing filters and returns the final camera
// pose. It must be called after collision resolution so the camera is never
// computed from a pre-collision position.
func (r *Rig) Update(pose entity.Pose, commands input.CommandVector, flags ModeFlags) Pose {
	cfg := r.cfg

	// Filter 1: position offset eases toward the table entry for the
	// current view and speed mode. A view toggle changes only which table
	// is consulted, never the smoothing state, so the camera eases into
	// the new view instead of snapping.
	target := r.targetOffset(flags)
	r.state.currentOffset = physics.LerpVec3(r.state.currentOffset, target, cfg.TransitionSpeed)

	// Filter 2: global look offset from the active turn input, capped and
	// lagged. Released keys drive the targets back to zero.
	var targetPitch, targetYaw float64
	if commands.PitchForward {
		targetPitch -= cfg.MaxLookOffset
	}
	if commands.PitchBack {
		targetPitch += cfg.MaxLookOffset
	}
	if commands.YawLeft {
		targetYaw += cfg.MaxLookOffset
	}
	if commands.YawRight {
		targetYaw -= cfg.MaxLookOffset
	}
	r.state.currentPitchOffset = physics.ClampMagnitude(
		physics.Lerp(r.state.currentPitchOffset, targetPitch, cfg.LagFactor), cfg.MaxLookOffset)
	r.state.currentYawOffset = physics.ClampMagnitude(
		physics.Lerp(r.state.currentYawOffset, targetYaw, cfg.LagFactor), cfg.MaxLookOffset)

	// Filter 3: local micro-rotation, the banking layer. Roll input tilts
	// the camera around the craft's forward-relative axes.
	var targetLocalPitch, targetLocalYaw float64
	if commands.PitchForward {
		targetLocalPitch += cfg.MaxLocalRotation
	}
	if commands.PitchBack {
		targetLocalPitch -= cfg.MaxLocalRotation
	}
	if commands.RollLeft {
		targetLocalYaw -= cfg.MaxLocalRotation
	}
	if commands.RollRight {
		targetLocalYaw += cfg.MaxLocalRotation
	}
	r.state.currentLocalPitch = physics.ClampMagnitude(
		physics.Lerp(r.state.currentLocalPitch, targetLocalPitch, cfg.LocalRotationSpeed), cfg.MaxLocalRotation)
	r.state.currentLocalYaw = physics.ClampMagnitude(
		physics.Lerp(r.state.currentLocalYaw, targetLocalYaw, cfg.LocalRotationSpeed), cfg.MaxLocalRotation)

	r.state.currentFOV = physics.Lerp(r.state.currentFOV, r.targetFOV(flags), cfg.FOVSpeed)

	return r.compose(pose)
}

// compose builds the final camera pose from the craft pose and the smoothed
// rig state.
func (r *Rig) compose(pose entity.Pose) Pose {
	localRot := mgl64.QuatRotate(r.state.currentLocalPitch, mgl64.Vec3{1, 0, 0}).
		Mul(mgl64.QuatRotate(r.state.currentLocalYaw, mgl64.Vec3{0, 1, 0}))

	// Camera position: craft world transform applied to the local-rotated
	// offset vector.
	position := pose.Position.Add(pose.Orientation.Rotate(localRot.Rotate(r.state.currentOffset)))

	// Camera orientation: craft orientation, then the global look offsets,
	// then the banking layer, then the fixed 180 degree flip that turns
	// the behind-the-craft offset into a forward-looking view.
	orientation := pose.Orientation.
		Mul(mgl64.QuatRotate(r.state.currentYawOffset, mgl64.Vec3{0, 1, 0})).
		Mul(mgl64.QuatRotate(r.state.currentPitchOffset, mgl64.Vec3{1, 0, 0})).
		Mul(localRot).
		Mul(mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0})).
		Normalize()

	return Pose{
		Position:    position,
		Orientation: orientation,
		FOV:         r.state.currentFOV,
	}
}

// targetOffset selects the offset table entry for the current view mode and
// speed mode, mirroring the integrator's speed priority.
func (r *Rig) targetOffset(flags ModeFlags) mgl64.Vec3 {
	table := r.cfg.Chase
	if flags.Cockpit {
		table = r.cfg.Cockpit
	}
	switch {
	case flags.Hyperspace:
		return offsetVec(table.Hyperspace)
	case flags.Boost:
		return offsetVec(table.Boost)
	case flags.Brake:
		return offsetVec(table.Brake)
	default:
		return offsetVec(table.Base)
	}
}

// targetFOV widens the view under boost and hyperspace.
func (r *Rig) targetFOV(flags ModeFlags) float64 {
	switch {
	case flags.Hyperspace:
		return r.cfg.HyperspaceFOV
	case flags.Boost:
		return r.cfg.BoostFOV
	default:
		return r.cfg.BaseFOV
	}
}

// PitchOffset returns the smoothed global pitch look offset.
func (r *Rig) PitchOffset() float64 {
	return r.state.currentPitchOffset
}

// YawOffset returns the smoothed global yaw look offset.
func (r *Rig) YawOffset() float64 {
	return r.state.currentYawOffset
}

// Offset returns the smoothed craft-local camera offset.
func (r *Rig) Offset() mgl64.Vec3 {
	return r.state.currentOffset
}

// FOV returns the smoothed field of view.
func (r *Rig) FOV() float64 {
	return r.state.currentFOV
}

func offsetVec(o config.Offset) mgl64.Vec3 {
	return mgl64.Vec3{o[0], o[1], o[2]}
}
