package flight

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/entity"
	"github.com/opd-ai/go-starflight/pkg/input"
	"github.com/opd-ai/go-starflight/pkg/logging"
)

// Integrator advances the craft pose one fixed timestep per frame from the
// latched command vector. It is the only component that writes the pose
// outside of collision resolution.
type Integrator struct {
	logger   *logging.Logger
	notReady logging.OnceLogger
}

// NewIntegrator creates an integrator.
func NewIntegrator(logger *logging.Logger) *Integrator {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &Integrator{logger: logger}
}

// Integrate updates the craft orientation and position in place. A nil craft
// is tolerated (logged once, not fatal) so a scene may finish initializing
// while frames are already running.
func (in *Integrator) Integrate(craft *entity.Craft, commands input.CommandVector, session *SessionState, scene *config.SceneConfig) {
	if craft == nil {
		in.notReady.Warn(context.Background(), in.logger, "craft handle not ready, skipping integration")
		return
	}

	pose := &craft.Pose
	pose.Speed = speedFor(commands, session, scene)

	// Rotation is suppressed entirely while hyperspace is active; the
	// craft flies straight until the timer expires.
	if !session.Hyperspace.Active {
		applyRotation(pose, commands, scene)
	}

	pose.Position = pose.Position.Add(pose.Forward().Mul(pose.Speed))
}

// speedFor selects the frame's speed with the strict mode priority
// hyperspace > boost > brake > normal.
func speedFor(commands input.CommandVector, session *SessionState, scene *config.SceneConfig) float64 {
	switch {
	case session.Hyperspace.Active:
		return scene.BaseSpeed * scene.HyperspaceMultiplier
	case commands.Boost:
		return scene.BaseSpeed * scene.BoostMultiplier
	case commands.Brake:
		return scene.BaseSpeed * scene.BrakeMultiplier
	default:
		return scene.BaseSpeed
	}
}

// applyRotation composes the three single-axis incremental rotations in the
// fixed order roll * pitch * yaw and left-multiplies the result onto the
// current orientation.
func applyRotation(pose *entity.Pose, commands input.CommandVector, scene *config.SceneConfig) {
	var pitch, roll, yaw float64

	if commands.PitchForward {
		pitch += 1
	}
	if commands.PitchBack {
		pitch -= 1
	}
	if commands.RollLeft {
		roll += 1
	}
	if commands.RollRight {
		roll -= 1
	}
	if commands.YawLeft {
		yaw += 1
	}
	if commands.YawRight {
		yaw -= 1
	}

	if pitch == 0 && roll == 0 && yaw == 0 {
		return
	}

	pitch *= scene.TurnSpeed * scene.PitchSensitivity
	roll *= scene.TurnSpeed * scene.RollSensitivity
	yaw *= scene.TurnSpeed * scene.YawSensitivity

	qRoll := mgl64.QuatRotate(roll, mgl64.Vec3{0, 0, 1})
	qPitch := mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0})
	qYaw := mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0})

	delta := qRoll.Mul(qPitch).Mul(qYaw)
	pose.Orientation = delta.Mul(pose.Orientation).Normalize()
}
