package flight

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/camera"
	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/effects"
	"github.com/opd-ai/go-starflight/pkg/entity"
	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/input"
	"github.com/opd-ai/go-starflight/pkg/logging"
	"github.com/opd-ai/go-starflight/pkg/physics"
)

// World is the read-only query boundary the surrounding game supplies. It is
// called once per frame; the controller never creates or destroys what it
// returns.
type World interface {
	// ListBodies returns the massive bodies in the current system.
	ListBodies() []*entity.Body
	// Craft returns the player craft handle, or nil while the scene is
	// still initializing.
	Craft() *entity.Craft
	// Camera returns the camera handle, or nil while initializing.
	Camera() CameraHandle
}

// CameraHandle receives the final camera pose each frame; the renderer
// consumes it to draw.
type CameraHandle interface {
	SetPose(camera.Pose)
}

// Controller owns the fixed per-frame pipeline: integrate kinematics,
// resolve collisions, update the camera rig and wing animator, then run the
// proximity and hyperspace machines. The camera is never computed from a
// pre-collision position.
type Controller struct {
	cfg     *config.Config
	world   World
	latch   *input.Latch
	session *SessionState

	integrator  *Integrator
	transitions *TransitionMachine
	hyperspace  *Hyperspace

	// One rig per scene kind; smoothing state is never shared across
	// scenes.
	spaceRig   *camera.Rig
	surfaceRig *camera.Rig

	// terrainRaycast feeds the surface-scene collision probes; nil reads
	// as "no terrain loaded yet".
	terrainRaycast physics.RaycastFunc

	bus    *event.Bus
	logger *logging.Logger

	notReady   logging.OnceLogger
	toggleHeld bool
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Config  *config.Config
	World   World
	Latch   *input.Latch
	Bus     *event.Bus
	Effects effects.Service
	Logger  *logging.Logger

	// TerrainRaycast supplies terrain geometry probes for surface scenes.
	TerrainRaycast physics.RaycastFunc

	// Now is injectable for deterministic tests; nil means time.Now.
	Now func() time.Time
}

// NewController wires the flight pipeline together.
func NewController(opts ControllerOptions) *Controller {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger()
	}
	latch := opts.Latch
	if latch == nil {
		latch = input.NewLatch(nil)
	}

	session := NewSessionState()
	return &Controller{
		cfg:            cfg,
		world:          opts.World,
		latch:          latch,
		session:        session,
		integrator:     NewIntegrator(logger),
		transitions:    NewTransitionMachine(cfg.Transition, opts.Effects, opts.Bus, logger, opts.Now),
		hyperspace:     NewHyperspace(cfg.Hyperspace, opts.Effects, opts.Bus, latch, logger, opts.Now),
		spaceRig:       camera.NewRig(cfg.Space.Camera),
		surfaceRig:     camera.NewRig(cfg.Surface.Camera),
		terrainRaycast: opts.TerrainRaycast,
		bus:            opts.Bus,
		logger:         logger,
	}
}

// Session exposes the session state to the surrounding game loop.
func (c *Controller) Session() *SessionState {
	return c.session
}

// Latch exposes the input latch so the input source can feed key events.
func (c *Controller) Latch() *input.Latch {
	return c.latch
}

// Transitions exposes the proximity machine, mainly for inspection.
func (c *Controller) Transitions() *TransitionMachine {
	return c.transitions
}

// Hyperspace exposes the hyperspace controller, mainly for the renderer's
// streak pass.
func (c *Controller) Hyperspace() *Hyperspace {
	return c.hyperspace
}

// Frame runs one synchronous simulation step. Components execute in the
// fixed order: input snapshot, integrate, resolve, camera, wings, proximity,
// hyperspace timeline.
func (c *Controller) Frame() {
	commands := c.latch.Snapshot()

	if !c.session.InFlight() {
		return
	}

	craft := c.world.Craft()
	if craft == nil {
		c.notReady.Warn(context.Background(), c.logger, "world craft handle not ready")
		return
	}

	// Edge-detect the view toggle so holding the key flips once.
	if commands.ToggleView && !c.toggleHeld {
		c.ToggleView()
	}
	c.toggleHeld = commands.ToggleView

	scene := c.sceneConfig()
	prev := craft.Pose.Position

	c.integrator.Integrate(craft, commands, c.session, scene)
	c.resolveCollisions(craft, prev, scene)

	camPose := c.rig().Update(craft.Pose, commands, c.modeFlags(commands))
	if handle := c.world.Camera(); handle != nil {
		handle.SetPose(camPose)
	}

	if craft.Wings != nil {
		// Appendages fold for boost and hyperspace, spread otherwise.
		craft.Wings.SetOpen(!commands.Boost && !c.session.Hyperspace.Active)
		craft.Wings.Tick()
	}
	craft.UpdateCockpit(entity.CockpitInput{
		Boost: commands.Boost,
		Brake: commands.Brake,
		Fire:  commands.Fire,
	})

	c.transitions.Tick(craft, c.world.ListBodies(), c.session)
	c.hyperspace.Tick(c.session)
}

// resolveCollisions applies the scene's collision model to the tentative
// pose: sphere proxies in space, directional terrain probes on a surface.
func (c *Controller) resolveCollisions(craft *entity.Craft, prev mgl64.Vec3, scene *config.SceneConfig) {
	switch c.session.Mode {
	case ModeSpace:
		bounce := physics.BounceConfig{
			Threshold: scene.Collision.Threshold,
			Pushback:  scene.Collision.Pushback,
			Damping:   scene.Collision.BounceDamping,
		}
		for _, body := range c.world.ListBodies() {
			if body == nil {
				continue
			}
			hit := physics.ResolveSphere(craft.Pose.Position, craft.Pose.Orientation, craft.Pose.Speed, body.Sphere(), bounce)
			if !hit.Collided {
				continue
			}
			lost := craft.Pose.Speed - hit.Speed
			craft.Pose.Position = hit.Position
			craft.Pose.Orientation = hit.Orientation
			craft.Pose.Speed = hit.Speed
			if c.bus != nil {
				c.bus.Publish(event.NewBounceEvent(c, uint64(body.ID), lost))
			}
		}

	case ModeSurface:
		terrain := physics.TerrainConfig{
			BoundingRadius: scene.Collision.BoundingRadius,
			Overshoot:      scene.Collision.Overshoot,
		}
		craft.Pose.Position = physics.ResolveTerrain(prev, craft.Pose.Position, craft.Pose.Orientation, terrain, c.terrainRaycast)
	}
}

// rig returns the camera rig owned by the active scene.
func (c *Controller) rig() *camera.Rig {
	if c.session.Mode == ModeSurface {
		return c.surfaceRig
	}
	return c.spaceRig
}

// sceneConfig returns the tuning record for the active scene.
func (c *Controller) sceneConfig() *config.SceneConfig {
	if c.session.Mode == ModeSurface {
		return &c.cfg.Surface
	}
	return &c.cfg.Space
}

// modeFlags derives the camera rig's per-frame mode summary.
func (c *Controller) modeFlags(commands input.CommandVector) camera.ModeFlags {
	return camera.ModeFlags{
		Hyperspace: c.session.Hyperspace.Active,
		Boost:      commands.Boost,
		Brake:      commands.Brake,
		Cockpit:    c.session.Cockpit,
	}
}

// SetGameMode switches the session's top-level mode. Setting the current
// mode is a no-op. Leaving space synchronously cancels any in-flight
// hyperspace or transition timers so stale timers cannot touch a scene that
// has been torn down.
func (c *Controller) SetGameMode(mode GameMode) {
	if c.session.Mode == mode {
		return
	}
	if c.session.Mode == ModeSpace {
		c.hyperspace.Cancel(c.session)
		c.transitions.Cancel()
	}
	c.session.Mode = mode
	if mode != ModeSurface {
		c.session.ActiveSurface = 0
	}
	if c.bus != nil {
		c.bus.Publish(&event.BaseEvent{EventType: event.GameModeChanged, Source: c})
	}
	c.logger.Info(context.Background(), "game mode changed", "mode", mode.String())
}

// ResetMovementInputs clears every latched command.
func (c *Controller) ResetMovementInputs() {
	c.latch.Reset()
}

// StartHyperspace attempts to activate hyperspace; see Hyperspace.Activate
// for the refusal rules.
func (c *Controller) StartHyperspace() bool {
	return c.hyperspace.Activate(c.session)
}

// ExitSurface leaves the named surface scene and repositions the craft at a
// safe distance; a no-op unless that body's surface is active.
func (c *Controller) ExitSurface(bodyID entity.ID) {
	var body *entity.Body
	for _, b := range c.world.ListBodies() {
		if b != nil && b.ID == bodyID {
			body = b
			break
		}
	}
	c.transitions.ExitSurface(c.world.Craft(), body, c.session)
}

// ToggleView switches between cockpit and chase view. The rigs keep their
// smoothing state, so the camera eases into the new view.
func (c *Controller) ToggleView() {
	c.session.Cockpit = !c.session.Cockpit
	if craft := c.world.Craft(); craft != nil {
		craft.ToggleView()
	}
	if c.bus != nil {
		c.bus.Publish(&event.BaseEvent{EventType: event.ViewToggled, Source: c})
	}
}
