package flight

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/camera"
	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/entity"
	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/input"
)

// fakeWorld is a minimal World for pipeline tests.
type fakeWorld struct {
	craft  *entity.Craft
	bodies []*entity.Body
	camera *fakeCamera
}

func (w *fakeWorld) ListBodies() []*entity.Body { return w.bodies }
func (w *fakeWorld) Craft() *entity.Craft       { return w.craft }
func (w *fakeWorld) Camera() CameraHandle {
	if w.camera == nil {
		return nil
	}
	return w.camera
}

type fakeCamera struct {
	pose camera.Pose
	sets int
}

func (c *fakeCamera) SetPose(p camera.Pose) {
	c.pose = p
	c.sets++
}

func newTestController(world *fakeWorld) *Controller {
	return NewController(ControllerOptions{
		World: world,
		Bus:   event.NewEventBus(),
	})
}

func TestControllerFrameIdleInMenu(t *testing.T) {
	craft := entity.NewCraft("test", mgl64.Vec3{}, nil)
	world := &fakeWorld{craft: craft, camera: &fakeCamera{}}
	c := newTestController(world)

	c.Frame()

	if craft.Pose.Position != (mgl64.Vec3{}) {
		t.Error("craft moved while the session was in the menu")
	}
	if world.camera.sets != 0 {
		t.Error("camera updated while the session was in the menu")
	}
}

func TestControllerFrameAdvancesPipeline(t *testing.T) {
	wings := entity.NewWingAnimator(30, [4]float64{0.35, -0.35, -0.35, 0.35}, [4]float64{})
	craft := entity.NewCraft("test", mgl64.Vec3{}, wings)
	world := &fakeWorld{craft: craft, camera: &fakeCamera{}}
	c := newTestController(world)
	c.SetGameMode(ModeSpace)

	c.Frame()

	if craft.Pose.Position.Z() <= 0 {
		t.Error("craft did not advance along its forward axis")
	}
	if world.camera.sets != 1 {
		t.Errorf("camera pose sets = %d, want 1 per frame", world.camera.sets)
	}
}

func TestControllerSphereBounce(t *testing.T) {
	craft := entity.NewCraft("test", mgl64.Vec3{0, 0, 0}, nil)
	// A body dead ahead whose surface the first frame's step penetrates.
	body := &entity.Body{
		ID:       entity.GenerateID(),
		Name:     "Verda",
		Position: mgl64.Vec3{0, 0, 10},
		Radius:   30,
		Kind:     entity.Planet,
	}
	world := &fakeWorld{craft: craft, bodies: []*entity.Body{body}}

	bus := event.NewEventBus()
	bounced := countEvents(bus, event.CraftBounced)
	c := NewController(ControllerOptions{World: world, Bus: bus})
	c.SetGameMode(ModeSpace)

	c.Frame()

	cfg := config.DefaultConfig().Space
	wantDist := body.Radius + cfg.Collision.Threshold + cfg.Collision.Pushback
	gotDist := craft.Pose.Position.Sub(body.Position).Len()
	if gotDist < wantDist-1e-6 {
		t.Errorf("craft left at distance %v, want >= %v", gotDist, wantDist)
	}
	if craft.Pose.Speed != cfg.BaseSpeed*cfg.Collision.BounceDamping {
		t.Errorf("speed = %v, want damped to %v", craft.Pose.Speed, cfg.BaseSpeed*cfg.Collision.BounceDamping)
	}
	if *bounced != 1 {
		t.Errorf("bounce events = %d, want 1", *bounced)
	}
}

func TestControllerToggleViewEdgeDetected(t *testing.T) {
	craft := entity.NewCraft("test", mgl64.Vec3{}, nil)
	world := &fakeWorld{craft: craft}
	c := newTestController(world)
	c.SetGameMode(ModeSpace)

	// Holding the toggle key across several frames flips the view once.
	c.Latch().Set(input.ToggleView, true)
	for i := 0; i < 3; i++ {
		c.Frame()
	}
	if !c.Session().Cockpit {
		t.Fatal("view did not toggle on key press")
	}

	// Release and press again: flips back.
	c.Latch().Set(input.ToggleView, false)
	c.Frame()
	c.Latch().Set(input.ToggleView, true)
	c.Frame()
	if c.Session().Cockpit {
		t.Error("view did not toggle back on second press")
	}
}

func TestControllerWingsFoldOnBoost(t *testing.T) {
	wings := entity.NewWingAnimator(30, [4]float64{0.35, -0.35, -0.35, 0.35}, [4]float64{})
	craft := entity.NewCraft("test", mgl64.Vec3{}, wings)
	world := &fakeWorld{craft: craft}
	c := newTestController(world)
	c.SetGameMode(ModeSpace)

	c.Latch().Set(input.Boost, true)
	c.Frame()
	if wings.Open() {
		t.Error("wings still open while boosting")
	}

	c.Latch().Set(input.Boost, false)
	c.Frame()
	if !wings.Open() {
		t.Error("wings did not reopen after boost released")
	}
}

func TestControllerSetGameModeCancelsTimers(t *testing.T) {
	craft := entity.NewCraft("test", mgl64.Vec3{}, nil)
	world := &fakeWorld{craft: craft}
	c := newTestController(world)
	c.SetGameMode(ModeSpace)

	if !c.StartHyperspace() {
		t.Fatal("hyperspace refused in space")
	}

	c.SetGameMode(ModeMenu)

	if c.Session().Hyperspace.Active {
		t.Error("hyperspace survived leaving the space scene")
	}
	if c.Hyperspace().Streaks() != nil {
		t.Error("streak field survived leaving the space scene")
	}
	if c.Transitions().Haze() != 0 {
		t.Error("haze survived leaving the space scene")
	}
}

func TestControllerStartHyperspaceRefusedOnSurface(t *testing.T) {
	craft := entity.NewCraft("test", mgl64.Vec3{}, nil)
	world := &fakeWorld{craft: craft}
	c := newTestController(world)
	c.SetGameMode(ModeSurface)

	if c.StartHyperspace() {
		t.Error("hyperspace engaged inside a surface scene")
	}
}

func TestControllerExitSurface(t *testing.T) {
	body := &entity.Body{
		ID:       entity.GenerateID(),
		Name:     "Verda",
		Position: mgl64.Vec3{},
		Radius:   1000,
		Kind:     entity.Planet,
	}
	craft := entity.NewCraft("test", mgl64.Vec3{0, 0, 100}, nil)
	world := &fakeWorld{craft: craft, bodies: []*entity.Body{body}}
	c := newTestController(world)

	c.SetGameMode(ModeSurface)
	c.Session().ActiveSurface = body.ID

	c.ExitSurface(body.ID)

	if c.Session().Mode != ModeSpace {
		t.Error("mode not restored to space")
	}
	cfg := config.DefaultConfig().Transition
	wantDist := body.Radius*cfg.ExitRadiusMultiple + cfg.ExitMargin
	if got := craft.Pose.Position.Len(); got < wantDist-1e-6 {
		t.Errorf("exit distance = %v, want %v", got, wantDist)
	}
}

func TestControllerResetMovementInputs(t *testing.T) {
	world := &fakeWorld{craft: entity.NewCraft("test", mgl64.Vec3{}, nil)}
	c := newTestController(world)

	c.Latch().Set(input.Boost, true)
	c.Latch().Set(input.PitchForward, true)
	c.ResetMovementInputs()

	commands := c.Latch().Snapshot()
	if commands.Boost || commands.PitchForward {
		t.Error("latched commands survived reset")
	}
}

func TestControllerNilCraftTolerated(t *testing.T) {
	world := &fakeWorld{}
	c := newTestController(world)
	c.SetGameMode(ModeSpace)

	// Must not panic while the world is still initializing.
	c.Frame()
}
