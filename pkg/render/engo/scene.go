package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/entity"
	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/flight"
	"github.com/opd-ai/go-starflight/pkg/input"
)

// FlightScene is the single Engo scene: it owns the simulation world, builds
// the flight controller, and wires input, camera, HUD and renderer systems
// around it.
type FlightScene struct {
	world *ecs.World

	cfg    *config.Config
	bus    *event.Bus
	latch  *input.Latch
	bodies []*entity.Body
	craft  *entity.Craft

	controller *flight.Controller
	renderer   *FlightRenderer
	camera     *CameraSystem
	hud        *HUDSystem
}

// NewFlightScene creates a scene flying the given craft among the given
// bodies.
func NewFlightScene(cfg *config.Config, bus *event.Bus, craft *entity.Craft, bodies []*entity.Body) *FlightScene {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &FlightScene{
		cfg:    cfg,
		bus:    bus,
		craft:  craft,
		bodies: bodies,
		latch:  input.NewLatch(nil),
	}
}

// Type returns the scene type (required by Engo).
func (scene *FlightScene) Type() string {
	return "FlightScene"
}

// Preload is called before the scene starts (required by Engo).
func (scene *FlightScene) Preload() {
	// Sprites are synthesized at setup; nothing to load from disk.
}

// Setup is called when the scene starts (required by Engo).
func (scene *FlightScene) Setup(u engo.Updater) {
	scene.world, _ = u.(*ecs.World)
	if scene.world == nil {
		scene.world = &ecs.World{}
	}

	scene.world.AddSystem(&common.RenderSystem{})

	scene.camera = NewCameraSystem(scene.cfg.Space.Camera.BaseFOV)
	scene.world.AddSystem(scene.camera)

	scene.hud = NewHUDSystem()
	scene.world.AddSystem(scene.hud)
	scene.hud.New(scene.world)

	scene.renderer = NewFlightRenderer(scene.world, scene.camera)
	if err := scene.renderer.Initialize(); err != nil {
		panic("failed to initialize renderer: " + err.Error())
	}

	scene.controller = flight.NewController(flight.ControllerOptions{
		Config:  scene.cfg,
		World:   scene,
		Latch:   scene.latch,
		Bus:     scene.bus,
		Effects: scene.hud,
	})

	scene.world.AddSystem(NewInputSystem(scene.latch, func() {
		scene.controller.StartHyperspace()
	}))
	scene.world.AddSystem(&simulationSystem{scene: scene})

	SetupInputBindings()
	scene.controller.SetGameMode(flight.ModeSpace)
}

// ListBodies implements the controller's world boundary.
func (scene *FlightScene) ListBodies() []*entity.Body {
	return scene.bodies
}

// Craft implements the controller's world boundary.
func (scene *FlightScene) Craft() *entity.Craft {
	return scene.craft
}

// Camera implements the controller's world boundary.
func (scene *FlightScene) Camera() flight.CameraHandle {
	return scene.camera
}

// Controller exposes the flight controller, for embedding hosts.
func (scene *FlightScene) Controller() *flight.Controller {
	return scene.controller
}

// Exit is called when the scene is exiting (required by Engo).
func (scene *FlightScene) Exit() {
	scene.controller.SetGameMode(flight.ModeMenu)
}

// simulationSystem runs one controller frame per engine update, then pushes
// the resulting poses to the renderer. It runs after the input system so
// the frame sees this update's key state.
type simulationSystem struct {
	scene *FlightScene
}

func (s *simulationSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

func (s *simulationSystem) Remove(basic ecs.BasicEntity) {}

func (s *simulationSystem) Update(dt float32) {
	scene := s.scene
	scene.controller.Frame()

	scene.renderer.Clear()
	for _, body := range scene.bodies {
		scene.renderer.RenderBody(body)
	}
	scene.renderer.RenderCraft(scene.craft)
	scene.renderer.Present()
}
