// cmd/starflight/main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/entity"
	"github.com/opd-ai/go-starflight/pkg/event"
	engorender "github.com/opd-ai/go-starflight/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	flag.Parse()

	cfg := loadConfiguration(*configPath)

	eventBus := event.NewEventBus()
	subscribeToEvents(eventBus)

	craft, bodies := buildSystem(cfg)
	scene := engorender.NewFlightScene(cfg, eventBus, craft, bodies)

	opts := engo.RunOptions{
		Title:      "Starflight",
		Width:      *width,
		Height:     *height,
		Fullscreen: *fullscreen,
	}
	engo.Run(opts, scene)
}

// loadConfiguration reads the tuning file, falling back to defaults when it
// does not exist.
func loadConfiguration(path string) *config.Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Configuration file not found, using default configuration")
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

// subscribeToEvents logs the scene-transition milestones.
func subscribeToEvents(bus *event.Bus) {
	bus.Subscribe(event.SurfaceEntered, func(e event.Event) {
		if se, ok := e.(*event.SurfaceEvent); ok {
			log.Printf("Entered surface of %s", se.BodyName)
		}
	})
	bus.Subscribe(event.SurfaceExited, func(e event.Event) {
		if se, ok := e.(*event.SurfaceEvent); ok {
			log.Printf("Left surface of %s", se.BodyName)
		}
	})
	bus.Subscribe(event.HyperspaceStarted, func(e event.Event) {
		log.Printf("Hyperspace engaged")
	})
	bus.Subscribe(event.HyperspaceEnded, func(e event.Event) {
		log.Printf("Hyperspace complete")
	})
}

// buildSystem creates the demo star system: a sun, two planets and a moon.
func buildSystem(cfg *config.Config) (*entity.Craft, []*entity.Body) {
	wings := entity.NewWingAnimator(cfg.Wings.TransitionFrames, cfg.Wings.OpenAngles, cfg.Wings.ClosedAngles)
	craft := entity.NewCraft("Wanderer", mgl64.Vec3{0, 0, -6000}, wings)

	bodies := []*entity.Body{
		{
			ID:       entity.GenerateID(),
			Name:     "Sol",
			Position: mgl64.Vec3{0, 0, 0},
			Radius:   2500,
			Kind:     entity.Sun,
		},
		{
			ID:       entity.GenerateID(),
			Name:     "Verda",
			Position: mgl64.Vec3{9000, 0, 2000},
			Radius:   1000,
			Kind:     entity.Planet,
		},
		{
			ID:       entity.GenerateID(),
			Name:     "Ash",
			Position: mgl64.Vec3{-11000, 0, 5000},
			Radius:   800,
			Kind:     entity.Planet,
		},
		{
			ID:       entity.GenerateID(),
			Name:     "Luma",
			Position: mgl64.Vec3{9000, 0, 4500},
			Radius:   300,
			Kind:     entity.Moon,
		},
	}
	return craft, bodies
}
