package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starflight/pkg/entity"
)

// FlightRenderer implements entity.Renderer on the Engo render system. It
// keeps one engine entity per simulation object and moves it every frame;
// the engine owns the actual draw calls.
type FlightRenderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem
	camera       *CameraSystem

	bodyEntities map[entity.ID]*ecs.BasicEntity
	spaceComps   map[entity.ID]*common.SpaceComponent
	renderComps  map[entity.ID]*common.RenderComponent

	craftEntity *ecs.BasicEntity
	craftSpace  *common.SpaceComponent

	assets *AssetManager
}

// NewFlightRenderer creates an Engo-backed renderer drawing through the
// given camera system.
func NewFlightRenderer(world *ecs.World, cam *CameraSystem) *FlightRenderer {
	return &FlightRenderer{
		world:        world,
		camera:       cam,
		bodyEntities: make(map[entity.ID]*ecs.BasicEntity),
		spaceComps:   make(map[entity.ID]*common.SpaceComponent),
		renderComps:  make(map[entity.ID]*common.RenderComponent),
		assets:       NewAssetManager(),
	}
}

// Initialize hooks into the world's render system and synthesizes sprites.
func (r *FlightRenderer) Initialize() error {
	for _, system := range r.world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			r.renderSystem = rs
			break
		}
	}
	if r.renderSystem == nil {
		r.renderSystem = &common.RenderSystem{}
		r.world.AddSystem(r.renderSystem)
	}
	return r.assets.LoadAssets()
}

// Clear implements entity.Renderer. The engine clears the framebuffer
// itself; nothing to do per frame.
func (r *FlightRenderer) Clear() {}

// Present implements entity.Renderer. Presentation happens inside the
// engine's render system.
func (r *FlightRenderer) Present() {}

// RenderBody implements entity.Renderer.
func (r *FlightRenderer) RenderBody(body *entity.Body) {
	if body == nil {
		return
	}
	r.getOrCreateBodyEntity(body)

	if space := r.spaceComps[body.ID]; space != nil {
		space.Position = r.camera.WorldToScreen(body.Position)
		size := float32(body.Radius) * r.camera.Zoom() * 2
		space.Width = size
		space.Height = size
	}
	if render := r.renderComps[body.ID]; render != nil {
		render.Color = bodyColor(body.Kind)
	}
}

// RenderCraft implements entity.Renderer.
func (r *FlightRenderer) RenderCraft(craft *entity.Craft) {
	if craft == nil {
		return
	}
	if r.craftEntity == nil {
		basic := ecs.NewBasic()
		r.craftEntity = &basic
		r.craftSpace = &common.SpaceComponent{Width: 16, Height: 16}
		render := &common.RenderComponent{
			Drawable: r.assets.CraftSprite(),
			Color:    color.RGBA{255, 255, 255, 255},
		}
		r.renderSystem.Add(r.craftEntity, render, r.craftSpace)
	}

	r.craftSpace.Position = r.camera.WorldToScreen(craft.Pose.Position)

	// The craft sprite points up; rotate it to the heading projected onto
	// the chart plane.
	forward := craft.Pose.Forward()
	r.craftSpace.Rotation = headingDegrees(forward.X(), forward.Z())
}

// getOrCreateBodyEntity returns the engine entity for a body, creating it on
// first sight.
func (r *FlightRenderer) getOrCreateBodyEntity(body *entity.Body) *ecs.BasicEntity {
	if basic, exists := r.bodyEntities[body.ID]; exists {
		return basic
	}

	basic := ecs.NewBasic()
	r.bodyEntities[body.ID] = &basic

	render := &common.RenderComponent{
		Drawable: r.assets.BodySprite(body.Kind),
		Color:    bodyColor(body.Kind),
	}
	space := &common.SpaceComponent{
		Position: engo.Point{X: 0, Y: 0},
		Width:    float32(body.Radius) * 2,
		Height:   float32(body.Radius) * 2,
	}
	r.spaceComps[body.ID] = space
	r.renderComps[body.ID] = render
	r.renderSystem.Add(&basic, render, space)

	return &basic
}

// RemoveBody removes a body's engine entity, for worlds that unload systems.
func (r *FlightRenderer) RemoveBody(id entity.ID) {
	if basic, exists := r.bodyEntities[id]; exists {
		r.renderSystem.Remove(*basic)
		delete(r.bodyEntities, id)
		delete(r.spaceComps, id)
		delete(r.renderComps, id)
	}
}

// headingDegrees converts a chart-plane direction to the sprite rotation in
// degrees, zero pointing up the screen.
func headingDegrees(x, z float64) float32 {
	return float32(math.Atan2(x, z) * 180 / math.Pi)
}

// bodyColor returns the tint for a body kind.
func bodyColor(kind entity.BodyKind) color.Color {
	switch kind {
	case entity.Sun:
		return color.RGBA{255, 220, 80, 255}
	case entity.Moon:
		return color.RGBA{180, 180, 190, 255}
	case entity.Ship:
		return color.RGBA{120, 200, 255, 255}
	default:
		return color.RGBA{90, 160, 90, 255}
	}
}
