package engo

import (
	"image/color"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// HUDSystem draws the small amount of UI the flight controller drives: the
// pre-transition haze overlay, the hyperspace progress bar, and pilot
// messages. It implements the effects service boundary, so the controller
// writes into it directly without knowing about the engine.
//
// Effect calls may arrive from the simulation while the engine is mid-frame,
// so the written state is mutex-guarded and only applied to engine entities
// inside Update.
type HUDSystem struct {
	mu sync.Mutex

	progress float64
	overlay  float64
	message  string
	dirty    bool

	world *ecs.World

	overlayEntity *ecs.BasicEntity
	overlayRender *common.RenderComponent
	overlaySpace  *common.SpaceComponent

	progressEntity *ecs.BasicEntity
	progressRender *common.RenderComponent
	progressSpace  *common.SpaceComponent
}

// NewHUDSystem creates a HUD system.
func NewHUDSystem() *HUDSystem {
	return &HUDSystem{}
}

// ShowProgress implements the effects service.
func (h *HUDSystem) ShowProgress(fraction float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.progress = clamp01(fraction)
	h.dirty = true
}

// ShowOverlay implements the effects service.
func (h *HUDSystem) ShowOverlay(opacity float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.overlay = clamp01(opacity)
	h.dirty = true
}

// ShowMessage implements the effects service.
func (h *HUDSystem) ShowMessage(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.message = text
	h.dirty = true
}

// HideMessage implements the effects service.
func (h *HUDSystem) HideMessage() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.message = ""
	h.dirty = true
}

// Message returns the current pilot message.
func (h *HUDSystem) Message() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.message
}

// New satisfies ecs.SystemAddByInterfacer-style setup; the scene calls it
// with the world after adding the system.
func (h *HUDSystem) New(world *ecs.World) {
	h.world = world
	h.setupOverlay()
	h.setupProgressBar()
}

// Add satisfies the ecs.System interface.
func (h *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for HUD system
}

// Remove satisfies the ecs.System interface.
func (h *HUDSystem) Remove(basic ecs.BasicEntity) {
	// Not used for HUD system
}

// Update applies the latest effect state to the engine entities.
func (h *HUDSystem) Update(dt float32) {
	h.mu.Lock()
	if !h.dirty {
		h.mu.Unlock()
		return
	}
	progress := h.progress
	overlay := h.overlay
	h.dirty = false
	h.mu.Unlock()

	if h.overlayRender != nil {
		h.overlayRender.Color = color.RGBA{200, 200, 230, uint8(overlay * 255)}
	}
	if h.progressRender != nil && h.progressSpace != nil {
		h.progressSpace.Width = engo.GameWidth() * 0.5 * float32(progress)
		alpha := uint8(0)
		if progress > 0 {
			alpha = 220
		}
		h.progressRender.Color = color.RGBA{120, 200, 255, alpha}
	}
}

func (h *HUDSystem) setupOverlay() {
	basic := ecs.NewBasic()
	h.overlayEntity = &basic
	h.overlayRender = &common.RenderComponent{
		Drawable: common.Rectangle{},
		Color:    color.RGBA{200, 200, 230, 0},
	}
	h.overlaySpace = &common.SpaceComponent{
		Position: engo.Point{X: 0, Y: 0},
		Width:    engo.GameWidth(),
		Height:   engo.GameHeight(),
	}
	h.overlayRender.SetShader(common.HUDShader)
	h.addToRenderSystem(h.overlayEntity, h.overlayRender, h.overlaySpace)
}

func (h *HUDSystem) setupProgressBar() {
	basic := ecs.NewBasic()
	h.progressEntity = &basic
	h.progressRender = &common.RenderComponent{
		Drawable: common.Rectangle{},
		Color:    color.RGBA{120, 200, 255, 0},
	}
	h.progressSpace = &common.SpaceComponent{
		Position: engo.Point{X: engo.GameWidth() * 0.25, Y: engo.GameHeight() - 24},
		Width:    0,
		Height:   8,
	}
	h.progressRender.SetShader(common.HUDShader)
	h.addToRenderSystem(h.progressEntity, h.progressRender, h.progressSpace)
}

func (h *HUDSystem) addToRenderSystem(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	if h.world == nil {
		return
	}
	for _, system := range h.world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			rs.Add(basic, render, space)
			return
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
