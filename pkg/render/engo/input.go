// Package engo adapts the flight controller to the Engo game engine: an
// input system that feeds the command latch from engine buttons, a renderer
// and camera system for the simulation state, and a HUD that implements the
// effects boundary.
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starflight/pkg/input"
)

// buttonNames maps latched commands to the engine button identifiers
// registered in SetupInputBindings.
var buttonNames = map[input.Command]string{
	input.PitchForward: "pitchForward",
	input.PitchBack:    "pitchBack",
	input.RollLeft:     "rollLeft",
	input.RollRight:    "rollRight",
	input.YawLeft:      "yawLeft",
	input.YawRight:     "yawRight",
	input.Boost:        "boost",
	input.Brake:        "brake",
	input.Fire:         "fire",
	input.ToggleView:   "toggleView",
}

// InputSystem polls the engine's button state every update and mirrors it
// into the command latch. All interpretation (edge detection, mode gating)
// happens downstream in the flight controller; this system only copies
// booleans.
type InputSystem struct {
	latch *input.Latch

	// onHyperspace fires on the hyperspace key's press edge; the scene
	// wires it to Controller.StartHyperspace.
	onHyperspace func()
}

// NewInputSystem creates an input system feeding the given latch.
func NewInputSystem(latch *input.Latch, onHyperspace func()) *InputSystem {
	return &InputSystem{
		latch:        latch,
		onHyperspace: onHyperspace,
	}
}

// Add satisfies the ecs.System interface.
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for input system
}

// Remove satisfies the ecs.System interface.
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update mirrors button state into the latch.
func (is *InputSystem) Update(dt float32) {
	for cmd, name := range buttonNames {
		is.latch.Set(cmd, engo.Input.Button(name).Down())
	}

	if engo.Input.Button("hyperspace").JustPressed() && is.onHyperspace != nil {
		is.onHyperspace()
	}
}

// SetupInputBindings registers the flight key layout with the engine.
func SetupInputBindings() {
	engo.Input.RegisterButton("pitchForward", engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton("pitchBack", engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton("rollLeft", engo.KeyQ)
	engo.Input.RegisterButton("rollRight", engo.KeyE)
	engo.Input.RegisterButton("yawLeft", engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton("yawRight", engo.KeyD, engo.KeyArrowRight)

	engo.Input.RegisterButton("boost", engo.KeyLeftShift)
	engo.Input.RegisterButton("brake", engo.KeyLeftControl)
	engo.Input.RegisterButton("fire", engo.KeySpace)
	engo.Input.RegisterButton("toggleView", engo.KeyV)
	engo.Input.RegisterButton("hyperspace", engo.KeyH)
}
