package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/entity"
)

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// The world is projected top-down onto the XZ plane around a center point,
// normally the craft position.
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos mgl64.Vec3
}

// NewTerminalRenderer creates a new terminal renderer with the specified dimensions.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
}

// SetCenter sets the center position of the view.
func (r *TerminalRenderer) SetCenter(pos mgl64.Vec3) {
	r.centerPos = pos
}

// worldToScreen projects world coordinates onto the screen grid. Y is
// discarded; the view is a chart, not a cockpit.
func (r *TerminalRenderer) worldToScreen(pos mgl64.Vec3) (int, int) {
	screenX := int((pos.X()-r.centerPos.X())/r.scale + float64(r.width)/2)
	screenY := int((pos.Z()-r.centerPos.Z())/r.scale + float64(r.height)/2)
	return screenX, screenY
}

// Clear implements entity.Renderer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// Present implements entity.Renderer.
func (r *TerminalRenderer) Present() {
	// Clear terminal
	fmt.Print("\033[H\033[2J")

	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
	for y := range r.buffer {
		fmt.Print("|")
		for x := range r.buffer[y] {
			fmt.Print(string(r.buffer[y][x]))
		}
		fmt.Println("|")
	}
	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
}

// RenderCraft implements entity.Renderer.
func (r *TerminalRenderer) RenderCraft(craft *entity.Craft) {
	if craft == nil {
		return
	}
	x, y := r.worldToScreen(craft.Pose.Position)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = '^'
	}
}

// RenderBody implements entity.Renderer.
func (r *TerminalRenderer) RenderBody(body *entity.Body) {
	if body == nil {
		return
	}
	x, y := r.worldToScreen(body.Position)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = bodySymbol(body)
	}
}

func bodySymbol(body *entity.Body) rune {
	switch body.Kind {
	case entity.Sun:
		return '*'
	case entity.Moon:
		return 'o'
	case entity.Ship:
		return 's'
	default:
		return 'O'
	}
}
