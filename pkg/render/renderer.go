// Package render provides renderer implementations behind the
// entity.Renderer boundary: a logging null renderer for tests and headless
// runs, and an ASCII top-down renderer for terminal sessions. The engo
// subpackage carries the windowed OpenGL adapter.
package render

import (
	"context"

	"github.com/opd-ai/go-starflight/pkg/entity"
	"github.com/opd-ai/go-starflight/pkg/logging"
)

// NullRenderer is a simple implementation of entity.Renderer.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "Present called")
}

// RenderBody implements entity.Renderer.
func (d *NullRenderer) RenderBody(body *entity.Body) {
	ctx := context.Background()
	if body == nil {
		d.logger.Debug(ctx, "RenderBody called with nil body")
		return
	}
	d.logger.Debug(ctx, "RenderBody called",
		"body_id", body.ID,
		"body_name", body.Name,
		"kind", body.Kind.String(),
	)
}

// RenderCraft implements entity.Renderer.
func (d *NullRenderer) RenderCraft(craft *entity.Craft) {
	ctx := context.Background()
	if craft == nil {
		d.logger.Debug(ctx, "RenderCraft called with nil craft")
		return
	}
	d.logger.Debug(ctx, "RenderCraft called",
		"craft_id", craft.ID,
		"craft_name", craft.Name,
		"speed", craft.Pose.Speed,
	)
}

// NullRendererInstance is a global instance of NullRenderer for convenience.
var NullRendererInstance entity.Renderer = NewNullRenderer()
