// Package effects defines the fire-and-forget boundary to the UI layer:
// transition haze overlays, hyperspace progress, and pilot messages. The
// controller writes through this interface and never reads back.
package effects

import (
	"context"

	"github.com/opd-ai/go-starflight/pkg/logging"
)

// Service is implemented by the UI layer. All calls are fire-and-forget;
// implementations must not block the frame.
type Service interface {
	// ShowProgress displays the hyperspace progress bar at the given
	// fraction in [0,1]. Zero hides it.
	ShowProgress(fraction float64)
	// ShowOverlay sets the pre-transition haze overlay opacity in [0,1].
	ShowOverlay(opacity float64)
	// ShowMessage displays a pilot message until hidden.
	ShowMessage(text string)
	// HideMessage removes the current pilot message.
	HideMessage()
}

// NullService is a Service that only logs at debug level. It stands in for
// the UI layer in headless runs and tests.
type NullService struct {
	logger *logging.Logger
}

// NewNullService creates a NullService with structured logging.
func NewNullService() *NullService {
	return &NullService{logger: logging.NewLogger()}
}

// ShowProgress implements Service.
func (n *NullService) ShowProgress(fraction float64) {
	n.logger.Debug(context.Background(), "ShowProgress called", "fraction", fraction)
}

// ShowOverlay implements Service.
func (n *NullService) ShowOverlay(opacity float64) {
	n.logger.Debug(context.Background(), "ShowOverlay called", "opacity", opacity)
}

// ShowMessage implements Service.
func (n *NullService) ShowMessage(text string) {
	n.logger.Debug(context.Background(), "ShowMessage called", "text", text)
}

// HideMessage implements Service.
func (n *NullService) HideMessage() {
	n.logger.Debug(context.Background(), "HideMessage called")
}
