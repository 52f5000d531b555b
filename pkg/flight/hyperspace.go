package flight

import (
	"context"
	"time"

	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/effects"
	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/input"
	"github.com/opd-ai/go-starflight/pkg/logging"
)

// Hyperspace drives the timed overdrive mode: a wall-clock duration during
// which speed is multiplied and fine rotation disabled, plus the visual
// timeline (shrinking progress bar, streak particles). Progress is computed
// from elapsed time on every tick rather than scheduled callbacks, so
// cancelling simply stops future ticks from mattering.
type Hyperspace struct {
	cfg     config.HyperspaceConfig
	effects effects.Service
	bus     *event.Bus
	latch   *input.Latch
	logger  *logging.Logger

	streaks *effects.StreakField

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewHyperspace creates the controller. A nil clock defaults to time.Now.
func NewHyperspace(cfg config.HyperspaceConfig, svc effects.Service, bus *event.Bus, latch *input.Latch, logger *logging.Logger, now func() time.Time) *Hyperspace {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &Hyperspace{
		cfg:     cfg,
		effects: svc,
		bus:     bus,
		latch:   latch,
		logger:  logger,
		now:     now,
	}
}

// Activate attempts to start hyperspace and reports whether activation
// occurred. It is refused, with no state change, when already active, when
// the craft is inside a surface scene, or when the session has not left the
// menu. Refusal is an expected race with player input, not an error.
func (h *Hyperspace) Activate(session *SessionState) bool {
	if session.Hyperspace.Active || session.Mode != ModeSpace {
		return false
	}

	session.Hyperspace = HyperspaceState{
		Active:    true,
		StartTime: h.now(),
		Duration:  h.cfg.Duration,
	}
	h.streaks = effects.NewStreakField(h.cfg.StreakCount, h.cfg.StreakSpeed, h.cfg.StreakSpan)

	if h.effects != nil {
		h.effects.ShowProgress(1)
	}
	if h.bus != nil {
		h.bus.Publish(event.NewHyperspaceEvent(event.HyperspaceStarted, h, h.cfg.Duration.Milliseconds()))
	}
	h.logger.Info(context.Background(), "hyperspace engaged",
		"duration_ms", h.cfg.Duration.Milliseconds())
	return true
}

// IsActive reports whether hyperspace is currently running.
func (h *Hyperspace) IsActive(session *SessionState) bool {
	return session.Hyperspace.Active
}

// Tick advances the visual timeline and finishes the mode when the
// wall-clock timer expires.
func (h *Hyperspace) Tick(session *SessionState) {
	if !session.Hyperspace.Active {
		return
	}

	elapsed := h.now().Sub(session.Hyperspace.StartTime)
	if elapsed >= session.Hyperspace.Duration {
		h.finish(session)
		return
	}

	frac := float64(elapsed) / float64(session.Hyperspace.Duration)
	if h.effects != nil {
		h.effects.ShowProgress(1 - frac)
	}
	h.streaks.Advance()
}

// Streaks exposes the live particle field to the renderer; nil outside
// hyperspace.
func (h *Hyperspace) Streaks() *effects.StreakField {
	return h.streaks
}

// Cancel force-terminates hyperspace, tearing down effect state whether or
// not the timer expired. Safe to call when inactive.
func (h *Hyperspace) Cancel(session *SessionState) {
	if !session.Hyperspace.Active {
		h.teardown()
		return
	}
	h.finish(session)
}

// finish ends the mode: the flag drops, residual held keys are cleared so
// control returns cleanly, and effect teardown runs unconditionally even if
// the scene changed mid-hyperspace.
func (h *Hyperspace) finish(session *SessionState) {
	session.Hyperspace.Active = false
	if h.latch != nil {
		h.latch.Reset()
	}
	h.teardown()
	if h.bus != nil {
		h.bus.Publish(event.NewHyperspaceEvent(event.HyperspaceEnded, h, h.cfg.Duration.Milliseconds()))
	}
	h.logger.Info(context.Background(), "hyperspace complete")
}

func (h *Hyperspace) teardown() {
	h.streaks.Teardown()
	h.streaks = nil
	if h.effects != nil {
		h.effects.ShowProgress(0)
	}
}
