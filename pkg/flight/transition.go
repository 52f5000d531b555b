package flight

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/effects"
	"github.com/opd-ai/go-starflight/pkg/entity"
	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/logging"
	"github.com/opd-ai/go-starflight/pkg/physics"
)

// Phase is the per-body transition phase.
type Phase int

const (
	Outside Phase = iota
	Approaching
	Transitioning
	Inside
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case Outside:
		return "outside"
	case Approaching:
		return "approaching"
	case Transitioning:
		return "transitioning"
	case Inside:
		return "inside"
	default:
		return "unknown"
	}
}

// TransitionState tracks one enterable body. Entries are created lazily the
// first time a body is evaluated and persist for the session; they need
// phase resets, never destruction.
type TransitionState struct {
	Phase Phase

	// Progress rises monotonically from 0 to 1 while Transitioning and is
	// reset on every entry into that phase.
	Progress float64

	started time.Time
}

// TransitionMachine watches craft-to-body distances and sequences surface
// entry with hysteresis: an outer threshold admits a body to Approaching,
// and only the combination of the closer inner threshold and a built-up haze
// overlay commits to Transitioning. A craft that grazes the outer boundary
// and retreats never reaches the point of no return.
type TransitionMachine struct {
	cfg     config.TransitionConfig
	effects effects.Service
	bus     *event.Bus
	logger  *logging.Logger

	states map[entity.ID]*TransitionState

	// active is the single body allowed to be Approaching or Transitioning;
	// entry attempts for other bodies are ignored while it is set.
	active entity.ID

	haze float64

	now func() time.Time
}

// NewTransitionMachine creates the state machine. A nil clock defaults to
// time.Now.
func NewTransitionMachine(cfg config.TransitionConfig, svc effects.Service, bus *event.Bus, logger *logging.Logger, now func() time.Time) *TransitionMachine {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &TransitionMachine{
		cfg:     cfg,
		effects: svc,
		bus:     bus,
		logger:  logger,
		states:  make(map[entity.ID]*TransitionState),
		now:     now,
	}
}

// State returns the lazily created record for a body.
func (m *TransitionMachine) State(id entity.ID) *TransitionState {
	st, ok := m.states[id]
	if !ok {
		st = &TransitionState{}
		m.states[id] = st
	}
	return st
}

// Haze returns the current pre-transition overlay opacity.
func (m *TransitionMachine) Haze() float64 {
	return m.haze
}

// Tick evaluates every enterable body against the craft position. It runs
// only in space; once a surface scene is authoritative all space-side
// proximity checks are suspended.
func (m *TransitionMachine) Tick(craft *entity.Craft, bodies []*entity.Body, session *SessionState) {
	if session.Mode != ModeSpace || craft == nil {
		return
	}

	for _, body := range bodies {
		if body == nil || !body.Enterable() {
			continue
		}
		m.evaluate(craft, body, session)
		if session.Mode == ModeSurface {
			// This frame's transition committed; nothing else to check.
			break
		}
	}

	m.updateHaze()
}

// evaluate advances one body's phase machine.
func (m *TransitionMachine) evaluate(craft *entity.Craft, body *entity.Body, session *SessionState) {
	st := m.State(body.ID)
	dist := physics.Distance(craft.Pose.Position, body.Position)

	switch st.Phase {
	case Outside:
		if dist < body.Radius+m.cfg.OuterMargin && m.active == 0 {
			st.Phase = Approaching
			m.active = body.ID
			if m.bus != nil {
				m.bus.Publish(event.NewSurfaceEvent(event.SurfaceApproached, m, uint64(body.ID), body.Name))
			}
			m.logger.Debug(context.Background(), "approaching body",
				"body", body.Name, "distance", dist)
		}

	case Approaching:
		if dist >= body.Radius+m.cfg.OuterMargin {
			// Retreated past the outer threshold before committing.
			st.Phase = Outside
			st.Progress = 0
			m.active = 0
			return
		}
		if m.haze >= m.cfg.HazeMinimum && dist < body.Radius+m.cfg.InnerMargin {
			st.Phase = Transitioning
			st.Progress = 0
			st.started = m.now()
			m.logger.Info(context.Background(), "surface transition committed", "body", body.Name)
		}

	case Transitioning:
		elapsed := m.now().Sub(st.started)
		progress := float64(elapsed) / float64(m.cfg.Duration)
		if progress > 1 {
			progress = 1
		}
		if progress > st.Progress {
			st.Progress = progress
		}
		if st.Progress >= 1 {
			m.arrive(st, body, session)
		}

	case Inside:
		// Exit is explicit, via ExitSurface.
	}
}

// arrive completes a transition: the surface sub-scene becomes authoritative
// and the one-shot arrival notification fires exactly once, guarded by the
// phase change.
func (m *TransitionMachine) arrive(st *TransitionState, body *entity.Body, session *SessionState) {
	st.Phase = Inside
	m.active = 0
	session.Mode = ModeSurface
	session.ActiveSurface = body.ID

	if m.effects != nil {
		m.effects.ShowMessage(fmt.Sprintf("Welcome to %s", body.Name))
	}
	if m.bus != nil {
		m.bus.Publish(event.NewSurfaceEvent(event.SurfaceEntered, m, uint64(body.ID), body.Name))
	}
	m.logger.Info(context.Background(), "surface entered", "body", body.Name)
}

// ExitSurface leaves the active surface scene. The craft is repositioned
// outward from the body center far enough that the very next frame's
// proximity check cannot re-trigger entry.
func (m *TransitionMachine) ExitSurface(craft *entity.Craft, body *entity.Body, session *SessionState) {
	if session.Mode != ModeSurface || body == nil || session.ActiveSurface != body.ID {
		return
	}

	st := m.State(body.ID)
	st.Phase = Outside
	st.Progress = 0
	m.haze = 0
	m.active = 0

	if craft != nil {
		outward := craft.Pose.Position.Sub(body.Position)
		if outward.Len() == 0 {
			outward = mgl64.Vec3{0, 0, 1}
		}
		outward = outward.Normalize()
		distance := body.Radius*m.cfg.ExitRadiusMultiple + m.cfg.ExitMargin
		craft.Pose.Position = body.Position.Add(outward.Mul(distance))
		// Face away from the body so the first frame of flight climbs out.
		craft.Pose.Orientation = physics.RotationBetween(physics.UnitZ, outward).Normalize()
	}

	session.Mode = ModeSpace
	session.ActiveSurface = 0

	if m.effects != nil {
		m.effects.HideMessage()
		m.effects.ShowOverlay(0)
	}
	if m.bus != nil {
		m.bus.Publish(event.NewSurfaceEvent(event.SurfaceExited, m, uint64(body.ID), body.Name))
	}
	m.logger.Info(context.Background(), "surface exited", "body", body.Name)
}

// Cancel clears any in-flight transition synchronously. Scene teardown calls
// it so a stale progress timer can never mutate state that has since been
// discarded.
func (m *TransitionMachine) Cancel() {
	if m.active != 0 {
		if st, ok := m.states[m.active]; ok && st.Phase != Inside {
			st.Phase = Outside
			st.Progress = 0
		}
		m.active = 0
	}
	m.haze = 0
	if m.effects != nil {
		m.effects.ShowOverlay(0)
	}
}

// updateHaze builds the overlay while a body is pending and decays it
// otherwise, pushing the value to the UI layer.
func (m *TransitionMachine) updateHaze() {
	if m.active != 0 {
		m.haze += m.cfg.HazeBuildRate
		if m.haze > 1 {
			m.haze = 1
		}
	} else {
		m.haze -= m.cfg.HazeDecayRate
		if m.haze < 0 {
			m.haze = 0
		}
	}
	if m.effects != nil {
		m.effects.ShowOverlay(m.haze)
	}
}
