package flight

import (
	"math"
	"testing"
	"time"

	"github.com/opd-ai/go-starflight/pkg/config"
	"github.com/opd-ai/go-starflight/pkg/event"
	"github.com/opd-ai/go-starflight/pkg/input"
)

// fakeClock is an injectable clock for deterministic timeline tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// effectsRecorder captures fire-and-forget UI calls for assertions.
type effectsRecorder struct {
	progress []float64
	overlay  []float64
	messages []string
	hides    int
}

func (r *effectsRecorder) ShowProgress(fraction float64) { r.progress = append(r.progress, fraction) }
func (r *effectsRecorder) ShowOverlay(opacity float64)   { r.overlay = append(r.overlay, opacity) }
func (r *effectsRecorder) ShowMessage(text string)       { r.messages = append(r.messages, text) }
func (r *effectsRecorder) HideMessage()                  { r.hides++ }

func (r *effectsRecorder) lastProgress() float64 {
	if len(r.progress) == 0 {
		return -1
	}
	return r.progress[len(r.progress)-1]
}

func (r *effectsRecorder) lastOverlay() float64 {
	if len(r.overlay) == 0 {
		return -1
	}
	return r.overlay[len(r.overlay)-1]
}

func countEvents(bus *event.Bus, eventType event.Type) *int {
	count := new(int)
	bus.Subscribe(eventType, func(event.Event) { *count++ })
	return count
}

func TestHyperspaceActivateRefusedOutsideSpace(t *testing.T) {
	tests := []struct {
		name string
		mode GameMode
	}{
		{name: "menu", mode: ModeMenu},
		{name: "surface scene", mode: ModeSurface},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHyperspace(config.DefaultConfig().Hyperspace, nil, nil, nil, nil, nil)
			session := NewSessionState()
			session.Mode = tt.mode

			if h.Activate(session) {
				t.Error("Activate() = true, want refusal")
			}
			if session.Hyperspace.Active {
				t.Error("refused activation mutated session state")
			}
		})
	}
}

func TestHyperspaceActivate(t *testing.T) {
	clock := newFakeClock()
	rec := &effectsRecorder{}
	bus := event.NewEventBus()
	started := countEvents(bus, event.HyperspaceStarted)

	cfg := config.DefaultConfig().Hyperspace
	h := NewHyperspace(cfg, rec, bus, nil, nil, clock.now)
	session := NewSessionState()
	session.Mode = ModeSpace

	if !h.Activate(session) {
		t.Fatal("Activate() = false, want true")
	}
	if !session.Hyperspace.Active {
		t.Error("session not marked active")
	}
	if session.Hyperspace.Duration != cfg.Duration {
		t.Errorf("duration = %v, want %v", session.Hyperspace.Duration, cfg.Duration)
	}
	if !session.Hyperspace.StartTime.Equal(clock.t) {
		t.Errorf("start time = %v, want %v", session.Hyperspace.StartTime, clock.t)
	}
	if h.Streaks().Count() != cfg.StreakCount {
		t.Errorf("streak count = %d, want %d", h.Streaks().Count(), cfg.StreakCount)
	}
	if rec.lastProgress() != 1 {
		t.Errorf("progress = %v, want 1 at activation", rec.lastProgress())
	}
	if *started != 1 {
		t.Errorf("started events = %d, want 1", *started)
	}
}

func TestHyperspaceReactivationIsNoOp(t *testing.T) {
	clock := newFakeClock()
	h := NewHyperspace(config.DefaultConfig().Hyperspace, nil, nil, nil, nil, clock.now)
	session := NewSessionState()
	session.Mode = ModeSpace

	if !h.Activate(session) {
		t.Fatal("first activation refused")
	}
	start := session.Hyperspace.StartTime

	clock.advance(time.Second)
	if h.Activate(session) {
		t.Error("second activation succeeded while active")
	}
	if !session.Hyperspace.StartTime.Equal(start) {
		t.Error("reactivation attempt reset the timer")
	}
}

func TestHyperspaceTickProgress(t *testing.T) {
	clock := newFakeClock()
	rec := &effectsRecorder{}
	h := NewHyperspace(config.DefaultConfig().Hyperspace, rec, nil, nil, nil, clock.now)
	session := NewSessionState()
	session.Mode = ModeSpace
	h.Activate(session)

	clock.advance(time.Second) // half of the 2s default
	h.Tick(session)

	if got := rec.lastProgress(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("progress = %v, want 0.5 at half duration", got)
	}
	if !session.Hyperspace.Active {
		t.Error("hyperspace finished early")
	}
}

func TestHyperspaceExpiry(t *testing.T) {
	clock := newFakeClock()
	rec := &effectsRecorder{}
	bus := event.NewEventBus()
	ended := countEvents(bus, event.HyperspaceEnded)

	latch := input.NewLatch(nil)
	latch.Set(input.Boost, true)

	h := NewHyperspace(config.DefaultConfig().Hyperspace, rec, bus, latch, nil, clock.now)
	session := NewSessionState()
	session.Mode = ModeSpace
	h.Activate(session)

	clock.advance(3 * time.Second)
	h.Tick(session)

	if session.Hyperspace.Active {
		t.Error("still active after expiry")
	}
	if latch.Held(input.Boost) {
		t.Error("latched commands not cleared on expiry")
	}
	if h.Streaks() != nil {
		t.Error("streak field not torn down")
	}
	if rec.lastProgress() != 0 {
		t.Errorf("progress = %v, want 0 (hidden) after expiry", rec.lastProgress())
	}
	if *ended != 1 {
		t.Errorf("ended events = %d, want 1", *ended)
	}

	// Further ticks on an inactive session do nothing.
	h.Tick(session)
	if *ended != 1 {
		t.Errorf("ended events = %d after extra tick, want 1", *ended)
	}
}

func TestHyperspaceCancel(t *testing.T) {
	clock := newFakeClock()
	rec := &effectsRecorder{}
	h := NewHyperspace(config.DefaultConfig().Hyperspace, rec, nil, nil, nil, clock.now)
	session := NewSessionState()
	session.Mode = ModeSpace
	h.Activate(session)

	h.Cancel(session)

	if session.Hyperspace.Active {
		t.Error("still active after cancel")
	}
	if h.Streaks() != nil {
		t.Error("streaks survived cancel")
	}

	// Cancelling when nothing is running stays safe.
	h.Cancel(session)
}
