package event

import (
	"testing"
)

func TestBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewEventBus()

	var received []Type
	bus.Subscribe(SurfaceEntered, func(e Event) {
		received = append(received, e.GetType())
	})

	bus.Publish(NewSurfaceEvent(SurfaceEntered, nil, 7, "veridia"))
	bus.Publish(NewSurfaceEvent(SurfaceExited, nil, 7, "veridia"))

	if len(received) != 1 {
		t.Fatalf("received %d events, want 1", len(received))
	}
	if received[0] != SurfaceEntered {
		t.Errorf("received %v, want %v", received[0], SurfaceEntered)
	}
}

func TestBus_MultipleHandlers(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	for i := 0; i < 3; i++ {
		bus.Subscribe(HyperspaceStarted, func(e Event) { calls++ })
	}

	bus.Publish(NewHyperspaceEvent(HyperspaceStarted, nil, 2000))
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus()
	// Must not panic.
	bus.Publish(NewBounceEvent(nil, 1, 5))
}

func TestSurfaceEventFields(t *testing.T) {
	e := NewSurfaceEvent(SurfaceApproached, "controller", 42, "dustball")

	if e.GetType() != SurfaceApproached {
		t.Errorf("type = %v", e.GetType())
	}
	if e.GetSource() != "controller" {
		t.Errorf("source = %v", e.GetSource())
	}
	if e.BodyID != 42 || e.BodyName != "dustball" {
		t.Errorf("body fields = %d %q", e.BodyID, e.BodyName)
	}
}

func TestBounceEventCarriesSpeedLoss(t *testing.T) {
	e := NewBounceEvent(nil, 9, 12.5)
	if e.GetType() != CraftBounced {
		t.Errorf("type = %v, want %v", e.GetType(), CraftBounced)
	}
	if e.SpeedLost != 12.5 {
		t.Errorf("SpeedLost = %f", e.SpeedLost)
	}
}
