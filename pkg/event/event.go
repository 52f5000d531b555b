// Package event provides the pub/sub bus the flight controller publishes
// scene and mode changes on. The UI and audio layers subscribe; the
// controller never calls them directly.
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	SurfaceApproached Type = "surface_approached"
	SurfaceEntered    Type = "surface_entered"
	SurfaceExited     Type = "surface_exited"
	HyperspaceStarted Type = "hyperspace_started"
	HyperspaceEnded   Type = "hyperspace_ended"
	CraftBounced      Type = "craft_bounced"
	ViewToggled       Type = "view_toggled"
	GameModeChanged   Type = "game_mode_changed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// SurfaceEvent contains information about surface scene transitions
type SurfaceEvent struct {
	BaseEvent
	BodyID   uint64
	BodyName string
}

// NewSurfaceEvent creates a new surface transition event
func NewSurfaceEvent(eventType Type, source interface{}, bodyID uint64, bodyName string) *SurfaceEvent {
	return &SurfaceEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyID:   bodyID,
		BodyName: bodyName,
	}
}

// HyperspaceEvent contains information about hyperspace activation and expiry
type HyperspaceEvent struct {
	BaseEvent
	DurationMillis int64
}

// NewHyperspaceEvent creates a new hyperspace event
func NewHyperspaceEvent(eventType Type, source interface{}, durationMillis int64) *HyperspaceEvent {
	return &HyperspaceEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		DurationMillis: durationMillis,
	}
}

// BounceEvent contains information about a collision bounce
type BounceEvent struct {
	BaseEvent
	BodyID    uint64
	SpeedLost float64
}

// NewBounceEvent creates a new bounce event
func NewBounceEvent(source interface{}, bodyID uint64, speedLost float64) *BounceEvent {
	return &BounceEvent{
		BaseEvent: BaseEvent{
			EventType: CraftBounced,
			Source:    source,
		},
		BodyID:    bodyID,
		SpeedLost: speedLost,
	}
}
