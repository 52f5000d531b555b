package effects

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// StreakField is the transient particle set drawn during hyperspace. Streaks
// live in craft-local space: they slide backward along the forward axis each
// tick and respawn cyclically at the far end of the span, so the field reads
// as stars rushing past at any frame rate.
type StreakField struct {
	positions []mgl64.Vec3
	speed     float64
	span      float64
}

// NewStreakField spawns count streaks spread through a box of the given span
// along the forward axis, with random lateral scatter.
func NewStreakField(count int, speed, span float64) *StreakField {
	f := &StreakField{
		positions: make([]mgl64.Vec3, count),
		speed:     speed,
		span:      span,
	}
	for i := range f.positions {
		f.positions[i] = mgl64.Vec3{
			(rand.Float64() - 0.5) * span * 0.25,
			(rand.Float64() - 0.5) * span * 0.25,
			(rand.Float64() - 0.5) * span,
		}
	}
	return f
}

// Advance slides every streak backward one tick, respawning any that fall
// off the back of the span at the front.
func (f *StreakField) Advance() {
	if f == nil {
		return
	}
	half := f.span / 2
	for i := range f.positions {
		z := f.positions[i].Z() - f.speed
		if z < -half {
			z += f.span
		}
		f.positions[i][2] = z
	}
}

// Positions returns the craft-local streak positions for the renderer.
func (f *StreakField) Positions() []mgl64.Vec3 {
	if f == nil {
		return nil
	}
	return f.positions
}

// Count returns the number of live streaks; zero after teardown.
func (f *StreakField) Count() int {
	if f == nil {
		return 0
	}
	return len(f.positions)
}

// Teardown releases the particle set. The field must not be advanced or
// rendered afterwards; the controller calls this unconditionally when
// hyperspace ends, whatever scene is active by then.
func (f *StreakField) Teardown() {
	if f == nil {
		return
	}
	f.positions = nil
}
