package entity

import (
	"math"
)

// WingAnimator drives the craft's four appendages between their open and
// closed angle sets with a cosine-eased tween. Boost and hyperspace
// transitions trigger it; callers may invoke SetOpen every frame without
// restarting an in-flight animation.
type WingAnimator struct {
	open             bool
	framesRemaining  int
	transitionFrames int

	openAngles   [4]float64
	closedAngles [4]float64
	angles       [4]float64
}

// NewWingAnimator creates an animator starting in the open pose.
func NewWingAnimator(transitionFrames int, openAngles, closedAngles [4]float64) *WingAnimator {
	return &WingAnimator{
		open:             true,
		transitionFrames: transitionFrames,
		openAngles:       openAngles,
		closedAngles:     closedAngles,
		angles:           openAngles,
	}
}

// SetOpen requests the open or closed pose. It is a no-op when the logical
// target already matches, so redundant per-frame calls never restart or
// jitter the tween.
func (w *WingAnimator) SetOpen(open bool) {
	if w.open == open {
		return
	}
	w.open = open
	w.framesRemaining = w.transitionFrames
}

// Tick advances the tween by one frame. At completion the pose is pinned
// exactly to the target angle set so floating-point drift cannot accumulate.
func (w *WingAnimator) Tick() {
	if w.framesRemaining <= 0 {
		return
	}
	w.framesRemaining--

	from, to := w.closedAngles, w.openAngles
	if !w.open {
		from, to = w.openAngles, w.closedAngles
	}

	if w.framesRemaining == 0 {
		w.angles = to
		return
	}

	// Cosine ease: 0 at the start of the tween, 1 at the end.
	progress := 1 - float64(w.framesRemaining)/float64(w.transitionFrames)
	eased := (1 - math.Cos(progress*math.Pi)) / 2
	for i := range w.angles {
		w.angles[i] = from[i] + (to[i]-from[i])*eased
	}
}

// Open reports the logical target pose.
func (w *WingAnimator) Open() bool {
	return w.open
}

// FramesRemaining returns how many ticks remain in the current tween;
// zero means the visual pose equals the logical target exactly.
func (w *WingAnimator) FramesRemaining() int {
	return w.framesRemaining
}

// Angles returns the current appendage angles in radians.
func (w *WingAnimator) Angles() [4]float64 {
	return w.angles
}
