// Package input converts raw key press/release events into the persistent
// command vector the flight controller reads each frame. It holds pure state:
// no physics, no timing.
package input

// Command identifies one latched flight command.
type Command int

const (
	PitchForward Command = iota
	PitchBack
	RollLeft
	RollRight
	YawLeft
	YawRight
	Boost
	Brake
	Fire
	ToggleView

	commandCount
)

// String returns the command name for logs and config files.
func (c Command) String() string {
	switch c {
	case PitchForward:
		return "pitch_forward"
	case PitchBack:
		return "pitch_back"
	case RollLeft:
		return "roll_left"
	case RollRight:
		return "roll_right"
	case YawLeft:
		return "yaw_left"
	case YawRight:
		return "yaw_right"
	case Boost:
		return "boost"
	case Brake:
		return "brake"
	case Fire:
		return "fire"
	case ToggleView:
		return "toggle_view"
	default:
		return "unknown"
	}
}

// CommandVector is the frame's view of the latched commands. Components read
// a snapshot so a key event arriving mid-frame cannot tear the frame.
type CommandVector struct {
	PitchForward bool
	PitchBack    bool
	RollLeft     bool
	RollRight    bool
	YawLeft      bool
	YawRight     bool
	Boost        bool
	Brake        bool
	Fire         bool
	ToggleView   bool
}

// AnyRotation reports whether any turn command is held.
func (v CommandVector) AnyRotation() bool {
	return v.PitchForward || v.PitchBack ||
		v.RollLeft || v.RollRight ||
		v.YawLeft || v.YawRight
}

// Bindings maps raw key identifiers to commands. Key identifiers are opaque
// strings supplied by the input source (the engo adapter uses button names).
type Bindings map[string]Command

// DefaultBindings returns the shipped keyboard layout.
func DefaultBindings() Bindings {
	return Bindings{
		"W":         PitchForward,
		"S":         PitchBack,
		"Q":         RollLeft,
		"E":         RollRight,
		"A":         YawLeft,
		"D":         YawRight,
		"LeftShift": Boost,
		"LeftCtrl":  Brake,
		"Space":     Fire,
		"V":         ToggleView,
	}
}

// Latch owns the persistent boolean command state. It is the sole consumer of
// raw key events; everything else reads snapshots.
type Latch struct {
	bindings Bindings
	held     [commandCount]bool
}

// NewLatch creates a latch with the given bindings. Nil bindings fall back to
// the default layout.
func NewLatch(bindings Bindings) *Latch {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Latch{bindings: bindings}
}

// KeyDown latches the command bound to the key. Unknown keys are ignored.
func (l *Latch) KeyDown(key string) {
	if cmd, ok := l.bindings[key]; ok {
		l.held[cmd] = true
	}
}

// KeyUp releases the command bound to the key. Unknown keys are ignored.
func (l *Latch) KeyUp(key string) {
	if cmd, ok := l.bindings[key]; ok {
		l.held[cmd] = false
	}
}

// Set latches or releases a command directly, bypassing bindings. Used by
// mode entry points and tests.
func (l *Latch) Set(cmd Command, held bool) {
	if cmd >= 0 && cmd < commandCount {
		l.held[cmd] = held
	}
}

// Held reports whether the command is currently latched.
func (l *Latch) Held(cmd Command) bool {
	if cmd < 0 || cmd >= commandCount {
		return false
	}
	return l.held[cmd]
}

// Reset clears every latched command. Called after hyperspace exit so
// residual held keys cannot cause a lingering turn when control returns.
func (l *Latch) Reset() {
	l.held = [commandCount]bool{}
}

// Snapshot returns the current command vector by value.
func (l *Latch) Snapshot() CommandVector {
	return CommandVector{
		PitchForward: l.held[PitchForward],
		PitchBack:    l.held[PitchBack],
		RollLeft:     l.held[RollLeft],
		RollRight:    l.held[RollRight],
		YawLeft:      l.held[YawLeft],
		YawRight:     l.held[YawRight],
		Boost:        l.held[Boost],
		Brake:        l.held[Brake],
		Fire:         l.held[Fire],
		ToggleView:   l.held[ToggleView],
	}
}
