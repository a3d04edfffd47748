package core

// Action is a semantic input, independent of the key that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionShield         // Z, Space - toggle shield
	ActionPause          // P, Escape
	ActionRestart        // R after game over
	ActionQuit           // Q, Ctrl+C
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionShield:  "Shield",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one simulation tick.
// A bit set keeps the per-tick frame allocation free.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone {
		return
	}
	f.bits |= 1 << uint(a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone {
		return false
	}
	return f.bits&(1<<uint(a)) != 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Axis converts the directional actions into a unit step on each axis,
// with +y meaning up.
func (f InputFrame) Axis() (dx, dy int) {
	if f.Has(ActionLeft) {
		dx--
	}
	if f.Has(ActionRight) {
		dx++
	}
	if f.Has(ActionUp) {
		dy++
	}
	if f.Has(ActionDown) {
		dy--
	}
	return dx, dy
}
