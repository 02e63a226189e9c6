package core

import "math/bits"

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - menu cursor up
	ActionDown           // S, Down arrow - menu cursor down
	ActionLeft           // A, Left arrow - decrease a setting
	ActionRight          // D, Right arrow - increase a setting
	ActionJump           // Space - jump
	ActionDash           // Shift+Right, X - dash
	ActionConfirm        // Enter - confirm selection
	ActionBack           // B, Escape - go back
	ActionPause          // P, Escape - pause gameplay
	ActionAnyKey         // Set for every key press
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionDash:
		return "Dash"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionAnyKey:
		return "AnyKey"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions pressed since the previous frame.
// The zero value is empty.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as pressed. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a > ActionAnyKey {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was pressed.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a <= ActionAnyKey && f.bits&(1<<a) != 0
}

// Len returns the number of pressed actions.
func (f InputFrame) Len() int {
	return bits.OnesCount32(f.bits)
}

// Clear empties the frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Clone returns a copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Actions lists the pressed actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionUp; a <= ActionAnyKey; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
