// Package engine holds the types shared between scenes and the host loop:
// the per-frame context scenes borrow and the control flags they send back.
package engine

import (
	"fmt"
	"time"
)

// ControlFlag is a request from a scene for a global effect. The host
// applies flags after the frame that sent them.
type ControlFlag interface {
	controlFlag()
	fmt.Stringer
}

// Quit asks the host to exit.
type Quit struct{}

// SwitchLevel makes Index the current level.
type SwitchLevel struct {
	Index int
}

// UpdateLevelStart resets the level timer to At.
type UpdateLevelStart struct {
	At time.Time
}

// SaveProgress writes the save file.
type SaveProgress struct{}

// MaybeUpdateHighScore records Time for Level if it beats the best time.
type MaybeUpdateHighScore struct {
	Level int
	Time  time.Duration
}

// SoundTrigger plays a named sound.
type SoundTrigger struct {
	Name string
}

// SetVolume changes the master volume. The host clamps it to [0, 1].
type SetVolume struct {
	Volume float64
}

func (Quit) controlFlag()                 {}
func (SwitchLevel) controlFlag()          {}
func (UpdateLevelStart) controlFlag()     {}
func (SaveProgress) controlFlag()         {}
func (MaybeUpdateHighScore) controlFlag() {}
func (SoundTrigger) controlFlag()         {}
func (SetVolume) controlFlag()            {}

func (Quit) String() string          { return "Quit" }
func (f SwitchLevel) String() string { return fmt.Sprintf("SwitchLevel(%d)", f.Index) }
func (f UpdateLevelStart) String() string {
	return fmt.Sprintf("UpdateLevelStart(%s)", f.At.Format(time.RFC3339))
}
func (SaveProgress) String() string { return "SaveProgress" }
func (f MaybeUpdateHighScore) String() string {
	return fmt.Sprintf("MaybeUpdateHighScore(%d, %s)", f.Level, f.Time)
}
func (f SoundTrigger) String() string { return fmt.Sprintf("SoundTrigger(%q)", f.Name) }
func (f SetVolume) String() string    { return fmt.Sprintf("SetVolume(%.2f)", f.Volume) }

// Outbox queues control flags from scenes to the host.
type Outbox struct {
	flags []ControlFlag
}

// Send queues a flag.
func (o *Outbox) Send(f ControlFlag) {
	o.flags = append(o.flags, f)
}

// Drain returns the queued flags in send order and empties the outbox.
func (o *Outbox) Drain() []ControlFlag {
	flags := o.flags
	o.flags = nil
	return flags
}

// Len returns the number of queued flags.
func (o *Outbox) Len() int {
	return len(o.flags)
}
