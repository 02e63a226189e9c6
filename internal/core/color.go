package core

// Color is a semantic palette slot for a screen cell. The platform layer
// decides what each slot looks like on the terminal.
type Color uint8

const (
	ColorDefault  Color = iota
	ColorTitle          // headings and logo
	ColorSelected       // highlighted menu entry
	ColorMuted          // hints, locked entries, background art
	ColorPlayer         // the character sprite
	ColorPlatform       // solid colliders
	ColorGhost          // disappearing platforms
	ColorHazard         // kill zones, death screen
	ColorGoal           // win zone, win screen
	ColorWarning        // errors
)

// String returns the palette slot name.
func (c Color) String() string {
	switch c {
	case ColorTitle:
		return "title"
	case ColorSelected:
		return "selected"
	case ColorMuted:
		return "muted"
	case ColorPlayer:
		return "player"
	case ColorPlatform:
		return "platform"
	case ColorGhost:
		return "ghost"
	case ColorHazard:
		return "hazard"
	case ColorGoal:
		return "goal"
	case ColorWarning:
		return "warning"
	default:
		return "default"
	}
}
