package ui

import "github.com/gdamore/tcell/v2"

// Intents is the set of directions requested since the last tick.
type Intents struct {
	Up, Down, Left, Right bool
}

// Input latches movement keys until the next tick consumes them. Terminals
// report presses but not releases, so a held key arrives as repeated presses.
type Input struct {
	pending Intents
}

// NewInput creates an empty input tracker.
func NewInput() *Input {
	return &Input{}
}

// Handle records a movement key, reporting whether the key was one.
func (in *Input) Handle(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		in.pending.Up = true
	case tcell.KeyDown:
		in.pending.Down = true
	case tcell.KeyLeft:
		in.pending.Left = true
	case tcell.KeyRight:
		in.pending.Right = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			in.pending.Up = true
		case 's', 'S':
			in.pending.Down = true
		case 'a', 'A':
			in.pending.Left = true
		case 'd', 'D':
			in.pending.Right = true
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// Consume returns the latched intents and clears them.
func (in *Input) Consume() Intents {
	out := in.pending
	in.pending = Intents{}
	return out
}
