// Package game provides the session controller and the terminal game loop.
package game

// State represents the session's lifecycle state.
type State int

const (
	// StateRunning is the only state in which ticks update the session.
	StateRunning State = iota
	// StateDead is terminal: the session must be replaced to play again.
	StateDead
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}
