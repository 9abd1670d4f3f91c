// Package entity provides the player entity.
package entity

import (
	"errors"

	"github.com/samdwyer/hauntedeternity/internal/gamedata"
)

var (
	// ErrNoStatPoints is returned when spending with no unspent points left.
	ErrNoStatPoints = errors.New("no stat points to spend")
	// ErrUnknownStat is returned for a stat outside the defined set.
	ErrUnknownStat = errors.New("unknown stat")
)

// Stat identifies one of the player's spendable attributes.
type Stat int

const (
	StatStrength Stat = iota
	StatSanity
	StatLuck
	StatPerception
)

// String returns the stat's HUD abbreviation.
func (s Stat) String() string {
	switch s {
	case StatStrength:
		return "STR"
	case StatSanity:
		return "SAN"
	case StatLuck:
		return "LCK"
	case StatPerception:
		return "PER"
	default:
		return "Unknown"
	}
}

// Player is the single wanderer of a session.
type Player struct {
	Name string
	X, Y int // Grid cell position

	// Vitals
	HP, MaxHP int
	Sanity    int // Floored only on descent; hazards may drive it below zero

	// Stats, display only for now
	Strength   int
	SanityStat int
	Luck       int
	Perception int

	// Progression
	Level      int
	Exp        int
	StatPoints int // Unspent points

	Depth   int // Floors descended this session
	Deepest int // Best depth across sessions

	Inventory []string

	frightenedAt int
}

// NewPlayer creates a level 1 player at the spawn cell. deepest is the
// persisted record from earlier sessions.
func NewPlayer(name string, deepest int, defaults gamedata.PlayerDefaults) *Player {
	if name == "" {
		name = defaults.DefaultName
	}
	return &Player{
		Name:         name,
		X:            defaults.Spawn.X,
		Y:            defaults.Spawn.Y,
		HP:           defaults.HP,
		MaxHP:        defaults.HP,
		Sanity:       defaults.Sanity,
		Strength:     defaults.Strength,
		SanityStat:   defaults.SanityStat,
		Luck:         defaults.Luck,
		Perception:   defaults.Perception,
		Level:        1,
		Deepest:      deepest,
		Inventory:    []string{},
		frightenedAt: defaults.FrightenedAt,
	}
}

// Move updates the player position by the given delta.
func (p *Player) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// SetPosition places the player on the given cell.
func (p *Player) SetPosition(x, y int) {
	p.X = x
	p.Y = y
}

// Position returns the current x, y coordinates.
func (p *Player) Position() (int, int) {
	return p.X, p.Y
}

// IsAlive returns true if the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// Frightened reports whether sanity has fallen to the fright threshold.
func (p *Player) Frightened() bool {
	return p.Sanity <= p.frightenedAt
}

// RecordDepth raises Deepest to Depth if it is a new record, reporting whether it was.
func (p *Player) RecordDepth() bool {
	if p.Depth <= p.Deepest {
		return false
	}
	p.Deepest = p.Depth
	return true
}

// SpendStatPoint moves one unspent point into the given stat.
func (p *Player) SpendStatPoint(stat Stat) error {
	target := p.statField(stat)
	if target == nil {
		return ErrUnknownStat
	}
	if p.StatPoints <= 0 {
		return ErrNoStatPoints
	}
	p.StatPoints--
	*target++
	return nil
}

func (p *Player) statField(stat Stat) *int {
	switch stat {
	case StatStrength:
		return &p.Strength
	case StatSanity:
		return &p.SanityStat
	case StatLuck:
		return &p.Luck
	case StatPerception:
		return &p.Perception
	default:
		return nil
	}
}
