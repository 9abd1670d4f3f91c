package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/hauntedeternity/internal/entity"
	"github.com/samdwyer/hauntedeternity/internal/world"
)

// Session is one run, from entering the house until death or restart.
type Session struct {
	ID        uuid.UUID
	Player    *entity.Player
	Floor     *world.Grid
	State     State
	Ticks     int
	StartedAt time.Time
}

// Playtime returns how long the session has lasted at now.
func (s *Session) Playtime(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}
