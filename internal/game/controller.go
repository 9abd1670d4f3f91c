package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hauntedeternity/internal/entity"
	"github.com/samdwyer/hauntedeternity/internal/gamedata"
	"github.com/samdwyer/hauntedeternity/internal/notify"
	"github.com/samdwyer/hauntedeternity/internal/persistence"
	"github.com/samdwyer/hauntedeternity/internal/progression"
	"github.com/samdwyer/hauntedeternity/internal/rng"
	"github.com/samdwyer/hauntedeternity/internal/telemetry"
	"github.com/samdwyer/hauntedeternity/internal/world"
)

// ErrNotRunning is returned by actions that need a live session.
var ErrNotRunning = errors.New("no running session")

// Intents are the directions held during a tick. Several may be set at once.
type Intents struct {
	Up, Down, Left, Right bool
}

// TickResult summarizes what a tick changed.
type TickResult struct {
	Moved     bool
	Descended bool
	Ambushed  bool
	Died      bool // Set only on the tick that killed the player
}

// Controller owns the current session and advances it one tick at a time.
type Controller struct {
	rules    gamedata.Rules
	gen      *world.Generator
	engine   *progression.Engine
	settings *persistence.Settings
	events   notify.Dispatcher
	now      func() time.Time

	session *Session
}

// NewController creates a controller. src drives both floor layout and
// progression rolls; events may be nil to drop notifications.
func NewController(rules gamedata.Rules, src rng.Source, settings *persistence.Settings, events notify.Dispatcher) (*Controller, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if settings == nil {
		settings = persistence.NewSettings(persistence.NewMemoryStore())
	}
	if events == nil {
		events = notify.Discard{}
	}

	return &Controller{
		rules:    rules,
		gen:      world.NewGenerator(rules.Generation, src),
		engine:   progression.NewEngine(rules.Progression, src),
		settings: settings,
		events:   events,
		now:      time.Now,
	}, nil
}

// Session returns the current session, or nil before Start.
func (c *Controller) Session() *Session {
	return c.session
}

// Start abandons any current session and begins a new one on a fresh floor.
func (c *Controller) Start(ctx context.Context, name string) *Session {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.start")
	defer span.End()

	player := entity.NewPlayer(name, c.settings.Deepest(), c.rules.Player)
	c.session = &Session{
		ID:        uuid.New(),
		Player:    player,
		Floor:     c.gen.Generate(ctx, c.rules.Generation.Width, c.rules.Generation.Height),
		State:     StateRunning,
		StartedAt: c.now(),
	}

	span.SetAttributes(
		attribute.String("session.id", c.session.ID.String()),
		attribute.String("player.name", player.Name),
		attribute.Int("player.deepest", player.Deepest),
	)

	c.events.Dispatch(notify.SessionStarted(player.Name, c.session.ID.String(), player.Depth))
	return c.session
}

// Tick advances the running session. It does nothing once the player is dead.
func (c *Controller) Tick(ctx context.Context, in Intents) TickResult {
	var result TickResult
	s := c.session
	if s == nil || s.State != StateRunning {
		return result
	}
	s.Ticks++

	p := s.Player
	moves := []struct {
		held   bool
		dx, dy int
	}{
		{in.Up, 0, -1},
		{in.Down, 0, 1},
		{in.Left, -1, 0},
		{in.Right, 1, 0},
	}
	for _, m := range moves {
		if m.held && c.tryMove(m.dx, m.dy) {
			result.Moved = true
		}
	}

	if s.Floor.TileAt(p.X, p.Y) == world.TileStairsDown {
		c.descend(ctx)
		result.Descended = true
	}

	if ev, hit := c.engine.OnHazardTick(p); hit {
		c.events.Dispatch(ev)
		result.Ambushed = true
	}

	if p.HP <= 0 {
		c.die(ctx)
		result.Died = true
	}

	return result
}

// SpendStatPoint spends one of the player's unspent points.
func (c *Controller) SpendStatPoint(stat entity.Stat) error {
	if c.session == nil || c.session.State != StateRunning {
		return ErrNotRunning
	}
	return c.session.Player.SpendStatPoint(stat)
}

// tryMove moves the player one cell if the target is walkable and on the grid.
func (c *Controller) tryMove(dx, dy int) bool {
	p := c.session.Player
	floor := c.session.Floor
	x, y := p.X+dx, p.Y+dy

	if !floor.InBounds(x, y) || !floor.IsWalkable(x, y) {
		return false
	}
	p.Move(dx, dy)
	return true
}

// descend replaces the floor and applies the descent rules.
func (c *Controller) descend(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.descend")
	defer span.End()

	s := c.session
	p := s.Player

	s.Floor = c.gen.Generate(ctx, c.rules.Generation.Width, c.rules.Generation.Height)
	reentry := world.Point{X: c.rules.Player.Reentry.X, Y: c.rules.Player.Reentry.Y}
	p.SetPosition(reentry.X, reentry.Y)

	p.Depth++
	record := p.RecordDepth()
	if record {
		if err := c.settings.SetDeepest(p.Deepest); err != nil {
			log.Printf("Failed to persist deepest depth %d: %v", p.Deepest, err)
		}
	}

	levelBefore := p.Level
	for _, ev := range c.engine.OnDescend(p) {
		if ev.Kind == notify.KindLevelUp {
			_, levelSpan := tracer.Start(ctx, "game.level_up")
			levelSpan.SetAttributes(attribute.Int("player.level", p.Level))
			levelSpan.End()
		}
		c.events.Dispatch(ev)
	}

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int("player.depth", p.Depth),
		attribute.Bool("player.new_record", record),
		attribute.Bool("player.leveled", p.Level > levelBefore),
		attribute.Int("player.sanity", p.Sanity),
		attribute.Bool("floor.stairs_reachable", s.Floor.Reachable(reentry, c.gen.Stairs())),
	)
}

// die ends the session and reports it once.
func (c *Controller) die(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.death")
	defer span.End()

	s := c.session
	s.State = StateDead
	playtime := s.Playtime(c.now())

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int("player.depth", s.Player.Depth),
		attribute.Int("session.ticks", s.Ticks),
		attribute.Int64("session.playtime_ms", playtime.Milliseconds()),
	)

	c.events.Dispatch(notify.SoulClaimed(s.Player.Name, s.Player.Depth, playtime))
}
