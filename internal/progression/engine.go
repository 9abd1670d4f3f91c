// Package progression applies descent rewards, level-ups and ambient hazards
// to the player. Every transition is pure with respect to the outside world:
// it mutates only the player and returns the events to report.
package progression

import (
	"github.com/samdwyer/hauntedeternity/internal/entity"
	"github.com/samdwyer/hauntedeternity/internal/gamedata"
	"github.com/samdwyer/hauntedeternity/internal/notify"
	"github.com/samdwyer/hauntedeternity/internal/rng"
)

// Engine rolls progression outcomes against a random source.
type Engine struct {
	rules gamedata.Progression
	rng   rng.Source
}

// NewEngine creates an engine with the given tuning.
func NewEngine(rules gamedata.Progression, src rng.Source) *Engine {
	return &Engine{rules: rules, rng: src}
}

// OnDescend runs once per stair transition: it drains sanity down to the
// floor and rolls for an experience award, which may trigger a level-up.
func (e *Engine) OnDescend(p *entity.Player) []notify.Event {
	p.Sanity = max(e.rules.SanityFloor, p.Sanity-e.rules.DescendSanityCost)

	if e.rng.Float64() >= e.rules.ExpChance {
		return nil
	}

	p.Exp += p.Level * e.rules.ExpPerLevel
	if p.Exp < p.Level*e.rules.LevelThreshold {
		return nil
	}
	return []notify.Event{e.LevelUp(p)}
}

// LevelUp advances the player one level and fully heals them.
func (e *Engine) LevelUp(p *entity.Player) notify.Event {
	p.Level++
	p.Exp = 0
	p.StatPoints += e.rules.StatPointsPerLevel
	p.MaxHP += e.rules.MaxHPPerLevel
	p.HP = p.MaxHP

	return notify.LevelUp(p.Name, p.Level, p.Depth, p.StatPoints)
}

// OnHazardTick rolls for an ambush. The bool is true when one happened.
func (e *Engine) OnHazardTick(p *entity.Player) (notify.Event, bool) {
	if e.rng.Float64() >= e.rules.HazardChance {
		return notify.Event{}, false
	}

	p.HP -= e.rules.HazardDamage
	p.Sanity -= e.rules.HazardSanityLoss
	return notify.Ambushed(p.Name, p.HP, p.Sanity), true
}
