package gamedata

import (
	"errors"
	"fmt"
)

// Cell is a grid coordinate in rules.json.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Generation holds floor layout parameters.
type Generation struct {
	Width       int  `json:"width"`       // Grid width in cells
	Height      int  `json:"height"`      // Grid height in cells
	MinRooms    int  `json:"minRooms"`    // Inclusive lower bound on rooms per floor
	MaxRooms    int  `json:"maxRooms"`    // Exclusive upper bound on rooms per floor
	MinRoomSize int  `json:"minRoomSize"` // Inclusive lower bound on room width/height
	MaxRoomSize int  `json:"maxRoomSize"` // Exclusive upper bound on room width/height
	Margin      int  `json:"margin"`      // Cells kept free between a room and the grid edge
	Stairs      Cell `json:"stairs"`      // Reference cell forced to stairs on every floor
}

// PlayerDefaults holds the starting vitals and stats of a new player.
type PlayerDefaults struct {
	DefaultName  string `json:"defaultName"`
	Spawn        Cell   `json:"spawn"`   // Position at session start
	Reentry      Cell   `json:"reentry"` // Position after each descent
	HP           int    `json:"hp"`
	Sanity       int    `json:"sanity"`
	Strength     int    `json:"strength"`
	SanityStat   int    `json:"sanityStat"`
	Luck         int    `json:"luck"`
	Perception   int    `json:"perception"`
	FrightenedAt int    `json:"frightenedAt"` // Sanity at or below which the player is drawn as frightened
}

// Progression holds descent, level-up and hazard tuning.
type Progression struct {
	DescendSanityCost  int     `json:"descendSanityCost"`
	SanityFloor        int     `json:"sanityFloor"`
	ExpChance          float64 `json:"expChance"`      // Chance per descent of an experience award
	ExpPerLevel        int     `json:"expPerLevel"`    // Award is level * ExpPerLevel
	LevelThreshold     int     `json:"levelThreshold"` // Level up once exp >= level * LevelThreshold
	StatPointsPerLevel int     `json:"statPointsPerLevel"`
	MaxHPPerLevel      int     `json:"maxHPPerLevel"`
	HazardChance       float64 `json:"hazardChance"` // Chance per tick of an ambush
	HazardDamage       int     `json:"hazardDamage"`
	HazardSanityLoss   int     `json:"hazardSanityLoss"`
}

// Rules is the root of rules.json.
type Rules struct {
	Generation  Generation     `json:"generation"`
	Player      PlayerDefaults `json:"player"`
	Progression Progression    `json:"progression"`
	Palette     Palette        `json:"palette"`
}

// LoadRules loads and validates the embedded rules.json file.
func LoadRules() (Rules, error) {
	rules, err := Load[Rules]("rules.json")
	if err != nil {
		return Rules{}, err
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules.json: %w", err)
	}
	return rules, nil
}

// MustLoadRules loads the rules, panicking on error.
func MustLoadRules() Rules {
	rules, err := LoadRules()
	if err != nil {
		panic(err)
	}
	return rules
}

// Validate reports the first inconsistency in the rules.
func (r Rules) Validate() error {
	g := r.Generation
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return errors.New("grid dimensions must be positive")
	case g.MinRooms < 0 || g.MaxRooms <= g.MinRooms:
		return fmt.Errorf("room count range [%d,%d) is empty", g.MinRooms, g.MaxRooms)
	case g.MinRoomSize < 2 || g.MaxRoomSize <= g.MinRoomSize:
		return fmt.Errorf("room size range [%d,%d) is invalid", g.MinRoomSize, g.MaxRoomSize)
	case g.Margin < 0:
		return errors.New("margin must not be negative")
	}

	if !r.inGrid(g.Stairs) {
		return fmt.Errorf("stairs cell (%d,%d) is outside the %dx%d grid", g.Stairs.X, g.Stairs.Y, g.Width, g.Height)
	}
	if !r.inGrid(r.Player.Spawn) || !r.inGrid(r.Player.Reentry) {
		return errors.New("spawn and re-entry cells must be inside the grid")
	}

	p := r.Progression
	if p.ExpChance < 0 || p.ExpChance > 1 || p.HazardChance < 0 || p.HazardChance > 1 {
		return errors.New("probabilities must be within [0,1]")
	}
	if p.LevelThreshold <= 0 {
		return errors.New("level threshold must be positive")
	}
	return nil
}

func (r Rules) inGrid(c Cell) bool {
	return c.X >= 0 && c.X < r.Generation.Width && c.Y >= 0 && c.Y < r.Generation.Height
}
