package notify

import (
	"fmt"
	"strconv"
	"time"
)

// SessionStarted is emitted once a new wanderer enters.
func SessionStarted(name, sessionID string, depth int) Event {
	return Event{
		Kind:        KindSessionStart,
		Title:       "New Soul Entered",
		Description: fmt.Sprintf("%s stepped into the house…", name),
		Color:       ColorDefault,
		Fields: []Field{
			{Name: "Depth", Value: strconv.Itoa(depth)},
			{Name: "Session", Value: sessionID},
		},
	}
}

// LevelUp is emitted when the player reaches a new level.
func LevelUp(name string, level, depth, statPoints int) Event {
	return Event{
		Kind:        KindLevelUp,
		Title:       "Level Up!",
		Description: fmt.Sprintf("%s reached level %d", name, level),
		Color:       ColorDefault,
		Fields: []Field{
			{Name: "Depth", Value: strconv.Itoa(depth)},
			{Name: "Stats", Value: fmt.Sprintf("%d points", statPoints)},
		},
	}
}

// Ambushed is emitted when a hazard tick hurts the player.
func Ambushed(name string, hp, sanity int) Event {
	return Event{
		Kind:        KindHazardHit,
		Title:       "Ambushed!",
		Description: fmt.Sprintf("%s was attacked in the dark", name),
		Color:       ColorDefault,
		Fields: []Field{
			{Name: "HP", Value: strconv.Itoa(hp)},
			{Name: "Sanity", Value: strconv.Itoa(sanity)},
		},
	}
}

// SoulClaimed is emitted once when the player dies.
func SoulClaimed(name string, depth int, playtime time.Duration) Event {
	return Event{
		Kind:        KindDeath,
		Title:       "☠️ Soul Claimed",
		Description: fmt.Sprintf("%s has become part of the house forever", name),
		Color:       ColorDefault,
		Fields: []Field{
			{Name: "Depth", Value: strconv.Itoa(depth)},
			{Name: "Playtime", Value: playtime.Round(time.Second).String()},
		},
	}
}

// Crash reports a recovered fault. stack may be empty.
func Crash(message, stack string) Event {
	if stack == "" {
		stack = "none"
	}
	return Event{
		Kind:        KindCrash,
		Title:       "💥 Crash",
		Description: message,
		Color:       ColorCrash,
		Fields:      []Field{{Name: "Stack", Value: stack}},
	}
}
