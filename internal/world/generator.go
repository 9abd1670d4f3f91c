package world

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hauntedeternity/internal/gamedata"
	"github.com/samdwyer/hauntedeternity/internal/rng"
	"github.com/samdwyer/hauntedeternity/internal/telemetry"
)

// Generator builds floors from randomly placed, possibly overlapping rooms.
type Generator struct {
	rules gamedata.Generation
	rng   rng.Source
}

// NewGenerator creates a generator drawing from the given random source.
func NewGenerator(rules gamedata.Generation, src rng.Source) *Generator {
	return &Generator{rules: rules, rng: src}
}

// Stairs returns the reference cell every floor's stairs are placed on.
func (g *Generator) Stairs() Point {
	return Point{X: g.rules.Stairs.X, Y: g.rules.Stairs.Y}
}

// Generate creates a new floor. Rooms are stamped in order, so later rooms
// overwrite earlier ones, and no connectivity between rooms is attempted.
func (g *Generator) Generate(ctx context.Context, width, height int) *Grid {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "floor.generate")
	defer span.End()

	startTime := time.Now()

	grid := NewGrid(width, height)
	rooms := g.planRooms(width, height)
	for _, room := range rooms {
		room.stamp(grid)
	}

	stairs := g.Stairs()
	grid.Set(stairs.X, stairs.Y, TileStairsDown)

	span.SetAttributes(
		attribute.Int("floor.width", width),
		attribute.Int("floor.height", height),
		attribute.Int("floor.room_count", len(rooms)),
		attribute.Int("floor.walls", grid.Count(TileWall)),
		attribute.Int64("floor.generation_us", time.Since(startTime).Microseconds()),
	)

	return grid
}

// planRooms picks a room count in [MinRooms, MaxRooms) and a rectangle for each.
// Rooms that cannot fit within the margin are skipped.
func (g *Generator) planRooms(width, height int) []Room {
	count := g.rules.MinRooms + g.rng.Intn(g.rules.MaxRooms-g.rules.MinRooms)
	sizeSpan := g.rules.MaxRoomSize - g.rules.MinRoomSize
	margin := g.rules.Margin

	rooms := make([]Room, 0, count)
	for i := 0; i < count; i++ {
		w := g.rules.MinRoomSize + g.rng.Intn(sizeSpan)
		h := g.rules.MinRoomSize + g.rng.Intn(sizeSpan)

		// Number of origins that leave margin cells free on both sides
		xSpan := width - w - 2*margin + 1
		ySpan := height - h - 2*margin + 1
		if xSpan <= 0 || ySpan <= 0 {
			continue
		}

		rooms = append(rooms, Room{
			X:      margin + g.rng.Intn(xSpan),
			Y:      margin + g.rng.Intn(ySpan),
			Width:  w,
			Height: h,
		})
	}
	return rooms
}
