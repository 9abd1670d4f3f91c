// Package world provides floor generation and the tile grid.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileEmpty is an unset cell. It is walkable.
	TileEmpty Tile = ' '
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a passable room interior tile.
	TileFloor Tile = '.'
	// TileStairsDown regenerates the floor when entered.
	TileStairsDown Tile = '>'
)

// IsWalkable returns true unless the tile is a wall.
func (t Tile) IsWalkable() bool {
	return t != TileWall
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileStairsDown:
		return "stairs"
	default:
		return "unknown"
	}
}
