package world

// Point is a grid cell coordinate.
type Point struct {
	X, Y int
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Grid is one floor's sparse tile map. Unset cells are empty.
type Grid struct {
	Width  int
	Height int
	tiles  map[Point]Tile
}

// NewGrid creates an empty grid of the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		tiles:  make(map[Point]Tile),
	}
}

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// TileAt returns the tile at the given position, or TileEmpty if the cell is
// unset or out of range.
func (g *Grid) TileAt(x, y int) Tile {
	if t, ok := g.tiles[Point{X: x, Y: y}]; ok {
		return t
	}
	return TileEmpty
}

// IsWalkable returns true if the tile at the given position can be entered.
func (g *Grid) IsWalkable(x, y int) bool {
	return g.TileAt(x, y).IsWalkable()
}

// Set places a tile. Out of range cells are ignored.
// Only generation and test fixtures should call it; a floor is otherwise immutable.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	if t == TileEmpty {
		delete(g.tiles, Point{X: x, Y: y})
		return
	}
	g.tiles[Point{X: x, Y: y}] = t
}

// Count returns the number of cells holding the tile.
// Counting TileEmpty includes every unset in-bounds cell.
func (g *Grid) Count(t Tile) int {
	if t == TileEmpty {
		return g.Width*g.Height - len(g.tiles)
	}
	n := 0
	for _, tile := range g.tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Reachable reports whether to can be walked to from from without leaving the grid.
func (g *Grid) Reachable(from, to Point) bool {
	if !g.InBounds(from.X, from.Y) || !g.InBounds(to.X, to.Y) {
		return false
	}
	if !g.IsWalkable(from.X, from.Y) || !g.IsWalkable(to.X, to.Y) {
		return false
	}

	seen := map[Point]bool{from: true}
	queue := []Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == to {
			return true
		}
		for _, next := range [4]Point{p.Add(0, -1), p.Add(0, 1), p.Add(-1, 0), p.Add(1, 0)} {
			if seen[next] || !g.InBounds(next.X, next.Y) || !g.IsWalkable(next.X, next.Y) {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return false
}
