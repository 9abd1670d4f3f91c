package world

// Room represents a rectangular room stamped during generation.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room, walls included
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// OnPerimeter returns true if the point is on the room's outer ring.
func (r Room) OnPerimeter(x, y int) bool {
	if !r.Contains(x, y) {
		return false
	}
	return x == r.X || x == r.X+r.Width-1 || y == r.Y || y == r.Y+r.Height-1
}

// stamp writes the room into the grid: walls on the perimeter, floor inside.
func (r Room) stamp(g *Grid) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if r.OnPerimeter(x, y) {
				g.Set(x, y, TileWall)
			} else {
				g.Set(x, y, TileFloor)
			}
		}
	}
}
