package world

import "testing"

func TestTileIsWalkable(t *testing.T) {
	tests := []struct {
		tile Tile
		want bool
	}{
		{TileEmpty, true},
		{TileFloor, true},
		{TileStairsDown, true},
		{TileWall, false},
	}

	for _, tt := range tests {
		if got := tt.tile.IsWalkable(); got != tt.want {
			t.Errorf("%v.IsWalkable() = %v, want %v", tt.tile, got, tt.want)
		}
	}
}

func TestTileAtUnsetAndOutOfRange(t *testing.T) {
	g := NewGrid(10, 10)
	g.Set(3, 3, TileWall)

	if got := g.TileAt(4, 4); got != TileEmpty {
		t.Errorf("unset cell = %v, want empty", got)
	}
	if got := g.TileAt(-1, 3); got != TileEmpty {
		t.Errorf("out of range cell = %v, want empty", got)
	}
	if got := g.TileAt(3, 3); got != TileWall {
		t.Errorf("TileAt(3,3) = %v, want wall", got)
	}

	g.Set(20, 20, TileWall)
	if got := g.TileAt(20, 20); got != TileEmpty {
		t.Errorf("Set outside bounds should be ignored, got %v", got)
	}
}

func TestGridCount(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(0, 0, TileWall)
	g.Set(1, 0, TileWall)
	g.Set(2, 0, TileFloor)

	if got := g.Count(TileWall); got != 2 {
		t.Errorf("Count(wall) = %d, want 2", got)
	}
	if got := g.Count(TileEmpty); got != 13 {
		t.Errorf("Count(empty) = %d, want 13", got)
	}

	g.Set(0, 0, TileEmpty)
	if got := g.Count(TileWall); got != 1 {
		t.Errorf("Count(wall) after clearing = %d, want 1", got)
	}
}

func TestReachable(t *testing.T) {
	g := NewGrid(10, 10)
	// Sealed box around (5,5)
	Room{X: 3, Y: 3, Width: 5, Height: 5}.stamp(g)

	if !g.Reachable(Point{0, 0}, Point{9, 9}) {
		t.Error("open corners should be reachable")
	}
	if g.Reachable(Point{0, 0}, Point{5, 5}) {
		t.Error("sealed room interior should not be reachable from outside")
	}
	if !g.Reachable(Point{4, 4}, Point{6, 6}) {
		t.Error("cells inside the same room should be reachable")
	}
	if g.Reachable(Point{0, 0}, Point{3, 3}) {
		t.Error("a wall target is never reachable")
	}
}
