package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/hauntedeternity/internal/entity"
	"github.com/samdwyer/hauntedeternity/internal/gamedata"
	"github.com/samdwyer/hauntedeternity/internal/world"
)

const playerGlyph = '@'

// HUD carries the status shown below the floor that is not part of the player.
type HUD struct {
	LoggingEnabled bool
	Message        string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the floor, the player and the HUD.
func (r *Renderer) Render(grid *world.Grid, player *entity.Player, hud HUD) {
	r.screen.Clear()
	bg := r.palette.Color(r.palette.Background)

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			tile := grid.TileAt(x, y)
			r.screen.SetContent(x, y, tile.Rune(), r.tileStyle(tile).Background(bg))
		}
	}

	playerColor := r.palette.Player
	if player.Frightened() {
		playerColor = r.palette.Frightened
	}
	playerStyle := tcell.StyleDefault.
		Foreground(r.palette.Color(playerColor)).
		Background(bg).
		Bold(true)
	r.screen.SetContent(player.X, player.Y, playerGlyph, playerStyle)

	r.drawHUD(grid.Height, player, hud)
	r.screen.Show()
}

// RenderModal draws lines in a centered box over whatever is on screen.
func (r *Renderer) RenderModal(lines []string) {
	width, height := r.screen.Size()

	boxWidth := 0
	for _, line := range lines {
		boxWidth = max(boxWidth, runewidth.StringWidth(line))
	}
	boxWidth += 4
	boxHeight := len(lines) + 2

	left := max(0, (width-boxWidth)/2)
	top := max(0, (height-boxHeight)/2)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)

	for y := top; y < top+boxHeight; y++ {
		for x := left; x < left+boxWidth; x++ {
			r.screen.SetContent(x, y, ' ', style)
		}
	}
	for i, line := range lines {
		drawText(r.screen, left+2, top+1+i, line, style.Bold(i == 0))
	}
	r.screen.Show()
}

func (r *Renderer) drawHUD(top int, p *entity.Player, hud HUD) {
	style := tcell.StyleDefault.Foreground(r.palette.Color(r.palette.HUD))

	for i, line := range HUDLines(p, hud) {
		drawText(r.screen, 0, top+i, line, style)
	}
}

// HUDLines formats the status text shown under the floor.
func HUDLines(p *entity.Player, hud HUD) []string {
	logging := "OFF"
	if hud.LoggingEnabled {
		logging = "ON"
	}

	lines := []string{
		fmt.Sprintf("%s | Lv.%d | Depth %d (Best %d)", p.Name, p.Level, p.Depth, p.Deepest),
		fmt.Sprintf("HP: %d/%d | Sanity: %d", p.HP, p.MaxHP, p.Sanity),
		fmt.Sprintf("%s:%d %s:%d %s:%d %s:%d | Points: %d",
			entity.StatStrength, p.Strength, entity.StatSanity, p.SanityStat,
			entity.StatLuck, p.Luck, entity.StatPerception, p.Perception, p.StatPoints),
		fmt.Sprintf("Logging: %s  [wasd/arrows] move  [1-4] spend  [l] logging  [q] quit", logging),
	}
	if hud.Message != "" {
		lines = append(lines, hud.Message)
	}
	return lines
}

// tileStyle returns the appropriate style for a tile type.
func (r *Renderer) tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(r.palette.Color(r.palette.Wall))
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(r.palette.Color(r.palette.Floor))
	case world.TileStairsDown:
		return tcell.StyleDefault.Foreground(r.palette.Color(r.palette.Stairs)).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

// drawText writes text starting at (x, y) and returns the column after it.
// Wide runes such as emoji occupy two columns.
func drawText(s *Screen, x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		s.SetContent(x, y, ch, style)
		x += max(1, runewidth.RuneWidth(ch))
	}
	return x
}
