// Package ui provides terminal rendering and input using tcell.
package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

const maxNameLength = 24

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreen(s)
}

// NewSimulationScreen creates an in-memory screen of the given size, for tests.
func NewSimulationScreen(width, height int) (*Screen, tcell.SimulationScreen, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := newScreen(sim)
	if err != nil {
		return nil, nil, err
	}
	sim.SetSize(width, height)
	return s, sim, nil
}

func newScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event. It returns nil once the screen is closed.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// PromptName asks for the wanderer's name and blocks until Enter or Escape.
// Escape, or an empty entry, returns "". It must be called before anything
// else starts polling events.
func (s *Screen) PromptName(prompt string) string {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	var name []rune

	for {
		s.Clear()
		col := drawText(s, 1, 1, prompt, style)
		drawText(s, col+1, 1, string(name)+"_", style.Bold(true))
		s.Show()

		ev := s.PollEvent()
		if ev == nil {
			return ""
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		switch key.Key() {
		case tcell.KeyEnter:
			return string(name)
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return ""
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(name) > 0 {
				name = name[:len(name)-1]
			}
		case tcell.KeyRune:
			if len(name) < maxNameLength && utf8.ValidRune(key.Rune()) {
				name = append(name, key.Rune())
			}
		}
	}
}
