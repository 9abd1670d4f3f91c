package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/hauntedeternity/internal/entity"
	"github.com/samdwyer/hauntedeternity/internal/gamedata"
	"github.com/samdwyer/hauntedeternity/internal/notify"
	"github.com/samdwyer/hauntedeternity/internal/persistence"
	"github.com/samdwyer/hauntedeternity/internal/rng"
	"github.com/samdwyer/hauntedeternity/internal/ui"
)

const namePrompt = "Your name, wanderer?"

var deathLines = []string{
	"You died. The house keeps your soul.",
	"Press any key. [r] sends a new soul in, [q] leaves.",
}

// Notifier is the notification sink whose delivery the player can toggle.
type Notifier interface {
	notify.Dispatcher
	SetEnabled(enabled bool)
}

// Game drives a Controller from the terminal: it owns the screen, the tick
// clock and the keyboard.
type Game struct {
	cfg      Config
	rules    gamedata.Rules
	screen   *ui.Screen
	renderer *ui.Renderer
	input    *ui.Input
	ctrl     *Controller
	settings *persistence.Settings
	notifier Notifier
	terminal chan tcell.Event
	name     string
	message  string
	running  bool
}

// New creates a new game instance on the terminal.
func New(cfg Config, rules gamedata.Rules, settings *persistence.Settings, notifier Notifier) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g, err := newGame(screen, cfg, rules, settings, notifier, rng.New(cfg.Seed))
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(screen *ui.Screen, cfg Config, rules gamedata.Rules, settings *persistence.Settings, notifier Notifier, src rng.Source) (*Game, error) {
	if notifier == nil {
		return nil, errors.New("game: nil notifier")
	}
	if settings == nil {
		settings = persistence.NewSettings(persistence.NewMemoryStore())
	}
	ctrl, err := NewController(rules, src, settings, notifier)
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		rules:    rules,
		screen:   screen,
		renderer: ui.NewRenderer(screen, rules.Palette),
		input:    ui.NewInput(),
		ctrl:     ctrl,
		settings: settings,
		notifier: notifier,
		terminal: make(chan tcell.Event, 16),
		running:  true,
	}, nil
}

// Run executes the main game loop until the player quits, ctx ends, or a tick panics.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	g.name = g.resolveName()
	g.notifier.SetEnabled(g.settings.LoggingEnabled())
	g.ctrl.Start(ctx, g.name)

	done := make(chan struct{})
	defer close(done)
	go g.pumpEvents(done)

	ticker := time.NewTicker(g.cfg.TickInterval())
	defer ticker.Stop()

	g.render()
	for g.running {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-g.terminal:
			g.handleEvent(ctx, ev)
		case <-ticker.C:
			if err := g.step(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// pumpEvents forwards terminal events until the screen closes.
func (g *Game) pumpEvents(done <-chan struct{}) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case g.terminal <- ev:
		case <-done:
			return
		}
	}
}

// step runs one tick. A panic is reported as a crash and ends the loop.
func (g *Game) step(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			g.notifier.Dispatch(notify.Crash(msg, string(debug.Stack())))
			err = fmt.Errorf("tick panicked: %s", msg)
		}
	}()

	result := g.ctrl.Tick(ctx, Intents(g.input.Consume()))
	if result.Died {
		g.message = "The house keeps your soul. [r] new soul  [q] quit"
	}
	g.render()

	if result.Died {
		g.awaitDeathAck(ctx)
	}
	return nil
}

// awaitDeathAck shows the death modal and blocks until a key press.
func (g *Game) awaitDeathAck(ctx context.Context) {
	g.renderer.RenderModal(deathLines)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-g.terminal:
			if _, ok := ev.(*tcell.EventKey); ok {
				g.render()
				return
			}
		}
	}
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
		g.render()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			g.running = false
			return
		case 'l', 'L':
			g.toggleLogging()
			return
		case 'r', 'R':
			if s := g.ctrl.Session(); s != nil && s.State == StateDead {
				g.message = ""
				g.ctrl.Start(ctx, g.name)
				g.render()
			}
			return
		case '1', '2', '3', '4':
			g.spend(entity.Stat(r - '1'))
			return
		}
	}

	g.input.Handle(ev)
}

func (g *Game) toggleLogging() {
	enabled := !g.settings.LoggingEnabled()
	if err := g.settings.SetLoggingEnabled(enabled); err != nil {
		log.Printf("Failed to persist logging toggle: %v", err)
	}
	g.notifier.SetEnabled(enabled)
	g.render()
}

func (g *Game) spend(stat entity.Stat) {
	switch err := g.ctrl.SpendStatPoint(stat); {
	case err == nil:
		g.message = fmt.Sprintf("%s increased", stat)
	case errors.Is(err, entity.ErrNoStatPoints):
		g.message = "No stat points to spend"
	default:
		g.message = ""
	}
	g.render()
}

func (g *Game) render() {
	s := g.ctrl.Session()
	if s == nil {
		return
	}
	g.renderer.Render(s.Floor, s.Player, ui.HUD{
		LoggingEnabled: g.settings.LoggingEnabled(),
		Message:        g.message,
	})
}

// resolveName returns the remembered name, or asks for one and remembers it.
func (g *Game) resolveName() string {
	if name := g.settings.PlayerName(); name != "" {
		return name
	}

	name := strings.TrimSpace(g.screen.PromptName(namePrompt))
	if name == "" {
		name = g.rules.Player.DefaultName
	}
	if err := g.settings.SetPlayerName(name); err != nil {
		log.Printf("Failed to persist player name: %v", err)
	}
	return name
}
