package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/hauntedeternity/internal/entity"
	"github.com/samdwyer/hauntedeternity/internal/gamedata"
	"github.com/samdwyer/hauntedeternity/internal/notify"
	"github.com/samdwyer/hauntedeternity/internal/persistence"
	"github.com/samdwyer/hauntedeternity/internal/rng"
	"github.com/samdwyer/hauntedeternity/internal/telemetry"
	"github.com/samdwyer/hauntedeternity/internal/world"
)

var (
	calm   = rng.Fixed{Float: 0.5} // no hazards, no experience awards
	cursed = rng.Fixed{Float: 0}   // every roll succeeds
)

type fixture struct {
	ctrl     *Controller
	store    *persistence.MemoryStore
	recorder *notify.Recorder
	session  *Session
}

func newFixture(t *testing.T, src rng.Source) *fixture {
	t.Helper()
	rules, err := gamedata.LoadRules()
	if err != nil {
		t.Fatalf("Failed to load rules: %v", err)
	}

	store := persistence.NewMemoryStore()
	recorder := &notify.Recorder{}
	ctrl, err := NewController(rules, src, persistence.NewSettings(store), recorder)
	if err != nil {
		t.Fatalf("NewController() = %v", err)
	}

	f := &fixture{ctrl: ctrl, store: store, recorder: recorder}
	f.session = ctrl.Start(context.Background(), "Ada")
	// Replace the generated floor with an open one for predictable movement
	f.session.Floor = world.NewGrid(rules.Generation.Width, rules.Generation.Height)
	return f
}

func (f *fixture) tick(in Intents) TickResult {
	return f.ctrl.Tick(context.Background(), in)
}

// stairsEast puts a fresh open floor under the player with stairs one cell east.
func (f *fixture) stairsEast() {
	p := f.session.Player
	floor := world.NewGrid(f.session.Floor.Width, f.session.Floor.Height)
	floor.Set(p.X+1, p.Y, world.TileStairsDown)
	f.session.Floor = floor
}

func TestStartEmitsSessionStart(t *testing.T) {
	f := newFixture(t, calm)

	events := f.recorder.Events()
	if len(events) != 1 || events[0].Kind != notify.KindSessionStart {
		t.Fatalf("events after Start = %+v, want one session_start", events)
	}
	if v, _ := events[0].Field("Session"); v != f.session.ID.String() {
		t.Errorf("Session field = %q, want %q", v, f.session.ID)
	}
	if f.session.State != StateRunning {
		t.Errorf("State = %v, want running", f.session.State)
	}
	if x, y := f.session.Player.Position(); x != 10 || y != 10 {
		t.Errorf("start position = (%d,%d), want (10,10)", x, y)
	}
}

func TestStartGeneratesFloorWithStairs(t *testing.T) {
	rules := gamedata.MustLoadRules()
	ctrl, err := NewController(rules, calm, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := ctrl.Start(context.Background(), "Ada")
	if s.Floor.TileAt(50, 5) != world.TileStairsDown {
		t.Error("first floor should have stairs at the reference cell")
	}
}

func TestStartLoadsDeepest(t *testing.T) {
	rules := gamedata.MustLoadRules()
	store := persistence.NewMemoryStore()
	store.Set(persistence.KeyDeepest, "9") //nolint:errcheck

	ctrl, err := NewController(rules, calm, persistence.NewSettings(store), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := ctrl.Start(context.Background(), "Ada").Player.Deepest; got != 9 {
		t.Errorf("Deepest = %d, want 9", got)
	}
}

func TestMovementBlockedByWall(t *testing.T) {
	f := newFixture(t, calm)
	f.session.Floor.Set(11, 10, world.TileWall)

	for i := 0; i < 2; i++ {
		if r := f.tick(Intents{Right: true}); r.Moved {
			t.Errorf("tick %d moved into a wall", i)
		}
	}
	if x, y := f.session.Player.Position(); x != 10 || y != 10 {
		t.Errorf("position = (%d,%d), want (10,10)", x, y)
	}
}

func TestMovementIntoWalkableTiles(t *testing.T) {
	tests := []struct {
		tile world.Tile
		in   Intents
		x, y int
	}{
		{world.TileEmpty, Intents{Up: true}, 10, 9},
		{world.TileFloor, Intents{Down: true}, 10, 11},
		{world.TileFloor, Intents{Left: true}, 9, 10},
	}

	for _, tt := range tests {
		f := newFixture(t, calm)
		f.session.Floor.Set(tt.x, tt.y, tt.tile)
		if r := f.tick(tt.in); !r.Moved {
			t.Errorf("move into %v did not happen", tt.tile)
		}
		if x, y := f.session.Player.Position(); x != tt.x || y != tt.y {
			t.Errorf("move into %v: position (%d,%d), want (%d,%d)", tt.tile, x, y, tt.x, tt.y)
		}
	}
}

func TestDiagonalMovement(t *testing.T) {
	f := newFixture(t, calm)
	f.tick(Intents{Up: true, Right: true})
	if x, y := f.session.Player.Position(); x != 11 || y != 9 {
		t.Errorf("position = (%d,%d), want (11,9)", x, y)
	}
}

func TestOppositeIntentsCancel(t *testing.T) {
	f := newFixture(t, calm)
	f.tick(Intents{Left: true, Right: true})
	if x, y := f.session.Player.Position(); x != 10 || y != 10 {
		t.Errorf("position = (%d,%d), want (10,10)", x, y)
	}
}

func TestMovementStaysOnGrid(t *testing.T) {
	f := newFixture(t, calm)
	f.session.Player.SetPosition(0, 0)
	f.tick(Intents{Up: true, Left: true})
	if x, y := f.session.Player.Position(); x != 0 || y != 0 {
		t.Errorf("position = (%d,%d), want (0,0)", x, y)
	}
}

func TestStairsDescend(t *testing.T) {
	f := newFixture(t, calm)
	f.stairsEast()
	old := f.session.Floor

	r := f.tick(Intents{Right: true})
	if !r.Descended {
		t.Fatal("stepping on stairs should descend")
	}

	p := f.session.Player
	if f.session.Floor == old {
		t.Error("floor should be replaced on descent")
	}
	if f.session.Floor.TileAt(50, 5) != world.TileStairsDown {
		t.Error("new floor should have stairs at the reference cell")
	}
	if x, y := p.Position(); x != 5 || y != 5 {
		t.Errorf("position after descent = (%d,%d), want (5,5)", x, y)
	}
	if p.Depth != 1 || p.Deepest != 1 {
		t.Errorf("Depth/Deepest = %d/%d, want 1/1", p.Depth, p.Deepest)
	}
	if raw, _ := f.store.Get(persistence.KeyDeepest); raw != "1" {
		t.Errorf("persisted deepest = %q, want \"1\"", raw)
	}
	if p.Sanity != 95 {
		t.Errorf("Sanity = %d, want 95", p.Sanity)
	}
}

func TestDeepestTracksMaximum(t *testing.T) {
	f := newFixture(t, calm)
	p := f.session.Player
	p.Deepest = 3
	f.store.Set(persistence.KeyDeepest, "3") //nolint:errcheck

	for i := 1; i <= 5; i++ {
		f.stairsEast()
		f.tick(Intents{Right: true})
		want := max(3, i)
		if p.Deepest != want {
			t.Fatalf("after %d descents Deepest = %d, want %d", i, p.Deepest, want)
		}
	}
	if raw, _ := f.store.Get(persistence.KeyDeepest); raw != "5" {
		t.Errorf("persisted deepest = %q, want \"5\"", raw)
	}

	// A new session never lowers the record
	next := f.ctrl.Start(context.Background(), "Ada")
	if next.Player.Deepest != 5 || next.Player.Depth != 0 {
		t.Errorf("new session Depth/Deepest = %d/%d, want 0/5", next.Player.Depth, next.Player.Deepest)
	}
}

func TestForcedAwardsLevelUpOnFifthDescent(t *testing.T) {
	f := newFixture(t, cursed)
	p := f.session.Player

	for i := 1; i <= 5; i++ {
		f.stairsEast()
		f.tick(Intents{Right: true})
		if i < 5 && p.Level != 1 {
			t.Fatalf("leveled up after %d descents", i)
		}
	}

	if p.Level != 2 || p.Exp != 0 {
		t.Errorf("Level/Exp = %d/%d, want 2/0", p.Level, p.Exp)
	}
	if got := f.recorder.Count(notify.KindLevelUp); got != 1 {
		t.Errorf("level-up events = %d, want 1", got)
	}
	// The hazard after the level-up still lands this tick
	if p.MaxHP != 25 || p.HP != 24 {
		t.Errorf("HP/MaxHP = %d/%d, want 24/25", p.HP, p.MaxHP)
	}
}

func TestHazardKillsOnce(t *testing.T) {
	f := newFixture(t, cursed)
	p := f.session.Player
	p.HP = 1

	r := f.tick(Intents{})
	if !r.Ambushed || !r.Died {
		t.Fatalf("tick result = %+v, want ambushed and died", r)
	}
	if p.HP != 0 || f.session.State != StateDead {
		t.Errorf("HP=%d State=%v, want 0 and dead", p.HP, f.session.State)
	}

	r = f.tick(Intents{Right: true})
	if r != (TickResult{}) {
		t.Errorf("tick after death = %+v, want no-op", r)
	}
	if x, _ := p.Position(); x != 10 {
		t.Errorf("dead player moved to x=%d", x)
	}
	if got := f.recorder.Count(notify.KindDeath); got != 1 {
		t.Errorf("death events = %d, want exactly 1", got)
	}
	if got := f.recorder.Count(notify.KindHazardHit); got != 1 {
		t.Errorf("hazard events = %d, want 1", got)
	}
}

func TestDeathReportsPlaytime(t *testing.T) {
	f := newFixture(t, cursed)
	start := f.session.StartedAt
	f.ctrl.now = func() time.Time { return start.Add(90 * time.Second) }
	f.session.Player.HP = 1

	f.tick(Intents{})

	events := f.recorder.Events()
	last := events[len(events)-1]
	if v, _ := last.Field("Playtime"); v != "1m30s" {
		t.Errorf("Playtime field = %q, want 1m30s", v)
	}
}

func TestSpendStatPoint(t *testing.T) {
	f := newFixture(t, calm)
	p := f.session.Player

	if err := f.ctrl.SpendStatPoint(entity.StatStrength); !errors.Is(err, entity.ErrNoStatPoints) {
		t.Errorf("spend with no points = %v, want ErrNoStatPoints", err)
	}

	p.StatPoints = 1
	if err := f.ctrl.SpendStatPoint(entity.StatStrength); err != nil {
		t.Fatal(err)
	}
	if p.Strength != 6 {
		t.Errorf("Strength = %d, want 6", p.Strength)
	}

	f.session.State = StateDead
	if err := f.ctrl.SpendStatPoint(entity.StatLuck); !errors.Is(err, ErrNotRunning) {
		t.Errorf("spend while dead = %v, want ErrNotRunning", err)
	}
}

func TestNewControllerRejectsInvalidRules(t *testing.T) {
	rules := gamedata.MustLoadRules()
	rules.Generation.Stairs = gamedata.Cell{X: 500, Y: 5}
	if _, err := NewController(rules, calm, nil, nil); err == nil {
		t.Error("NewController() should reject stairs outside the grid")
	}
}

func TestDescendIsTraced(t *testing.T) {
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := telemetry.Install(ctx, sdktrace.WithSyncer(exporter))
	if err != nil {
		t.Fatalf("Install() = %v", err)
	}
	defer shutdown(ctx) //nolint:errcheck

	f := newFixture(t, calm)
	f.stairsEast()
	f.tick(Intents{Right: true})

	var descend *tracetest.SpanStub
	spans := exporter.GetSpans()
	for i := range spans {
		if spans[i].Name == "game.descend" {
			descend = &spans[i]
		}
	}
	if descend == nil {
		t.Fatalf("no game.descend span among %d spans", len(spans))
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range descend.Attributes {
		attrs[kv.Key] = kv.Value
	}
	if v, ok := attrs["player.depth"]; !ok || v.AsInt64() != 1 {
		t.Errorf("player.depth = %v, want 1", v)
	}
	if _, ok := attrs["floor.stairs_reachable"]; !ok {
		t.Error("missing floor.stairs_reachable attribute")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateRunning, "running"},
		{StateDead, "dead"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}
