package game

import (
	"testing"

	"github.com/pthm-cable/tether/components"
	"github.com/pthm-cable/tether/config"
)

func init() {
	config.MustInit("")
}

// newTestGame builds a headless game with the demo producer off so tests
// control every collection event.
func newTestGame(t *testing.T, players int) *Game {
	t.Helper()
	g, err := NewGame(Options{
		Seed:     1,
		Headless: true,
		Demo:     false,
		Players:  players,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// attach is a test shorthand for growing a chain directly.
func attach(g *Game, player uint8, optionID int) {
	g.attachSegment(player, optionID, "X", components.PaletteColor(optionID), components.Position{})
}

func countFlying(g *Game) int {
	n := 0
	query := g.flyFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

func TestNewGameSpawnsPlayers(t *testing.T) {
	g := newTestGame(t, 3)

	if len(g.players) != 3 {
		t.Fatalf("players = %d, want 3", len(g.players))
	}
	for id := uint8(0); id < 3; id++ {
		if _, ok := g.trails[id]; !ok {
			t.Errorf("player %d has no trail", id)
		}
		if _, ok := g.chains[id]; !ok {
			t.Errorf("player %d has no chain", id)
		}
	}
}

func TestSimulationStepAdvancesTick(t *testing.T) {
	g := newTestGame(t, 1)

	for i := 0; i < 10; i++ {
		g.simulationStep()
	}
	if g.Tick() != 10 {
		t.Errorf("tick = %d, want 10", g.Tick())
	}
}

func TestHeadlessRunStaysConsistent(t *testing.T) {
	g := newTestGame(t, 2)
	g.demoEnabled = true

	// A few simulated seconds with the demo producer exercising the whole
	// pipeline must keep every chain within capacity and correctly indexed.
	for i := 0; i < 600; i++ {
		g.simulationStep()
	}

	for player, chain := range g.chains {
		if len(chain.Segments) > chain.MaxSegments {
			t.Errorf("player %d chain over capacity: %d", player, len(chain.Segments))
		}
		for i, e := range chain.Segments {
			seg := g.segMap.Get(e)
			if seg == nil {
				t.Errorf("player %d slot %d holds a dead entity", player, i)
				continue
			}
			if seg.Index != i {
				t.Errorf("player %d slot %d has index %d", player, i, seg.Index)
			}
		}
	}
}

func TestDrainEvents(t *testing.T) {
	g := newTestGame(t, 1)

	attach(g, 0, 1)
	events := g.DrainEvents()
	if len(events) != 1 || events[0].Kind != EventSegmentAttached {
		t.Fatalf("events = %v, want one attach event", events)
	}
	if g.DrainEvents() != nil {
		t.Error("second drain should be empty")
	}
}

func TestSetMapSize(t *testing.T) {
	g := newTestGame(t, 1)

	g.SetMapSize(400, 300)
	if g.bounds.Width() != 400 || g.bounds.Height() != 300 {
		t.Errorf("bounds = %vx%v, want 400x300", g.bounds.Width(), g.bounds.Height())
	}

	// The next movement pass folds positions into the new canonical range
	g.simulationStep()
	for _, e := range g.players {
		pos := g.posMap.Get(e)
		if pos.X > 200 || pos.X < -200 || pos.Y > 150 || pos.Y < -150 {
			t.Errorf("player position %v outside new bounds", *pos)
		}
	}
}
