package game

import (
	"testing"

	"github.com/pthm-cable/tether/components"
)

// reactingIndices returns the chain indices currently caught by the wave.
func reactingIndices(g *Game, player uint8) map[int]bool {
	caught := make(map[int]bool)
	for _, e := range g.chains[player].Segments {
		if g.reactMap.Get(e) == nil {
			continue
		}
		if seg := g.segMap.Get(e); seg != nil {
			caught[seg.Index] = true
		}
	}
	return caught
}

func TestReactionSpreadsOutwardFromHit(t *testing.T) {
	g := newTestGame(t, 1)
	for i := 0; i < 5; i++ {
		attach(g, 0, i)
	}

	if !g.reactions.start(0, 2) {
		t.Fatal("reaction should start")
	}
	interval := g.reactions.spreadInterval

	// Wave front at distance 0: only the hit segment
	g.tickReactionSpread(interval)
	caught := reactingIndices(g, 0)
	if len(caught) != 1 || !caught[2] {
		t.Fatalf("first wave caught %v, want {2}", caught)
	}

	// Distance 1: both neighbors
	g.tickReactionSpread(interval)
	caught = reactingIndices(g, 0)
	for _, want := range []int{1, 2, 3} {
		if !caught[want] {
			t.Errorf("second wave missing index %d (caught %v)", want, caught)
		}
	}
	if caught[0] || caught[4] {
		t.Errorf("second wave reached too far: %v", caught)
	}

	// Distance 2: the whole chain
	g.tickReactionSpread(interval)
	caught = reactingIndices(g, 0)
	if len(caught) != 5 {
		t.Errorf("third wave caught %v, want all 5", caught)
	}
}

func TestReactionTimerAccumulates(t *testing.T) {
	g := newTestGame(t, 1)
	for i := 0; i < 3; i++ {
		attach(g, 0, i)
	}
	g.reactions.start(0, 1)
	interval := g.reactions.spreadInterval

	// Below the interval nothing spreads
	g.tickReactionSpread(interval * 0.4)
	if len(reactingIndices(g, 0)) != 0 {
		t.Error("wave advanced before the interval elapsed")
	}

	// Crossing the boundary fires exactly one step
	g.tickReactionSpread(interval * 0.7)
	if caught := reactingIndices(g, 0); len(caught) != 1 {
		t.Errorf("caught %v after one interval, want only the hit", caught)
	}
}

func TestDuplicateReactionIgnored(t *testing.T) {
	g := newTestGame(t, 1)
	for i := 0; i < 3; i++ {
		attach(g, 0, i)
	}

	if !g.reactions.start(0, 1) {
		t.Fatal("first trigger should start")
	}
	if g.reactions.start(0, 2) {
		t.Error("second trigger during an active reaction should be ignored")
	}
	if g.reactions.active[0].hitIndex != 1 {
		t.Error("duplicate trigger overwrote the original hit index")
	}
}

func TestReactionDestroysSegmentsAndCompletes(t *testing.T) {
	g := newTestGame(t, 1)
	for i := 0; i < 3; i++ {
		attach(g, 0, i)
	}
	g.reactions.start(0, 1)
	interval := g.reactions.spreadInterval
	duration := float32(g.config().Reaction.Duration)

	// Catch every segment, then play each animation to completion
	g.tickReactionSpread(interval)
	g.tickReactionSpread(interval)
	g.animateReactingSegments(duration * 0.7) // past the vanish threshold
	g.animateReactingSegments(duration)       // past the end

	g.cleanupChains()
	if n := len(g.chains[0].Segments); n != 0 {
		t.Fatalf("chain length = %d after full cascade, want 0", n)
	}

	// With nothing left animating, the entry retires as the front passes
	// its maximum distance.
	maxSpread := g.reactions.maxSpread
	for i := 0; i <= maxSpread+1; i++ {
		g.tickReactionSpread(interval)
	}
	if _, active := g.reactions.active[0]; active {
		t.Error("reaction entry not removed after the wave finished")
	}

	// Destruction events carry the points penalty
	points := g.config().Reaction.PointsLostPerSegment
	destroyed := 0
	for _, ev := range g.DrainEvents() {
		if ev.Kind == EventSegmentDestroyed {
			destroyed++
			if ev.PointsLost != points {
				t.Errorf("points lost = %d, want %d", ev.PointsLost, points)
			}
		}
	}
	if destroyed != 3 {
		t.Errorf("destroyed events = %d, want 3", destroyed)
	}
}

func TestDetectSelfCollision(t *testing.T) {
	g := newTestGame(t, 1)
	for i := 0; i < 4; i++ {
		attach(g, 0, i)
	}

	playerEnt, _ := g.playerEntity(0)
	playerPos := g.posMap.Get(playerEnt)

	// Park every segment far away, then drop segment 2 onto the player
	for i, e := range g.chains[0].Segments {
		pos := g.posMap.Get(e)
		pos.X = playerPos.X + 300 + float32(i)*50
		pos.Y = playerPos.Y
	}
	hit := g.chains[0].Segments[2]
	*g.posMap.Get(hit) = *playerPos

	g.detectSelfCollisions()

	reaction, active := g.reactions.active[0]
	if !active {
		t.Fatal("collision did not start a reaction")
	}
	if reaction.hitIndex != 2 {
		t.Errorf("hit index = %d, want 2", reaction.hitIndex)
	}
}

func TestSegmentNearestPlayerExemptFromCollision(t *testing.T) {
	g := newTestGame(t, 1)
	attach(g, 0, 1)
	attach(g, 0, 2)

	playerEnt, _ := g.playerEntity(0)
	playerPos := g.posMap.Get(playerEnt)

	// Segment 0 rides on the player; segment 1 is far away
	*g.posMap.Get(g.chains[0].Segments[0]) = *playerPos
	far := g.posMap.Get(g.chains[0].Segments[1])
	far.X = playerPos.X + 300

	g.detectSelfCollisions()
	if _, active := g.reactions.active[0]; active {
		t.Error("the segment nearest the player must not trigger a reaction")
	}
}

func TestReactionPhaseFlipsAtSixtyPercent(t *testing.T) {
	r := components.Reacting{Duration: 1.0}

	if r.Phase != components.PhaseReacting {
		t.Fatal("new reaction should start in the reacting phase")
	}

	g := newTestGame(t, 1)
	attach(g, 0, 1)
	e := g.chains[0].Segments[0]
	g.reactMap.Add(e, &r)

	g.animateReactingSegments(0.5)
	if got := g.reactMap.Get(e); got.Phase != components.PhaseReacting {
		t.Error("phase flipped before 60% elapsed")
	}
	g.animateReactingSegments(0.2)
	if got := g.reactMap.Get(e); got.Phase != components.PhaseVanishing {
		t.Error("phase did not flip after 60% elapsed")
	}
}
