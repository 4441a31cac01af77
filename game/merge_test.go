package game

import (
	"testing"
)

// mergingEntities returns chain slice positions of segments mid-merge and
// the position of the designated target, or -1.
func mergingEntities(g *Game, player uint8) (merging []int, target int) {
	target = -1
	for i, e := range g.chains[player].Segments {
		m := g.mergeMap.Get(e)
		if m == nil {
			continue
		}
		merging = append(merging, i)
		if m.IsTarget {
			target = i
		}
	}
	return merging, target
}

func TestDetectMergesMatchingRun(t *testing.T) {
	g := newTestGame(t, 1)

	// [A, A, A, B]
	attach(g, 0, 1)
	attach(g, 0, 1)
	attach(g, 0, 1)
	attach(g, 0, 2)

	g.detectMerges(0)

	merging, target := mergingEntities(g, 0)
	if len(merging) != 3 {
		t.Fatalf("merging segments = %v, want the first three", merging)
	}
	for i, want := range []int{0, 1, 2} {
		if merging[i] != want {
			t.Errorf("merging[%d] = %d, want %d", i, merging[i], want)
		}
	}
	if target != 1 {
		t.Errorf("target = %d, want the middle of the run", target)
	}

	// B stays untouched
	if g.mergeMap.Get(g.chains[0].Segments[3]) != nil {
		t.Error("segment outside the run is merging")
	}
}

func TestDetectMergesRequiresMatchingIdentityAndLevel(t *testing.T) {
	g := newTestGame(t, 1)

	// Mixed identities: no run of three
	attach(g, 0, 1)
	attach(g, 0, 2)
	attach(g, 0, 1)
	attach(g, 0, 2)

	g.detectMerges(0)
	if merging, _ := mergingEntities(g, 0); len(merging) != 0 {
		t.Errorf("mixed identities should not merge, got %v", merging)
	}

	// Same identity but one upgraded: still no run
	g2 := newTestGame(t, 1)
	attach(g2, 0, 1)
	attach(g2, 0, 1)
	attach(g2, 0, 1)
	g2.segMap.Get(g2.chains[0].Segments[1]).Level = 2

	g2.detectMerges(0)
	if merging, _ := mergingEntities(g2, 0); len(merging) != 0 {
		t.Errorf("mixed levels should not merge, got %v", merging)
	}
}

func TestDetectMergesRespectsMaxLevel(t *testing.T) {
	g := newTestGame(t, 1)
	maxLevel := g.config().Merge.MaxLevel

	attach(g, 0, 1)
	attach(g, 0, 1)
	attach(g, 0, 1)
	for _, e := range g.chains[0].Segments {
		g.segMap.Get(e).Level = maxLevel
	}

	g.detectMerges(0)
	if merging, _ := mergingEntities(g, 0); len(merging) != 0 {
		t.Errorf("segments at max level should not merge, got %v", merging)
	}
}

func TestMergeCompletionUpgradesTarget(t *testing.T) {
	g := newTestGame(t, 1)

	attach(g, 0, 1)
	attach(g, 0, 1)
	attach(g, 0, 1)
	attach(g, 0, 2)

	g.detectMerges(0)
	duration := float32(g.config().Merge.AnimationDuration)

	g.animateMergingSegments(duration + 0.01)
	g.cleanupChains()

	chain := g.chains[0]
	if len(chain.Segments) != 2 {
		t.Fatalf("chain length = %d after merge, want 2", len(chain.Segments))
	}

	merged := g.segMap.Get(chain.Segments[0])
	if merged.Level != 2 {
		t.Errorf("merged level = %d, want 2", merged.Level)
	}
	if merged.MergeValue != g.config().Merge.MinSegments {
		t.Errorf("merge value = %d, want %d", merged.MergeValue, g.config().Merge.MinSegments)
	}
	if merged.OptionID != 1 {
		t.Errorf("merged option = %d, want 1", merged.OptionID)
	}
	if g.mergeMap.Get(chain.Segments[0]) != nil {
		t.Error("merging marker not removed from the survivor")
	}

	// Radius grew with the tier, indices reflowed
	if body := g.bodyMap.Get(chain.Segments[0]); body.Radius != g.segmentRadius(2) {
		t.Errorf("radius = %v, want tier 2 radius", body.Radius)
	}
	for i, e := range chain.Segments {
		if seg := g.segMap.Get(e); seg.Index != i {
			t.Errorf("slot %d has index %d after merge cleanup", i, seg.Index)
		}
	}

	// The merge event reports the new tier
	found := false
	for _, ev := range g.DrainEvents() {
		if ev.Kind == EventChainMerged {
			found = true
			if ev.NewLevel != 2 {
				t.Errorf("event level = %d, want 2", ev.NewLevel)
			}
		}
	}
	if !found {
		t.Error("no merge event emitted")
	}
}

func TestMergeCooldownBlocksImmediateRepeat(t *testing.T) {
	g := newTestGame(t, 1)

	// Two complete runs back to back
	for i := 0; i < 6; i++ {
		attach(g, 0, 1)
	}

	g.detectMerges(0)
	merging, _ := mergingEntities(g, 0)
	if len(merging) != 3 {
		t.Fatalf("first pass should start one merge, got %v", merging)
	}

	// Finish the first merge, then detect again within the cooldown window
	g.animateMergingSegments(float32(g.config().Merge.AnimationDuration) + 0.01)
	g.cleanupChains()
	g.detectMerges(0)
	if merging, _ := mergingEntities(g, 0); len(merging) != 0 {
		t.Errorf("cooldown should block the second merge, got %v", merging)
	}

	// Advance past both the cooldown timer and the log window
	window := g.merges.window
	g.merges.tick(window + 0.01)
	g.elapsed += window + 0.01

	g.detectMerges(0)
	if merging, _ := mergingEntities(g, 0); len(merging) != 3 {
		t.Errorf("expired cooldown should allow the second merge, got %v", merging)
	}
}

func TestMergeStateCooldown(t *testing.T) {
	m := newMergeState(2.0, 4)

	if !m.canMerge(0, 0) {
		t.Fatal("fresh state should allow a merge")
	}
	m.recordMerge(0, 0)
	if m.canMerge(0, 1.0) {
		t.Error("merge allowed inside the cooldown window")
	}

	m.tick(2.5)
	if !m.canMerge(0, 2.5) {
		t.Error("merge blocked after the window expired")
	}

	// Other players are unaffected
	if !m.canMerge(1, 0) {
		t.Error("cooldown leaked across players")
	}
}

func TestMergeLogBounded(t *testing.T) {
	m := newMergeState(1.0, 3)

	for i := 0; i < 10; i++ {
		m.recordMerge(0, float32(i)*10)
	}
	if len(m.log[0]) != 3 {
		t.Errorf("log length = %d, want capped at 3", len(m.log[0]))
	}
}
