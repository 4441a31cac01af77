package systems

import (
	"testing"

	"github.com/pthm-cable/tether/components"
)

func newTestTrail(maxLen int) *MovementTrail {
	// Interval and spacing chosen so Push stores every distinct point
	return NewMovementTrail(0.1, 1, maxLen)
}

func TestTrailNewestFirst(t *testing.T) {
	bo := NewBounds(1000, 1000)
	tr := newTestTrail(100)

	tr.Push(components.Position{X: 0, Y: 0}, bo)
	tr.Push(components.Position{X: 10, Y: 0}, bo)
	tr.Push(components.Position{X: 20, Y: 0}, bo)

	if tr.Len() != 3 {
		t.Fatalf("len = %d, want 3", tr.Len())
	}
	newest, ok := tr.Newest()
	if !ok || !approx(newest.X, 20) {
		t.Errorf("newest = %v, want (20, 0)", newest)
	}
}

func TestTrailZeroIntervalClamped(t *testing.T) {
	bo := NewBounds(1000, 1000)

	// A zero or negative interval must not stall the accumulator drain
	for _, interval := range []float32{0, -0.5} {
		tr := NewMovementTrail(interval, 0, 10)
		tr.Sample(components.Position{X: 5, Y: 0}, 0.1, bo)
		if tr.Len() == 0 {
			t.Errorf("interval %v: no point stored", interval)
		}
	}
}

func TestTrailPositionAtDistance(t *testing.T) {
	bo := NewBounds(1000, 1000)
	tr := newTestTrail(100)

	tr.Push(components.Position{X: 0, Y: 0}, bo)
	tr.Push(components.Position{X: 10, Y: 0}, bo)
	tr.Push(components.Position{X: 20, Y: 0}, bo)

	// 5 units behind the head lies between the two newest samples
	pos, ok := tr.PositionAtDistance(5, bo)
	if !ok {
		t.Fatal("expected a position")
	}
	if !approx(pos.X, 15) || !approx(pos.Y, 0) {
		t.Errorf("PositionAtDistance(5) = %v, want (15, 0)", pos)
	}

	// Distance along the trail is monotone: farther back means smaller X here
	prev := float32(21)
	for _, d := range []float32{0, 5, 10, 15, 20} {
		pos, ok := tr.PositionAtDistance(d, bo)
		if !ok {
			t.Fatalf("no position at distance %v", d)
		}
		if pos.X > prev {
			t.Errorf("X not monotone at distance %v: %v after %v", d, pos.X, prev)
		}
		prev = pos.X
	}
}

func TestTrailPositionClampsToOldest(t *testing.T) {
	bo := NewBounds(1000, 1000)
	tr := newTestTrail(100)

	tr.Push(components.Position{X: 0, Y: 0}, bo)
	tr.Push(components.Position{X: 10, Y: 0}, bo)

	pos, ok := tr.PositionAtDistance(500, bo)
	if !ok {
		t.Fatal("expected clamp to oldest, not failure")
	}
	if !approx(pos.X, 0) || !approx(pos.Y, 0) {
		t.Errorf("clamped position = %v, want oldest (0, 0)", pos)
	}
}

func TestTrailEmpty(t *testing.T) {
	bo := NewBounds(1000, 1000)
	tr := newTestTrail(100)

	if _, ok := tr.PositionAtDistance(5, bo); ok {
		t.Error("empty trail should report no position")
	}
	if _, ok := tr.Newest(); ok {
		t.Error("empty trail should have no newest point")
	}
}

func TestTrailMinSpacingFilter(t *testing.T) {
	bo := NewBounds(1000, 1000)
	tr := NewMovementTrail(0.1, 5, 100)

	tr.Push(components.Position{X: 0, Y: 0}, bo)
	tr.Push(components.Position{X: 1, Y: 0}, bo) // too close, dropped
	tr.Push(components.Position{X: 6, Y: 0}, bo)

	if tr.Len() != 2 {
		t.Errorf("len = %d, want 2 (near-duplicate dropped)", tr.Len())
	}
}

func TestTrailMaxLength(t *testing.T) {
	bo := NewBounds(10000, 10000)
	tr := NewMovementTrail(0.1, 1, 5)

	for i := 0; i < 20; i++ {
		tr.Push(components.Position{X: float32(i * 10), Y: 0}, bo)
	}

	if tr.Len() != 5 {
		t.Fatalf("len = %d, want capped at 5", tr.Len())
	}
	newest, _ := tr.Newest()
	if !approx(newest.X, 190) {
		t.Errorf("newest = %v, want most recent push (190, 0)", newest)
	}
}

func TestTrailSampleInterval(t *testing.T) {
	bo := NewBounds(1000, 1000)
	tr := NewMovementTrail(0.1, 0, 100)

	// Below the interval: nothing stored
	tr.Sample(components.Position{X: 0, Y: 0}, 0.05, bo)
	if tr.Len() != 0 {
		t.Fatalf("len = %d before interval elapsed, want 0", tr.Len())
	}

	// Crossing the interval stores one point
	tr.Sample(components.Position{X: 1, Y: 0}, 0.05, bo)
	if tr.Len() != 1 {
		t.Fatalf("len = %d after one interval, want 1", tr.Len())
	}

	// A large dt catches up across several intervals
	tr.Sample(components.Position{X: 30, Y: 0}, 0.35, bo)
	if tr.Len() < 2 {
		t.Errorf("len = %d after large dt, want at least 2", tr.Len())
	}
}

func TestTrailPositionAcrossEdge(t *testing.T) {
	bo := NewBounds(100, 100)
	tr := newTestTrail(100)

	// Head walked across the right seam: old sample near +48, new near -48
	tr.Push(components.Position{X: 44, Y: 0}, bo)
	tr.Push(components.Position{X: 48, Y: 0}, bo)
	tr.Push(components.Position{X: -48, Y: 0}, bo)

	// 2 units behind the head is on the far side of the seam
	pos, ok := tr.PositionAtDistance(2, bo)
	if !ok {
		t.Fatal("expected a position")
	}
	if !approx(pos.X, 50) && !approx(pos.X, -50) {
		t.Errorf("PositionAtDistance(2) = %v, want the seam at |x| = 50", pos)
	}
}

func TestTrailReset(t *testing.T) {
	bo := NewBounds(1000, 1000)
	tr := newTestTrail(100)

	tr.Push(components.Position{X: 0, Y: 0}, bo)
	tr.Reset()
	if tr.Len() != 0 {
		t.Errorf("len = %d after reset, want 0", tr.Len())
	}
}
