package systems

import "github.com/pthm-cable/tether/components"

// MovementTrail is a per-player waypoint buffer with distance-indexed
// sampling. Points are stored newest first. Sampling is rate-limited by a
// repeating interval timer and a minimum spacing between stored points.
type MovementTrail struct {
	points         []components.Position // index 0 = newest
	maxLength      int
	minSampleDist  float32
	sampleInterval float32
	accum          float32
}

// NewMovementTrail creates an empty trail.
func NewMovementTrail(sampleInterval, minSampleDist float32, maxLength int) *MovementTrail {
	if maxLength < 1 {
		maxLength = 1
	}
	if sampleInterval <= 0 {
		sampleInterval = 0.001
	}
	return &MovementTrail{
		points:         make([]components.Position, 0, maxLength),
		maxLength:      maxLength,
		minSampleDist:  minSampleDist,
		sampleInterval: sampleInterval,
	}
}

// Sample advances the sampling timer by dt and records the position on each
// interval boundary. Positions closer than the minimum spacing to the newest
// stored point are dropped.
func (t *MovementTrail) Sample(pos components.Position, dt float32, bo Bounds) {
	t.accum += dt
	for t.accum >= t.sampleInterval {
		t.accum -= t.sampleInterval
		t.push(pos, bo)
	}
}

// Push records a position immediately, bypassing the interval timer. The
// minimum-spacing filter still applies.
func (t *MovementTrail) Push(pos components.Position, bo Bounds) {
	t.push(pos, bo)
}

func (t *MovementTrail) push(pos components.Position, bo Bounds) {
	if len(t.points) > 0 && WrappedDistance(t.points[0], pos, bo) < t.minSampleDist {
		return
	}

	// Prepend: newest first
	t.points = append(t.points, components.Position{})
	copy(t.points[1:], t.points)
	t.points[0] = pos

	if len(t.points) > t.maxLength {
		t.points = t.points[:t.maxLength]
	}
}

// Len returns the number of stored waypoints.
func (t *MovementTrail) Len() int {
	return len(t.points)
}

// Newest returns the most recent waypoint.
func (t *MovementTrail) Newest() (components.Position, bool) {
	if len(t.points) == 0 {
		return components.Position{}, false
	}
	return t.points[0], true
}

// PositionAtDistance walks the trail from the newest point, accumulating
// wrap-aware step lengths until the requested distance is covered, then
// interpolates within that step. If the whole trail is shorter than the
// requested distance, the oldest point is returned (the chain tail catches
// up rather than failing). Returns false only for an empty trail.
func (t *MovementTrail) PositionAtDistance(distance float32, bo Bounds) (components.Position, bool) {
	if len(t.points) == 0 {
		return components.Position{}, false
	}

	accumulated := float32(0)
	for i := 0; i < len(t.points)-1; i++ {
		step := WrappedDistance(t.points[i], t.points[i+1], bo)
		if step <= 0 {
			continue
		}
		if accumulated+step >= distance {
			frac := clamp01((distance - accumulated) / step)
			return WrappedLerp(t.points[i], t.points[i+1], frac, bo), true
		}
		accumulated += step
	}

	// Ran out of trail: clamp to the oldest known point
	return t.points[len(t.points)-1], true
}

// PathLength returns the total wrap-aware length of the stored trail.
func (t *MovementTrail) PathLength(bo Bounds) float32 {
	total := float32(0)
	for i := 0; i < len(t.points)-1; i++ {
		total += WrappedDistance(t.points[i], t.points[i+1], bo)
	}
	return total
}

// Reset discards all stored waypoints.
func (t *MovementTrail) Reset() {
	t.points = t.points[:0]
	t.accum = 0
}
