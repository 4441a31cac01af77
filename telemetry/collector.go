// Package telemetry provides windowed chain statistics and CSV output.
package telemetry

// Collector accumulates gameplay events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	collections       int
	rejected          int
	attaches          int
	evictions         int
	reactionsStarted  int
	reactionsEnded    int
	segmentsDestroyed int
	pointsLost        int
	merges            int
	maxMergeLevel     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordCollection records an accepted pickup entering the flight pipeline.
func (c *Collector) RecordCollection() {
	c.collections++
}

// RecordRejected records a pickup dropped for an incorrect answer.
func (c *Collector) RecordRejected() {
	c.rejected++
}

// RecordAttach records a segment joining a chain.
func (c *Collector) RecordAttach() {
	c.attaches++
}

// RecordEviction records the oldest segment dropped by a full chain.
func (c *Collector) RecordEviction() {
	c.evictions++
}

// RecordReactionStart records a self-collision triggering a cascade.
func (c *Collector) RecordReactionStart() {
	c.reactionsStarted++
}

// RecordReactionEnd records a cascade finishing its spread.
func (c *Collector) RecordReactionEnd() {
	c.reactionsEnded++
}

// RecordDestruction records a segment destroyed by a cascade and the
// points lost with it.
func (c *Collector) RecordDestruction(points int) {
	c.segmentsDestroyed++
	c.pointsLost += points
}

// RecordMerge records a completed merge producing a segment of the
// given level.
func (c *Collector) RecordMerge(level int) {
	c.merges++
	if level > c.maxMergeLevel {
		c.maxMergeLevel = level
	}
}

// WindowDue returns true if enough ticks have passed to close the window.
func (c *Collector) WindowDue(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// EndWindow produces a WindowStats and resets counters for the next window.
// lengths holds the live chain length per player; levels holds the level
// of every live segment. Both are sampled at window end.
func (c *Collector) EndWindow(currentTick int32, lengths, levels []float64) WindowStats {
	var acceptRate float64
	attempts := c.collections + c.rejected
	if attempts > 0 {
		acceptRate = float64(c.collections) / float64(attempts)
	}

	lenMean, lenStd, lenP50, lenP90 := ComputeDistStats(lengths)
	lvlMean, _, lvlP50, _ := ComputeDistStats(levels)
	lvlMax := MaxOf(levels)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Collections:       c.collections,
		Rejected:          c.rejected,
		AcceptRate:        acceptRate,
		Attaches:          c.attaches,
		Evictions:         c.evictions,
		ReactionsStarted:  c.reactionsStarted,
		ReactionsEnded:    c.reactionsEnded,
		SegmentsDestroyed: c.segmentsDestroyed,
		PointsLost:        c.pointsLost,
		Merges:            c.merges,
		MaxMergeLevel:     c.maxMergeLevel,

		ChainLenMean: lenMean,
		ChainLenStd:  lenStd,
		ChainLenP50:  lenP50,
		ChainLenP90:  lenP90,

		SegLevelMean: lvlMean,
		SegLevelP50:  lvlP50,
		SegLevelMax:  lvlMax,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.collections = 0
	c.rejected = 0
	c.attaches = 0
	c.evictions = 0
	c.reactionsStarted = 0
	c.reactionsEnded = 0
	c.segmentsDestroyed = 0
	c.pointsLost = 0
	c.merges = 0
	c.maxMergeLevel = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
