package game

import "github.com/pthm-cable/tether/components"

// EventKind identifies outbound gameplay events.
type EventKind uint8

const (
	EventSegmentAttached EventKind = iota
	EventSegmentDestroyed
	EventChainMerged
	EventVisualEffect
)

// EffectKind classifies visual effect requests for the VFX consumer.
type EffectKind uint8

const (
	EffectReaction EffectKind = iota // segment popping at 60% of its reaction
	EffectMerge                      // merge completion flash
)

// Event is an outbound gameplay event for scoring/audio/VFX consumers.
// Fields beyond Kind and Player are populated per kind.
type Event struct {
	Kind         EventKind
	Player       uint8
	SegmentIndex int
	OptionID     int
	OptionText   string
	PointsLost   int // EventSegmentDestroyed
	NewLevel     int // EventChainMerged
	MergeValue   int // EventChainMerged
	Position     components.Position
	Color        components.Color
	Effect       EffectKind // EventVisualEffect
}

// emit appends an event to the outbound queue.
func (g *Game) emit(ev Event) {
	g.events = append(g.events, ev)
}

// spawnEffect emits a visual effect request and feeds the particle pool.
func (g *Game) spawnEffect(pos components.Position, color components.Color, kind EffectKind) {
	g.emit(Event{
		Kind:     EventVisualEffect,
		Position: pos,
		Color:    color,
		Effect:   kind,
	})
	g.effects.SpawnBurst(pos, color, kind, g.rng)
}

// DrainEvents returns all queued outbound events and clears the queue.
// The caller owns the returned slice.
func (g *Game) DrainEvents() []Event {
	if len(g.events) == 0 {
		return nil
	}
	out := g.events
	g.events = nil
	return out
}
