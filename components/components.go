// Package components defines ECS components for the chain game.
package components

// Position represents an entity's world position.
// Coordinates are centered: the canonical range is [-half, +half] per axis.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity.
type Velocity struct {
	X, Y float32
}

// Body holds an entity's collision/render radius.
type Body struct {
	Radius float32
}

// Scale is the render scale multiplier driven by animations.
type Scale struct {
	Factor float32
}

// Player marks a player entity and holds its steering state.
type Player struct {
	ID      uint8
	Heading float32
}

// Segment represents one chain link trailing behind its owner.
type Segment struct {
	Owner      uint8
	Index      int // position along the chain; equals slice position after cleanup
	OptionID   int
	OptionText string
	Level      int // merge tier, starts at 1
	MergeValue int // count of segments consumed to produce this one
	PulsePhase float32
	BaseColor  Color
}

// NewSegment creates a segment at the given chain index.
func NewSegment(owner uint8, index, optionID int, optionText string, color Color) Segment {
	return Segment{
		Owner:      owner,
		Index:      index,
		OptionID:   optionID,
		OptionText: optionText,
		Level:      1,
		MergeValue: 1,
		PulsePhase: float32(index) * 0.3, // offset pulse phases along the chain
		BaseColor:  color,
	}
}

// Flying is a transient arcing from a pickup point to its chain slot.
type Flying struct {
	Owner      uint8
	Start      Position
	Target     Position
	Elapsed    float32
	Duration   float32
	ArcHeight  float32
	OptionID   int
	OptionText string
	Color      Color
}

// Fraction returns the elapsed fraction of the flight, clamped to [0, 1].
func (f *Flying) Fraction() float32 {
	if f.Duration <= 0 {
		return 1
	}
	t := f.Elapsed / f.Duration
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Finished reports whether the flight countdown has completed.
func (f *Flying) Finished() bool {
	return f.Elapsed >= f.Duration
}

// ReactionPhase is the stage of a per-segment reaction animation.
type ReactionPhase uint8

const (
	PhaseReacting  ReactionPhase = iota // scaling up with a pulse
	PhaseVanishing                      // shrinking to zero
)

// Reacting is attached to a segment caught by a spreading reaction wave.
// The phase flips to Vanishing at 60% of the countdown.
type Reacting struct {
	Elapsed  float32
	Duration float32
	Phase    ReactionPhase
}

// Fraction returns the elapsed fraction of the reaction, clamped to [0, 1].
func (r *Reacting) Fraction() float32 {
	if r.Duration <= 0 {
		return 1
	}
	t := r.Elapsed / r.Duration
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Finished reports whether the reaction countdown has completed.
func (r *Reacting) Finished() bool {
	return r.Elapsed >= r.Duration
}

// Merging is attached to a segment participating in a merge animation.
// The target grows in place; donors shrink while traveling to the target.
type Merging struct {
	Elapsed  float32
	Duration float32
	Start    Position
	Target   Position
	IsTarget bool
}

// Fraction returns the elapsed fraction of the merge, clamped to [0, 1].
func (m *Merging) Fraction() float32 {
	if m.Duration <= 0 {
		return 1
	}
	t := m.Elapsed / m.Duration
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Finished reports whether the merge countdown has completed.
func (m *Merging) Finished() bool {
	return m.Elapsed >= m.Duration
}
