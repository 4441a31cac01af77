package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tether/components"
	"github.com/pthm-cable/tether/systems"
)

// PlayerChain is the ordered list of a player's live segment entities.
// Segment.Index of the entity at slice position i equals i after any
// cleanup pass; the invariant is violated transiently during destruction
// and merges and restored by cleanupAndReindex before the next frame's
// positioning pass.
type PlayerChain struct {
	Segments    []ecs.Entity
	MaxSegments int

	dirty bool // structural change pending; reindex at end of frame
}

// NewPlayerChain creates an empty chain with the given capacity.
func NewPlayerChain(maxSegments int) *PlayerChain {
	return &PlayerChain{
		Segments:    make([]ecs.Entity, 0, maxSegments),
		MaxSegments: maxSegments,
	}
}

// chainFor returns the chain for a player, creating it on first use.
func (g *Game) chainFor(player uint8) *PlayerChain {
	chain, ok := g.chains[player]
	if !ok {
		chain = NewPlayerChain(g.config().Chain.MaxSegments)
		g.chains[player] = chain
	}
	return chain
}

// attachSegment appends a new segment at the end of a player's chain.
// At capacity the oldest segment (index 0) is evicted first and the
// remaining indices shift down by one.
func (g *Game) attachSegment(player uint8, optionID int, optionText string, color components.Color, pos components.Position) ecs.Entity {
	chain := g.chainFor(player)

	if len(chain.Segments) >= chain.MaxSegments && len(chain.Segments) > 0 {
		oldest := chain.Segments[0]
		chain.Segments = chain.Segments[1:]
		for _, e := range chain.Segments {
			if seg := g.segMap.Get(e); seg != nil {
				seg.Index--
			}
		}
		if g.world.Alive(oldest) {
			g.world.RemoveEntity(oldest)
		}
		g.collector.RecordEviction()
	}

	index := len(chain.Segments)
	body := components.Body{Radius: g.segmentRadius(1)}
	scale := components.Scale{Factor: 1}
	seg := components.NewSegment(player, index, optionID, optionText, color)

	entity := g.segMapper.NewEntity(&pos, &body, &scale, &seg)
	chain.Segments = append(chain.Segments, entity)

	g.emit(Event{
		Kind:         EventSegmentAttached,
		Player:       player,
		SegmentIndex: index,
		OptionID:     optionID,
		OptionText:   optionText,
		Position:     pos,
		Color:        color,
	})
	g.collector.RecordAttach()

	slog.Debug("chain segment attached",
		"player", player,
		"index", index,
		"option", optionText,
	)
	return entity
}

// segmentRadius derives a segment's radius from its merge tier.
func (g *Game) segmentRadius(level int) float32 {
	base := float32(g.config().Chain.SegmentSize)
	return base * (1 + 0.25*float32(level-1))
}

// repositionChains moves every idle segment toward its trail slot. Segments
// mid reaction or merge animate on their own and are skipped. Movement uses
// the shortest wrapped step so chains cut across map edges.
func (g *Game) repositionChains() {
	cfg := g.config()
	spacing := float32(cfg.Chain.SegmentSpacing)
	factor := float32(cfg.Chain.SmoothingFactor)

	for player, chain := range g.chains {
		trail, ok := g.trails[player]
		if !ok {
			continue
		}
		for _, e := range chain.Segments {
			if !g.world.Alive(e) {
				continue
			}
			seg := g.segMap.Get(e)
			if seg == nil {
				continue
			}
			if g.reactMap.Get(e) != nil || g.mergeMap.Get(e) != nil {
				continue
			}

			distance := float32(seg.Index+1) * spacing
			target, found := trail.PositionAtDistance(distance, g.bounds)
			if !found {
				continue
			}

			pos := g.posMap.Get(e)
			if pos == nil {
				continue
			}
			*pos = systems.ShortestMove(*pos, target, g.bounds, factor)
		}
	}
}

// animateSegments advances the idle breathing pulse on segments that are
// not reacting or merging.
func (g *Game) animateSegments(dt float32) {
	cfg := g.config()
	rate := float32(cfg.Chain.PulseRate)
	amplitude := float32(cfg.Chain.PulseAmplitude)

	query := g.segFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, _, scale, seg := query.Get()

		if g.reactMap.Get(entity) != nil || g.mergeMap.Get(entity) != nil {
			continue
		}

		seg.PulsePhase += rate * dt
		scale.Factor = 1 + systems.Sin(seg.PulsePhase)*amplitude
	}
}

// removeFromChain drops an entity from a player's chain list without
// reindexing; indices stay stable for the rest of the frame and are
// reflowed by cleanupAndReindex.
func (g *Game) removeFromChain(player uint8, entity ecs.Entity) {
	chain, ok := g.chains[player]
	if !ok {
		return
	}
	kept := chain.Segments[:0]
	for _, e := range chain.Segments {
		if e != entity {
			kept = append(kept, e)
		}
	}
	chain.Segments = kept
	chain.dirty = true
}

// markChainDirty flags a player's chain for the end-of-frame cleanup pass.
func (g *Game) markChainDirty(player uint8) {
	if chain, ok := g.chains[player]; ok {
		chain.dirty = true
	}
}

// cleanupChains runs the end-of-frame cleanup on chains with structural
// changes: prune dead handles, then rewrite every Segment.Index to match
// its slice position.
func (g *Game) cleanupChains() {
	for player, chain := range g.chains {
		if !chain.dirty {
			continue
		}
		g.cleanupAndReindex(player, chain)
	}
}

func (g *Game) cleanupAndReindex(player uint8, chain *PlayerChain) {
	kept := chain.Segments[:0]
	for _, e := range chain.Segments {
		if g.world.Alive(e) && g.segMap.Get(e) != nil {
			kept = append(kept, e)
		}
	}
	chain.Segments = kept

	for i, e := range chain.Segments {
		if seg := g.segMap.Get(e); seg != nil {
			seg.Index = i
		}
	}
	chain.dirty = false

	slog.Debug("chain reindexed", "player", player, "segments", len(chain.Segments))
}
