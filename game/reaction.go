package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tether/components"
	"github.com/pthm-cable/tether/systems"
)

// activeReaction tracks one player's spreading destruction wave.
type activeReaction struct {
	hitIndex int
	spread   int // index distance of the wave front
}

// reactionRegistry holds all active reactions, keyed per player, and the
// shared spread timer that advances every wave in lockstep.
type reactionRegistry struct {
	active         map[uint8]*activeReaction
	spreadInterval float32
	maxSpread      int
	accum          float32
}

func newReactionRegistry(spreadInterval float32, maxSpread int) *reactionRegistry {
	return &reactionRegistry{
		active:         make(map[uint8]*activeReaction),
		spreadInterval: spreadInterval,
		maxSpread:      maxSpread,
	}
}

// start begins a reaction for a player. Duplicate triggers for a player
// with an active reaction are ignored.
func (r *reactionRegistry) start(player uint8, hitIndex int) bool {
	if _, exists := r.active[player]; exists {
		return false
	}
	r.active[player] = &activeReaction{hitIndex: hitIndex}
	return true
}

// detectSelfCollisions scans each player's chain for a segment touching the
// player. The segment nearest the player (index 0) is exempt. The first hit
// wins; at most one reaction starts per player.
func (g *Game) detectSelfCollisions() {
	query := g.playerFilter.Query()
	for query.Next() {
		pos, _, body, player := query.Get()

		if _, reacting := g.reactions.active[player.ID]; reacting {
			continue
		}
		chain, ok := g.chains[player.ID]
		if !ok {
			continue
		}

		for _, e := range chain.Segments {
			seg := g.segMap.Get(e)
			if seg == nil || seg.Index == 0 {
				continue
			}
			segPos := g.posMap.Get(e)
			segBody := g.bodyMap.Get(e)
			if segPos == nil || segBody == nil {
				continue
			}

			dist := systems.WrappedDistance(*pos, *segPos, g.bounds)
			if dist <= body.Radius+segBody.Radius {
				if g.reactions.start(player.ID, seg.Index) {
					g.collector.RecordReactionStart()
					slog.Info("chain reaction started",
						"player", player.ID,
						"hit_index", seg.Index,
					)
				}
				break
			}
		}
	}
}

// tickReactionSpread advances the shared spread timer and steps every
// active wave on each interval boundary.
func (g *Game) tickReactionSpread(dt float32) {
	r := g.reactions
	if len(r.active) == 0 {
		r.accum = 0
		return
	}

	r.accum += dt
	for r.accum >= r.spreadInterval {
		r.accum -= r.spreadInterval
		g.spreadStep()
	}
}

// spreadStep catches every segment at the wave front of each active
// reaction, then advances the front. A reaction entry is removed once the
// front has passed the maximum distance and none of the player's segments
// is still mid-animation.
func (g *Game) spreadStep() {
	r := g.reactions
	cfg := g.config()

	var completed []uint8

	for player, reaction := range r.active {
		chain, ok := g.chains[player]
		if ok {
			for _, e := range chain.Segments {
				seg := g.segMap.Get(e)
				if seg == nil {
					continue
				}
				if g.reactMap.Get(e) != nil {
					continue // already caught by the wave
				}
				delta := seg.Index - reaction.hitIndex
				if delta < 0 {
					delta = -delta
				}
				if delta == reaction.spread {
					g.reactMap.Add(e, &components.Reacting{
						Duration: float32(cfg.Reaction.Duration),
					})
				}
			}
		}

		reaction.spread++

		if reaction.spread > r.maxSpread && !g.anySegmentReacting(player) {
			completed = append(completed, player)
		}
	}

	for _, player := range completed {
		delete(r.active, player)
		g.collector.RecordReactionEnd()
		slog.Info("chain reaction complete", "player", player)
	}
}

// anySegmentReacting reports whether any of a player's chain segments
// carries an active reaction animation.
func (g *Game) anySegmentReacting(player uint8) bool {
	chain, ok := g.chains[player]
	if !ok {
		return false
	}
	for _, e := range chain.Segments {
		if g.world.Alive(e) && g.reactMap.Get(e) != nil {
			return true
		}
	}
	return false
}

// animateReactingSegments drives the two-phase per-segment animation:
// Reacting pulses and grows until 60% elapsed, then Vanishing shrinks to
// zero. Completion destroys the segment and reports the lost points.
func (g *Game) animateReactingSegments(dt float32) {
	cfg := g.config()

	type destruction struct {
		entity ecs.Entity
		player uint8
		index  int
		text   string
		id     int
	}
	var destroyed []destruction

	query := g.segFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, scale, seg := query.Get()

		react := g.reactMap.Get(entity)
		if react == nil {
			continue
		}

		react.Elapsed += dt
		progress := react.Fraction()

		switch react.Phase {
		case components.PhaseReacting:
			// Intensifying sinusoidal pulse while growing
			intensity := 1 + progress*2
			scale.Factor = intensity * (1 + systems.Sin(g.elapsed*10)*0.3)

			if progress > 0.6 {
				react.Phase = components.PhaseVanishing
				g.spawnEffect(*pos, seg.BaseColor, EffectReaction)
			}
		case components.PhaseVanishing:
			vanish := (progress - 0.6) / 0.4
			s := 1 - vanish
			if s < 0 {
				s = 0
			}
			scale.Factor = s
		}

		if react.Finished() {
			destroyed = append(destroyed, destruction{
				entity: entity,
				player: seg.Owner,
				index:  seg.Index,
				text:   seg.OptionText,
				id:     seg.OptionID,
			})
		}
	}

	for _, d := range destroyed {
		g.emit(Event{
			Kind:         EventSegmentDestroyed,
			Player:       d.player,
			SegmentIndex: d.index,
			OptionID:     d.id,
			OptionText:   d.text,
			PointsLost:   cfg.Reaction.PointsLostPerSegment,
		})
		g.collector.RecordDestruction(cfg.Reaction.PointsLostPerSegment)

		g.removeFromChain(d.player, d.entity)
		if g.world.Alive(d.entity) {
			g.world.RemoveEntity(d.entity)
		}

		slog.Debug("segment destroyed",
			"player", d.player,
			"index", d.index,
			"points_lost", cfg.Reaction.PointsLostPerSegment,
		)
	}
}
