package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tether/components"
	"github.com/pthm-cable/tether/systems"
)

// mergeState rate-limits merges per player: a cooldown timer plus a bounded
// log of recent merge timestamps. Both must clear before a new merge can
// start, so a single detection pass can never chain several merges.
type mergeState struct {
	cooldowns map[uint8]float32 // remaining seconds
	log       map[uint8][]float32
	window    float32 // minimum seconds between merges
	logSize   int
}

func newMergeState(cooldown float32, logSize int) *mergeState {
	if logSize < 1 {
		logSize = 1
	}
	return &mergeState{
		cooldowns: make(map[uint8]float32),
		log:       make(map[uint8][]float32),
		window:    cooldown,
		logSize:   logSize,
	}
}

// tick advances all cooldown timers.
func (m *mergeState) tick(dt float32) {
	for player, remaining := range m.cooldowns {
		remaining -= dt
		if remaining <= 0 {
			delete(m.cooldowns, player)
		} else {
			m.cooldowns[player] = remaining
		}
	}
}

// canMerge reports whether a player may start a merge at the given time.
func (m *mergeState) canMerge(player uint8, now float32) bool {
	if m.cooldowns[player] > 0 {
		return false
	}
	for _, ts := range m.log[player] {
		if now-ts < m.window {
			return false
		}
	}
	return true
}

// recordMerge arms the cooldown and logs the merge timestamp.
func (m *mergeState) recordMerge(player uint8, now float32) {
	m.cooldowns[player] = m.window
	entries := append(m.log[player], now)
	if len(entries) > m.logSize {
		entries = entries[len(entries)-m.logSize:]
	}
	m.log[player] = entries
}

// detectMerges slides a fixed-size window over each player's live,
// non-animating segments and starts the first mergeable run found. At most
// one merge starts per player per pass; further runs wait for the next
// cooldown cycle.
func (g *Game) detectMerges(dt float32) {
	g.merges.tick(dt)

	cfg := g.config()
	k := cfg.Merge.MinSegments

	for player, chain := range g.chains {
		if !g.merges.canMerge(player, g.elapsed) {
			continue
		}

		// Live, non-animating segments in chain order
		type candidate struct {
			entity ecs.Entity
			seg    *components.Segment
		}
		candidates := make([]candidate, 0, len(chain.Segments))
		for _, e := range chain.Segments {
			seg := g.segMap.Get(e)
			if seg == nil {
				continue
			}
			if g.reactMap.Get(e) != nil || g.mergeMap.Get(e) != nil {
				continue
			}
			candidates = append(candidates, candidate{entity: e, seg: seg})
		}

		for start := 0; start+k <= len(candidates); start++ {
			window := candidates[start : start+k]
			first := window[0].seg

			mergeable := first.Level < cfg.Merge.MaxLevel
			for _, c := range window[1:] {
				if c.seg.OptionID != first.OptionID || c.seg.Level != first.Level {
					mergeable = false
					break
				}
			}
			if !mergeable {
				continue
			}

			entities := make([]ecs.Entity, k)
			for i, c := range window {
				entities[i] = c.entity
			}
			g.startMerge(player, entities, first.Level+1)
			break // one merge per detection pass per player
		}
	}
}

// startMerge begins the collapse animation: the middle entity of the window
// is the surviving target; donors converge on the target's position as it
// was at setup, not a moving point.
func (g *Game) startMerge(player uint8, entities []ecs.Entity, newLevel int) {
	cfg := g.config()
	targetIdx := len(entities) / 2
	target := entities[targetIdx]

	targetPos := components.Position{}
	if p := g.posMap.Get(target); p != nil {
		targetPos = *p
	}

	for i, e := range entities {
		pos := g.posMap.Get(e)
		if pos == nil {
			continue // stale handle; skip, never panic
		}
		dest := targetPos
		if i == targetIdx {
			dest = *pos
		}
		g.mergeMap.Add(e, &components.Merging{
			Duration: float32(cfg.Merge.AnimationDuration),
			Start:    *pos,
			Target:   dest,
			IsTarget: i == targetIdx,
		})
	}

	g.merges.recordMerge(player, g.elapsed)

	slog.Info("chain merge started",
		"player", player,
		"segments", len(entities),
		"new_level", newLevel,
	)
}

// animateMergingSegments advances merge animations. Donors shrink and
// travel to the target; the target grows with a fast secondary pulse. On
// completion donors despawn and the target is upgraded in place.
func (g *Game) animateMergingSegments(dt float32) {
	cfg := g.config()

	var donorsDone []ecs.Entity
	var targetsDone []ecs.Entity

	query := g.segFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, scale, _ := query.Get()

		merging := g.mergeMap.Get(entity)
		if merging == nil {
			continue
		}

		merging.Elapsed += dt
		progress := merging.Fraction()

		if merging.IsTarget {
			grow := 1 + progress*0.5
			pulse := 1 + systems.Sin(g.elapsed*6)*0.3*progress
			scale.Factor = grow * pulse
		} else {
			s := 1 - progress*0.9
			if s < 0.1 {
				s = 0.1
			}
			scale.Factor = s
			*pos = systems.WrappedLerp(merging.Start, merging.Target, progress, g.bounds)
		}

		if merging.Finished() {
			if merging.IsTarget {
				targetsDone = append(targetsDone, entity)
			} else {
				donorsDone = append(donorsDone, entity)
			}
		}
	}

	for _, e := range donorsDone {
		if seg := g.segMap.Get(e); seg != nil {
			g.removeFromChain(seg.Owner, e)
		}
		if g.world.Alive(e) {
			g.world.RemoveEntity(e)
		}
	}

	for _, e := range targetsDone {
		g.completeMerge(e, cfg.Merge.MinSegments)
	}
}

// completeMerge upgrades the surviving segment in place: level up, record
// the consumed count, recompute the radius, and flag the chain for the
// cleanup pass since its membership changed.
func (g *Game) completeMerge(entity ecs.Entity, consumed int) {
	seg := g.segMap.Get(entity)
	if seg == nil {
		return
	}

	seg.Level++
	seg.MergeValue = consumed
	if body := g.bodyMap.Get(entity); body != nil {
		body.Radius = g.segmentRadius(seg.Level)
	}
	if scale := g.scaleMap.Get(entity); scale != nil {
		scale.Factor = 1
	}
	g.mergeMap.Remove(entity)
	g.markChainDirty(seg.Owner)

	pos := components.Position{}
	if p := g.posMap.Get(entity); p != nil {
		pos = *p
	}
	displayColor := systems.EnhanceForLevel(seg.BaseColor, seg.Level)
	g.spawnEffect(pos, displayColor, EffectMerge)

	g.emit(Event{
		Kind:       EventChainMerged,
		Player:     seg.Owner,
		OptionID:   seg.OptionID,
		OptionText: seg.OptionText,
		NewLevel:   seg.Level,
		MergeValue: seg.MergeValue,
		Position:   pos,
		Color:      displayColor,
	})
	g.collector.RecordMerge(seg.Level)

	slog.Info("chain merge complete",
		"player", seg.Owner,
		"level", seg.Level,
		"merge_value", seg.MergeValue,
	)
}
