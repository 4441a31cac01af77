package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tether/components"
	"github.com/pthm-cable/tether/systems"
)

// CollectionEvent is the inbound pickup event from the question subsystem.
// Incorrect pickups never enter the attachment pipeline.
type CollectionEvent struct {
	Player     uint8
	OptionID   int
	OptionText string
	IsCorrect  bool
	Position   components.Position
}

// QueueCollection enqueues a pickup for the next simulation step.
func (g *Game) QueueCollection(ev CollectionEvent) {
	g.pending = append(g.pending, ev)
}

// processCollections turns queued correct pickups into flying transients
// aimed at the end of the owner's chain.
func (g *Game) processCollections() {
	if len(g.pending) == 0 {
		return
	}
	cfg := g.config()

	for _, ev := range g.pending {
		if !ev.IsCorrect {
			g.collector.RecordRejected()
			continue
		}
		g.collector.RecordCollection()

		// Attachment slot: one spacing beyond the current chain tail.
		// With no trail data yet, fall back to the pickup point.
		chainLen := len(g.chainFor(ev.Player).Segments)
		targetDistance := float32(chainLen+1) * float32(cfg.Chain.SegmentSpacing)

		target := ev.Position
		if trail, ok := g.trails[ev.Player]; ok {
			if p, found := trail.PositionAtDistance(targetDistance, g.bounds); found {
				target = p
			}
		}

		pos := ev.Position
		body := components.Body{Radius: float32(cfg.Chain.SegmentSize)}
		scale := components.Scale{Factor: 1}
		fly := components.Flying{
			Owner:      ev.Player,
			Start:      ev.Position,
			Target:     target,
			Duration:   float32(cfg.Flight.Duration),
			ArcHeight:  float32(cfg.Flight.ArcHeight),
			OptionID:   ev.OptionID,
			OptionText: ev.OptionText,
			Color:      components.PaletteColor(ev.OptionID),
		}

		g.flyMapper.NewEntity(&pos, &body, &scale, &fly)

		slog.Debug("pickup flying to chain",
			"player", ev.Player,
			"option", ev.OptionText,
			"target_distance", targetDistance,
		)
	}
	g.pending = g.pending[:0]
}

// flightPosition returns the transient's position at elapsed fraction t:
// a wrapped lerp from start to target plus a parabolic arc peaking at t=0.5.
func flightPosition(fly *components.Flying, t float32, bo systems.Bounds) components.Position {
	p := systems.WrappedLerp(fly.Start, fly.Target, t, bo)
	p.Y += fly.ArcHeight * 4 * t * (1 - t)
	return bo.Wrap(p)
}

// updateFlying advances flying transients and converts finished ones into
// chain segments. Conversions are collected during the query and applied
// afterwards.
func (g *Game) updateFlying(dt float32) {
	type arrival struct {
		entity ecs.Entity
		fly    components.Flying
		pos    components.Position
	}
	var arrivals []arrival

	query := g.flyFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, scale, fly := query.Get()

		fly.Elapsed += dt
		t := fly.Fraction()

		*pos = flightPosition(fly, t, g.bounds)
		scale.Factor = 1 + 1.2*t*(1-t) // swell mid-flight

		if fly.Finished() {
			arrivals = append(arrivals, arrival{entity: entity, fly: *fly, pos: *pos})
		}
	}

	for _, a := range arrivals {
		g.attachSegment(a.fly.Owner, a.fly.OptionID, a.fly.OptionText, a.fly.Color, a.pos)
		if g.world.Alive(a.entity) {
			g.world.RemoveEntity(a.entity)
		}
	}
}
