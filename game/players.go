package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tether/components"
	"github.com/pthm-cable/tether/systems"
)

// spawnPlayers creates the demo player entities, spaced on a ring around
// the map center, each with its own trail and chain.
func (g *Game) spawnPlayers(count int) {
	cfg := g.config()

	ringRadius := min32(g.bounds.HalfW, g.bounds.HalfH) * 0.4

	for i := 0; i < count; i++ {
		id := uint8(i)
		angle := float32(i) / float32(count) * 2 * math.Pi

		pos := components.Position{
			X: systems.Cos(angle) * ringRadius,
			Y: systems.Sin(angle) * ringRadius,
		}
		vel := components.Velocity{}
		body := components.Body{Radius: float32(cfg.Players.Radius)}
		player := components.Player{ID: id, Heading: angle + math.Pi/2}

		entity := g.playerMapper.NewEntity(&pos, &vel, &body, &player)
		g.players[id] = entity
		g.trails[id] = systems.NewMovementTrail(
			float32(cfg.Trail.SampleInterval),
			float32(cfg.Trail.MinSampleDistance),
			cfg.Trail.MaxLength,
		)
		g.chains[id] = NewPlayerChain(cfg.Chain.MaxSegments)
	}
}

// updatePlayers advances player movement: noise-driven wander (or keyboard
// steering for player 0), constant forward speed, toroidal wrap.
func (g *Game) updatePlayers(dt float32) {
	cfg := g.config()
	speed := float32(cfg.Players.Speed)
	turnRate := float32(cfg.Players.TurnRate)
	freq := cfg.Players.WanderFrequency

	query := g.playerFilter.Query()
	for query.Next() {
		pos, vel, _, player := query.Get()

		if g.manualControl && player.ID == 0 {
			player.Heading += g.manualTurn * turnRate * dt
		} else {
			wander := float32(g.wander.Sample(float64(g.elapsed)*freq, int(player.ID)))
			player.Heading += wander * turnRate * dt
		}
		player.Heading = normalizeAngle(player.Heading)

		vel.X = systems.Cos(player.Heading) * speed
		vel.Y = systems.Sin(player.Heading) * speed

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		*pos = g.bounds.Wrap(*pos)
	}
}

// sampleTrails feeds each player's position into its movement trail.
func (g *Game) sampleTrails(dt float32) {
	query := g.playerFilter.Query()
	for query.Next() {
		pos, _, _, player := query.Get()
		if trail, ok := g.trails[player.ID]; ok {
			trail.Sample(*pos, dt, g.bounds)
		}
	}
}

// updateDemoProducer emits synthetic collection events so the whole
// pipeline runs without an external question subsystem.
func (g *Game) updateDemoProducer(dt float32) {
	cfg := g.config()
	g.demoAccum += dt
	if g.demoAccum < float32(cfg.Demo.CollectInterval) {
		return
	}
	g.demoAccum -= float32(cfg.Demo.CollectInterval)

	for id := range g.players {
		pos := g.playerPosition(id)
		optionID := g.rng.Intn(cfg.Demo.OptionCount)
		g.QueueCollection(CollectionEvent{
			Player:     id,
			OptionID:   optionID,
			OptionText: optionText(optionID),
			IsCorrect:  g.rng.Float64() < cfg.Demo.CorrectChance,
			Position:   pos,
		})
	}
}

// playerPosition returns a player's current position, or the origin for an
// unknown player.
func (g *Game) playerPosition(id uint8) components.Position {
	entity, ok := g.players[id]
	if !ok || !g.world.Alive(entity) {
		return components.Position{}
	}
	if pos := g.posMap.Get(entity); pos != nil {
		return *pos
	}
	return components.Position{}
}

// optionText is the demo's placeholder identity label.
func optionText(optionID int) string {
	labels := [...]string{"A", "B", "C", "D", "E", "F", "G", "H"}
	return labels[optionID%len(labels)]
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// playerEntity returns the entity for a player ID.
func (g *Game) playerEntity(id uint8) (ecs.Entity, bool) {
	e, ok := g.players[id]
	return e, ok
}
