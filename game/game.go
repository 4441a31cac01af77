// Package game orchestrates the chain simulation: player movement, the
// trailing chain, the attachment pipeline, reaction cascades and merges.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tether/components"
	"github.com/pthm-cable/tether/config"
	"github.com/pthm-cable/tether/systems"
	"github.com/pthm-cable/tether/telemetry"
)

// Options configures a new Game.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	OutputDir      string
	StepsPerUpdate int
	Demo           bool // run the built-in collection event producer
	Players        int  // 0 = use config
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers
	segMapper    *ecs.Map4[components.Position, components.Body, components.Scale, components.Segment]
	flyMapper    *ecs.Map4[components.Position, components.Body, components.Scale, components.Flying]
	playerMapper *ecs.Map4[components.Position, components.Velocity, components.Body, components.Player]

	segFilter    *ecs.Filter4[components.Position, components.Body, components.Scale, components.Segment]
	flyFilter    *ecs.Filter4[components.Position, components.Body, components.Scale, components.Flying]
	playerFilter *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Player]

	// Individual component mappers for lookups
	posMap    *ecs.Map[components.Position]
	bodyMap   *ecs.Map[components.Body]
	scaleMap  *ecs.Map[components.Scale]
	segMap    *ecs.Map[components.Segment]
	playerMap *ecs.Map[components.Player]
	reactMap  *ecs.Map[components.Reacting]
	mergeMap  *ecs.Map[components.Merging]

	// Wrap-around map bounds; regenerated on resize
	bounds systems.Bounds

	// Per-player state, keyed by player ID
	players   map[uint8]ecs.Entity
	trails    map[uint8]*systems.MovementTrail
	chains    map[uint8]*PlayerChain
	reactions *reactionRegistry
	merges    *mergeState

	// Inbound/outbound event queues
	pending []CollectionEvent
	events  []Event

	// Demo collection producer
	demoEnabled bool
	demoAccum   float32

	// Supporting infrastructure
	effects   *EffectPool
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	perf      *PerfStats
	wander    *systems.WanderNoise

	// State
	tick           int32
	elapsed        float32 // simulation seconds since start
	paused         bool
	stepsPerUpdate int
	headless       bool
	logStats       bool
	manualControl  bool    // player 0 steered by keyboard
	manualTurn     float32 // keyboard turn input, -1..1

	// Window dimensions (interactive mode)
	screenWidth, screenHeight float32
}

// NewGame creates a new game instance. Config must be initialized first.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),

		segMapper:    ecs.NewMap4[components.Position, components.Body, components.Scale, components.Segment](world),
		flyMapper:    ecs.NewMap4[components.Position, components.Body, components.Scale, components.Flying](world),
		playerMapper: ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Player](world),

		segFilter:    ecs.NewFilter4[components.Position, components.Body, components.Scale, components.Segment](world),
		flyFilter:    ecs.NewFilter4[components.Position, components.Body, components.Scale, components.Flying](world),
		playerFilter: ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Player](world),

		posMap:    ecs.NewMap[components.Position](world),
		bodyMap:   ecs.NewMap[components.Body](world),
		scaleMap:  ecs.NewMap[components.Scale](world),
		segMap:    ecs.NewMap[components.Segment](world),
		playerMap: ecs.NewMap[components.Player](world),
		reactMap:  ecs.NewMap[components.Reacting](world),
		mergeMap:  ecs.NewMap[components.Merging](world),

		bounds: systems.NewBounds(cfg.Derived.WorldW32, cfg.Derived.WorldH32),

		players: make(map[uint8]ecs.Entity),
		trails:  make(map[uint8]*systems.MovementTrail),
		chains:  make(map[uint8]*PlayerChain),

		reactions: newReactionRegistry(float32(cfg.Reaction.SpreadInterval), cfg.Reaction.MaxSpreadDistance),
		merges:    newMergeState(float32(cfg.Merge.Cooldown), cfg.Merge.LogSize),

		demoEnabled: opts.Demo,

		effects:   NewEffectPool(),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32),
		perf:      NewPerfStats(),
		wander:    systems.NewWanderNoise(opts.Seed),

		stepsPerUpdate: steps,
		headless:       opts.Headless,
		logStats:       opts.LogStats,

		screenWidth:  float32(cfg.Screen.Width),
		screenHeight: float32(cfg.Screen.Height),
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.output = output
	if g.output != nil {
		if err := g.output.WriteConfig(cfg); err != nil {
			return nil, err
		}
	}

	playerCount := opts.Players
	if playerCount <= 0 {
		playerCount = cfg.Players.Count
	}
	g.spawnPlayers(playerCount)

	slog.Info("game initialized",
		"players", playerCount,
		"world_w", cfg.Derived.WorldW32,
		"world_h", cfg.Derived.WorldH32,
		"seed", opts.Seed,
	)

	return g, nil
}

// config returns the global configuration.
func (g *Game) config() *config.Config {
	return config.Cfg()
}

// Update advances the simulation in interactive mode: input, then one or
// more fixed steps depending on the speed setting.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless advances the simulation without touching any windowing.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep runs a single fixed tick. The intra-frame order is load
// bearing: structural chain mutations are deferred to the cleanup pass so
// that positioning and collision never observe a half-mutated chain.
func (g *Game) simulationStep() {
	dt := g.config().Derived.DT32

	g.timed("players", func() { g.updatePlayers(dt) })
	if g.demoEnabled {
		g.updateDemoProducer(dt)
	}
	g.timed("trail", func() { g.sampleTrails(dt) })
	g.timed("collect", func() { g.processCollections() })
	g.timed("flying", func() { g.updateFlying(dt) })
	g.timed("reposition", func() { g.repositionChains() })
	g.timed("pulse", func() { g.animateSegments(dt) })
	g.timed("collision", func() { g.detectSelfCollisions() })
	g.timed("cascade", func() { g.tickReactionSpread(dt) })
	g.timed("react_anim", func() { g.animateReactingSegments(dt) })
	g.timed("merge", func() { g.detectMerges(dt) })
	g.timed("merge_anim", func() { g.animateMergingSegments(dt) })
	g.timed("cleanup", func() { g.cleanupChains() })

	g.effects.Update(dt)
	g.flushTelemetry()

	g.tick++
	g.elapsed += dt
}

// SetMapSize regenerates the wrap-around bounds, e.g. on a map resize.
// Trails are kept; positions outside the new canonical range are re-wrapped
// lazily by the next positioning pass.
func (g *Game) SetMapSize(width, height float32) {
	g.bounds = systems.NewBounds(width, height)
	slog.Info("map resized", "width", width, "height", height)
}

// Bounds returns the current wrap-around bounds.
func (g *Game) Bounds() systems.Bounds {
	return g.bounds
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// ChainLength returns the number of live segments for a player.
func (g *Game) ChainLength(player uint8) int {
	chain, ok := g.chains[player]
	if !ok {
		return 0
	}
	return len(chain.Segments)
}

// flushTelemetry closes out a stats window when due.
func (g *Game) flushTelemetry() {
	if !g.collector.WindowDue(g.tick) {
		return
	}

	lengths := make([]float64, 0, len(g.chains))
	levels := make([]float64, 0, 16)
	for _, chain := range g.chains {
		lengths = append(lengths, float64(len(chain.Segments)))
		for _, e := range chain.Segments {
			if seg := g.segMap.Get(e); seg != nil {
				levels = append(levels, float64(seg.Level))
			}
		}
	}

	stats := g.collector.EndWindow(g.tick, lengths, levels)
	if g.logStats {
		stats.Log()
		g.logPerfStats()
	}
	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("writing telemetry", "error", err)
		}
	}
}

// Close flushes and releases output resources.
func (g *Game) Close() {
	if g.output != nil {
		g.output.Close()
	}
}
