// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Players   PlayersConfig   `yaml:"players"`
	Trail     TrailConfig     `yaml:"trail"`
	Chain     ChainConfig     `yaml:"chain"`
	Flight    FlightConfig    `yaml:"flight"`
	Reaction  ReactionConfig  `yaml:"reaction"`
	Merge     MergeConfig     `yaml:"merge"`
	Demo      DemoConfig      `yaml:"demo"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the wrap-around map dimensions in world units.
// Coordinates are centered: the canonical range per axis is [-size/2, +size/2].
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// PhysicsConfig holds fixed-step simulation parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// PlayersConfig holds demo player parameters.
type PlayersConfig struct {
	Count           int     `yaml:"count"`
	Speed           float64 `yaml:"speed"`            // world units per second
	Radius          float64 `yaml:"radius"`           // collision radius
	TurnRate        float64 `yaml:"turn_rate"`        // max heading change, radians per second
	WanderFrequency float64 `yaml:"wander_frequency"` // noise sampling speed for autopilot
}

// TrailConfig holds movement trail parameters.
type TrailConfig struct {
	SampleInterval    float64 `yaml:"sample_interval"`     // seconds between waypoint samples
	MinSampleDistance float64 `yaml:"min_sample_distance"` // skip samples closer than this to the newest point
	MaxLength         int     `yaml:"max_length"`          // waypoint buffer capacity
}

// ChainConfig holds chain segment parameters.
type ChainConfig struct {
	SegmentSize     float64 `yaml:"segment_size"`     // base segment radius
	SegmentSpacing  float64 `yaml:"segment_spacing"`  // trail distance between segments
	MaxSegments     int     `yaml:"max_segments"`     // chain capacity; oldest is evicted beyond this
	SmoothingFactor float64 `yaml:"smoothing_factor"` // fraction of the gap closed per frame
	PulseRate       float64 `yaml:"pulse_rate"`       // idle pulse phase advance per second
	PulseAmplitude  float64 `yaml:"pulse_amplitude"`  // idle pulse scale amplitude
}

// FlightConfig holds fly-to-chain transient parameters.
type FlightConfig struct {
	Duration  float64 `yaml:"duration"`   // seconds from pickup to attachment
	ArcHeight float64 `yaml:"arc_height"` // parabolic arc peak offset
}

// ReactionConfig holds reaction cascade parameters.
type ReactionConfig struct {
	SpreadInterval       float64 `yaml:"spread_interval"`         // seconds between wave advances
	Duration             float64 `yaml:"duration"`                // per-segment animation length
	MaxSpreadDistance    int     `yaml:"max_spread_distance"`     // index distance the wave travels
	PointsLostPerSegment int     `yaml:"points_lost_per_segment"` // reported on each destruction
}

// MergeConfig holds merge engine parameters.
type MergeConfig struct {
	MinSegments       int     `yaml:"min_segments"`       // window size for run detection
	MaxLevel          int     `yaml:"max_level"`          // segments at this tier no longer merge
	AnimationDuration float64 `yaml:"animation_duration"` // seconds for the collapse animation
	Cooldown          float64 `yaml:"cooldown"`           // per-player seconds between merges
	LogSize           int     `yaml:"log_size"`           // recent merge timestamps kept per player
}

// DemoConfig holds the built-in collection event producer parameters.
type DemoConfig struct {
	CollectInterval float64 `yaml:"collect_interval"` // seconds between synthetic pickups
	CorrectChance   float64 `yaml:"correct_chance"`   // fraction of pickups marked correct
	OptionCount     int     `yaml:"option_count"`     // distinct option identities
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32     float32 // Physics.DT as float32
	WorldW32 float32 // effective world width
	WorldH32 float32 // effective world height
	HalfW32  float32 // WorldW32 / 2
	HalfH32  float32 // WorldH32 / 2
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
	c.Derived.HalfW32 = c.Derived.WorldW32 / 2
	c.Derived.HalfH32 = c.Derived.WorldH32 / 2
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
