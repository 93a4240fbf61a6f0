// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomingtoming/geneuron/geom"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Sim          SimConfig          `yaml:"sim"`
	Population   PopulationConfig   `yaml:"population"`
	Creature     CreatureConfig     `yaml:"creature"`
	Energy       EnergyConfig       `yaml:"energy"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Brain        BrainConfig        `yaml:"brain"`
	Food         FoodConfig         `yaml:"food"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Server       ServerConfig       `yaml:"server"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds arena dimensions in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SimConfig holds simulation stepping parameters.
type SimConfig struct {
	DT float64 `yaml:"dt"` // Seconds advanced per tick
}

// PopulationConfig holds population control parameters.
type PopulationConfig struct {
	Initial       int     `yaml:"initial"`        // Creatures spawned at world creation
	Floor         int     `yaml:"floor"`          // Replenish when population drops below this
	FloorTarget   int     `yaml:"floor_target"`   // Replenish toward this count
	FloorBatch    int     `yaml:"floor_batch"`    // Max creatures added per replenishment
	CheckInterval float64 `yaml:"check_interval"` // Seconds between floor checks
	Ceiling       int     `yaml:"ceiling"`        // Hard cap; excess truncated after each tick
	SpawnJitter   float64 `yaml:"spawn_jitter"`   // Replenished creatures placed within +/- this of an existing one
}

// CreatureConfig holds per-creature physical parameters.
type CreatureConfig struct {
	Size               float64 `yaml:"size"`                 // Body radius, exposed to external UIs
	MaxSpeed           float64 `yaml:"max_speed"`            // World units per second
	MaxTurnRate        float64 `yaml:"max_turn_rate"`        // Radians per second
	MaxAccel           float64 `yaml:"max_accel"`            // Velocity easing limit, units per second^2
	SenseRadius        float64 `yaml:"sense_radius"`         // Sensor range for food and neighbors
	InitialEnergy      float64 `yaml:"initial_energy"`       // Energy at spawn and for replenished creatures
	MaxEnergy          float64 `yaml:"max_energy"`           // Hard energy ceiling
	DeathThreshold     float64 `yaml:"death_threshold"`      // Dead at or below this energy
	RestSpeedThreshold float64 `yaml:"rest_speed_threshold"` // Below this speed the rest bonus applies
	RestNeighborRadius float64 `yaml:"rest_neighbor_radius"` // Neighbor within this range boosts the rest bonus
	RestBonusNear      float64 `yaml:"rest_bonus_near"`      // Energy per second while resting near a neighbor
	RestBonusAlone     float64 `yaml:"rest_bonus_alone"`     // Energy per second while resting alone
}

// EnergyConfig holds metabolic cost parameters.
type EnergyConfig struct {
	BaseCost float64 `yaml:"base_cost"` // Energy drain per second for existing
	MoveCost float64 `yaml:"move_cost"` // Additional drain per second at full speed
}

// ReproductionConfig holds reproduction parameters.
type ReproductionConfig struct {
	MinEnergy  float64 `yaml:"min_energy"` // Eligibility threshold for both partners
	EnergyCost float64 `yaml:"energy_cost"` // Deducted from the initiating parent
	Cooldown   float64 `yaml:"cooldown"`    // Seconds before the initiator is eligible again
	Maturity   float64 `yaml:"maturity"`    // Initial cooldown for newly created creatures
}

// MutationConfig holds genome mutation parameters.
type MutationConfig struct {
	Rate float64 `yaml:"rate"` // Per-parameter perturbation probability at birth
}

// BrainConfig holds neural controller dimensions. Inputs must match the
// creature sensor layout (9) and outputs its action layout (4); these exist
// as config so calibration sweeps can log them, not for reshaping.
type BrainConfig struct {
	Inputs  int `yaml:"inputs"`
	Outputs int `yaml:"outputs"`
}

// FoodConfig holds food registry parameters.
type FoodConfig struct {
	Initial       int     `yaml:"initial"`        // Items present at world creation
	Max           int     `yaml:"max"`            // Regeneration stops at this count
	Energy        float64 `yaml:"energy"`         // Energy granted per item
	Size          float64 `yaml:"size"`           // Item radius, exposed to external UIs
	ClaimRadius   float64 `yaml:"claim_radius"`   // Creatures consume items within this distance
	RegenInterval int     `yaml:"regen_interval"` // Ticks between regeneration spawns
	GridCellSize  float64 `yaml:"grid_cell_size"` // Spatial index bucket size
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
	Champions   int     `yaml:"champions"`    // Best-by-fitness creatures retained
	PerfWindow  int     `yaml:"perf_window"`  // Tick durations kept for perf stats
}

// ServerConfig holds the read-only state feed parameters.
type ServerConfig struct {
	BroadcastEvery int `yaml:"broadcast_every"` // Ticks between snapshot broadcasts
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Bounds               geom.Bounds // World dimensions as arena bounds
	GenomeLen            int         // Brain.Inputs*Brain.Outputs + Brain.Outputs
	SenseRadiusSq        float64
	RestNeighborRadiusSq float64
	ClaimRadiusSq        float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
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

// Set installs cfg as the global configuration, recomputing derived values.
// Calibration sweeps use it to evaluate candidate parameter sets in-process.
func Set(cfg *Config) {
	cfg.computeDerived()
	global = cfg
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Bounds = geom.Bounds{Width: c.World.Width, Height: c.World.Height}
	c.Derived.GenomeLen = c.Brain.Inputs*c.Brain.Outputs + c.Brain.Outputs
	c.Derived.SenseRadiusSq = c.Creature.SenseRadius * c.Creature.SenseRadius
	c.Derived.RestNeighborRadiusSq = c.Creature.RestNeighborRadius * c.Creature.RestNeighborRadius
	c.Derived.ClaimRadiusSq = c.Food.ClaimRadius * c.Food.ClaimRadius

	if c.Food.GridCellSize <= 0 {
		c.Food.GridCellSize = c.Food.ClaimRadius
	}
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
