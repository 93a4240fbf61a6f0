// Package creature implements the autonomous agents that live in the world:
// their physical state, sensing, brain-driven movement, metabolism and
// reproduction. The world drives creatures through Update, EnergyCost,
// CanReproduceWith and ReproduceWith and reads everything else.
package creature

import (
	"math"
	"math/rand"

	"github.com/tomingtoming/geneuron/config"
	"github.com/tomingtoming/geneuron/geom"
	"github.com/tomingtoming/geneuron/neural"
)

// Gender determines reproductive compatibility: partners must differ.
type Gender uint8

const (
	Female Gender = iota
	Male
)

// String returns the gender name.
func (g Gender) String() string {
	if g == Male {
		return "male"
	}
	return "female"
}

// State is the coarse behavior classification derived each update. It is
// diagnostic only: external UIs and telemetry read it, the simulation never
// branches on it.
type State uint8

const (
	Wandering State = iota
	Foraging
	Seeking
	Resting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Foraging:
		return "foraging"
	case Seeking:
		return "seeking"
	case Resting:
		return "resting"
	default:
		return "wandering"
	}
}

// palette holds the display tags handed out at spawn, one per creature,
// consumed by external UIs as a stable per-creature color.
var palette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8",
	"#f58231", "#911eb4", "#46f0f0", "#f032e6",
}

// Neighbor is one entry of the read-only snapshot the world hands each
// creature: another creature's state as of the start of the tick.
type Neighbor struct {
	Index    int
	Pos      geom.Vec2
	Gender   Gender
	Cooldown float64
	Energy   float64
}

// Creature is one agent. The world owns the collection; a creature owns its
// brain exclusively.
type Creature struct {
	Pos     geom.Vec2
	Vel     geom.Vec2
	Heading float64
	Energy  float64

	Gender   Gender
	Cooldown float64 // Seconds until reproduction eligibility
	Fitness  float64
	Age      float64
	State    State
	Tag      string // Display tag for external UIs

	Brain neural.Brain
}

// New creates a creature at pos with a freshly initialized random brain,
// random gender and heading, initial energy, and the maturity cooldown.
func New(rng *rand.Rand, pos geom.Vec2) *Creature {
	cfg := config.Cfg()
	return &Creature{
		Pos:      pos,
		Heading:  rng.Float64() * 2 * math.Pi,
		Energy:   cfg.Creature.InitialEnergy,
		Gender:   Gender(rng.Intn(2)),
		Cooldown: cfg.Reproduction.Maturity,
		Tag:      palette[rng.Intn(len(palette))],
		Brain:    neural.NewFeedForward(rng, cfg.Brain.Inputs, cfg.Brain.Outputs),
	}
}

// Speed returns the current velocity magnitude.
func (c *Creature) Speed() float64 {
	return c.Vel.Len()
}

// Ready reports reproduction eligibility: cooldown expired and energy at or
// above the threshold.
func (c *Creature) Ready() bool {
	cfg := config.Cfg()
	return c.Cooldown <= 0 && c.Energy >= cfg.Reproduction.MinEnergy
}

// Update runs one behavior step: sense, think, steer, integrate. It mutates
// only this creature's own physics and bookkeeping; food and neighbors are
// read-only inputs.
func (c *Creature) Update(foodPositions []geom.Vec2, neighbors []Neighbor, dt float64, bounds geom.Bounds) {
	cfg := config.Cfg()

	inputs, foodSeen := c.senseInputs(foodPositions, neighbors, bounds)
	out := c.Brain.Process(inputs)

	// out0/out1 pull the heading in opposite directions, out2 throttles,
	// out3 is a rest gate that lets evolution exploit the rest bonus.
	turn := (out[0] - out[1]) * cfg.Creature.MaxTurnRate
	target := out[2] * cfg.Creature.MaxSpeed
	if out[3] > 0.5 {
		target = 0
	}

	c.Heading = geom.NormalizeAngle(c.Heading + turn*dt)

	desired := geom.Vec2{X: math.Cos(c.Heading), Y: math.Sin(c.Heading)}.Scale(target)
	dv := desired.Sub(c.Vel)
	if maxStep := cfg.Creature.MaxAccel * dt; dv.Len() > maxStep {
		dv = dv.Scale(maxStep / dv.Len())
	}
	c.Vel = c.Vel.Add(dv)
	if sp := c.Vel.Len(); sp > cfg.Creature.MaxSpeed {
		c.Vel = c.Vel.Scale(cfg.Creature.MaxSpeed / sp)
	}

	c.Pos = bounds.Wrap(c.Pos.Add(c.Vel.Scale(dt)))
	c.Age += dt

	switch {
	case target == 0 || c.Speed() < cfg.Creature.RestSpeedThreshold:
		c.State = Resting
	case foodSeen:
		c.State = Foraging
	case c.Ready():
		c.State = Seeking
	default:
		c.State = Wandering
	}
}

// EnergyCost returns the metabolic drain for dt at the current speed:
// a base existence cost plus a quadratic movement cost.
func (c *Creature) EnergyCost(dt float64) float64 {
	cfg := config.Cfg()
	frac := 0.0
	if cfg.Creature.MaxSpeed > 0 {
		frac = c.Speed() / cfg.Creature.MaxSpeed
	}
	return (cfg.Energy.BaseCost + cfg.Energy.MoveCost*frac*frac) * dt
}

// CanReproduceWith reports whether the snapshot entry is an acceptable
// partner: opposite gender, cooldown expired, energy at or above the
// reproduction threshold.
func (c *Creature) CanReproduceWith(n Neighbor) bool {
	cfg := config.Cfg()
	return n.Gender != c.Gender && n.Cooldown <= 0 && n.Energy >= cfg.Reproduction.MinEnergy
}

// ReproduceWith produces an offspring from this creature and other. The
// child spawns at the parents' toroidal midpoint with a brain built by
// uniform genome crossover followed by mutation. Neither parent is modified
// here; the initiator's cooldown and energy deduction are applied by the
// world's tick protocol.
func (c *Creature) ReproduceWith(rng *rand.Rand, other *Creature, bounds geom.Bounds) *Creature {
	cfg := config.Cfg()

	child := New(rng, bounds.Midpoint(c.Pos, other.Pos))
	g := neural.Crossover(rng, c.Brain.ExtractGenome(), other.Brain.ExtractGenome())
	child.Brain.ApplyGenome(g)
	child.Brain.Mutate(rng, cfg.Mutation.Rate)
	return child
}
