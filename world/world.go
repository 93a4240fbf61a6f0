// Package world owns the simulation: the creature collection, the food
// registry, and the per-tick update protocol that drives metabolism,
// reproduction, death and population control. All structural changes happen
// in deferred batches at fixed points of the tick, so indices observed
// during a phase stay valid until that batch applies.
package world

import (
	"math/rand"

	"github.com/tomingtoming/geneuron/config"
	"github.com/tomingtoming/geneuron/creature"
	"github.com/tomingtoming/geneuron/food"
	"github.com/tomingtoming/geneuron/geom"
)

// Options configures a new world.
type Options struct {
	// RNG is the single randomness source for the whole simulation: brain
	// initialization, mutation, placement and regeneration all draw from it,
	// so a fixed seed reproduces a run exactly. Defaults to a seed-1 source.
	RNG *rand.Rand

	// Recorder receives simulation events for telemetry. Optional.
	Recorder Recorder
}

// World is the simulation state. Not safe for concurrent use: Update and
// every accessor must run on the same goroutine.
type World struct {
	cfg    *config.Config
	rng    *rand.Rand
	bounds geom.Bounds
	rec    Recorder

	creatures []*creature.Creature
	food      *food.Manager

	tick       int64
	elapsed    float64
	generation int
	floorTimer float64

	// Scratch buffers reused across ticks.
	records    []creature.Neighbor
	view       []creature.Neighbor
	foodPos    []geom.Vec2
	matches    []food.Match
	births     []birth
	newborn    []*creature.Creature
	dead       []int
	claimed    map[int]struct{}
	claimedIdx []int
}

// birth records one reproduction event by parent collection indices.
type birth struct {
	parentA int
	parentB int
}

// New creates a world with the configured initial population and food set.
func New(opts Options) *World {
	cfg := config.Cfg()
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	rec := opts.Recorder
	if rec == nil {
		rec = NopRecorder{}
	}

	w := &World{
		cfg:        cfg,
		rng:        rng,
		bounds:     cfg.Derived.Bounds,
		rec:        rec,
		generation: 1,
		claimed:    make(map[int]struct{}),
	}
	w.food = food.NewManager(rng, w.bounds)
	w.spawnInitialPopulation()
	return w
}

// randomPos returns a uniform position inside the arena.
func (w *World) randomPos() geom.Vec2 {
	return geom.Vec2{
		X: w.rng.Float64() * w.bounds.Width,
		Y: w.rng.Float64() * w.bounds.Height,
	}
}

// Creatures returns the live creature collection. Read-only: callers must
// not modify the slice or the creatures between ticks they do not own.
func (w *World) Creatures() []*creature.Creature {
	return w.creatures
}

// Population returns the current creature count.
func (w *World) Population() int {
	return len(w.creatures)
}

// FoodItems returns the live food items. Read-only.
func (w *World) FoodItems() []food.Item {
	return w.food.Items()
}

// Generation returns the current generation counter.
func (w *World) Generation() int {
	return w.generation
}

// Elapsed returns total simulated seconds.
func (w *World) Elapsed() float64 {
	return w.elapsed
}

// Tick returns the number of completed update calls.
func (w *World) Tick() int64 {
	return w.tick
}

// Bounds returns the arena dimensions.
func (w *World) Bounds() geom.Bounds {
	return w.bounds
}
