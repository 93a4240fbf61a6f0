// Package telemetry aggregates simulation events into windowed statistics,
// tracks the all-time fittest creatures, and writes both to CSV/JSON files.
// The Collector satisfies the world's Recorder interface, so wiring it in is
// a single field in world.Options.
package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tomingtoming/geneuron/creature"
	"github.com/tomingtoming/geneuron/world"
)

// Collector accumulates events within time windows and produces WindowStats.
// Departing creatures are offered to the champions leaderboard before their
// pointers go stale.
type Collector struct {
	windowDurationSec float64
	windowTicks       int64
	dt                float64

	windowStartTick int64

	// Event counters for current window
	matings     int
	births      int
	deaths      int
	foodEaten   int
	replenished int
	truncated   int

	champs *Champions
}

// NewCollector creates a collector that flushes every windowDurationSec of
// simulation time. dt is the seconds-per-tick used to convert the window to
// ticks. champs may be nil to disable champion tracking.
func NewCollector(windowDurationSec, dt float64, champs *Champions) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec: windowDurationSec,
		windowTicks:       ticksPerWindow,
		dt:                dt,
		champs:            champs,
	}
}

// RecordMating records a reproduction event.
func (c *Collector) RecordMating() {
	c.matings++
}

// RecordBirth records an offspring joining the population.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a starvation death. The creature is offered to the
// champions leaderboard; its pointer is not retained.
func (c *Collector) RecordDeath(dead *creature.Creature) {
	c.deaths++
	if c.champs != nil {
		c.champs.Consider(dead)
	}
}

// RecordTruncated records creatures removed by the population ceiling.
func (c *Collector) RecordTruncated(removed []*creature.Creature) {
	c.truncated += len(removed)
	if c.champs != nil {
		for _, cr := range removed {
			c.champs.Consider(cr)
		}
	}
}

// RecordFoodEaten records a successful food claim.
func (c *Collector) RecordFoodEaten() {
	c.foodEaten++
}

// RecordReplenished records n creatures spawned by the population floor.
func (c *Collector) RecordReplenished(n int) {
	c.replenished += n
}

// Champions returns the leaderboard this collector feeds, or nil.
func (c *Collector) Champions() *Champions {
	return c.champs
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats from the accumulated counters and the given
// end-of-window snapshot, then resets the counters for the next window.
func (c *Collector) Flush(snap world.Snapshot) WindowStats {
	energies := make([]float64, len(snap.Creatures))
	fitnesses := make([]float64, len(snap.Creatures))
	for i, cs := range snap.Creatures {
		energies[i] = cs.Energy
		fitnesses[i] = cs.Fitness
	}

	eMean, eP10, eP50, eP90 := distStats(energies)

	var fitnessMean, fitnessMax float64
	if len(fitnesses) > 0 {
		fitnessMean = stat.Mean(fitnesses, nil)
		fitnessMax = floats.Max(fitnesses)
	}

	var birthRate float64
	if c.matings > 0 {
		birthRate = float64(c.births) / float64(c.matings)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   snap.Tick,
		SimTimeSec:      snap.Elapsed,
		Generation:      snap.Generation,

		Population: snap.Population,
		FoodCount:  len(snap.Food),

		Matings:     c.matings,
		Births:      c.births,
		Deaths:      c.deaths,
		FoodEaten:   c.foodEaten,
		Replenished: c.replenished,
		Truncated:   c.truncated,

		BirthRate: birthRate,

		EnergyMean: eMean,
		EnergyP10:  eP10,
		EnergyP50:  eP50,
		EnergyP90:  eP90,

		FitnessMean: fitnessMean,
		FitnessMax:  fitnessMax,
	}

	// Reset for next window
	c.windowStartTick = snap.Tick
	c.matings = 0
	c.births = 0
	c.deaths = 0
	c.foodEaten = 0
	c.replenished = 0
	c.truncated = 0

	return stats
}
