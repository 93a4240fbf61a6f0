package world

import "github.com/tomingtoming/geneuron/creature"

// Recorder receives simulation events as they happen. Implementations must
// not retain the creature pointers they are handed: they are only valid for
// the duration of the call, since the world removes those creatures right
// after.
type Recorder interface {
	// RecordMating fires when a pair commits to reproducing.
	RecordMating()
	// RecordBirth fires when an offspring actually joins the population.
	RecordBirth()
	// RecordDeath fires as a creature is removed for energy depletion.
	RecordDeath(c *creature.Creature)
	// RecordTruncated fires with the creatures dropped by the ceiling.
	RecordTruncated(removed []*creature.Creature)
	// RecordFoodEaten fires once per food item claimed.
	RecordFoodEaten()
	// RecordReplenished fires with the number of creatures spawned by the
	// population floor.
	RecordReplenished(n int)
}

// NopRecorder ignores every event.
type NopRecorder struct{}

func (NopRecorder) RecordMating() {}

func (NopRecorder) RecordBirth() {}

func (NopRecorder) RecordDeath(*creature.Creature) {}

func (NopRecorder) RecordTruncated([]*creature.Creature) {}

func (NopRecorder) RecordFoodEaten() {}

func (NopRecorder) RecordReplenished(int) {}
