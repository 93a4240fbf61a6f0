package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/tomingtoming/geneuron/creature"
	"github.com/tomingtoming/geneuron/neural"
)

// Champion preserves a high-fitness creature's genome and vitals at the
// moment it left the world, whether by death or by ceiling truncation.
type Champion struct {
	Fitness float64       `json:"fitness"`
	Age     float64       `json:"age_sec"`
	Gender  string        `json:"gender"`
	Tag     string        `json:"tag"`
	Genome  neural.Genome `json:"genome"`
}

// Champions is a fixed-capacity leaderboard sorted descending by fitness.
// It holds genome copies only, never live creature pointers, so entries stay
// valid after the world removes the creature.
type Champions struct {
	entries []Champion
	max     int
}

// NewChampions creates a leaderboard with the given capacity.
func NewChampions(max int) *Champions {
	if max <= 0 {
		max = 10
	}
	return &Champions{
		entries: make([]Champion, 0, max),
		max:     max,
	}
}

// Consider evaluates a departing creature for the leaderboard. Creatures
// that never ate (zero fitness) are skipped. Returns true if recorded.
func (ch *Champions) Consider(c *creature.Creature) bool {
	if c == nil || c.Fitness <= 0 {
		return false
	}
	// Cheap rejection before copying the genome.
	if len(ch.entries) >= ch.max && c.Fitness <= ch.entries[len(ch.entries)-1].Fitness {
		return false
	}

	ch.insert(Champion{
		Fitness: c.Fitness,
		Age:     c.Age,
		Gender:  c.Gender.String(),
		Tag:     c.Tag,
		Genome:  c.Brain.ExtractGenome(),
	})
	return true
}

// insert places entry in descending fitness order, trimming to capacity.
func (ch *Champions) insert(entry Champion) {
	idx := sort.Search(len(ch.entries), func(i int) bool {
		return ch.entries[i].Fitness < entry.Fitness
	})
	if len(ch.entries) >= ch.max && idx >= ch.max {
		return
	}

	ch.entries = append(ch.entries, Champion{})
	copy(ch.entries[idx+1:], ch.entries[idx:])
	ch.entries[idx] = entry

	if len(ch.entries) > ch.max {
		ch.entries = ch.entries[:ch.max]
	}
}

// Len returns the number of recorded champions.
func (ch *Champions) Len() int {
	return len(ch.entries)
}

// TopFitness returns the highest recorded fitness, or 0 when empty.
func (ch *Champions) TopFitness() float64 {
	if len(ch.entries) == 0 {
		return 0
	}
	return ch.entries[0].Fitness
}

// Entries returns a copy of the leaderboard in descending fitness order.
func (ch *Champions) Entries() []Champion {
	out := make([]Champion, len(ch.entries))
	copy(out, ch.entries)
	return out
}

// MarshalJSON serializes the leaderboard, best first.
func (ch *Champions) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(ch.entries, "", "  ")
}
