package telemetry

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/tomingtoming/geneuron/creature"
	"github.com/tomingtoming/geneuron/neural"
)

// newTestCreature builds a creature with a real brain and the given fitness.
// All fields are set directly, so no configuration load is needed.
func newTestCreature(rng *rand.Rand, fitness float64) *creature.Creature {
	return &creature.Creature{
		Fitness: fitness,
		Age:     fitness * 10,
		Gender:  creature.Female,
		Tag:     "#3cb44b",
		Brain:   neural.NewFeedForward(rng, 9, 4),
	}
}

func TestChampions_DescendingOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ch := NewChampions(3)

	for _, f := range []float64{5, 2, 8} {
		if !ch.Consider(newTestCreature(rng, f)) {
			t.Fatalf("Consider(fitness=%v) = false, want true", f)
		}
	}

	entries := ch.Entries()
	want := []float64{8, 5, 2}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Fitness != want[i] {
			t.Errorf("entry %d fitness = %v, want %v", i, e.Fitness, want[i])
		}
	}
	if ch.TopFitness() != 8 {
		t.Errorf("TopFitness() = %v, want 8", ch.TopFitness())
	}
}

func TestChampions_CapacityTrim(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ch := NewChampions(2)

	ch.Consider(newTestCreature(rng, 5))
	ch.Consider(newTestCreature(rng, 2))
	ch.Consider(newTestCreature(rng, 8)) // evicts 2

	if ch.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ch.Len())
	}
	entries := ch.Entries()
	if entries[0].Fitness != 8 || entries[1].Fitness != 5 {
		t.Errorf("entries = %v/%v, want 8/5", entries[0].Fitness, entries[1].Fitness)
	}

	// A candidate below the current floor is rejected outright.
	if ch.Consider(newTestCreature(rng, 3)) {
		t.Error("Consider(fitness=3) = true with a full board of 8/5")
	}
	if ch.Len() != 2 || ch.Entries()[1].Fitness != 5 {
		t.Error("rejected candidate modified the board")
	}

	// A mid-ranking candidate displaces the floor entry.
	if !ch.Consider(newTestCreature(rng, 6)) {
		t.Error("Consider(fitness=6) = false, want true")
	}
	entries = ch.Entries()
	if entries[0].Fitness != 8 || entries[1].Fitness != 6 {
		t.Errorf("entries = %v/%v, want 8/6", entries[0].Fitness, entries[1].Fitness)
	}
}

func TestChampions_SkipsUnfit(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ch := NewChampions(4)

	if ch.Consider(newTestCreature(rng, 0)) {
		t.Error("Consider accepted a zero-fitness creature")
	}
	if ch.Consider(nil) {
		t.Error("Consider accepted nil")
	}
	if ch.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ch.Len())
	}
	if ch.TopFitness() != 0 {
		t.Errorf("TopFitness() = %v on empty board, want 0", ch.TopFitness())
	}
}

func TestChampions_EntriesIsACopy(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	ch := NewChampions(2)
	ch.Consider(newTestCreature(rng, 8))

	entries := ch.Entries()
	entries[0].Fitness = -1

	if ch.TopFitness() != 8 {
		t.Errorf("TopFitness() = %v after mutating the copy, want 8", ch.TopFitness())
	}
}

func TestChampions_MarshalJSON(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ch := NewChampions(3)
	ch.Consider(newTestCreature(rng, 2))
	ch.Consider(newTestCreature(rng, 9))

	data, err := ch.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var decoded []Champion
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshaling champions: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d champions, want 2", len(decoded))
	}
	if decoded[0].Fitness != 9 || decoded[1].Fitness != 2 {
		t.Errorf("fitness order = %v/%v, want 9/2", decoded[0].Fitness, decoded[1].Fitness)
	}
	if decoded[0].Gender != "female" || decoded[0].Tag == "" {
		t.Errorf("vitals not serialized: %+v", decoded[0])
	}
	if len(decoded[0].Genome) == 0 {
		t.Error("genome not serialized")
	}
}
