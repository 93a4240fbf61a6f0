package world

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomingtoming/geneuron/config"
	"github.com/tomingtoming/geneuron/creature"
	"github.com/tomingtoming/geneuron/geom"
	"github.com/tomingtoming/geneuron/neural"
)

// setupConfig loads embedded defaults, optionally overlaid with a YAML
// fragment, and returns the active config. Call before New so the world
// picks up the overlay.
func setupConfig(t *testing.T, overlay string) *config.Config {
	t.Helper()
	if overlay == "" {
		config.MustInit("")
		return config.Cfg()
	}
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	config.MustInit(path)
	return config.Cfg()
}

// ---------- deterministic test brains ----------

// stillBrain keeps its creature motionless via the rest gate.
type stillBrain struct{}

func (stillBrain) Process([]float64) []float64 { return []float64{0, 0, 0, 1} }

func (stillBrain) Mutate(*rand.Rand, float64) {}

func (stillBrain) ExtractGenome() neural.Genome { return neural.Genome{} }

func (stillBrain) ApplyGenome(neural.Genome) int { return 0 }

func (stillBrain) Clone() neural.Brain { return stillBrain{} }

// cruiseBrain drives straight ahead at full throttle.
type cruiseBrain struct{}

func (cruiseBrain) Process([]float64) []float64 { return []float64{0, 0, 1, 0} }

func (cruiseBrain) Mutate(*rand.Rand, float64) {}

func (cruiseBrain) ExtractGenome() neural.Genome { return neural.Genome{} }

func (cruiseBrain) ApplyGenome(neural.Genome) int { return 0 }

func (cruiseBrain) Clone() neural.Brain { return cruiseBrain{} }

// spyBrain records every input vector it is shown and stays put.
type spyBrain struct {
	inputs [][]float64
}

func (s *spyBrain) Process(in []float64) []float64 {
	cp := make([]float64, len(in))
	copy(cp, in)
	s.inputs = append(s.inputs, cp)
	return []float64{0, 0, 0, 1}
}

func (s *spyBrain) Mutate(*rand.Rand, float64) {}

func (s *spyBrain) ExtractGenome() neural.Genome { return neural.Genome{} }

func (s *spyBrain) ApplyGenome(neural.Genome) int { return 0 }

func (s *spyBrain) Clone() neural.Brain { return &spyBrain{} }

// ---------- event spy ----------

// spyRecorder counts simulation events.
type spyRecorder struct {
	matings     int
	births      int
	deaths      int
	truncated   int
	eaten       int
	replenished int
}

func (r *spyRecorder) RecordMating() { r.matings++ }

func (r *spyRecorder) RecordBirth() { r.births++ }

func (r *spyRecorder) RecordDeath(*creature.Creature) { r.deaths++ }

func (r *spyRecorder) RecordTruncated(removed []*creature.Creature) { r.truncated += len(removed) }

func (r *spyRecorder) RecordFoodEaten() { r.eaten++ }

func (r *spyRecorder) RecordReplenished(n int) { r.replenished += n }

// pin overrides a creature's brain and state so a test controls it exactly.
func pin(c *creature.Creature, b neural.Brain, pos geom.Vec2, gender creature.Gender, energy, cooldown float64) {
	c.Brain = b
	c.Pos = pos
	c.Vel = geom.Vec2{}
	c.Heading = 0
	c.Gender = gender
	c.Energy = energy
	c.Cooldown = cooldown
}

// ---------- construction ----------

// TestNew_InitialState verifies the starting population and food set.
func TestNew_InitialState(t *testing.T) {
	cfg := setupConfig(t, "")
	w := New(Options{RNG: rand.New(rand.NewSource(1))})

	if got := w.Population(); got != cfg.Population.Initial {
		t.Fatalf("Population() = %d, want %d", got, cfg.Population.Initial)
	}
	if got := len(w.FoodItems()); got != cfg.Food.Initial {
		t.Fatalf("len(FoodItems()) = %d, want %d", got, cfg.Food.Initial)
	}
	if w.Generation() != 1 {
		t.Errorf("Generation() = %d, want 1", w.Generation())
	}
	if w.Tick() != 0 || w.Elapsed() != 0 {
		t.Errorf("Tick() = %d, Elapsed() = %f, want 0, 0", w.Tick(), w.Elapsed())
	}
	if b := w.Bounds(); b.Width != cfg.World.Width || b.Height != cfg.World.Height {
		t.Errorf("Bounds() = %+v, want %gx%g", b, cfg.World.Width, cfg.World.Height)
	}
	for i, c := range w.Creatures() {
		if c.Pos.X < 0 || c.Pos.X >= cfg.World.Width || c.Pos.Y < 0 || c.Pos.Y >= cfg.World.Height {
			t.Errorf("creature %d spawned out of bounds at %+v", i, c.Pos)
		}
		if c.Energy != cfg.Creature.InitialEnergy {
			t.Errorf("creature %d energy = %f, want %f", i, c.Energy, cfg.Creature.InitialEnergy)
		}
	}
}

// TestNew_DefaultRNG verifies construction works without an explicit source.
func TestNew_DefaultRNG(t *testing.T) {
	cfg := setupConfig(t, "")
	w := New(Options{})
	if got := w.Population(); got != cfg.Population.Initial {
		t.Fatalf("Population() = %d, want %d", got, cfg.Population.Initial)
	}
}

// ---------- snapshot ----------

// TestSnapshot_CopiesObservableState verifies the snapshot mirrors the world
// without sharing references.
func TestSnapshot_CopiesObservableState(t *testing.T) {
	setupConfig(t, `
population:
  initial: 2
food:
  initial: 3
`)
	w := New(Options{RNG: rand.New(rand.NewSource(3))})

	s := w.Snapshot()
	if s.Version != SnapshotVersion {
		t.Errorf("Version = %d, want %d", s.Version, SnapshotVersion)
	}
	if s.Tick != 0 || s.Generation != 1 || s.Elapsed != 0 {
		t.Errorf("clock fields = (%d, %d, %f), want (0, 1, 0)", s.Tick, s.Generation, s.Elapsed)
	}
	if s.Population != 2 || len(s.Creatures) != 2 {
		t.Fatalf("Population = %d, len(Creatures) = %d, want 2, 2", s.Population, len(s.Creatures))
	}
	if len(s.Food) != 3 {
		t.Fatalf("len(Food) = %d, want 3", len(s.Food))
	}
	if s.WorldWidth != 800 || s.WorldHeight != 600 {
		t.Errorf("world dims = %gx%g, want 800x600", s.WorldWidth, s.WorldHeight)
	}

	for i, c := range w.Creatures() {
		cs := s.Creatures[i]
		if cs.X != c.Pos.X || cs.Y != c.Pos.Y {
			t.Errorf("creature %d at (%f, %f), snapshot says (%f, %f)", i, c.Pos.X, c.Pos.Y, cs.X, cs.Y)
		}
		if cs.Energy != c.Energy || cs.Cooldown != c.Cooldown {
			t.Errorf("creature %d life state mismatch: %+v", i, cs)
		}
		if cs.Gender != "female" && cs.Gender != "male" {
			t.Errorf("creature %d gender = %q", i, cs.Gender)
		}
		if cs.State != "wandering" {
			t.Errorf("creature %d state = %q, want wandering before first tick", i, cs.State)
		}
		if cs.Tag == "" {
			t.Errorf("creature %d has empty tag", i)
		}
	}
	for i, f := range s.Food {
		item := w.FoodItems()[i]
		if f.X != item.Pos.X || f.Y != item.Pos.Y || f.Energy != item.Energy {
			t.Errorf("food %d mismatch: %+v vs %+v", i, f, item)
		}
	}
}
