package world

import (
	"log/slog"

	"github.com/tomingtoming/geneuron/creature"
	"github.com/tomingtoming/geneuron/geom"
)

// spawnInitialPopulation creates the starting creatures at uniform random
// positions.
func (w *World) spawnInitialPopulation() {
	for i := 0; i < w.cfg.Population.Initial; i++ {
		w.creatures = append(w.creatures, creature.New(w.rng, w.randomPos()))
	}
}

// replenish tops the population back up when it collapses. The check runs
// on a fixed interval of simulated time, not every tick, so a crash has a
// few seconds to recover on its own first.
func (w *World) replenish(dt float64) {
	w.floorTimer += dt
	if w.floorTimer < w.cfg.Population.CheckInterval {
		return
	}
	w.floorTimer = 0

	pop := len(w.creatures)
	if pop >= w.cfg.Population.Floor {
		return
	}

	n := w.cfg.Population.FloorTarget - pop
	if n > w.cfg.Population.FloorBatch {
		n = w.cfg.Population.FloorBatch
	}
	if n <= 0 {
		return
	}

	for i := 0; i < n; i++ {
		w.creatures = append(w.creatures, creature.New(w.rng, w.spawnPos()))
	}
	w.rec.RecordReplenished(n)

	slog.Info("population_replenished",
		"before", pop,
		"spawned", n,
		"tick", w.tick,
	)
}

// spawnPos picks a spot beside a random existing creature, jittered and
// clamped to the arena. With nobody left it falls back to the center.
func (w *World) spawnPos() geom.Vec2 {
	if len(w.creatures) == 0 {
		return w.bounds.Center()
	}
	anchor := w.creatures[w.rng.Intn(len(w.creatures))].Pos
	j := w.cfg.Population.SpawnJitter
	return w.bounds.Clamp(geom.Vec2{
		X: anchor.X + (w.rng.Float64()*2-1)*j,
		Y: anchor.Y + (w.rng.Float64()*2-1)*j,
	})
}

// truncate enforces the population ceiling by dropping everything past it.
// Survivors are chosen by collection position, which favors older
// creatures: newcomers append at the tail.
func (w *World) truncate() {
	ceiling := w.cfg.Population.Ceiling
	if len(w.creatures) <= ceiling {
		return
	}

	cut := w.creatures[ceiling:]
	w.rec.RecordTruncated(cut)
	w.creatures = w.creatures[:ceiling]

	slog.Info("population_truncated",
		"removed", len(cut),
		"ceiling", ceiling,
		"tick", w.tick,
	)
}
