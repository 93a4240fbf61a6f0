package world

import "github.com/tomingtoming/geneuron/creature"

// Update advances the simulation by dt seconds. Phases run in a fixed
// order; structural changes (births, deaths, food removal, population
// control) are collected during the pass and applied in batches so that
// every index recorded while iterating refers to the collection as it was
// at the start of the tick.
func (w *World) Update(dt float64) {
	cfg := w.cfg

	// Cooldowns tick down before anything reads them.
	for _, c := range w.creatures {
		if c.Cooldown > 0 {
			c.Cooldown -= dt
		}
	}

	// Everyone perceives the same start-of-tick state no matter where they
	// sit in update order.
	w.records = w.records[:0]
	for i, c := range w.creatures {
		w.records = append(w.records, creature.Neighbor{
			Index:    i,
			Pos:      c.Pos,
			Gender:   c.Gender,
			Cooldown: c.Cooldown,
			Energy:   c.Energy,
		})
	}
	w.foodPos = w.food.PositionsInto(w.foodPos[:0])

	w.births = w.births[:0]
	w.dead = w.dead[:0]
	clear(w.claimed)

	restSq := cfg.Derived.RestNeighborRadiusSq

	for i, c := range w.creatures {
		// The agent's view excludes itself but keeps collection indices.
		w.view = w.view[:0]
		for _, r := range w.records {
			if r.Index != i {
				w.view = append(w.view, r)
			}
		}

		c.Update(w.foodPos, w.view, dt, w.bounds)

		// Metabolism, plus a rest bonus for near-stationary agents. Resting
		// next to somebody pays slightly better than resting alone.
		c.Energy -= c.EnergyCost(dt)
		if c.Speed() < cfg.Creature.RestSpeedThreshold {
			bonus := cfg.Creature.RestBonusAlone
			for _, r := range w.view {
				if w.bounds.DistSq(c.Pos, r.Pos) <= restSq {
					bonus = cfg.Creature.RestBonusNear
					break
				}
			}
			c.Energy += bonus * dt
		}
		if c.Energy > cfg.Creature.MaxEnergy {
			c.Energy = cfg.Creature.MaxEnergy
		}

		if c.Energy <= cfg.Creature.DeathThreshold {
			w.dead = append(w.dead, i)
			continue
		}

		// First compatible partner in view order wins; one event per
		// initiator per tick. The initiator pays up front, the offspring
		// arrives in the batch phase.
		if c.Ready() {
			for _, r := range w.view {
				if c.CanReproduceWith(r) {
					w.births = append(w.births, birth{parentA: i, parentB: r.Index})
					c.Cooldown = cfg.Reproduction.Cooldown
					c.Energy -= cfg.Reproduction.EnergyCost
					w.rec.RecordMating()
					break
				}
			}
		}

		// Claim food within reach. The first claimant of an index this tick
		// gets it; the item itself disappears in the batch phase.
		w.matches = w.food.FindNearbyInto(w.matches[:0], c.Pos, cfg.Food.ClaimRadius)
		for _, m := range w.matches {
			if _, taken := w.claimed[m.Index]; taken {
				continue
			}
			w.claimed[m.Index] = struct{}{}
			c.Energy += m.Item.Energy
			c.Fitness += 1.0
			w.rec.RecordFoodEaten()
		}
		if c.Energy > cfg.Creature.MaxEnergy {
			c.Energy = cfg.Creature.MaxEnergy
		}
	}

	w.applyBirthsAndDeaths()
	w.replenish(dt)
	w.truncate()
	w.applyFood()

	w.elapsed += dt
	w.generation = int(w.elapsed/60.0) + 1
	w.tick++
}

// applyBirthsAndDeaths materializes offspring from the recorded events,
// then removes the dead. Offspring are built first, against pre-removal
// indices; events whose indices no longer resolve are dropped.
func (w *World) applyBirthsAndDeaths() {
	w.newborn = w.newborn[:0]
	for _, b := range w.births {
		if b.parentA >= len(w.creatures) || b.parentB >= len(w.creatures) {
			continue
		}
		a := w.creatures[b.parentA]
		w.newborn = append(w.newborn, a.ReproduceWith(w.rng, w.creatures[b.parentB], w.bounds))
	}

	// w.dead is in ascending iteration order; walking it backwards removes
	// highest-index-first so the remaining entries stay valid.
	for k := len(w.dead) - 1; k >= 0; k-- {
		idx := w.dead[k]
		if idx >= len(w.creatures) {
			continue
		}
		w.rec.RecordDeath(w.creatures[idx])
		w.creatures = append(w.creatures[:idx], w.creatures[idx+1:]...)
	}

	for _, c := range w.newborn {
		w.creatures = append(w.creatures, c)
		w.rec.RecordBirth()
	}
}

// applyFood removes everything claimed this tick and lets the manager
// regenerate.
func (w *World) applyFood() {
	if len(w.claimed) > 0 {
		w.claimedIdx = w.claimedIdx[:0]
		for i := range w.claimed {
			w.claimedIdx = append(w.claimedIdx, i)
		}
		w.food.RemoveBatch(w.claimedIdx)
	}
	w.food.Update()
}
