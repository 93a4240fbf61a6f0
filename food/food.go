// Package food implements the regenerating food registry: item storage,
// toroidal proximity queries, and batch removal with a periodic respawn
// policy. The world consumes it through FindNearby, Remove and Update; the
// internal grid is invisible to callers.
package food

import (
	"math/rand"
	"sort"

	"github.com/tomingtoming/geneuron/config"
	"github.com/tomingtoming/geneuron/geom"
)

// palette holds the display tags assigned to spawned items.
var palette = []string{"#9acd32", "#7fbf4d", "#6aa84f", "#38761d"}

// Item is one food source.
type Item struct {
	Pos    geom.Vec2
	Size   float64
	Tag    string // Display tag for external UIs
	Energy float64
}

// Match pairs an item with its current registry index.
type Match struct {
	Index int
	Item  Item
}

// Manager owns the food items. Indices are storage slots: stable between
// structural changes, never stable identities across them.
type Manager struct {
	items  []Item
	bounds geom.Bounds
	rng    *rand.Rand

	max        int
	regenEvery int
	sinceRegen int

	grid  *cellIndex
	dirty bool

	scratch []int
}

// NewManager seeds the registry with the configured initial item count
// placed uniformly at random.
func NewManager(rng *rand.Rand, bounds geom.Bounds) *Manager {
	cfg := config.Cfg()
	m := &Manager{
		bounds:     bounds,
		rng:        rng,
		max:        cfg.Food.Max,
		regenEvery: cfg.Food.RegenInterval,
		grid:       newCellIndex(bounds, cfg.Food.GridCellSize),
		dirty:      true,
	}
	for i := 0; i < cfg.Food.Initial; i++ {
		m.spawn()
	}
	return m
}

// spawn adds one item at a uniform random position.
func (m *Manager) spawn() {
	cfg := config.Cfg()
	m.items = append(m.items, Item{
		Pos:    geom.Vec2{X: m.rng.Float64() * m.bounds.Width, Y: m.rng.Float64() * m.bounds.Height},
		Size:   cfg.Food.Size,
		Tag:    palette[m.rng.Intn(len(palette))],
		Energy: cfg.Food.Energy,
	})
	m.dirty = true
}

// Items returns the live item slice. Read-only: callers must not modify it.
func (m *Manager) Items() []Item {
	return m.items
}

// Count returns the number of items present.
func (m *Manager) Count() int {
	return len(m.items)
}

// PositionsInto appends every item position to dst and returns the extended
// slice. Reuse dst across ticks to avoid allocations.
func (m *Manager) PositionsInto(dst []geom.Vec2) []geom.Vec2 {
	for i := range m.items {
		dst = append(dst, m.items[i].Pos)
	}
	return dst
}

// FindNearby returns the items within radius of pos, ordered by index.
func (m *Manager) FindNearby(pos geom.Vec2, radius float64) []Match {
	return m.FindNearbyInto(nil, pos, radius)
}

// FindNearbyInto appends matches within radius of pos to dst, ordered by
// index, and returns the extended slice. Reuse dst across calls to avoid
// allocations.
func (m *Manager) FindNearbyInto(dst []Match, pos geom.Vec2, radius float64) []Match {
	if m.dirty {
		m.grid.rebuild(m.items)
		m.dirty = false
	}

	m.scratch = m.grid.queryInto(m.scratch[:0], m.items, pos, radius)
	sort.Ints(m.scratch)
	for _, i := range m.scratch {
		dst = append(dst, Match{Index: i, Item: m.items[i]})
	}
	return dst
}

// Remove deletes the item at index, preserving the order of the rest. An
// out-of-range index is a no-op.
func (m *Manager) Remove(index int) {
	if index < 0 || index >= len(m.items) {
		return
	}
	m.items = append(m.items[:index], m.items[index+1:]...)
	m.dirty = true
}

// RemoveBatch deletes the given item indices, deduplicated and processed in
// descending order so earlier removals cannot invalidate later ones.
func (m *Manager) RemoveBatch(indices []int) {
	if len(indices) == 0 {
		return
	}
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	prev := -1
	for _, idx := range sorted {
		if idx == prev {
			continue
		}
		prev = idx
		m.Remove(idx)
	}
}

// Update advances the regeneration policy: every regen interval one new item
// spawns while the registry is below its maximum.
func (m *Manager) Update() {
	m.sinceRegen++
	if m.sinceRegen < m.regenEvery {
		return
	}
	m.sinceRegen = 0
	if len(m.items) < m.max {
		m.spawn()
	}
}
