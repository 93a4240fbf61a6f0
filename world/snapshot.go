package world

// SnapshotVersion is incremented when the snapshot format changes.
const SnapshotVersion = 1

// Snapshot is a by-value copy of the observable simulation state. It holds
// no references into the world, so it is safe to hand to other goroutines
// (the broadcast hub, telemetry writers) while the world keeps ticking.
type Snapshot struct {
	Version    int     `json:"version"`
	Tick       int64   `json:"tick"`
	Generation int     `json:"generation"`
	Elapsed    float64 `json:"elapsed"`
	Population int     `json:"population"`

	WorldWidth  float64 `json:"world_width"`
	WorldHeight float64 `json:"world_height"`

	Creatures []CreatureState `json:"creatures"`
	Food      []FoodState     `json:"food"`
}

// CreatureState holds one creature's observable state.
type CreatureState struct {
	// Position and movement
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VelX    float64 `json:"vel_x"`
	VelY    float64 `json:"vel_y"`
	Heading float64 `json:"heading"`

	// Life state
	Energy   float64 `json:"energy"`
	Cooldown float64 `json:"cooldown"`
	Fitness  float64 `json:"fitness"`
	Age      float64 `json:"age"`

	Gender string `json:"gender"`
	State  string `json:"state"`
	Tag    string `json:"tag"`
}

// FoodState holds one food item's observable state.
type FoodState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
	Energy float64 `json:"energy"`
	Tag    string  `json:"tag"`
}

// Snapshot captures the current state. Call it between ticks.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Version:     SnapshotVersion,
		Tick:        w.tick,
		Generation:  w.generation,
		Elapsed:     w.elapsed,
		Population:  len(w.creatures),
		WorldWidth:  w.bounds.Width,
		WorldHeight: w.bounds.Height,
		Creatures:   make([]CreatureState, 0, len(w.creatures)),
	}
	for _, c := range w.creatures {
		s.Creatures = append(s.Creatures, CreatureState{
			X:        c.Pos.X,
			Y:        c.Pos.Y,
			VelX:     c.Vel.X,
			VelY:     c.Vel.Y,
			Heading:  c.Heading,
			Energy:   c.Energy,
			Cooldown: c.Cooldown,
			Fitness:  c.Fitness,
			Age:      c.Age,
			Gender:   c.Gender.String(),
			State:    c.State.String(),
			Tag:      c.Tag,
		})
	}
	items := w.food.Items()
	s.Food = make([]FoodState, 0, len(items))
	for i := range items {
		s.Food = append(s.Food, FoodState{
			X:      items[i].Pos.X,
			Y:      items[i].Pos.Y,
			Size:   items[i].Size,
			Energy: items[i].Energy,
			Tag:    items[i].Tag,
		})
	}
	return s
}
