package creature

import (
	"math"

	"github.com/tomingtoming/geneuron/config"
	"github.com/tomingtoming/geneuron/geom"
)

// Sensor layout. The brain input dimension in config must match the slots
// filled here.
//
//	0: energy / max energy
//	1: sin of bearing to nearest food, relative to heading
//	2: cos of bearing to nearest food
//	3: nearest food proximity (1 at zero distance, 0 at or beyond sense radius)
//	4: sin of bearing to nearest neighbor
//	5: cos of bearing to nearest neighbor
//	6: nearest neighbor proximity
//	7: speed / max speed
//	8: reproductive readiness flag
//
// Bearings and distances are toroidal. When no target lies within the sense
// radius its three slots stay zero.

// senseInputs builds the brain input vector. The second return reports
// whether any food lies within the sense radius (feeds the behavior state).
func (c *Creature) senseInputs(foodPositions []geom.Vec2, neighbors []Neighbor, bounds geom.Bounds) ([]float64, bool) {
	cfg := config.Cfg()
	in := make([]float64, cfg.Brain.Inputs)

	if cfg.Creature.MaxEnergy > 0 {
		in[0] = c.Energy / cfg.Creature.MaxEnergy
	}

	foodSeen := false
	if d, ok := c.nearestFood(foodPositions, bounds); ok {
		in[1], in[2], in[3] = c.targetSenses(d, bounds)
		foodSeen = true
	}
	if d, ok := c.nearestNeighbor(neighbors, bounds); ok {
		in[4], in[5], in[6] = c.targetSenses(d, bounds)
	}

	if cfg.Creature.MaxSpeed > 0 {
		in[7] = c.Speed() / cfg.Creature.MaxSpeed
	}
	if c.Ready() {
		in[8] = 1
	}
	return in, foodSeen
}

// targetSenses converts a toroidal displacement into the (sin, cos,
// proximity) triple for one sensed target.
func (c *Creature) targetSenses(delta geom.Vec2, bounds geom.Bounds) (sin, cos, proximity float64) {
	cfg := config.Cfg()
	bearing := geom.NormalizeAngle(delta.Angle() - c.Heading)
	dist := delta.Len()
	proximity = 1 - dist/cfg.Creature.SenseRadius
	if proximity < 0 {
		proximity = 0
	}
	return math.Sin(bearing), math.Cos(bearing), proximity
}

// nearestFood returns the displacement to the closest food position within
// the sense radius.
func (c *Creature) nearestFood(foodPositions []geom.Vec2, bounds geom.Bounds) (geom.Vec2, bool) {
	cfg := config.Cfg()
	best := cfg.Derived.SenseRadiusSq
	var bestDelta geom.Vec2
	found := false
	for _, p := range foodPositions {
		d := bounds.Delta(c.Pos, p)
		if dsq := d.LenSq(); dsq <= best {
			best = dsq
			bestDelta = d
			found = true
		}
	}
	return bestDelta, found
}

// nearestNeighbor returns the displacement to the closest snapshot neighbor
// within the sense radius.
func (c *Creature) nearestNeighbor(neighbors []Neighbor, bounds geom.Bounds) (geom.Vec2, bool) {
	cfg := config.Cfg()
	best := cfg.Derived.SenseRadiusSq
	var bestDelta geom.Vec2
	found := false
	for _, n := range neighbors {
		d := bounds.Delta(c.Pos, n.Pos)
		if dsq := d.LenSq(); dsq <= best {
			best = dsq
			bestDelta = d
			found = true
		}
	}
	return bestDelta, found
}
