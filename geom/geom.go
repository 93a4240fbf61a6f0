// Package geom provides the vector and toroidal-arena math used by the
// simulation. The arena wraps around at its bounds, so every distance and
// displacement here is computed over the shortest wrapped path.
package geom

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Bounds is the width/height of the toroidal arena.
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the arena midpoint.
func (b Bounds) Center() Vec2 {
	return Vec2{b.Width / 2, b.Height / 2}
}

// mod wraps a into [0, b) for positive b, handling negative a.
func mod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// Wrap maps a position onto the torus defined by b.
func (b Bounds) Wrap(p Vec2) Vec2 {
	return Vec2{mod(p.X, b.Width), mod(p.Y, b.Height)}
}

// Clamp limits a position to the rectangle [0,Width]x[0,Height] without
// wrapping. Used for placements that must stay inside the arena rather than
// reappear on the far side.
func (b Bounds) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: math.Min(math.Max(p.X, 0), b.Width),
		Y: math.Min(math.Max(p.Y, 0), b.Height),
	}
}

// Delta returns the shortest wrapped displacement from a to b. Each component
// lies in [-dim/2, dim/2).
func (bo Bounds) Delta(a, b Vec2) Vec2 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx > bo.Width/2 {
		dx -= bo.Width
	} else if dx < -bo.Width/2 {
		dx += bo.Width
	}
	if dy > bo.Height/2 {
		dy -= bo.Height
	} else if dy < -bo.Height/2 {
		dy += bo.Height
	}
	return Vec2{dx, dy}
}

// DistSq returns the squared toroidal distance between a and b.
func (bo Bounds) DistSq(a, b Vec2) float64 {
	return bo.Delta(a, b).LenSq()
}

// Dist returns the toroidal distance between a and b.
func (bo Bounds) Dist(a, b Vec2) float64 {
	return bo.Delta(a, b).Len()
}

// Midpoint returns the point halfway along the shortest wrapped path from a
// to b, wrapped back onto the torus.
func (bo Bounds) Midpoint(a, b Vec2) Vec2 {
	d := bo.Delta(a, b)
	return bo.Wrap(a.Add(d.Scale(0.5)))
}

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
