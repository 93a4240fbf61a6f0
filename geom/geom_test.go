package geom

import (
	"math"
	"testing"
)

const tol = 1e-9

// ---------- Wrapping ----------

func TestWrap(t *testing.T) {
	b := Bounds{Width: 800, Height: 600}

	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"inside", Vec2{100, 200}, Vec2{100, 200}},
		{"past right edge", Vec2{850, 300}, Vec2{50, 300}},
		{"past bottom edge", Vec2{400, 650}, Vec2{400, 50}},
		{"negative x", Vec2{-10, 300}, Vec2{790, 300}},
		{"negative y", Vec2{400, -10}, Vec2{400, 590}},
		{"multiple wraps", Vec2{1650, -1210}, Vec2{50, 590}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Wrap(tt.in)
			if math.Abs(got.X-tt.want.X) > tol || math.Abs(got.Y-tt.want.Y) > tol {
				t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampStaysInside(t *testing.T) {
	b := Bounds{Width: 800, Height: 600}

	got := b.Clamp(Vec2{-30, 700})
	if got.X != 0 || got.Y != 600 {
		t.Errorf("Clamp(-30,700) = %v, want {0 600}", got)
	}
	got = b.Clamp(Vec2{400, 300})
	if got.X != 400 || got.Y != 300 {
		t.Errorf("Clamp should not move interior points, got %v", got)
	}
}

// ---------- Toroidal distance ----------

func TestDeltaShortestPath(t *testing.T) {
	b := Bounds{Width: 800, Height: 600}

	// Across the seam: 790 -> 10 should be +20, not -780.
	d := b.Delta(Vec2{790, 300}, Vec2{10, 300})
	if math.Abs(d.X-20) > tol || math.Abs(d.Y) > tol {
		t.Errorf("Delta across x seam = %v, want {20 0}", d)
	}

	// And the reverse direction.
	d = b.Delta(Vec2{10, 300}, Vec2{790, 300})
	if math.Abs(d.X+20) > tol {
		t.Errorf("Delta back across x seam = %v, want {-20 0}", d)
	}

	// Vertical seam.
	d = b.Delta(Vec2{400, 590}, Vec2{400, 10})
	if math.Abs(d.Y-20) > tol {
		t.Errorf("Delta across y seam = %v, want {0 20}", d)
	}
}

func TestDistSymmetric(t *testing.T) {
	b := Bounds{Width: 800, Height: 600}
	a := Vec2{20, 50}
	c := Vec2{780, 570}

	if math.Abs(b.Dist(a, c)-b.Dist(c, a)) > tol {
		t.Errorf("Dist not symmetric: %v vs %v", b.Dist(a, c), b.Dist(c, a))
	}
	// Both points near opposite corners are close on the torus.
	if b.Dist(a, c) > 100 {
		t.Errorf("corner points should be close on torus, got %v", b.Dist(a, c))
	}
}

func TestDistNeverExceedsHalfDiagonal(t *testing.T) {
	b := Bounds{Width: 800, Height: 600}
	maxDist := math.Hypot(b.Width/2, b.Height/2)

	pts := []Vec2{{0, 0}, {400, 300}, {799, 599}, {1, 599}, {400, 0}}
	for _, p := range pts {
		for _, q := range pts {
			if d := b.Dist(p, q); d > maxDist+tol {
				t.Errorf("Dist(%v,%v) = %v exceeds half-diagonal %v", p, q, d, maxDist)
			}
		}
	}
}

func TestMidpointAcrossSeam(t *testing.T) {
	b := Bounds{Width: 800, Height: 600}

	// Midpoint of 790 and 10 along x is the seam at 0, not 400.
	m := b.Midpoint(Vec2{790, 300}, Vec2{10, 300})
	if math.Abs(m.X-0) > tol && math.Abs(m.X-800) > tol {
		t.Errorf("Midpoint across seam = %v, want x at seam", m)
	}

	m = b.Midpoint(Vec2{100, 100}, Vec2{200, 100})
	if math.Abs(m.X-150) > tol || math.Abs(m.Y-100) > tol {
		t.Errorf("interior Midpoint = %v, want {150 100}", m)
	}
}

// ---------- Angles ----------

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, -math.Pi},
		{2 * math.Pi, 0},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-9 && math.Abs(math.Abs(got)-math.Pi) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got > math.Pi+tol || got < -math.Pi-tol {
			t.Errorf("NormalizeAngle(%v) = %v outside [-Pi, Pi]", tt.in, got)
		}
	}
}
