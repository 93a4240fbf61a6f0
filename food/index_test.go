package food

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/tomingtoming/geneuron/geom"
)

// TestQueryMatchesBruteForce cross-checks the cell grid against a direct
// distance scan over random item sets, query points and radii, including
// radii large enough to lap the torus.
func TestQueryMatchesBruteForce(t *testing.T) {
	ensureConfig()
	b := testBounds()
	rng := rand.New(rand.NewSource(42))

	items := make([]Item, 50)
	for i := range items {
		items[i] = at(rng.Float64()*b.Width, rng.Float64()*b.Height)
	}
	grid := newCellIndex(b, 40)
	grid.rebuild(items)

	radii := []float64{5, 20, 100, 350, 1000}
	for _, radius := range radii {
		for q := 0; q < 20; q++ {
			pos := geom.Vec2{X: rng.Float64() * b.Width, Y: rng.Float64() * b.Height}

			got := grid.queryInto(nil, items, pos, radius)
			sort.Ints(got)

			var want []int
			for i := range items {
				if b.DistSq(pos, items[i].Pos) <= radius*radius {
					want = append(want, i)
				}
			}

			if len(got) != len(want) {
				t.Fatalf("radius %v query %d: got %d matches, want %d", radius, q, len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("radius %v query %d: index %d = %d, want %d", radius, q, i, got[i], want[i])
				}
			}
		}
	}
}

// TestQueryNoDuplicates guards the wrapped-span arithmetic: an index must
// never be reported twice even when the search ring laps the grid.
func TestQueryNoDuplicates(t *testing.T) {
	ensureConfig()
	b := testBounds()

	items := []Item{at(10, 10), at(790, 590), at(400, 300)}
	grid := newCellIndex(b, 40)
	grid.rebuild(items)

	got := grid.queryInto(nil, items, geom.Vec2{X: 400, Y: 300}, 2000)
	seen := map[int]bool{}
	for _, i := range got {
		if seen[i] {
			t.Fatalf("index %d reported twice", i)
		}
		seen[i] = true
	}
	if len(got) != len(items) {
		t.Errorf("lapping query found %d items, want all %d", len(got), len(items))
	}
}

func TestCellAssignmentWraps(t *testing.T) {
	ensureConfig()
	b := testBounds()
	grid := newCellIndex(b, 40)

	// The grid tiles the arena exactly: no ghost column beyond the seam.
	if float64(grid.cols)*grid.cellSize < b.Width {
		t.Errorf("grid columns cover %v, want at least %v", float64(grid.cols)*grid.cellSize, b.Width)
	}
	edge := grid.cell(geom.Vec2{X: b.Width - 0.001, Y: b.Height - 0.001})
	if edge < 0 || edge >= len(grid.cells) {
		t.Errorf("edge position mapped to invalid cell %d", edge)
	}
}
