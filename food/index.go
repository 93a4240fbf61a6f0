package food

import (
	"math"

	"github.com/tomingtoming/geneuron/geom"
)

// cellIndex is a uniform bucket grid over the torus answering radius queries
// by item index. Columns and rows tile the arena exactly, so wrapped cell
// arithmetic never consults a ghost cell at the seam.
type cellIndex struct {
	cellSize float64
	cols     int
	rows     int
	bounds   geom.Bounds
	cells    [][]int
}

func newCellIndex(bounds geom.Bounds, cellSize float64) *cellIndex {
	cols := int(math.Ceil(bounds.Width / cellSize))
	if cols < 1 {
		cols = 1
	}
	rows := int(math.Ceil(bounds.Height / cellSize))
	if rows < 1 {
		rows = 1
	}

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &cellIndex{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		bounds:   bounds,
		cells:    cells,
	}
}

// rebuild repopulates the grid from the current item slice.
func (g *cellIndex) rebuild(items []Item) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	for i := range items {
		idx := g.cell(items[i].Pos)
		g.cells[idx] = append(g.cells[idx], i)
	}
}

// cell returns the flat cell index for a position already wrapped into the
// arena.
func (g *cellIndex) cell(p geom.Vec2) int {
	col := int(p.X / g.cellSize)
	row := int(p.Y / g.cellSize)
	if col >= g.cols {
		col = g.cols - 1
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	return row*g.cols + col
}

// queryInto appends the indices of all items within radius of pos and
// returns the extended slice. Reuse dst across calls to avoid allocations.
func (g *cellIndex) queryInto(dst []int, items []Item, pos geom.Vec2, radius float64) []int {
	cellRadius := int(radius/g.cellSize) + 1

	// Span of consecutive wrapped columns/rows to visit. Capped at the grid
	// size so a radius that laps the torus still visits each cell once.
	colSpan := 2*cellRadius + 1
	if colSpan > g.cols {
		colSpan = g.cols
	}
	rowSpan := 2*cellRadius + 1
	if rowSpan > g.rows {
		rowSpan = g.rows
	}

	centerCol := int(pos.X / g.cellSize)
	if centerCol >= g.cols {
		centerCol = g.cols - 1
	}
	centerRow := int(pos.Y / g.cellSize)
	if centerRow >= g.rows {
		centerRow = g.rows - 1
	}

	radiusSq := radius * radius
	for a := 0; a < colSpan; a++ {
		col := wrapCell(centerCol-cellRadius+a, g.cols)
		for b := 0; b < rowSpan; b++ {
			row := wrapCell(centerRow-cellRadius+b, g.rows)
			for _, i := range g.cells[row*g.cols+col] {
				if g.bounds.DistSq(pos, items[i].Pos) <= radiusSq {
					dst = append(dst, i)
				}
			}
		}
	}
	return dst
}

// wrapCell wraps a possibly negative cell coordinate into [0, n).
func wrapCell(c, n int) int {
	c %= n
	if c < 0 {
		c += n
	}
	return c
}
