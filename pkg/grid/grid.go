// Package grid implements the 2D array of cells the solver collapses,
// addressed by (x, y) in row-major order with directional neighbour lookup.
package grid

import (
	"fmt"

	"github.com/hollowforge/wfcmap/pkg/cell"
	"github.com/hollowforge/wfcmap/pkg/tileset"
)

// Grid is a fixed-size width×height array of cells, each a superposition
// over the same number of candidate states.
type Grid struct {
	Width, Height int
	cells         []*cell.Cell
}

// New constructs a width×height grid where every cell starts with all
// numStates states possible. jitterAt supplies each cell's tie-breaking
// jitter source, typically drawn from a seeded RNG in scan order so the
// result is reproducible under a fixed seed.
func New(width, height, numStates int, jitterAt func(x, y int) float64) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		cells:  make([]*cell.Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[g.index(x, y)] = cell.New(numStates, jitterAt(x, y))
		}
	}
	return g
}

func (g *Grid) index(x, y int) int { return y*g.Width + x }

// InBounds reports whether (x, y) addresses a cell in the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the cell at (x, y). Panics if out of bounds, matching Go slice
// indexing semantics — callers must check InBounds for untrusted positions.
func (g *Grid) At(x, y int) *cell.Cell {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: position (%d,%d) out of bounds for %dx%d grid", x, y, g.Width, g.Height))
	}
	return g.cells[g.index(x, y)]
}

// Neighbor returns the cell adjacent to (x, y) in dir, and whether it exists
// (false at the grid boundary).
func (g *Grid) Neighbor(x, y int, dir tileset.Direction) (nx, ny int, c *cell.Cell, ok bool) {
	dx, dy := dir.Delta()
	nx, ny = x+dx, y+dy
	if !g.InBounds(nx, ny) {
		return nx, ny, nil, false
	}
	return nx, ny, g.cells[g.index(nx, ny)], true
}

// Positions calls fn for every (x, y) in row-major scan order: y outermost,
// x innermost — the same order the solver's entropy scan and New's jitter
// assignment use.
func (g *Grid) Positions(fn func(x, y int)) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fn(x, y)
		}
	}
}

// AllCollapsed reports whether every cell in the grid has collapsed to a
// single state.
func (g *Grid) AllCollapsed() bool {
	for _, c := range g.cells {
		if !c.Collapsed() {
			return false
		}
	}
	return true
}

// States returns a width×height matrix of collapsed state indices, or -1 for
// any cell that has not collapsed. Intended for export and inspection, not
// for use inside the solve loop.
func (g *Grid) States() [][]int {
	out := make([][]int, g.Height)
	for y := 0; y < g.Height; y++ {
		row := make([]int, g.Width)
		for x := 0; x < g.Width; x++ {
			row[x] = g.At(x, y).CollapsedState()
		}
		out[y] = row
	}
	return out
}
