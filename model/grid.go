package model

import "errors"

const (
	MIN_GRID_SIZE     = 5
	MAX_GRID_SIZE     = 10
	ENDLESS_GRID_SIZE = 10
)

var ErrGridSize = errors.New("grid size out of range")

// Cell is empty unless Occupied. Gem is only meaningful when HasGem.
type Cell struct {
	Occupied bool
	Color    Color
	Gem      GemID
	HasGem   bool
	Locked   bool
}

func FilledCell(color Color) Cell {
	return Cell{Occupied: true, Color: color}
}

func GemCell(color Color, gem GemID) Cell {
	return Cell{Occupied: true, Color: color, Gem: gem, HasGem: true}
}

// LockedCell is a pre-placed start grid cell. It clears like any other cell.
func LockedCell(gem GemID, hasGem bool) Cell {
	return Cell{Occupied: true, Color: COLOR_LOCKED, Gem: gem, HasGem: hasGem, Locked: true}
}

// Grid is a square board stored row-major. Copying a Grid shares Cells,
// use Clone to get an independent board.
type Grid struct {
	Side  int
	Cells []Cell
}

func NewGrid(side int) Grid {
	return Grid{Side: side, Cells: make([]Cell, side*side)}
}

func (g Grid) Size() int {
	return g.Side
}

func (g Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.Side && c >= 0 && c < g.Side
}

// At returns the empty cell for coordinates outside the grid.
func (g Grid) At(r, c int) Cell {
	if !g.InBounds(r, c) {
		return Cell{}
	}
	return g.Cells[r*g.Side+c]
}

func (g Grid) Set(r, c int, cell Cell) {
	if g.InBounds(r, c) {
		g.Cells[r*g.Side+c] = cell
	}
}

func (g Grid) Clear(r, c int) {
	g.Set(r, c, Cell{})
}

func (g Grid) Empty(r, c int) bool {
	return g.InBounds(r, c) && !g.Cells[r*g.Side+c].Occupied
}

func (g Grid) RowFull(r int) bool {
	for c := 0; c < g.Side; c++ {
		if !g.At(r, c).Occupied {
			return false
		}
	}
	return g.Side > 0
}

func (g Grid) ColFull(c int) bool {
	for r := 0; r < g.Side; r++ {
		if !g.At(r, c).Occupied {
			return false
		}
	}
	return g.Side > 0
}

// Occupied counts the filled cells.
func (g Grid) Occupied() int {
	n := 0
	for _, cell := range g.Cells {
		if cell.Occupied {
			n++
		}
	}
	return n
}

func (g Grid) Clone() Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return Grid{Side: g.Side, Cells: cells}
}
