package board

import (
	"github.com/zucenko/gemblocks/model"
)

const (
	LINE_BONUS  = 100
	BOMB_RADIUS = 1
)

// Board owns the live grid of one session. The side length never changes.
type Board struct {
	grid model.Grid
}

func New(size int) *Board {
	return &Board{grid: model.NewGrid(size)}
}

// FromGrid starts a board from a copy of g.
func FromGrid(g model.Grid) *Board {
	return &Board{grid: g.Clone()}
}

func (b *Board) Size() int {
	return b.grid.Size()
}

func (b *Board) InBounds(row, col int) bool {
	return b.grid.InBounds(row, col)
}

// Grid returns a copy for rendering.
func (b *Board) Grid() model.Grid {
	return b.grid.Clone()
}

func (b *Board) IsValidPlacement(block model.Block, row, col int) bool {
	for _, o := range block.Cells() {
		if !b.grid.Empty(row+o.Row, col+o.Col) {
			return false
		}
	}
	return true
}

// Place writes the block at (row, col) and returns one point per cell.
// Nothing changes when the placement is invalid.
func (b *Board) Place(block model.Block, row, col int) (int, bool) {
	if !b.IsValidPlacement(block, row, col) {
		return 0, false
	}
	color := block.Color()
	points := 0
	for _, o := range block.Cells() {
		cell := model.FilledCell(color)
		if gem, ok := block.GemAt(o.Row, o.Col); ok {
			cell = model.GemCell(color, gem)
		}
		b.grid.Set(row+o.Row, col+o.Col, cell)
		points++
	}
	return points, true
}

// CanPlace reports whether the block fits anywhere.
func (b *Board) CanPlace(block model.Block) bool {
	n := b.grid.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.IsValidPlacement(block, r, c) {
				return true
			}
		}
	}
	return false
}

// IsGameOver is true when no block of a non-empty hand fits anywhere.
func (b *Board) IsGameOver(hand []model.Block) bool {
	if len(hand) == 0 {
		return false
	}
	for _, block := range hand {
		if b.CanPlace(block) {
			return false
		}
	}
	return true
}
