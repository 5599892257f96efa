package board

import "github.com/zucenko/gemblocks/model"

type ClearResult struct {
	Rows   []int
	Cols   []int
	Points int
	// Gems holds one entry per gem cell removed, intersections counted once.
	Gems []model.GemID
}

func (r ClearResult) Lines() int {
	return len(r.Rows) + len(r.Cols)
}

// CheckLineClears empties every full row and column and scores
// LINE_BONUS * n^2 for n lines cleared together.
func (b *Board) CheckLineClears() ClearResult {
	var res ClearResult
	n := b.grid.Size()
	fullRow := make([]bool, n)
	for r := 0; r < n; r++ {
		if b.grid.RowFull(r) {
			fullRow[r] = true
			res.Rows = append(res.Rows, r)
		}
	}
	for c := 0; c < n; c++ {
		if b.grid.ColFull(c) {
			res.Cols = append(res.Cols, c)
		}
	}

	lines := res.Lines()
	if lines == 0 {
		return res
	}
	res.Points = LINE_BONUS * lines * lines

	for _, r := range res.Rows {
		for c := 0; c < n; c++ {
			if cell := b.grid.At(r, c); cell.HasGem {
				res.Gems = append(res.Gems, cell.Gem)
			}
		}
	}
	// cells on a clearing row were credited above
	for _, c := range res.Cols {
		for r := 0; r < n; r++ {
			if fullRow[r] {
				continue
			}
			if cell := b.grid.At(r, c); cell.HasGem {
				res.Gems = append(res.Gems, cell.Gem)
			}
		}
	}

	for _, r := range res.Rows {
		for c := 0; c < n; c++ {
			b.grid.Clear(r, c)
		}
	}
	for _, c := range res.Cols {
		for r := 0; r < n; r++ {
			b.grid.Clear(r, c)
		}
	}
	return res
}

type BombResult struct {
	Cleared int
	Points  int
	Gems    []model.GemID
}

// Bomb empties the 3x3 square around (row, col), clipped to the grid.
// Each occupied cell removed is worth one point.
func (b *Board) Bomb(row, col int) BombResult {
	var res BombResult
	for r := row - BOMB_RADIUS; r <= row+BOMB_RADIUS; r++ {
		for c := col - BOMB_RADIUS; c <= col+BOMB_RADIUS; c++ {
			cell := b.grid.At(r, c)
			if !cell.Occupied {
				continue
			}
			if cell.HasGem {
				res.Gems = append(res.Gems, cell.Gem)
			}
			b.grid.Clear(r, c)
			res.Cleared++
		}
	}
	res.Points = res.Cleared
	return res
}
