package board_test

import (
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/gemblocks/board"
	"github.com/zucenko/gemblocks/model"
	"strings"
	"testing"
)

func grid(t *testing.T, rows ...string) model.Grid {
	t.Helper()
	g, err := model.ParseGrid(strings.NewReader(strings.Join(rows, "\n")))
	require.NoError(t, err)
	return g
}

func block(shape model.ShapeID) model.Block {
	return model.Block{ID: "b", Shape: shape}
}

func TestIsValidPlacement(t *testing.T) {
	b := board.FromGrid(grid(t,
		".....",
		".x...",
		".....",
		".....",
		"....x",
	))

	tests := []struct {
		name     string
		shape    model.ShapeID
		row, col int
		want     bool
	}{
		{"dot on empty", model.SHAPE_DOT, 0, 0, true},
		{"dot on filled", model.SHAPE_DOT, 1, 1, false},
		{"dot negative row", model.SHAPE_DOT, -1, 0, false},
		{"dot negative col", model.SHAPE_DOT, 0, -1, false},
		{"dot past edge", model.SHAPE_DOT, 5, 0, false},
		{"bar fits at right edge", model.SHAPE_BAR_H, 0, 3, true},
		{"bar overflows right edge", model.SHAPE_BAR_H, 0, 4, false},
		{"I4 overlaps", model.SHAPE_I4, 1, 0, false},
		{"I4 fits", model.SHAPE_I4, 2, 0, true},
		{"T hole over filled cell", model.SHAPE_T, 1, 1, true},
		{"T overlaps corner", model.SHAPE_T, 3, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.IsValidPlacement(block(tt.shape), tt.row, tt.col))
		})
	}
}

func TestIsValidPlacementMatchesCellCheck(t *testing.T) {
	g := grid(t,
		"x....x",
		"......",
		"..xx..",
		"......",
		".x....",
		"......",
	)
	b := board.FromGrid(g)
	for _, shape := range model.Shapes() {
		for r := -4; r < 10; r++ {
			for c := -4; c < 10; c++ {
				want := true
				for _, o := range shape.Cells() {
					if !g.InBounds(r+o.Row, c+o.Col) || g.At(r+o.Row, c+o.Col).Occupied {
						want = false
					}
				}
				got := b.IsValidPlacement(model.Block{Shape: shape.ID}, r, c)
				assert.Equal(t, want, got, "shape %d at %d,%d", shape.ID, r, c)
			}
		}
	}
}

func TestUnknownShapeIsTriviallyValid(t *testing.T) {
	b := board.New(5)
	assert.True(t, b.IsValidPlacement(model.Block{Shape: model.ShapeCount}, -3, 99))
}

func TestPlaceScoresOnePointPerCell(t *testing.T) {
	for _, shape := range model.Shapes() {
		t.Run(fmt.Sprintf("shape %d", shape.ID), func(t *testing.T) {
			b := board.New(10)
			before := b.Grid()
			points, ok := b.Place(model.Block{Shape: shape.ID}, 2, 3)
			require.True(t, ok)
			assert.Equal(t, len(shape.Cells()), points)

			after := b.Grid()
			assert.Equal(t, len(shape.Cells()), after.Occupied())
			for r := 0; r < 10; r++ {
				for c := 0; c < 10; c++ {
					if shape.Filled(r-2, c-3) {
						assert.Equal(t, shape.Color, after.At(r, c).Color)
						continue
					}
					assert.Equal(t, before.At(r, c), after.At(r, c))
				}
			}
		})
	}
}

func TestPlaceRejectedLeavesGridUnchanged(t *testing.T) {
	b := board.FromGrid(grid(t,
		"x....",
		".....",
		".....",
		".....",
		".....",
	))
	before := b.Grid()
	points, ok := b.Place(block(model.SHAPE_O), 0, 0)
	assert.False(t, ok)
	assert.Zero(t, points)
	assert.Equal(t, before, b.Grid())
}

func TestPlaceCarriesGemAttachments(t *testing.T) {
	b := board.New(5)
	blk := model.Block{
		Shape: model.SHAPE_BAR_H,
		Gems:  []model.GemAttachment{{Row: 0, Col: 1, Gem: model.GEM_EMERALD}},
	}
	_, ok := b.Place(blk, 4, 3)
	require.True(t, ok)
	g := b.Grid()
	assert.False(t, g.At(4, 3).HasGem)
	assert.True(t, g.At(4, 4).HasGem)
	assert.Equal(t, model.GEM_EMERALD, g.At(4, 4).Gem)
}

func TestGridIsCopiedOnTheWayInAndOut(t *testing.T) {
	g := model.NewGrid(5)
	b := board.FromGrid(g)
	b.Place(block(model.SHAPE_DOT), 0, 0)
	assert.False(t, g.At(0, 0).Occupied)

	out := b.Grid()
	out.Set(4, 4, model.FilledCell(1))
	assert.True(t, b.IsValidPlacement(block(model.SHAPE_DOT), 4, 4))
}

func TestIsGameOver(t *testing.T) {
	rows := make([]string, 10)
	for i := range rows {
		rows[i] = "xxxxxxxxxx"
	}
	rows[4] = "xxxx.xxxxx"
	b := board.FromGrid(grid(t, rows...))

	assert.True(t, b.IsGameOver([]model.Block{block(model.SHAPE_BAR_H)}))
	assert.True(t, b.IsGameOver([]model.Block{block(model.SHAPE_BAR_H), block(model.SHAPE_BAR_V)}))
	assert.False(t, b.IsGameOver([]model.Block{block(model.SHAPE_DOT)}))
	assert.False(t, b.IsGameOver([]model.Block{block(model.SHAPE_O), block(model.SHAPE_DOT)}))
	assert.False(t, b.IsGameOver(nil), "empty hand waits for refill")
}
