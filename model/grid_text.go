package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrBadGridRow = errors.New("bad grid row")

// COLOR_PLAIN is used for 'x' cells read from text.
const COLOR_PLAIN Color = 0x9a8c98

// ParseGrid reads a square grid, one line per row:
//
//	.      empty
//	#      locked cell
//	0..5   locked cell carrying that gem
//	x      placed cell
//	a..f   placed cell carrying gem 0..5
//
// Blank lines are skipped.
func ParseGrid(reader io.Reader) (Grid, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	lines := make([][]Cell, 0)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			continue
		}
		line := make([]Cell, 0, len(s))
		for i, char := range s {
			var cell Cell
			switch {
			case char == '.':
			case char == '#':
				cell = LockedCell(0, false)
			case char >= '0' && char < '0'+rune(GemCount):
				cell = LockedCell(GemID(char-'0'), true)
			case char == 'x':
				cell = FilledCell(COLOR_PLAIN)
			case char >= 'a' && char < 'a'+rune(GemCount):
				cell = GemCell(COLOR_PLAIN, GemID(char-'a'))
			default:
				return Grid{}, fmt.Errorf("%w: row %d col %d: unexpected %q", ErrBadGridRow, len(lines), i, char)
			}
			line = append(line, cell)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return Grid{}, err
	}

	side := len(lines)
	if side < MIN_GRID_SIZE || side > MAX_GRID_SIZE {
		return Grid{}, fmt.Errorf("%w: %d rows", ErrGridSize, side)
	}
	g := NewGrid(side)
	for r, line := range lines {
		if len(line) != side {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadGridRow, r, len(line), side)
		}
		for c, cell := range line {
			g.Set(r, c, cell)
		}
	}
	return g, nil
}

// Format writes the grid in the ParseGrid notation.
func (g Grid) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for r := 0; r < g.Side; r++ {
		for c := 0; c < g.Side; c++ {
			bw.WriteRune(cellRune(g.At(r, c)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (g Grid) String() string {
	var sb strings.Builder
	_ = g.Format(&sb)
	return sb.String()
}

func cellRune(cell Cell) rune {
	switch {
	case !cell.Occupied:
		return '.'
	case cell.Locked && cell.HasGem:
		return '0' + rune(cell.Gem)
	case cell.Locked:
		return '#'
	case cell.HasGem:
		return 'a' + rune(cell.Gem)
	default:
		return 'x'
	}
}
