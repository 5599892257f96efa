package model

import (
	"fmt"
	"strings"
)

// Color is a 0xRRGGBB value.
type Color uint32

func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c))
}

const COLOR_LOCKED Color = 0x4a4e69

type ShapeID int

const (
	SHAPE_I4 ShapeID = iota
	SHAPE_O
	SHAPE_T
	SHAPE_J
	SHAPE_L
	SHAPE_S
	SHAPE_Z
	SHAPE_DOT
	SHAPE_BAR_H
	SHAPE_BAR_V
	ShapeCount
)

type Offset struct {
	Row, Col int
}

type Shape struct {
	ID    ShapeID
	Color Color
	Mask  [][]bool
	cells []Offset
}

// Rows and Cols give the bounding box of the mask.
func (s Shape) Rows() int {
	return len(s.Mask)
}

func (s Shape) Cols() int {
	if len(s.Mask) == 0 {
		return 0
	}
	return len(s.Mask[0])
}

// Cells lists the filled offsets in row-major order.
func (s Shape) Cells() []Offset {
	return s.cells
}

func (s Shape) Filled(r, c int) bool {
	if r < 0 || r >= len(s.Mask) || c < 0 || c >= len(s.Mask[r]) {
		return false
	}
	return s.Mask[r][c]
}

// masks are rows separated by '/', '1' marks a filled cell
var shapeTable = [ShapeCount]struct {
	mask  string
	color Color
}{
	SHAPE_I4:    {"1111", 0x00ffff},
	SHAPE_O:     {"11/11", 0xffff00},
	SHAPE_T:     {"010/111", 0x800080},
	SHAPE_J:     {"001/111", 0x0000ff},
	SHAPE_L:     {"100/111", 0xffa500},
	SHAPE_S:     {"011/110", 0x008000},
	SHAPE_Z:     {"110/011", 0xff0000},
	SHAPE_DOT:   {"1", 0xffc0cb},
	SHAPE_BAR_H: {"11", 0xadd8e6},
	SHAPE_BAR_V: {"1/1", 0x90ee90},
}

var shapes [ShapeCount]Shape

func init() {
	for i, def := range shapeTable {
		shapes[i] = NewShape(ShapeID(i), def.mask, def.color)
	}
}

// NewShape builds a shape from a '/'-separated mask like "010/111".
func NewShape(id ShapeID, mask string, color Color) Shape {
	s := Shape{ID: id, Color: color}
	for r, line := range strings.Split(mask, "/") {
		row := make([]bool, len(line))
		for c, char := range line {
			if char == '1' {
				row[c] = true
				s.cells = append(s.cells, Offset{Row: r, Col: c})
			}
		}
		s.Mask = append(s.Mask, row)
	}
	return s
}

func ShapeByID(id ShapeID) (Shape, bool) {
	if id < 0 || id >= ShapeCount {
		return Shape{}, false
	}
	return shapes[id], true
}

// Shapes returns the whole catalog in id order.
func Shapes() []Shape {
	out := make([]Shape, len(shapes))
	copy(out, shapes[:])
	return out
}

type GemID int

const (
	GEM_RUBY GemID = iota
	GEM_SAPPHIRE
	GEM_EMERALD
	GEM_AMETHYST
	GEM_DIAMOND
	GEM_STONE
	GemCount
)

// GoalGemCount is how many catalog gems can be drawn as level goals.
// GEM_STONE is never a goal.
const GoalGemCount = int(GEM_STONE)

type Gem struct {
	ID   GemID
	Name string
	Icon string
}

var gems = [GemCount]Gem{
	GEM_RUBY:     {ID: GEM_RUBY, Name: "Ruby", Icon: "assets/gemstone_ruby.png"},
	GEM_SAPPHIRE: {ID: GEM_SAPPHIRE, Name: "Sapphire", Icon: "assets/gemstone_sapphire.png"},
	GEM_EMERALD:  {ID: GEM_EMERALD, Name: "Emerald", Icon: "assets/gemstone_emerald.png"},
	GEM_AMETHYST: {ID: GEM_AMETHYST, Name: "Amethyst", Icon: "assets/gemstone_amethyst.png"},
	GEM_DIAMOND:  {ID: GEM_DIAMOND, Name: "Diamond", Icon: "assets/gemstone_diamond.png"},
	GEM_STONE:    {ID: GEM_STONE, Name: "Stone", Icon: "assets/gemstone_stone.png"},
}

func GemByID(id GemID) (Gem, bool) {
	if id < 0 || id >= GemCount {
		return Gem{}, false
	}
	return gems[id], true
}

func Gems() []Gem {
	out := make([]Gem, len(gems))
	copy(out, gems[:])
	return out
}

func (id GemID) Name() string {
	if g, ok := GemByID(id); ok {
		return g.Name
	}
	return fmt.Sprintf("n/a:%d", id)
}
