package model

// GemAttachment marks a shape cell that carries a gem once placed.
type GemAttachment struct {
	Row int   `json:"row" yaml:"row"`
	Col int   `json:"col" yaml:"col"`
	Gem GemID `json:"gem" yaml:"gem"`
}

// BlockDraw is one entry of a level's block sequence.
type BlockDraw struct {
	Shape ShapeID         `json:"shape" yaml:"shape"`
	Gems  []GemAttachment `json:"gems,omitempty" yaml:"gems,omitempty"`
}

// Block is a shape drawn into the hand. ID is unique among live blocks.
type Block struct {
	ID    string
	Shape ShapeID
	Gems  []GemAttachment
}

func (b Block) GemAt(r, c int) (GemID, bool) {
	for _, g := range b.Gems {
		if g.Row == r && g.Col == c {
			return g.Gem, true
		}
	}
	return 0, false
}

// Cells resolves the block's shape. Unknown shapes have no cells.
func (b Block) Cells() []Offset {
	s, ok := ShapeByID(b.Shape)
	if !ok {
		return nil
	}
	return s.Cells()
}

func (b Block) Color() Color {
	s, _ := ShapeByID(b.Shape)
	return s.Color
}
