package circuit

import "github.com/milk9111/ironkeep/common"

// LayoutNode is one authored cell of a layout.
type LayoutNode struct {
	Col      int    `json:"col"`
	Row      int    `json:"row"`
	Type     string `json:"type"`
	Rotation int    `json:"rotation"`
}

// Layout is an authored board description as stored in level files.
type Layout struct {
	Cols   int          `json:"cols"`
	Rows   int          `json:"rows"`
	Source Port         `json:"source"`
	Gate   Port         `json:"gate"`
	Nodes  []LayoutNode `json:"nodes"`
}

// Build turns a layout into a board. Cells not listed are dead.
func (l Layout) Build() (*Board, error) {
	b := NewBoard(l.Cols, l.Rows, l.Source, l.Gate)
	for _, n := range l.Nodes {
		if err := b.Set(n.Col, n.Row, ParseNodeType(n.Type), n.Rotation); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// VaultLayout is the shipped vault puzzle: a 6x4 grid fed from the left of
// (0,1) with the gate to the right of (5,2). The route is a straight, a corner
// down, a corner right and four straights. It holds no split, so every route
// node has exactly one working rotation. Splits and corners hang off the two
// route corners; a wrong turn feeds them and they only ever reach dead cells.
func VaultLayout() Layout {
	return Layout{
		Cols:   6,
		Rows:   4,
		Source: Port{Col: 0, Row: 1, Side: common.Left},
		Gate:   Port{Col: 5, Row: 2, Side: common.Right},
		Nodes: []LayoutNode{
			{Col: 0, Row: 1, Type: "straight"},
			{Col: 1, Row: 1, Type: "corner"},
			{Col: 1, Row: 2, Type: "corner", Rotation: 1},
			{Col: 2, Row: 2, Type: "straight"},
			{Col: 3, Row: 2, Type: "straight", Rotation: 1},
			{Col: 4, Row: 2, Type: "straight"},
			{Col: 5, Row: 2, Type: "straight", Rotation: 1},

			{Col: 1, Row: 0, Type: "split", Rotation: 2},
			{Col: 2, Row: 0, Type: "corner", Rotation: 1},
			{Col: 0, Row: 2, Type: "corner", Rotation: 3},
			{Col: 0, Row: 3, Type: "split"},
			{Col: 1, Row: 3, Type: "corner", Rotation: 2},
		},
	}
}

// VaultBoard builds the shipped vault puzzle.
func VaultBoard() *Board {
	b, _ := VaultLayout().Build()
	return b
}
