package component

import "github.com/milk9111/ironkeep/circuit"

// CircuitBoard places a circuit board in the world. Node (c, r) occupies the
// cell centered at Origin + (c, r) * Spacing.
type CircuitBoard struct {
	Board   *circuit.Board
	OriginX float64
	OriginY float64
	Spacing float64
	GateID  string
	// Solved latches the first time power reaches the gate.
	Solved bool
	Dirty  bool
}

// CellCenter returns the world position of node col,row.
func (b *CircuitBoard) CellCenter(col, row int) (float64, float64) {
	return b.OriginX + float64(col)*b.Spacing, b.OriginY + float64(row)*b.Spacing
}

var CircuitBoardComponent = NewComponent[CircuitBoard]()
