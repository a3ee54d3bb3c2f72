package circuit

import (
	"fmt"

	"github.com/milk9111/ironkeep/common"
)

// Port is a fixed side of a fixed cell: the source feeds power into Cell
// through Side, and the gate is powered when power leaves Cell through Side.
type Port struct {
	Col, Row int
	Side     common.Dir
}

// Cell identifies a grid position.
type Cell struct {
	Col, Row int
}

// Board is a grid of nodes plus the fixed source and gate. It keeps no
// derived state between evaluations: every Evaluate is a full traversal,
// O(nodes x 4) per call.
type Board struct {
	Cols, Rows int
	Nodes      []Node
	Source     Port
	Gate       Port
}

// NewBoard creates a board filled with dead nodes.
func NewBoard(cols, rows int, source, gate Port) *Board {
	b := &Board{Cols: cols, Rows: rows, Source: source, Gate: gate}
	b.Nodes = make([]Node, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			b.Nodes[r*cols+c] = Node{Col: c, Row: r, Type: Dead}
		}
	}
	return b
}

func (b *Board) inBounds(col, row int) bool {
	return b != nil && col >= 0 && row >= 0 && col < b.Cols && row < b.Rows
}

// Node returns the node at col,row or nil outside the grid.
func (b *Board) Node(col, row int) *Node {
	if !b.inBounds(col, row) {
		return nil
	}
	return &b.Nodes[row*b.Cols+col]
}

// Set places a node type and rotation.
func (b *Board) Set(col, row int, t NodeType, rotation int) error {
	n := b.Node(col, row)
	if n == nil {
		return fmt.Errorf("circuit: set %d,%d: outside %dx%d board", col, row, b.Cols, b.Rows)
	}
	n.Type = t
	n.Rotation = ((rotation % 4) + 4) % 4
	return nil
}

// Rotate turns the node at col,row one quarter clockwise. Dead nodes and
// positions outside the grid are ignored.
func (b *Board) Rotate(col, row int) bool {
	n := b.Node(col, row)
	if n == nil || n.Type == Dead {
		return false
	}
	n.Rotation = (n.Rotation + 1) % 4
	return true
}

// Rotations snapshots every node's rotation in row-major order.
func (b *Board) Rotations() []int {
	out := make([]int, len(b.Nodes))
	for i, n := range b.Nodes {
		out[i] = n.Rotation
	}
	return out
}

type visit struct {
	col, row int
	entry    common.Dir
}

// Result is the outcome of one evaluation.
type Result struct {
	Solved bool
	// Route lists the cells from the source to the gate along the first path
	// found. Empty when unsolved.
	Route []Cell
}

// Evaluate recomputes power from scratch with a breadth-first walk over
// (cell, entry side) pairs. A cell may be visited once per entry side, which
// lets a path cross a node it already lit from another direction without
// looping forever. Powered flags are rewritten on every call.
func (b *Board) Evaluate() Result {
	var res Result
	if b == nil {
		return res
	}
	for i := range b.Nodes {
		b.Nodes[i].Powered = false
	}
	if !b.inBounds(b.Source.Col, b.Source.Row) {
		return res
	}

	start := visit{b.Source.Col, b.Source.Row, b.Source.Side}
	queue := []visit{start}
	seen := map[visit]bool{start: true}
	parent := map[visit]visit{}
	var goal *visit

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		n := b.Node(cur.col, cur.row)
		if accepts(n.Type, n.Rotation, cur.entry) {
			n.Powered = true
		}
		for _, out := range Outputs(n.Type, n.Rotation, cur.entry) {
			if goal == nil && cur.col == b.Gate.Col && cur.row == b.Gate.Row && out == b.Gate.Side {
				g := cur
				goal = &g
			}
			dx, dy := out.Delta()
			next := visit{cur.col + dx, cur.row + dy, out.Opposite()}
			if !b.inBounds(next.col, next.row) || seen[next] {
				continue
			}
			seen[next] = true
			parent[next] = cur
			queue = append(queue, next)
		}
	}

	if goal == nil {
		return res
	}
	res.Solved = true
	for v := *goal; ; {
		res.Route = append(res.Route, Cell{v.col, v.row})
		p, ok := parent[v]
		if !ok {
			break
		}
		v = p
	}
	for i, j := 0, len(res.Route)-1; i < j; i, j = i+1, j-1 {
		res.Route[i], res.Route[j] = res.Route[j], res.Route[i]
	}
	return res
}

// Powered reports the derived powered flag at col,row.
func (b *Board) Powered(col, row int) bool {
	n := b.Node(col, row)
	return n != nil && n.Powered
}

// Clone deep-copies the board.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	c := *b
	c.Nodes = append([]Node(nil), b.Nodes...)
	return &c
}
