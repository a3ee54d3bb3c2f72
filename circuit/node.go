package circuit

import "github.com/milk9111/ironkeep/common"

type NodeType int

const (
	Dead NodeType = iota
	Straight
	Corner
	Split
)

func (t NodeType) String() string {
	switch t {
	case Straight:
		return "straight"
	case Corner:
		return "corner"
	case Split:
		return "split"
	default:
		return "dead"
	}
}

// ParseNodeType maps a layout name to a node type. Unknown names are dead
// nodes.
func ParseNodeType(s string) NodeType {
	switch s {
	case "straight":
		return Straight
	case "corner":
		return Corner
	case "split":
		return Split
	default:
		return Dead
	}
}

// Node is one rotatable cell. Powered is derived by Evaluate and is never
// read back as input.
type Node struct {
	Col, Row int
	Type     NodeType
	Rotation int
	Powered  bool
}

// Outputs returns the sides a node forwards power to when power enters
// through side entry.
//
//	straight: even rotations join up/down, odd rotations join left/right
//	corner:   rotation r joins up.Rotate(r) and right.Rotate(r)
//	split:    forwards to up.Rotate(r) and right.Rotate(r) from any entry side
//	dead:     nothing
func Outputs(t NodeType, rotation int, entry common.Dir) []common.Dir {
	r := ((rotation % 4) + 4) % 4
	switch t {
	case Straight:
		horizontal := r%2 == 1
		if (entry == common.Left || entry == common.Right) == horizontal {
			return []common.Dir{entry.Opposite()}
		}
		return nil
	case Corner:
		a, b := common.Up.Rotate(r), common.Right.Rotate(r)
		switch entry {
		case a:
			return []common.Dir{b}
		case b:
			return []common.Dir{a}
		}
		return nil
	case Split:
		return []common.Dir{common.Up.Rotate(r), common.Right.Rotate(r)}
	}
	return nil
}

// accepts reports whether power entering through entry lights the node.
// Dead nodes absorb power, so they light up as the visible end of a branch.
func accepts(t NodeType, rotation int, entry common.Dir) bool {
	if t == Dead {
		return true
	}
	return len(Outputs(t, rotation, entry)) > 0
}

// distinctRotations is how many rotations of t behave differently.
func distinctRotations(t NodeType) int {
	switch t {
	case Dead:
		return 1
	case Straight:
		return 2
	default:
		return 4
	}
}
