package circuit

import (
	"fmt"
	"strings"
)

// Verification summarizes an exhaustive search over every behaviorally
// distinct rotation assignment of a board.
type Verification struct {
	Assignments int
	Solving     int
	Routes      [][]Cell
	// Configurations counts the distinct rotations of the route nodes across
	// solving assignments. Nodes off the route do not affect the gate, so
	// their rotations are left out.
	Configurations int
}

// Unique reports whether exactly one rotation of the route nodes powers the
// gate, along exactly one route.
func (v Verification) Unique() bool {
	return v.Solving > 0 && len(v.Routes) == 1 && v.Configurations == 1
}

// Verify brute-forces all rotation assignments. Straight nodes contribute two
// states, dead nodes one, corners and splits four. The board passed in is not
// modified.
func Verify(b *Board) Verification {
	var v Verification
	if b == nil {
		return v
	}
	work := b.Clone()
	var idx []int
	for i, n := range work.Nodes {
		if distinctRotations(n.Type) > 1 {
			idx = append(idx, i)
		}
	}

	seenRoutes := map[string]bool{}
	seenConfigs := map[string]bool{}
	var walk func(k int)
	walk = func(k int) {
		if k == len(idx) {
			v.Assignments++
			res := work.Evaluate()
			if !res.Solved {
				return
			}
			v.Solving++
			key := routeKey(res.Route)
			if !seenRoutes[key] {
				seenRoutes[key] = true
				v.Routes = append(v.Routes, res.Route)
			}
			if config := configKey(work, res.Route); !seenConfigs[config] {
				seenConfigs[config] = true
				v.Configurations++
			}
			return
		}
		n := &work.Nodes[idx[k]]
		for r := 0; r < distinctRotations(n.Type); r++ {
			n.Rotation = r
			walk(k + 1)
		}
	}
	walk(0)
	return v
}

func routeKey(route []Cell) string {
	parts := make([]string, 0, len(route))
	for _, c := range route {
		parts = append(parts, fmt.Sprintf("%d,%d", c.Col, c.Row))
	}
	return strings.Join(parts, ";")
}

func configKey(b *Board, route []Cell) string {
	parts := make([]string, 0, len(route))
	for _, c := range route {
		parts = append(parts, fmt.Sprintf("%d,%d@%d", c.Col, c.Row, b.Node(c.Col, c.Row).Rotation))
	}
	return strings.Join(parts, ";")
}
