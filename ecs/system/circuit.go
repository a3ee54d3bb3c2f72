package system

import (
	"math"

	"github.com/milk9111/ironkeep/circuit"
	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

const circuitInteractRange = 50.0

// CircuitSystem rotates the node the player interacts with and re-evaluates
// power flow for any board that changed. A solved board is locked.
type CircuitSystem struct{}

func NewCircuitSystem() *CircuitSystem { return &CircuitSystem{} }

func (s *CircuitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	px, py, interact := interactPoint(w)

	ecs.ForEach(w, component.CircuitBoardComponent.Kind(), func(_ ecs.Entity, cb *component.CircuitBoard) {
		if cb.Board == nil {
			return
		}
		if interact && !cb.Solved {
			if col, row, ok := nearestNode(cb, px, py); ok && cb.Board.Rotate(col, row) {
				cb.Dirty = true
				w.PlaySound("rotate")
			}
		}
		if !cb.Dirty {
			return
		}
		cb.Dirty = false
		res := cb.Board.Evaluate()
		if !res.Solved || cb.Solved {
			return
		}
		cb.Solved = true
		w.Emit(ecs.EventPuzzleSolved, "circuit")
		w.PlaySound("puzzle")
		w.Logger().Info().Int("route", len(res.Route)).Msg("circuit solved")
		OpenGate(w, cb.GateID)
	})
}

// interactPoint returns the player's center when the player pressed interact
// this tick.
func interactPoint(w *ecs.World) (float64, float64, bool) {
	pe, _, ok := playerEntity(w)
	if !ok {
		return 0, 0, false
	}
	in, ok := ecs.Get(w, pe, component.InputComponent.Kind())
	if !ok || !in.Interact {
		return 0, 0, false
	}
	if hp, ok := ecs.Get(w, pe, component.HealthComponent.Kind()); ok && hp.Dead {
		return 0, 0, false
	}
	x, y, ok := centerOf(w, pe)
	return x, y, ok
}

// nearestNode picks the closest rotatable node in reach. Dead cells never
// turn, so they are skipped.
func nearestNode(cb *component.CircuitBoard, x, y float64) (int, int, bool) {
	best := math.MaxFloat64
	col, row := -1, -1
	for _, n := range cb.Board.Nodes {
		if n.Type == circuit.Dead {
			continue
		}
		cx, cy := cb.CellCenter(n.Col, n.Row)
		if d := common.Dist(x, y, cx, cy); d <= circuitInteractRange && d < best {
			best = d
			col, row = n.Col, n.Row
		}
	}
	return col, row, col >= 0
}
