package system

import (
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

// OpenGate removes gate id from the physics world and marks its Gate
// components open. It reports whether the gate was newly opened; opening an
// open gate is a no-op.
func OpenGate(w *ecs.World, id string) bool {
	if w == nil || id == "" {
		return false
	}
	opened := false
	if pw := w.PhysicsWorld(); pw != nil && pw.OpenGate(id) {
		opened = true
	}
	ecs.ForEach(w, component.GateComponent.Kind(), func(_ ecs.Entity, g *component.Gate) {
		if g.ID == id && !g.Open {
			g.Open = true
			opened = true
		}
	})
	if !opened {
		return false
	}
	w.Emit(ecs.EventGateOpened, id)
	w.PlaySound("gate")
	w.Logger().Info().Str("gate", id).Msg("gate opened")
	return true
}

// GateOpen reports whether gate id no longer blocks movement. Unknown gates
// count as open.
func GateOpen(w *ecs.World, id string) bool {
	if id == "" {
		return true
	}
	open := true
	found := false
	ecs.ForEach(w, component.GateComponent.Kind(), func(_ ecs.Entity, g *component.Gate) {
		if g.ID == id {
			found = true
			open = open && g.Open
		}
	})
	if !found {
		if pw := w.PhysicsWorld(); pw.HasGate(id) {
			return pw.GateOpen(id)
		}
	}
	return open
}
