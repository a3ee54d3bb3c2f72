package system

import (
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

// ExitSystem emits EventLevelExit once when the player stands in an exit
// zone whose gate is open.
type ExitSystem struct{}

func NewExitSystem() *ExitSystem { return &ExitSystem{} }

func (s *ExitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pe, _, ok := playerEntity(w)
	if !ok {
		return
	}
	ptr, ok := ecs.Get(w, pe, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if hp, ok := ecs.Get(w, pe, component.HealthComponent.Kind()); ok && hp.Dead {
		return
	}
	pr := ptr.Rect()
	ecs.ForEach2(w, component.ExitZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, zone *component.ExitZone, tr *component.Transform) {
		if zone.Used || !tr.Rect().Intersects(pr) || !GateOpen(w, zone.GateID) {
			return
		}
		zone.Used = true
		w.Emit(ecs.EventLevelExit, zone.GateID)
		w.PlaySound("exit")
	})
}
