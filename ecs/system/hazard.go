package system

import (
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

// HazardSystem damages the player on an interval while they stand on a
// hazard. The first tick of contact hits immediately.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem { return &HazardSystem{} }

func (s *HazardSystem) Update(w *ecs.World) {
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
	pr := ptr.Rect()
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, h *component.Hazard, tr *component.Transform) {
		if !tr.Rect().Intersects(pr) {
			h.Timer = 0
			return
		}
		if h.Timer > 0 {
			h.Timer--
			return
		}
		x, y := tr.Center()
		if DamagePlayer(w, h.Damage, AttackSource{X: x, Y: y, Weapon: component.WeaponArea}) > 0 && h.Kind != "" {
			w.PlaySound(h.Kind)
		}
		h.Timer = h.Interval
	})
}
