package system

import (
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

type PickupCollectSystem struct{}

func NewPickupCollectSystem() *PickupCollectSystem { return &PickupCollectSystem{} }

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pe, p, ok := playerEntity(w)
	if !ok {
		return
	}
	ptr, ok := ecs.Get(w, pe, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if hp, ok := ecs.Get(w, pe, component.HealthComponent.Kind()); !ok || hp.Dead {
		return
	}
	pr := ptr.Rect()

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, tr *component.Transform) {
		if pickup.Collected || !tr.Rect().Intersects(pr) {
			return
		}
		pickup.Collected = true
		applyPickup(w, p, pickup)
		x, y := tr.Center()
		spawnFloatingText(w, pickupLabel(pickup), x, y)
		w.PlaySound("pickup")
		ecs.DestroyEntity(w, e)
	})
}

func applyPickup(w *ecs.World, p *component.Player, pickup *component.Pickup) {
	switch pickup.Kind {
	case component.PickupHealth:
		HealPlayer(w, pickup.Amount)
	case component.PickupWeapon:
		GrantWeapon(p, pickup.Weapon)
	case component.PickupBuff:
		if p.Buffs == nil {
			p.Buffs = component.Buffs{}
		}
		p.Buffs.Grant(pickup.Buff, pickup.Ticks)
	}
}

// GrantWeapon unlocks a weapon and equips it.
func GrantWeapon(p *component.Player, wpn component.Weapon) bool {
	if p == nil || wpn == "" {
		return false
	}
	if p.Owned == nil {
		p.Owned = map[component.Weapon]bool{}
	}
	p.Owned[wpn] = true
	p.Weapon = wpn
	p.Combo = 0
	return true
}

func pickupLabel(p *component.Pickup) string {
	switch p.Kind {
	case component.PickupHealth:
		return "+HP"
	case component.PickupWeapon:
		return string(p.Weapon)
	case component.PickupBuff:
		return string(p.Buff)
	}
	return ""
}
