package system

import (
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

// TimerSystem counts down the short per-entity timers: invincibility, hit
// flash, weapon cooldowns, combo window, and buffs.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem { return &TimerSystem{} }

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.HealthComponent.Kind(), func(_ ecs.Entity, hp *component.Health) {
		if hp.IFrames > 0 {
			hp.IFrames--
		}
		if hp.HitFlash > 0 {
			hp.HitFlash--
		}
	})

	_, p, ok := playerEntity(w)
	if !ok {
		return
	}
	for wpn, cd := range p.Cooldowns {
		if cd > 0 {
			p.Cooldowns[wpn] = cd - 1
		}
	}
	if p.Swing > 0 {
		p.Swing--
	}
	if p.ComboIdle > 0 {
		p.ComboIdle--
		if p.ComboIdle == 0 {
			p.Combo = 0
		}
	}
	p.Buffs.Tick()
}
