package system

import (
	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

const (
	captainAuraRadius = 160.0
	captainAuraMult   = 1.4
)

// AuraSystem recomputes the captain speed aura from scratch every tick, so
// an enemy loses the bonus as soon as it leaves range or the captain dies.
type AuraSystem struct {
	captains [][2]float64
}

func NewAuraSystem() *AuraSystem { return &AuraSystem{} }

func (s *AuraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.captains = s.captains[:0]
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, enemy *component.Enemy, hp *component.Health, tr *component.Transform) {
		enemy.SpeedMult = 1
		if enemy.Archetype == component.ArchetypeCaptain && !hp.Dead {
			x, y := tr.Center()
			s.captains = append(s.captains, [2]float64{x, y})
		}
	})
	if len(s.captains) == 0 {
		return
	}
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, enemy *component.Enemy, hp *component.Health, tr *component.Transform) {
		if hp.Dead || enemy.Archetype == component.ArchetypeCaptain {
			return
		}
		x, y := tr.Center()
		for _, c := range s.captains {
			if common.Dist(x, y, c[0], c[1]) <= captainAuraRadius {
				enemy.SpeedMult = captainAuraMult
				return
			}
		}
	})
}
