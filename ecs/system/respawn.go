package system

import (
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

// RespawnSystem counts down a downed player's respawn delay and emits
// EventRespawn once when it expires. The session owns the rebuild.
type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pe, p, ok := playerEntity(w)
	if !ok {
		return
	}
	hp, ok := ecs.Get(w, pe, component.HealthComponent.Kind())
	if !ok || !hp.Dead || p.RespawnTimer <= 0 {
		return
	}
	p.RespawnTimer--
	if p.RespawnTimer == 0 {
		w.Emit(ecs.EventRespawn, nil)
	}
}
