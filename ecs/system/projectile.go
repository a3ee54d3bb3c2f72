package system

import (
	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

// ProjectileSystem moves projectiles and resolves hits. A projectile is
// destroyed on its first hit, on wall contact, or when its life runs out.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem { return &ProjectileSystem{} }

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, tr *component.Transform) {
		p.Life--
		if p.Life < 0 {
			ecs.DestroyEntity(w, e)
			return
		}
		tr.X += p.VX
		tr.Y += p.VY
		r := tr.Rect()
		if pw != nil && (pw.Blocked(r) || !r.Intersects(pw.Bounds())) {
			ecs.DestroyEntity(w, e)
			return
		}
		cx, cy := tr.Center()
		src := AttackSource{X: cx - p.VX, Y: cy - p.VY, Weapon: component.WeaponRanged, Attacker: ecs.Entity(p.Shooter)}
		if p.Owner == component.SidePlayer {
			src.FromPlayer = true
			if hitEnemyWith(w, r, p.Damage, src) {
				ecs.DestroyEntity(w, e)
			}
			return
		}
		pe, _, ok := playerEntity(w)
		if !ok {
			return
		}
		ptr, ok := ecs.Get(w, pe, component.TransformComponent.Kind())
		if !ok || !ptr.Rect().Intersects(r) {
			return
		}
		if hp, ok := ecs.Get(w, pe, component.HealthComponent.Kind()); ok && hp.Dead {
			return
		}
		DamagePlayer(w, p.Damage, src)
		ecs.DestroyEntity(w, e)
	})
}

// hitEnemyWith damages the first live enemy or boss overlapping r. It reports
// whether anything was struck, including blocked or absorbed hits.
func hitEnemyWith(w *ecs.World, r common.Rect, damage int, src AttackSource) bool {
	hit := false
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, hp *component.Health, tr *component.Transform) {
		if hit || hp.Dead || enemy.State == component.EnemyVanished || !tr.Rect().Intersects(r) {
			return
		}
		hit = true
		DamageEnemy(w, e, damage, src)
	})
	if hit {
		return true
	}
	be, boss, ok := bossEntity(w)
	if !ok || boss.State >= component.BossDying {
		return false
	}
	if tr, ok := ecs.Get(w, be, component.TransformComponent.Kind()); ok && tr.Rect().Intersects(r) {
		DamageBoss(w, damage, src)
		return true
	}
	return false
}
