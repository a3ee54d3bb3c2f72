package system

import (
	"math"
	"strconv"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

const (
	enemyIFrames      = 12
	hitFlashTicks     = 8
	knockbackDistance = 18.0
	thornsRadius      = 120.0
	lifestealRatio    = 0.20
	thornsRatio       = 0.50
	rageReflectRatio  = 0.25
	outgoingBuffBonus = 0.50
	floatingTextTicks = 40
)

// AttackSource describes where a hit comes from. X, Y is the attacker's
// center and drives block direction and knockback.
type AttackSource struct {
	X, Y   float64
	Weapon component.WeaponKind
	// Wielded is the player's weapon for player swings. Empty for enemy,
	// hazard and projectile hits.
	Wielded    component.Weapon
	FromPlayer bool
	// Reflected hits (thorns, rage) never trigger lifesteal or further
	// reflection.
	Reflected bool
	Attacker  ecs.Entity
}

func playerEntity(w *ecs.World) (ecs.Entity, *component.Player, bool) {
	e, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	return e, p, ok
}

func bossEntity(w *ecs.World) (ecs.Entity, *component.Boss, bool) {
	e, ok := ecs.First(w, component.BossComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	b, ok := ecs.Get(w, e, component.BossComponent.Kind())
	return e, b, ok
}

// OutgoingDamage applies the player's damage and rage buffs to a base hit.
func OutgoingDamage(p *component.Player, base int) int {
	if p == nil || base <= 0 {
		return base
	}
	mult := 1.0
	if p.Buffs.Active(component.BuffDamage) {
		mult += outgoingBuffBonus
	}
	if p.Buffs.Active(component.BuffRage) {
		mult += outgoingBuffBonus
	}
	return int(math.Round(float64(base) * mult))
}

// shieldBlocks reports whether a shield guard stops a hit coming from
// (src.X, src.Y). Only the sword, the base melee weapon, is blockable.
func shieldBlocks(enemy *component.Enemy, tr *component.Transform, src AttackSource) bool {
	if enemy.Archetype != component.ArchetypeShieldGuard || src.Wielded != component.WeaponSword {
		return false
	}
	cx, cy := tr.Center()
	return common.Toward(src.X-cx, src.Y-cy) == enemy.ShieldDir
}

// DamageEnemy is the only way enemy hp goes down. It returns the hp actually
// removed; 0 means the hit was blocked or ignored.
func DamageEnemy(w *ecs.World, target ecs.Entity, amount int, src AttackSource) int {
	if w == nil || amount <= 0 {
		return 0
	}
	enemy, ok := ecs.Get(w, target, component.EnemyComponent.Kind())
	if !ok {
		return 0
	}
	hp, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok || hp.Dead || hp.IFrames > 0 || enemy.State == component.EnemyVanished {
		return 0
	}
	tr, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return 0
	}
	cx, _ := tr.Center()

	if shieldBlocks(enemy, tr, src) {
		spawnFloatingText(w, "BLOCKED", cx, tr.Y)
		w.PlaySound("block")
		return 0
	}

	dealt := amount
	if dealt > hp.Current {
		dealt = hp.Current
	}
	hp.Current -= amount
	if hp.Current < 0 {
		hp.Current = 0
	}
	hp.IFrames = enemyIFrames
	hp.HitFlash = hitFlashTicks
	knockback(w, tr, src.X, src.Y, knockbackDistance)
	spawnFloatingText(w, strconv.Itoa(amount), cx, tr.Y)
	w.PlaySound("hit")

	if src.FromPlayer && !src.Reflected {
		applyLifesteal(w, dealt)
	}
	if hp.Current <= 0 {
		killEnemy(w, target, enemy, hp, tr)
	}
	return dealt
}

func applyLifesteal(w *ecs.World, dealt int) {
	_, p, ok := playerEntity(w)
	if !ok || dealt <= 0 || !p.Buffs.Active(component.BuffLifesteal) {
		return
	}
	HealPlayer(w, int(math.Round(float64(dealt)*lifestealRatio)))
}

// killEnemy runs once per enemy: the Dead flag is checked before any damage
// is applied, so a second lethal hit never reaches here.
func killEnemy(w *ecs.World, e ecs.Entity, enemy *component.Enemy, hp *component.Health, tr *component.Transform) {
	hp.Dead = true
	hp.Current = 0
	ecs.Kill(w, e)
	w.PlaySound("enemydeath")
	w.Logger().Debug().Str("archetype", string(enemy.Archetype)).Int("wave", enemy.Wave).Msg("enemy defeated")

	if enemy.Archetype == component.ArchetypeGeneral {
		releaseThrone(w)
	}
	if enemy.Tough && !enemy.Minion {
		cx, cy := tr.Center()
		if drop, ok := common.ChooseWeighted(w.RNG(), enemy.Drops); ok && drop != "" {
			SpawnLoot(w, drop, cx, cy)
		}
	}
}

// releaseThrone ends the boss's throne immunity and starts its awakening.
func releaseThrone(w *ecs.World) {
	_, boss, ok := bossEntity(w)
	if !ok || boss.State != component.BossOnThrone {
		return
	}
	boss.OnThrone = false
	boss.State = component.BossAwakening
	boss.AwakenTimer = 120
	if boss.Config != nil && boss.Config.AwakenTicks > 0 {
		boss.AwakenTimer = boss.Config.AwakenTicks
	}
	w.Emit(ecs.EventDialogue, ecs.Dialogue{Speaker: "Iron King", Line: "You dare strike down my general? Then face me."})
	w.PlaySound("bossroar")
	w.Logger().Info().Int("awaken_ticks", boss.AwakenTimer).Msg("boss throne released")
}

// DamageBoss is the only way boss hp goes down. Throne immunity rejects the
// hit outright; the barrier absorbs first and any remainder carries into hp
// in the same call. It returns the hp removed.
func DamageBoss(w *ecs.World, amount int, src AttackSource) int {
	if w == nil || amount <= 0 {
		return 0
	}
	e, boss, ok := bossEntity(w)
	if !ok {
		return 0
	}
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || hp.Dead || boss.State >= component.BossDying {
		return 0
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	var cx, ty float64
	if tr != nil {
		cx, _ = tr.Center()
		ty = tr.Y
	}

	if boss.OnThrone {
		spawnFloatingText(w, "IMMUNE", cx, ty)
		w.PlaySound("immune")
		return 0
	}

	if boss.Barrier > 0 {
		absorbed := amount
		if absorbed > boss.Barrier {
			absorbed = boss.Barrier
		}
		boss.Barrier -= absorbed
		amount -= absorbed
		if boss.Barrier == 0 {
			w.PlaySound("barrierbreak")
		} else {
			w.PlaySound("barrierhit")
		}
		if amount <= 0 {
			return 0
		}
	}

	dealt := amount
	if dealt > hp.Current {
		dealt = hp.Current
	}
	hp.Current -= amount
	if hp.Current < 0 {
		hp.Current = 0
	}
	hp.HitFlash = hitFlashTicks
	spawnFloatingText(w, strconv.Itoa(amount), cx, ty)
	w.PlaySound("bosshit")

	if src.FromPlayer && !src.Reflected {
		applyLifesteal(w, dealt)
	}

	if hp.Current <= 0 {
		hp.Dead = true
		startBossDeath(w, boss)
		return dealt
	}
	applyBossPhases(w, boss, hp)
	return dealt
}

// DamagePlayer is the only way player hp goes down. Thorns and rage reflect
// part of the incoming damage back at enemies.
func DamagePlayer(w *ecs.World, amount int, src AttackSource) int {
	if w == nil || amount <= 0 {
		return 0
	}
	e, p, ok := playerEntity(w)
	if !ok {
		return 0
	}
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || hp.Dead || hp.IFrames > 0 {
		return 0
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0
	}

	if p.Buffs.Active(component.BuffShield) {
		amount = (amount + 1) / 2
	}
	dealt := amount
	if dealt > hp.Current {
		dealt = hp.Current
	}
	hp.Current -= amount
	if hp.Current < 0 {
		hp.Current = 0
	}
	hp.IFrames = p.IFrameTicks
	hp.HitFlash = hitFlashTicks
	knockback(w, tr, src.X, src.Y, knockbackDistance)
	w.PlaySound("hurt")

	if !src.Reflected {
		px, py := tr.Center()
		if p.Buffs.Active(component.BuffThorns) {
			reflectThorns(w, px, py, int(math.Round(float64(amount)*thornsRatio)))
		}
		if p.Buffs.Active(component.BuffRage) && src.Attacker.Valid() {
			reflectRage(w, src.Attacker, px, py, int(math.Round(float64(amount)*rageReflectRatio)))
		}
	}

	if hp.Current <= 0 {
		hp.Dead = true
		p.RespawnTimer = p.RespawnDelay
		w.Emit(ecs.EventPlayerDied, nil)
		w.PlaySound("playerdeath")
		w.Logger().Info().Int("respawn_ticks", p.RespawnDelay).Msg("player defeated")
	}
	return dealt
}

func reflectThorns(w *ecs.World, px, py float64, amount int) {
	if amount <= 0 {
		return
	}
	src := AttackSource{X: px, Y: py, Weapon: component.WeaponArea, FromPlayer: true, Reflected: true}
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Enemy, tr *component.Transform) {
		cx, cy := tr.Center()
		if common.Dist(px, py, cx, cy) <= thornsRadius {
			DamageEnemy(w, e, amount, src)
		}
	})
}

func reflectRage(w *ecs.World, attacker ecs.Entity, px, py float64, amount int) {
	if amount <= 0 {
		return
	}
	src := AttackSource{X: px, Y: py, Weapon: component.WeaponArea, FromPlayer: true, Reflected: true}
	if ecs.Has(w, attacker, component.BossComponent.Kind()) {
		DamageBoss(w, amount, src)
		return
	}
	if ecs.IsAlive(w, attacker) {
		DamageEnemy(w, attacker, amount, src)
	}
}

// HealPlayer restores player hp up to max. Dead players cannot be healed.
func HealPlayer(w *ecs.World, amount int) int {
	if w == nil || amount <= 0 {
		return 0
	}
	e, _, ok := playerEntity(w)
	if !ok {
		return 0
	}
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || hp.Dead {
		return 0
	}
	before := hp.Current
	hp.Current += amount
	if hp.Current > hp.Max {
		hp.Current = hp.Max
	}
	return hp.Current - before
}

// knockback pushes tr away from (fromX, fromY) along the normalized
// separation vector, stopping at walls and world bounds.
func knockback(w *ecs.World, tr *component.Transform, fromX, fromY, dist float64) {
	if tr == nil || dist <= 0 {
		return
	}
	cx, cy := tr.Center()
	nx, ny := common.Normalize(cx-fromX, cy-fromY)
	moveBody(w, tr, nx*dist, ny*dist)
}

// moveBody moves tr through the physics world if one is attached.
func moveBody(w *ecs.World, tr *component.Transform, dx, dy float64) bool {
	if tr == nil {
		return false
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		tr.X += dx
		tr.Y += dy
		return false
	}
	out, blocked := pw.Move(tr.Rect(), dx, dy)
	tr.SetRect(out)
	return blocked
}

func spawnFloatingText(w *ecs.World, text string, x, y float64) {
	if w == nil || text == "" {
		return
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.FloatingTextComponent.Kind(), &component.FloatingText{Text: text, VY: -0.6})
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: floatingTextTicks})
	w.Emit(ecs.EventFloatingText, ecs.FloatingText{Text: text, X: x, Y: y})
}
