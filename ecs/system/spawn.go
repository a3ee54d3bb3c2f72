package system

import (
	"fmt"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

const (
	pickupSize        = 16.0
	healthPickupHeal  = 40
	lootBuffTicks     = 600
	projectileSize    = 8.0
	projectileLife    = 180
	defaultEnemyWidth = 24.0
)

func bestiary(w *ecs.World) *component.Bestiary {
	e, ok := ecs.First(w, component.BestiaryComponent.Kind())
	if !ok {
		return nil
	}
	b, _ := ecs.Get(w, e, component.BestiaryComponent.Kind())
	return b
}

// SpawnEnemy creates an enemy of the given archetype centered at x, y using
// the world's bestiary singleton, falling back to built-in stats.
func SpawnEnemy(w *ecs.World, archetype component.Archetype, x, y float64) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("spawn %s: nil world", archetype)
	}
	stats, ok := bestiary(w).Lookup(archetype)
	if !ok {
		return 0, fmt.Errorf("spawn %s: unknown archetype", archetype)
	}
	width, height := stats.Width, stats.Height
	if width <= 0 || height <= 0 {
		width, height = defaultEnemyWidth, defaultEnemyWidth
	}

	e := ecs.CreateEntity(w)
	tr := &component.Transform{X: x - width/2, Y: y - height/2, Width: width, Height: height}
	if pw := w.PhysicsWorld(); pw != nil {
		tr.SetRect(pw.ClampToBounds(tr.Rect()))
	}
	hp := stats.HP
	if hp <= 0 {
		hp = 1
	}
	enemy := &component.Enemy{
		Archetype:      archetype,
		Damage:         stats.Damage,
		Speed:          stats.Speed,
		AggroRange:     stats.AggroRange,
		AttackRange:    stats.AttackRange,
		AttackCooldown: stats.AttackCooldown,
		SpeedMult:      1,
		Tough:          stats.Tough,
		Drops:          stats.Drops,
		Script:         stats.Script,
		ShieldDir:      common.Left,
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", archetype, err)
	}
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Max: hp, Current: hp}); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", archetype, err)
	}
	if err := ecs.Add(w, e, component.EnemyComponent.Kind(), enemy); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", archetype, err)
	}
	return e, nil
}

// SpawnMinion spawns a summoned enemy that never drops loot.
func SpawnMinion(w *ecs.World, archetype component.Archetype, x, y float64) (ecs.Entity, error) {
	e, err := SpawnEnemy(w, archetype, x, y)
	if err != nil {
		return 0, err
	}
	if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
		enemy.Minion = true
	}
	return e, nil
}

// spawnProjectile fires a projectile from shooter, centered at x, y along
// (dx, dy) scaled to speed.
func spawnProjectile(w *ecs.World, shooter ecs.Entity, kind component.ProjectileKind, owner component.Side, x, y, dx, dy, speed float64, damage int) ecs.Entity {
	nx, ny := common.Normalize(dx, dy)
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: x - projectileSize/2, Y: y - projectileSize/2, Width: projectileSize, Height: projectileSize,
	})
	_ = ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		VX: nx * speed, VY: ny * speed, Life: projectileLife, Damage: damage, Owner: owner, Kind: kind,
		Shooter: uint64(shooter),
	})
	return e
}

// SpawnPickup places a pickup centered at x, y.
func SpawnPickup(w *ecs.World, p component.Pickup, x, y float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: x - pickupSize/2, Y: y - pickupSize/2, Width: pickupSize, Height: pickupSize,
	})
	p.Collected = false
	_ = ecs.Add(w, e, component.PickupComponent.Kind(), &p)
	return e
}

// SpawnLoot turns a drop-table result into a pickup. "shield" grants the
// shield buff; "buff" rolls one of the timed buffs.
func SpawnLoot(w *ecs.World, drop string, x, y float64) (ecs.Entity, bool) {
	switch drop {
	case "health":
		return SpawnPickup(w, component.Pickup{Kind: component.PickupHealth, Amount: healthPickupHeal}, x, y), true
	case "shield":
		return SpawnPickup(w, component.Pickup{Kind: component.PickupBuff, Buff: component.BuffShield, Ticks: lootBuffTicks}, x, y), true
	case "buff":
		buff := component.AllBuffs[w.RNG().Intn(len(component.AllBuffs))]
		return SpawnPickup(w, component.Pickup{Kind: component.PickupBuff, Buff: buff, Ticks: lootBuffTicks}, x, y), true
	}
	return 0, false
}

func centerOf(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	x, y := tr.Center()
	return x, y, true
}

// SpawnPlayer creates the avatar centered at x, y owning the given weapons.
// The first owned weapon in WeaponOrder is equipped; with none owned the
// sword is granted.
func SpawnPlayer(w *ecs.World, stats component.PlayerStats, owned map[component.Weapon]bool, x, y float64) ecs.Entity {
	if stats.Arsenal == nil {
		stats.Arsenal = component.DefaultArsenal()
	}
	p := &component.Player{
		Facing:       common.Right,
		Speed:        stats.Speed,
		Owned:        map[component.Weapon]bool{},
		Arsenal:      stats.Arsenal,
		Cooldowns:    map[component.Weapon]int{},
		Buffs:        component.Buffs{},
		IFrameTicks:  stats.IFrames,
		RespawnDelay: stats.RespawnDelay,
	}
	for _, wpn := range component.WeaponOrder {
		if owned[wpn] {
			p.Owned[wpn] = true
			if p.Weapon == "" {
				p.Weapon = wpn
			}
		}
	}
	if p.Weapon == "" {
		p.Weapon = component.WeaponSword
		p.Owned[component.WeaponSword] = true
	}

	e := ecs.CreateEntity(w)
	tr := &component.Transform{X: x - stats.Width/2, Y: y - stats.Height/2, Width: stats.Width, Height: stats.Height}
	if pw := w.PhysicsWorld(); pw != nil {
		tr.SetRect(pw.ClampToBounds(tr.Rect()))
	}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), tr)
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Max: stats.MaxHP, Current: stats.MaxHP})
	_ = ecs.Add(w, e, component.PlayerComponent.Kind(), p)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
	return e
}

// SpawnBoss creates the boss centered at x, y. Seated bosses are immune until
// their general falls; an unseated boss starts awakening immediately.
func SpawnBoss(w *ecs.World, cfg *component.BossConfig, x, y float64, seated bool) ecs.Entity {
	if cfg == nil {
		cfg = component.DefaultBossConfig()
	}
	const size = 56.0
	b := &component.Boss{
		Config:         cfg,
		State:          component.BossOnThrone,
		Phase:          1,
		OnThrone:       true,
		Speed:          cfg.Speed,
		AttackCooldown: cfg.AttackCooldown,
		DamageScale:    1,
	}
	if pc := cfg.PhaseConfig(1); pc != nil && pc.DamageScale > 0 {
		b.DamageScale = pc.DamageScale
	}
	if !seated {
		b.State = component.BossAwakening
		b.OnThrone = false
		b.AwakenTimer = cfg.AwakenTicks
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x - size/2, Y: y - size/2, Width: size, Height: size})
	_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Max: cfg.MaxHP, Current: cfg.MaxHP})
	_ = ecs.Add(w, e, component.BossComponent.Kind(), b)
	return e
}
