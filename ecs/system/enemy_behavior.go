package system

import (
	"github.com/d5/tengo/v2"
	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

// Behavior is one archetype's state machine. Special runs every tick before
// the aggro check and returns true when it consumed the tick (a windup in
// progress, a charge, a stationary caster). Chase and Attack only run while
// the player is inside the enemy's aggro range.
type Behavior interface {
	Special(ctx *EnemyContext) bool
	Chase(ctx *EnemyContext)
	Attack(ctx *EnemyContext)
}

// EnemyContext is the per-enemy view handed to a Behavior for one tick.
type EnemyContext struct {
	World     *ecs.World
	Entity    ecs.Entity
	Enemy     *component.Enemy
	Health    *component.Health
	Transform *component.Transform

	X, Y             float64
	PlayerX, PlayerY float64
	Player           *component.Transform
	Dist             float64
}

func (c *EnemyContext) speed(mult float64) float64 {
	m := c.Enemy.SpeedMult
	if m <= 0 {
		m = 1
	}
	return c.Enemy.Speed * m * mult
}

// MoveToward steps toward (x, y) at the enemy's speed times mult.
func (c *EnemyContext) MoveToward(x, y, mult float64) bool {
	dx, dy := common.Normalize(x-c.X, y-c.Y)
	return c.step(dx, dy, c.speed(mult))
}

// MoveAway steps directly away from the player.
func (c *EnemyContext) MoveAway(mult float64) bool {
	dx, dy := common.Normalize(c.X-c.PlayerX, c.Y-c.PlayerY)
	return c.step(dx, dy, c.speed(mult))
}

func (c *EnemyContext) step(dx, dy, dist float64) bool {
	if dist <= 0 {
		return false
	}
	blocked := moveBody(c.World, c.Transform, dx*dist, dy*dist)
	c.X, c.Y = c.Transform.Center()
	c.Dist = common.Dist(c.X, c.Y, c.PlayerX, c.PlayerY)
	return blocked
}

// InReach reports whether the player's body is within r of the enemy's.
func (c *EnemyContext) InReach(r float64) bool {
	if c.Player == nil {
		return false
	}
	t := c.Transform
	return common.RectAround(c.X, c.Y, t.Width+2*r, t.Height+2*r).Intersects(c.Player.Rect())
}

func (c *EnemyContext) CooldownReady() bool {
	return c.Enemy.Cooldown <= 0
}

func (c *EnemyContext) ResetCooldown() {
	c.Enemy.Cooldown = c.Enemy.AttackCooldown
}

func (c *EnemyContext) source() AttackSource {
	return AttackSource{X: c.X, Y: c.Y, Weapon: component.WeaponMelee, Attacker: c.Entity}
}

// Strike hits the player for the enemy's damage scaled by mult.
func (c *EnemyContext) Strike(mult float64) int {
	return DamagePlayer(c.World, int(float64(c.Enemy.Damage)*mult+0.5), c.source())
}

// StrikeArea hits the player when their center is within radius.
func (c *EnemyContext) StrikeArea(radius, mult float64) int {
	if c.Dist > radius {
		return 0
	}
	src := c.source()
	src.Weapon = component.WeaponArea
	return DamagePlayer(c.World, int(float64(c.Enemy.Damage)*mult+0.5), src)
}

// Fire launches a projectile from the enemy center along (dx, dy).
func (c *EnemyContext) Fire(kind component.ProjectileKind, dx, dy, speed float64) {
	spawnProjectile(c.World, c.Entity, kind, component.SideEnemy, c.X, c.Y, dx, dy, speed, c.Enemy.Damage)
}

// AimDir is the unit vector from the enemy to the player.
func (c *EnemyContext) AimDir() (float64, float64) {
	return common.Normalize(c.PlayerX-c.X, c.PlayerY-c.Y)
}

// EnemyBehaviorSystem advances every live enemy once per tick.
type EnemyBehaviorSystem struct {
	scripts  map[ecs.Entity]*enemyScript
	compiled map[string]*tengo.Compiled
}

func NewEnemyBehaviorSystem() *EnemyBehaviorSystem {
	return &EnemyBehaviorSystem{
		scripts:  map[ecs.Entity]*enemyScript{},
		compiled: map[string]*tengo.Compiled{},
	}
}

// behaviorFor maps an archetype to its state machine. The second result is
// false for archetypes with no dedicated behavior.
func (s *EnemyBehaviorSystem) behaviorFor(a component.Archetype) (Behavior, bool) {
	switch a {
	case component.ArchetypeDummy:
		return dummyBehavior{}, true
	case component.ArchetypeKnight, component.ArchetypeSlime, component.ArchetypeGeneral:
		return meleeBehavior{}, true
	case component.ArchetypeForestCreature:
		return scriptedBehavior{sys: s}, true
	case component.ArchetypeArcher:
		return rangedBehavior{kind: component.ProjectileArrow, speed: 5}, true
	case component.ArchetypeCrossbow:
		return rangedBehavior{kind: component.ProjectileBolt, speed: 7}, true
	case component.ArchetypeNecromancer:
		return necromancerBehavior{}, true
	case component.ArchetypeBerserker:
		return berserkerBehavior{}, true
	case component.ArchetypeShieldGuard:
		return shieldGuardBehavior{}, true
	case component.ArchetypeAssassin:
		return assassinBehavior{}, true
	case component.ArchetypeDarkKnight:
		return darkKnightBehavior{}, true
	case component.ArchetypeFireMage:
		return fireMageBehavior{}, true
	case component.ArchetypeWarGolem:
		return golemBehavior{}, true
	case component.ArchetypeCaptain:
		return captainBehavior{}, true
	}
	return meleeBehavior{}, false
}

func (s *EnemyBehaviorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.pruneScripts(w)

	pe, _, ok := playerEntity(w)
	if !ok {
		return
	}
	ptr, ok := ecs.Get(w, pe, component.TransformComponent.Kind())
	if !ok {
		return
	}
	php, _ := ecs.Get(w, pe, component.HealthComponent.Kind())
	playerDown := php != nil && php.Dead
	px, py := ptr.Center()

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, hp *component.Health, tr *component.Transform) {
		if hp.Dead {
			return
		}
		if enemy.Cooldown > 0 {
			enemy.Cooldown--
		}
		if playerDown {
			enemy.State = component.EnemyIdle
			return
		}
		x, y := tr.Center()
		ctx := &EnemyContext{
			World: w, Entity: e, Enemy: enemy, Health: hp, Transform: tr,
			X: x, Y: y, PlayerX: px, PlayerY: py, Player: ptr,
			Dist: common.Dist(x, y, px, py),
		}
		b, _ := s.behaviorFor(enemy.Archetype)
		if b.Special(ctx) {
			return
		}
		if ctx.Dist > enemy.AggroRange {
			enemy.State = component.EnemyIdle
			return
		}
		b.Chase(ctx)
		b.Attack(ctx)
	})
}
