package system

import (
	"math"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs/component"
)

const (
	kiteDistance = 120.0

	necroSummonEvery  = 240
	necroSummonCount  = 2
	necroSummonRadius = 40.0

	berserkerWindup      = 20
	berserkerChargeSpeed = 8.0
	berserkerChargeTicks = 30

	// shieldTurnDelay is how many ticks the player must stay on a new side
	// before a shield guard turns its shield there. The facing is re-checked
	// every tick; the lag leaves a short window for flanking hits.
	shieldTurnDelay = 12

	assassinMinBand  = 80.0
	assassinMaxBand  = 260.0
	assassinWindup   = 30
	assassinReappear = 15
	assassinBehind   = 34.0

	darkKnightWindup = 25
	darkKnightFire   = 15
	darkKnightRadius = 70.0

	fireMageWindup = 30
	fireMageFire   = 20
	fireMageSpread = 15.0 * math.Pi / 180
	fireballSpeed  = 4.5

	golemWindup       = 40
	golemFire         = 30
	golemRadius       = 110.0
	golemDebrisSpeed  = 4.0
	golemDebrisDamage = 0.5
)

// dummyBehavior never acts.
type dummyBehavior struct{}

func (dummyBehavior) Special(ctx *EnemyContext) bool {
	ctx.Enemy.State = component.EnemyIdle
	return true
}
func (dummyBehavior) Chase(*EnemyContext)  {}
func (dummyBehavior) Attack(*EnemyContext) {}

// meleeBehavior: idle -> chasing -> contact attack on cooldown -> chasing.
type meleeBehavior struct{}

func (meleeBehavior) Special(*EnemyContext) bool { return false }

func (meleeBehavior) Chase(ctx *EnemyContext) {
	ctx.Enemy.State = component.EnemyChasing
	if !ctx.InReach(ctx.Enemy.AttackRange / 2) {
		ctx.MoveToward(ctx.PlayerX, ctx.PlayerY, 1)
	}
}

func (meleeBehavior) Attack(ctx *EnemyContext) {
	if ctx.CooldownReady() && ctx.InReach(ctx.Enemy.AttackRange) {
		ctx.Strike(1)
		ctx.ResetCooldown()
	}
}

// rangedBehavior keeps its distance: it backs off inside the kite threshold,
// closes in beyond its range, and fires on cooldown otherwise.
type rangedBehavior struct {
	kind  component.ProjectileKind
	speed float64
}

func (rangedBehavior) Special(*EnemyContext) bool { return false }

func (b rangedBehavior) Chase(ctx *EnemyContext) {
	switch {
	case ctx.Dist < kiteDistance:
		ctx.Enemy.State = component.EnemyRetreating
		ctx.MoveAway(1)
	case ctx.Dist > ctx.Enemy.AttackRange:
		ctx.Enemy.State = component.EnemyChasing
		ctx.MoveToward(ctx.PlayerX, ctx.PlayerY, 1)
	default:
		ctx.Enemy.State = component.EnemyChasing
	}
}

func (b rangedBehavior) Attack(ctx *EnemyContext) {
	if !ctx.CooldownReady() || ctx.Dist > ctx.Enemy.AttackRange {
		return
	}
	dx, dy := ctx.AimDir()
	ctx.Fire(b.kind, dx, dy, b.speed)
	ctx.World.PlaySound("shoot")
	ctx.ResetCooldown()
}

// necromancerBehavior is a ranged caster that also raises two slimes every
// necroSummonEvery ticks while the player is in range.
type necromancerBehavior struct{}

func (necromancerBehavior) ranged() rangedBehavior {
	return rangedBehavior{kind: component.ProjectileNecroBolt, speed: 4}
}

func (b necromancerBehavior) Special(ctx *EnemyContext) bool {
	if ctx.Enemy.Special > 0 {
		ctx.Enemy.Special--
		return false
	}
	if ctx.Dist > ctx.Enemy.AggroRange {
		return false
	}
	rng := ctx.World.RNG()
	for i := 0; i < necroSummonCount; i++ {
		a := rng.Float64() * 2 * math.Pi
		r := necroSummonRadius * (0.5 + rng.Float64()/2)
		_, _ = SpawnMinion(ctx.World, component.ArchetypeSlime, ctx.X+math.Cos(a)*r, ctx.Y+math.Sin(a)*r)
	}
	ctx.Enemy.Special = necroSummonEvery
	ctx.World.PlaySound("summon")
	return false
}

func (b necromancerBehavior) Chase(ctx *EnemyContext)  { b.ranged().Chase(ctx) }
func (b necromancerBehavior) Attack(ctx *EnemyContext) { b.ranged().Attack(ctx) }

// berserkerBehavior: idle -> windup (direction locked) -> charging -> idle.
// The charge hits the player at most once.
type berserkerBehavior struct{}

func (berserkerBehavior) Special(ctx *EnemyContext) bool {
	e := ctx.Enemy
	switch e.State {
	case component.EnemyWindup:
		e.StateTimer--
		if e.StateTimer <= 0 {
			e.State = component.EnemyCharging
			e.StateTimer = berserkerChargeTicks
			e.Special = 0
			ctx.World.PlaySound("charge")
		}
		return true
	case component.EnemyCharging:
		blocked := ctx.step(e.DirX, e.DirY, berserkerChargeSpeed)
		if e.Special == 0 && ctx.InReach(0) {
			ctx.Strike(1)
			e.Special = 1
		}
		e.StateTimer--
		if blocked || e.StateTimer <= 0 {
			e.State = component.EnemyIdle
			ctx.ResetCooldown()
		}
		return true
	}
	return false
}

func (berserkerBehavior) Chase(ctx *EnemyContext) {
	ctx.Enemy.State = component.EnemyChasing
	if ctx.Dist > ctx.Enemy.AttackRange {
		ctx.MoveToward(ctx.PlayerX, ctx.PlayerY, 1)
	}
}

func (berserkerBehavior) Attack(ctx *EnemyContext) {
	if !ctx.CooldownReady() || ctx.Dist > ctx.Enemy.AttackRange {
		return
	}
	e := ctx.Enemy
	e.DirX, e.DirY = ctx.AimDir()
	e.State = component.EnemyWindup
	e.StateTimer = berserkerWindup
}

// shieldGuardBehavior turns its shield toward the player, lagging
// shieldTurnDelay ticks behind, and otherwise fights like a melee enemy.
type shieldGuardBehavior struct{ meleeBehavior }

func (shieldGuardBehavior) Special(ctx *EnemyContext) bool {
	e := ctx.Enemy
	want := common.Toward(ctx.PlayerX-ctx.X, ctx.PlayerY-ctx.Y)
	if want == e.ShieldDir {
		e.StateTimer = 0
		return false
	}
	e.StateTimer++
	if e.StateTimer >= shieldTurnDelay {
		e.ShieldDir = want
		e.StateTimer = 0
	}
	return false
}

// assassinBehavior vanishes, reappears behind the player at tick
// assassinReappear, and strikes at the end of the windup. It only starts the
// teleport from inside the distance band.
type assassinBehavior struct{ meleeBehavior }

func (assassinBehavior) Special(ctx *EnemyContext) bool {
	e := ctx.Enemy
	if e.State != component.EnemyVanished && e.State != component.EnemyWindup {
		return false
	}
	e.StateTimer++
	if e.StateTimer == assassinReappear {
		reappearBehind(ctx)
		e.State = component.EnemyWindup
	}
	if e.StateTimer >= assassinWindup {
		if ctx.InReach(e.AttackRange) {
			ctx.Strike(1)
		}
		e.State = component.EnemyIdle
		e.StateTimer = 0
		ctx.ResetCooldown()
	}
	return true
}

func reappearBehind(ctx *EnemyContext) {
	fx, fy := 1.0, 0.0
	if _, p, ok := playerEntity(ctx.World); ok {
		fx, fy = p.Facing.Vector()
	}
	tr := ctx.Transform
	target := common.RectAround(ctx.PlayerX-fx*assassinBehind, ctx.PlayerY-fy*assassinBehind, tr.Width, tr.Height)
	if pw := ctx.World.PhysicsWorld(); pw != nil {
		target = pw.ClampToBounds(target)
		if pw.Blocked(target) {
			target = tr.Rect()
		}
	}
	tr.SetRect(target)
	ctx.X, ctx.Y = tr.Center()
	ctx.Dist = common.Dist(ctx.X, ctx.Y, ctx.PlayerX, ctx.PlayerY)
	ctx.World.PlaySound("teleport")
}

func (b assassinBehavior) Attack(ctx *EnemyContext) {
	if !ctx.CooldownReady() {
		return
	}
	if ctx.Dist >= assassinMinBand && ctx.Dist <= assassinMaxBand {
		ctx.Enemy.State = component.EnemyVanished
		ctx.Enemy.StateTimer = 0
		return
	}
	b.meleeBehavior.Attack(ctx)
}

// windupStrike runs an immobile windup that fires its effect once at tick
// fireAt and ends at tick total.
func windupStrike(ctx *EnemyContext, fireAt, total int, fire func()) bool {
	e := ctx.Enemy
	if e.State != component.EnemyWindup {
		return false
	}
	e.StateTimer++
	if e.StateTimer == fireAt {
		fire()
	}
	if e.StateTimer >= total {
		e.State = component.EnemyIdle
		e.StateTimer = 0
		ctx.ResetCooldown()
	}
	return true
}

func startWindup(ctx *EnemyContext) {
	e := ctx.Enemy
	e.State = component.EnemyWindup
	e.StateTimer = 0
	e.DirX, e.DirY = ctx.AimDir()
}

// darkKnightBehavior cleaves everything around it partway through its windup.
type darkKnightBehavior struct{ meleeBehavior }

func (darkKnightBehavior) Special(ctx *EnemyContext) bool {
	return windupStrike(ctx, darkKnightFire, darkKnightWindup, func() {
		ctx.World.PlaySound("cleave")
		ctx.StrikeArea(darkKnightRadius, 1)
	})
}

func (darkKnightBehavior) Attack(ctx *EnemyContext) {
	if ctx.CooldownReady() && ctx.InReach(ctx.Enemy.AttackRange) {
		startWindup(ctx)
	}
}

// fireMageBehavior kites like an archer and casts a three-fireball spread.
type fireMageBehavior struct{}

func (fireMageBehavior) Special(ctx *EnemyContext) bool {
	return windupStrike(ctx, fireMageFire, fireMageWindup, func() {
		e := ctx.Enemy
		base := math.Atan2(e.DirY, e.DirX)
		for _, off := range [3]float64{-fireMageSpread, 0, fireMageSpread} {
			ctx.Fire(component.ProjectileFireball, math.Cos(base+off), math.Sin(base+off), fireballSpeed)
		}
		ctx.World.PlaySound("fireball")
	})
}

func (fireMageBehavior) Chase(ctx *EnemyContext) {
	rangedBehavior{}.Chase(ctx)
}

func (fireMageBehavior) Attack(ctx *EnemyContext) {
	if ctx.CooldownReady() && ctx.Dist <= ctx.Enemy.AttackRange {
		startWindup(ctx)
	}
}

// golemBehavior pounds the ground: area damage plus four debris shards.
type golemBehavior struct{ meleeBehavior }

func (golemBehavior) Special(ctx *EnemyContext) bool {
	return windupStrike(ctx, golemFire, golemWindup, func() {
		ctx.World.PlaySound("pound")
		ctx.StrikeArea(golemRadius, 1)
		dmg := int(float64(ctx.Enemy.Damage)*golemDebrisDamage + 0.5)
		for _, d := range common.AllDirs {
			dx, dy := d.Vector()
			spawnProjectile(ctx.World, ctx.Entity, component.ProjectileDebris, component.SideEnemy, ctx.X, ctx.Y, dx, dy, golemDebrisSpeed, dmg)
		}
	})
}

func (golemBehavior) Attack(ctx *EnemyContext) {
	if ctx.CooldownReady() && ctx.Dist <= ctx.Enemy.AttackRange {
		startWindup(ctx)
	}
}

// captainBehavior stands still; its effect is the speed aura.
type captainBehavior struct{}

func (captainBehavior) Special(ctx *EnemyContext) bool {
	ctx.Enemy.State = component.EnemyIdle
	return true
}
func (captainBehavior) Chase(*EnemyContext)  {}
func (captainBehavior) Attack(*EnemyContext) {}
