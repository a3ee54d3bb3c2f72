package system

import (
	"math"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

const (
	speedBuffMult = 1.5
	swingTicks    = 10
)

// PlayerControllerSystem applies the tick's intents: weapon switching,
// movement, and attacks.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem { return &PlayerControllerSystem{} }

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, p, ok := playerEntity(w)
	if !ok {
		return
	}
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); !ok || hp.Dead {
		return
	}

	switchWeapon(w, p, in)

	if in.MoveX != 0 || in.MoveY != 0 {
		speed := p.Speed
		if p.Buffs.Active(component.BuffSpeed) {
			speed *= speedBuffMult
		}
		dx, dy := in.MoveX, in.MoveY
		if l := math.Hypot(dx, dy); l > 1 {
			dx, dy = dx/l, dy/l
		}
		moveBody(w, tr, dx*speed, dy*speed)
		p.Facing = common.Toward(in.MoveX, in.MoveY)
	}

	if in.Attack {
		playerAttack(w, e, p, tr)
	}
}

func switchWeapon(w *ecs.World, p *component.Player, in *component.Input) {
	prev := p.Weapon
	if in.NextWeapon {
		p.Weapon = p.NextOwned()
	}
	if n := in.SelectWeapon; n >= 1 && n <= len(component.WeaponOrder) {
		if wpn := component.WeaponOrder[n-1]; p.Owned[wpn] {
			p.Weapon = wpn
		}
	}
	if p.Weapon != prev {
		p.Combo = 0
		p.ComboIdle = 0
		w.PlaySound("switch")
	}
}

// attackBox is the hit area in front of a body facing dir.
func attackBox(tr *component.Transform, dir common.Dir, reach, width float64) common.Rect {
	cx, cy := tr.Center()
	switch dir {
	case common.Up:
		return common.Rect{X: cx - width/2, Y: tr.Y - reach, Width: width, Height: reach}
	case common.Down:
		return common.Rect{X: cx - width/2, Y: tr.Y + tr.Height, Width: width, Height: reach}
	case common.Left:
		return common.Rect{X: tr.X - reach, Y: cy - width/2, Width: reach, Height: width}
	default:
		return common.Rect{X: tr.X + tr.Width, Y: cy - width/2, Width: reach, Height: width}
	}
}

type meleeTarget struct {
	entity ecs.Entity
	boss   bool
	dist   float64
}

// targetsIn collects live enemies and an attackable boss hit by match.
func targetsIn(w *ecs.World, px, py float64, match func(*component.Transform) bool) []meleeTarget {
	var out []meleeTarget
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Enemy, hp *component.Health, tr *component.Transform) {
		if hp.Dead || !match(tr) {
			return
		}
		cx, cy := tr.Center()
		out = append(out, meleeTarget{entity: e, dist: common.Dist(px, py, cx, cy)})
	})
	if be, boss, ok := bossEntity(w); ok && boss.State < component.BossDying {
		if tr, ok := ecs.Get(w, be, component.TransformComponent.Kind()); ok && match(tr) {
			cx, cy := tr.Center()
			out = append(out, meleeTarget{entity: be, boss: true, dist: common.Dist(px, py, cx, cy)})
		}
	}
	return out
}

func playerAttack(w *ecs.World, e ecs.Entity, p *component.Player, tr *component.Transform) {
	if p.Cooldowns == nil {
		p.Cooldowns = map[component.Weapon]int{}
	}
	if p.Cooldowns[p.Weapon] > 0 {
		return
	}
	stats, ok := p.Arsenal[p.Weapon]
	if !ok {
		return
	}
	p.Cooldowns[p.Weapon] = stats.Cooldown
	p.Swing = swingTicks

	px, py := tr.Center()
	base := stats.Damage
	if stats.ComboStep > 0 {
		base += stats.ComboStep * p.Combo
	}
	amount := OutgoingDamage(p, base)
	src := AttackSource{X: px, Y: py, Weapon: stats.Kind, Wielded: p.Weapon, FromPlayer: true, Attacker: e}

	if stats.Kind == component.WeaponRanged {
		fx, fy := p.Facing.Vector()
		spawnProjectile(w, e, component.ProjectilePlayer, component.SidePlayer, px, py, fx, fy, stats.ProjectileSpeed, amount)
		w.PlaySound("shoot")
		return
	}
	w.PlaySound("swing")

	var targets []meleeTarget
	if stats.Kind == component.WeaponArea {
		targets = targetsIn(w, px, py, func(t *component.Transform) bool {
			cx, cy := t.Center()
			return common.Dist(px, py, cx, cy) <= stats.Reach
		})
	} else {
		box := attackBox(tr, p.Facing, stats.Reach, stats.Width)
		targets = targetsIn(w, px, py, func(t *component.Transform) bool {
			return box.Intersects(t.Rect())
		})
	}
	if stats.Kind == component.WeaponMelee && len(targets) > 1 {
		nearest := targets[0]
		for _, t := range targets[1:] {
			if t.dist < nearest.dist {
				nearest = t
			}
		}
		targets = []meleeTarget{nearest}
	}

	landed := false
	for _, t := range targets {
		var dealt int
		if t.boss {
			dealt = DamageBoss(w, amount, src)
		} else {
			dealt = DamageEnemy(w, t.entity, amount, src)
		}
		if dealt > 0 {
			landed = true
		}
	}
	if stats.ComboStep > 0 {
		if landed && p.Combo < stats.ComboMax {
			p.Combo++
		}
		p.ComboIdle = stats.ComboWindow
	}
}
