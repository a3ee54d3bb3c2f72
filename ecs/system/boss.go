package system

import (
	"math"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

const (
	bossTimelineTag = "boss"
	bossSpeaker     = "Iron King"

	bossMeleeReach     = 70.0
	bossMeleeWindup    = 20
	bossRangedTicks    = 30
	bossRangedVolley   = 10
	bossBoltSpeed      = 5.0
	bossSlamWindup     = 40
	bossSlamRadius     = 120.0
	bossSlamRecharge   = 240
	bossDashWindup     = 20
	bossDashTicks      = 25
	bossDashSpeed      = 9.0
	bossDashRecharge   = 240
	bossPowerCharge    = 60
	bossPowerRadius    = 180.0
	bossPowerRecharge  = 420
	bossMeteorCount    = 3
	bossMeteorSpread   = 60.0
	bossMeteorRadius   = 50.0
	bossMeteorRecharge = 480
	bossOrbCount       = 3
	bossOrbInterval    = 20
	bossOrbSpeed       = 3.0
	bossOrbRecharge    = 300
	bossKeepDistance   = 50.0
	bossMaxMinions     = 6
	bossDialogueHold   = 90
)

// BossSystem runs the boss state machine: throne taunts, awakening, combat
// action selection, and the scripted death sequence.
type BossSystem struct{}

func NewBossSystem() *BossSystem { return &BossSystem{} }

type bossContext struct {
	w        *ecs.World
	entity   ecs.Entity
	boss     *component.Boss
	cfg      *component.BossConfig
	tr       *component.Transform
	x, y     float64
	player   *component.Transform
	px, py   float64
	dist     float64
	playerUp bool
}

func (s *BossSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, boss, ok := bossEntity(w)
	if !ok || boss.Config == nil {
		return
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	ctx := &bossContext{w: w, entity: e, boss: boss, cfg: boss.Config, tr: tr}
	ctx.x, ctx.y = tr.Center()
	if pe, _, ok := playerEntity(w); ok {
		if ptr, ok := ecs.Get(w, pe, component.TransformComponent.Kind()); ok {
			ctx.player = ptr
			ctx.px, ctx.py = ptr.Center()
			ctx.dist = common.Dist(ctx.x, ctx.y, ctx.px, ctx.py)
			hp, _ := ecs.Get(w, pe, component.HealthComponent.Kind())
			ctx.playerUp = hp == nil || !hp.Dead
		}
	}

	switch boss.State {
	case component.BossOnThrone:
		s.throne(ctx)
	case component.BossAwakening:
		boss.AwakenTimer--
		if boss.AwakenTimer <= 0 {
			boss.State = component.BossCombat
			boss.Cooldown = boss.AttackCooldown
			w.PlaySound("bossroar")
			w.Emit(ecs.EventBossPhase, boss.Phase)
			w.Logger().Info().Float64("phase", boss.Phase).Msg("boss awakened")
		}
	case component.BossCombat:
		s.combat(ctx)
	case component.BossDying:
		s.dying(ctx)
	}
}

func (s *BossSystem) throne(ctx *bossContext) {
	b := ctx.boss
	b.OnThrone = true
	if ctx.cfg.TauntEvery <= 0 || len(ctx.cfg.Taunts) == 0 {
		return
	}
	b.TauntTimer++
	if b.TauntTimer < ctx.cfg.TauntEvery {
		return
	}
	b.TauntTimer = 0
	line := ctx.cfg.Taunts[b.TauntIndex%len(ctx.cfg.Taunts)]
	b.TauntIndex++
	ctx.w.Emit(ecs.EventDialogue, ecs.Dialogue{Speaker: bossSpeaker, Line: line})
}

func (s *BossSystem) combat(ctx *bossContext) {
	b := ctx.boss
	b.BattleTicks++
	tickDown(&b.Cooldown, &b.SlamTimer, &b.DashTimer, &b.PowerTimer, &b.MeteorTimer, &b.OrbTimer)

	if ctx.cfg.RageEvery > 0 && b.RageLevel < ctx.cfg.RageMax {
		b.RageTimer++
		if b.RageTimer >= ctx.cfg.RageEvery {
			b.RageTimer = 0
			b.RageLevel++
			b.Speed += ctx.cfg.RageSpeed
			spawnFloatingText(ctx.w, "RAGE", ctx.x, ctx.tr.Y)
			ctx.w.PlaySound("bossrage")
			ctx.w.Logger().Debug().Int("rage", b.RageLevel).Float64("speed", b.Speed).Msg("boss rage")
		}
	}

	s.summon(ctx)

	if b.Action != component.BossActionNone {
		s.continueAction(ctx)
		return
	}
	if !ctx.playerUp || ctx.player == nil {
		return
	}
	if ctx.dist > bossKeepDistance {
		dx, dy := common.Normalize(ctx.px-ctx.x, ctx.py-ctx.y)
		moveBody(ctx.w, ctx.tr, dx*b.Speed, dy*b.Speed)
		ctx.x, ctx.y = ctx.tr.Center()
		ctx.dist = common.Dist(ctx.x, ctx.y, ctx.px, ctx.py)
	}
	if b.Cooldown > 0 {
		return
	}
	if action, ok := s.chooseAction(ctx); ok {
		s.startAction(ctx, action)
	}
}

func tickDown(timers ...*int) {
	for _, t := range timers {
		if *t > 0 {
			*t--
		}
	}
}

func (s *BossSystem) summon(ctx *bossContext) {
	b := ctx.boss
	pc := ctx.cfg.PhaseConfig(b.Phase)
	if pc == nil || pc.SummonEvery <= 0 || len(pc.Summons) == 0 {
		return
	}
	b.SummonTimer++
	if b.SummonTimer < pc.SummonEvery {
		return
	}
	b.SummonTimer = 0
	if liveMinions(ctx.w) >= bossMaxMinions {
		return
	}
	table := make([]common.Weighted[component.Archetype], 0, len(pc.Summons))
	for _, entry := range pc.Summons {
		table = append(table, common.Weighted[component.Archetype]{Value: entry.Archetype, Weight: entry.Weight})
	}
	arch, ok := common.ChooseWeighted(ctx.w.RNG(), table)
	if !ok {
		return
	}
	a := ctx.w.RNG().Float64() * 2 * math.Pi
	if _, err := SpawnMinion(ctx.w, arch, ctx.x+math.Cos(a)*80, ctx.y+math.Sin(a)*80); err != nil {
		ctx.w.Logger().Warn().Err(err).Msg("boss summon failed")
		return
	}
	ctx.w.PlaySound("summon")
}

func liveMinions(w *ecs.World) int {
	n := 0
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), func(_ ecs.Entity, enemy *component.Enemy, hp *component.Health) {
		if enemy.Minion && !hp.Dead {
			n++
		}
	})
	return n
}

// actionAllowed applies the phase gates and per-attack recharge timers.
func actionAllowed(b *component.Boss, action component.BossAction, dist float64) bool {
	switch action {
	case component.BossActionMelee:
		return dist <= bossMeleeReach*1.5
	case component.BossActionRanged:
		return dist > bossMeleeReach
	case component.BossActionSlam:
		return b.Phase >= 2 && b.SlamTimer == 0
	case component.BossActionDash:
		return b.Phase >= 2 && b.DashTimer == 0
	case component.BossActionPower:
		return b.Phase >= 3 && b.PowerTimer == 0
	case component.BossActionOrb:
		return b.Phase >= 3 && b.OrbTimer == 0
	case component.BossActionMeteor:
		return b.Phase >= 4 && b.MeteorTimer == 0
	}
	return false
}

var bossActionOrder = []component.BossAction{
	component.BossActionMelee, component.BossActionRanged, component.BossActionSlam,
	component.BossActionDash, component.BossActionPower, component.BossActionOrb,
	component.BossActionMeteor,
}

func (s *BossSystem) chooseAction(ctx *bossContext) (component.BossAction, bool) {
	pc := ctx.cfg.PhaseConfig(ctx.boss.Phase)
	if pc == nil {
		return component.BossActionNone, false
	}
	table := make([]common.Weighted[component.BossAction], 0, len(bossActionOrder))
	for _, action := range bossActionOrder {
		if wgt := pc.Weights[action]; wgt > 0 && actionAllowed(ctx.boss, action, ctx.dist) {
			table = append(table, common.Weighted[component.BossAction]{Value: action, Weight: wgt})
		}
	}
	return common.ChooseWeighted(ctx.w.RNG(), table)
}

func (ctx *bossContext) scaled(base int) int {
	scale := ctx.boss.DamageScale
	if scale <= 0 {
		scale = 1
	}
	return int(math.Round(float64(base) * scale))
}

func (ctx *bossContext) source(weapon component.WeaponKind) AttackSource {
	return AttackSource{X: ctx.x, Y: ctx.y, Weapon: weapon, Attacker: ctx.entity}
}

func (s *BossSystem) startAction(ctx *bossContext, action component.BossAction) {
	b := ctx.boss
	b.Action = action
	b.ActionHit = false
	b.Cooldown = b.AttackCooldown
	switch action {
	case component.BossActionMelee:
		b.ActionTimer = bossMeleeWindup
	case component.BossActionRanged:
		b.ActionTimer = bossRangedTicks
	case component.BossActionSlam:
		b.ActionTimer = bossSlamWindup
		b.SlamTimer = bossSlamRecharge
		ctx.w.PlaySound("slamwindup")
	case component.BossActionDash:
		b.ActionTimer = bossDashWindup + bossDashTicks
		b.ActionDX, b.ActionDY = common.Normalize(ctx.px-ctx.x, ctx.py-ctx.y)
		b.DashTimer = bossDashRecharge
	case component.BossActionPower:
		b.ActionTimer = bossPowerCharge
		b.PowerTimer = bossPowerRecharge
		ctx.w.Emit(ecs.EventDialogue, ecs.Dialogue{Speaker: bossSpeaker, Line: "Feel the weight of the crown!"})
		ctx.w.PlaySound("powercharge")
	case component.BossActionMeteor:
		b.MeteorTimer = bossMeteorRecharge
		s.scheduleMeteors(ctx)
		b.Action = component.BossActionNone
	case component.BossActionOrb:
		b.OrbTimer = bossOrbRecharge
		s.scheduleOrbs(ctx)
		b.Action = component.BossActionNone
	}
	ctx.w.Logger().Debug().Str("action", string(action)).Float64("phase", b.Phase).Msg("boss action")
}

// continueAction advances the telegraphed action in progress. A new action
// is only chosen once this one has resolved.
func (s *BossSystem) continueAction(ctx *bossContext) {
	b := ctx.boss
	b.ActionTimer--
	switch b.Action {
	case component.BossActionMelee:
		if b.ActionTimer <= 0 && ctx.dist <= bossMeleeReach {
			DamagePlayer(ctx.w, ctx.scaled(ctx.cfg.MeleeDamage), ctx.source(component.WeaponMelee))
		}
	case component.BossActionRanged:
		if b.ActionTimer%bossRangedVolley == 0 && ctx.player != nil {
			base := math.Atan2(ctx.py-ctx.y, ctx.px-ctx.x)
			for _, off := range [3]float64{-0.2, 0, 0.2} {
				spawnProjectile(ctx.w, ctx.entity, component.ProjectileBolt, component.SideEnemy, ctx.x, ctx.y,
					math.Cos(base+off), math.Sin(base+off), bossBoltSpeed, ctx.scaled(ctx.cfg.RangedDamage))
			}
			ctx.w.PlaySound("shoot")
		}
	case component.BossActionSlam:
		if b.ActionTimer <= 0 {
			ctx.w.PlaySound("slam")
			if ctx.dist <= bossSlamRadius {
				DamagePlayer(ctx.w, ctx.scaled(ctx.cfg.SlamDamage), ctx.source(component.WeaponArea))
			}
		}
	case component.BossActionDash:
		if b.ActionTimer < bossDashTicks {
			blocked := moveBody(ctx.w, ctx.tr, b.ActionDX*bossDashSpeed, b.ActionDY*bossDashSpeed)
			if !b.ActionHit && ctx.player != nil && ctx.tr.Rect().Intersects(ctx.player.Rect()) {
				b.ActionHit = true
				DamagePlayer(ctx.w, ctx.scaled(ctx.cfg.DashDamage), ctx.source(component.WeaponMelee))
			}
			if blocked {
				b.ActionTimer = 0
			}
		}
	case component.BossActionPower:
		if b.ActionTimer <= 0 {
			ctx.w.PlaySound("powerblast")
			if ctx.dist <= bossPowerRadius {
				DamagePlayer(ctx.w, ctx.scaled(ctx.cfg.PowerDamage), ctx.source(component.WeaponArea))
			}
		}
	}
	if b.ActionTimer <= 0 {
		b.Action = component.BossActionNone
		b.ActionTimer = 0
	}
}

// scheduleMeteors marks landing points around the player now and resolves
// each impact later through the timeline. Whether the player is hit is
// decided from where they stand at impact time.
func (s *BossSystem) scheduleMeteors(ctx *bossContext) {
	delay := ctx.cfg.MeteorDelay
	if delay <= 0 {
		delay = 60
	}
	damage := ctx.scaled(ctx.cfg.MeteorDamage)
	rng := ctx.w.RNG()
	for i := 0; i < bossMeteorCount; i++ {
		lx := ctx.px
		ly := ctx.py
		if i > 0 {
			lx += (rng.Float64()*2 - 1) * bossMeteorSpread
			ly += (rng.Float64()*2 - 1) * bossMeteorSpread
		}
		spawnFloatingText(ctx.w, "!", lx, ly)
		ctx.w.After(delay+i*10, bossTimelineTag, func(w *ecs.World) {
			meteorImpact(w, lx, ly, damage)
		})
	}
	ctx.w.PlaySound("meteorcall")
}

func meteorImpact(w *ecs.World, x, y float64, damage int) {
	w.PlaySound("meteor")
	pe, _, ok := playerEntity(w)
	if !ok {
		return
	}
	px, py, ok := centerOf(w, pe)
	if !ok || common.Dist(px, py, x, y) > bossMeteorRadius {
		return
	}
	DamagePlayer(w, damage, AttackSource{X: x, Y: y, Weapon: component.WeaponArea})
}

// scheduleOrbs fires a slow orb at the player every bossOrbInterval ticks,
// aimed at wherever the player is when each orb launches.
func (s *BossSystem) scheduleOrbs(ctx *bossContext) {
	damage := ctx.scaled(ctx.cfg.OrbDamage)
	for i := 0; i < bossOrbCount; i++ {
		ctx.w.After(i*bossOrbInterval, bossTimelineTag, func(w *ecs.World) {
			be, boss, ok := bossEntity(w)
			if !ok || boss.State != component.BossCombat {
				return
			}
			bx, by, ok := centerOf(w, be)
			if !ok {
				return
			}
			pe, _, ok := playerEntity(w)
			if !ok {
				return
			}
			px, py, ok := centerOf(w, pe)
			if !ok {
				return
			}
			spawnProjectile(w, be, component.ProjectileOrb, component.SideEnemy, bx, by, px-bx, py-by, bossOrbSpeed, damage)
			w.PlaySound("orb")
		})
	}
}

// applyBossPhases fires every threshold the hp ratio has crossed, highest
// first. NextThreshold only moves forward, so a threshold fires once.
func applyBossPhases(w *ecs.World, b *component.Boss, hp *component.Health) {
	cfg := b.Config
	if cfg == nil {
		return
	}
	ratio := hp.Ratio()
	for b.NextThreshold < len(cfg.Thresholds) && ratio <= cfg.Thresholds[b.NextThreshold].Ratio {
		th := cfg.Thresholds[b.NextThreshold]
		b.NextThreshold++
		if th.Phase > b.Phase {
			b.Phase = th.Phase
		}
		b.Speed += th.SpeedBonus
		if th.CooldownScale > 0 {
			b.AttackCooldown = int(math.Round(float64(b.AttackCooldown) * th.CooldownScale))
		}
		if th.Barrier > 0 {
			b.Barrier = th.Barrier
			b.BarrierMax = th.Barrier
		}
		if pc := cfg.PhaseConfig(b.Phase); pc != nil && pc.DamageScale > 0 {
			b.DamageScale = pc.DamageScale
		}
		b.SummonTimer = 0

		if e, ok := ecs.First(w, component.BossComponent.Kind()); ok {
			if x, y, ok := centerOf(w, e); ok {
				if th.Burst != "" {
					SpawnLoot(w, th.Burst, x, y+60)
				}
				spawnFloatingText(w, "PHASE", x, y)
			}
		}
		w.Emit(ecs.EventBossPhase, b.Phase)
		w.PlaySound("bossphase")
		w.Logger().Info().Float64("phase", b.Phase).Float64("ratio", ratio).Int("barrier", b.Barrier).Msg("boss phase transition")
	}
}

// startBossDeath is one-way: pending boss effects are cancelled and the
// boss's summons fall with it.
func startBossDeath(w *ecs.World, b *component.Boss) {
	b.State = component.BossDying
	b.OnThrone = false
	b.Action = component.BossActionNone
	b.Barrier = 0
	b.DeathTimer = 0
	b.DeathStage = component.DeathDialogue
	b.DialogueIndex = 0
	w.Timeline().Cancel(bossTimelineTag)

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, hp *component.Health) {
		if enemy.Minion && !hp.Dead {
			hp.Dead = true
			hp.Current = 0
			ecs.Kill(w, e)
		}
	})
	w.PlaySound("bossdeath")
	w.Logger().Info().Msg("boss dying")
}

var deathStageSounds = map[component.DeathStage]string{
	component.DeathCrack:     "crack",
	component.DeathEruption:  "eruption",
	component.DeathExplosion: "explosion",
	component.DeathAfterglow: "afterglow",
}

func (s *BossSystem) dying(ctx *bossContext) {
	b := ctx.boss
	cfg := ctx.cfg
	b.DeathTimer++

	if b.DeathStage == component.DeathDialogue {
		// Lines without a checkpoint, or checkpoints without a line, are
		// dropped.
		lines := min(len(cfg.DeathLines), len(cfg.DialogueAt))
		for b.DialogueIndex < lines && b.DeathTimer-1 >= cfg.DialogueAt[b.DialogueIndex] {
			ctx.w.Emit(ecs.EventDialogue, ecs.Dialogue{Speaker: bossSpeaker, Line: cfg.DeathLines[b.DialogueIndex]})
			b.DialogueIndex++
		}
		last := 0
		if lines > 0 {
			last = cfg.DialogueAt[lines-1]
		}
		if b.DialogueIndex >= lines && b.DeathTimer >= last+bossDialogueHold {
			s.enterStage(ctx, component.DeathCrack)
		}
		return
	}

	b.StageTimer--
	if b.StageTimer > 0 {
		return
	}
	if b.DeathStage < component.DeathAfterglow {
		s.enterStage(ctx, b.DeathStage+1)
		return
	}
	b.DeathStage = component.DeathDone
	b.State = component.BossDefeated
	ctx.w.Emit(ecs.EventBossDefeated, nil)
	ctx.w.PlaySound("victory")
	ctx.w.Logger().Info().Int("battle_ticks", b.BattleTicks).Msg("boss defeated")
}

func (s *BossSystem) enterStage(ctx *bossContext, stage component.DeathStage) {
	b := ctx.boss
	b.DeathStage = stage
	b.StageTimer = ctx.cfg.StageTicks[stage]
	if b.StageTimer <= 0 {
		b.StageTimer = 1
	}
	if name, ok := deathStageSounds[stage]; ok {
		ctx.w.PlaySound(name)
	}
}
