package system

import (
	"testing"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

func TestHalberdHitKnocksBackAlongSeparation(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100, component.WeaponHalberd)
	pl.p.Facing = common.Right
	target := addEnemy(t, w, component.ArchetypeBerserker, 140, 100)
	startX, startY := target.tr.X, target.tr.Y

	pl.in.Attack = true
	NewPlayerControllerSystem().Update(w)

	if target.hp.Current != 10 {
		t.Fatalf("expected hp 10, got %d", target.hp.Current)
	}
	if target.hp.IFrames != enemyIFrames {
		t.Fatalf("expected i-frames %d, got %d", enemyIFrames, target.hp.IFrames)
	}
	if !near(target.tr.X, startX+knockbackDistance) || !near(target.tr.Y, startY) {
		t.Fatalf("expected knockback to (%v,%v), got (%v,%v)", startX+knockbackDistance, startY, target.tr.X, target.tr.Y)
	}
}

func TestKnockbackClampedToWorldBounds(t *testing.T) {
	w := newTestWorld(t)
	target := addEnemy(t, w, component.ArchetypeBerserker, 785, 300)

	DamageEnemy(w, target.e, 25, AttackSource{X: 700, Y: 300, Weapon: component.WeaponPierce, FromPlayer: true})

	if target.hp.Current != 10 {
		t.Fatalf("expected hp 10, got %d", target.hp.Current)
	}
	if right := target.tr.X + target.tr.Width; right > 800 {
		t.Fatalf("enemy pushed out of bounds: right edge %v", right)
	}
	if !near(target.tr.X, 800-target.tr.Width) {
		t.Fatalf("expected enemy flush with the bound, got x=%v", target.tr.X)
	}
}

func TestDamageNeverIncreasesHPAndKillsOnce(t *testing.T) {
	w := newTestWorld(t)
	var sounds soundLog
	w.SetSoundSink(&sounds)
	target := addEnemy(t, w, component.ArchetypeKnight, 400, 300)
	src := AttackSource{X: 350, Y: 300, Weapon: component.WeaponPierce, FromPlayer: true}

	prev := target.hp.Current
	for i := 0; i < 6; i++ {
		target.hp.IFrames = 0
		DamageEnemy(w, target.e, 25, src)
		if target.hp.Current > prev {
			t.Fatalf("hp increased from %d to %d", prev, target.hp.Current)
		}
		if target.hp.Current < 0 {
			t.Fatalf("hp went negative: %d", target.hp.Current)
		}
		prev = target.hp.Current
	}
	if !target.hp.Dead || target.hp.Current != 0 {
		t.Fatalf("expected dead at 0 hp, got dead=%v hp=%d", target.hp.Dead, target.hp.Current)
	}
	if n := sounds.count("enemydeath"); n != 1 {
		t.Fatalf("expected one death, got %d", n)
	}
	if ecs.IsAlive(w, target.e) {
		t.Fatalf("dead enemy should be filtered from iteration")
	}
	if got := DamageEnemy(w, target.e, 25, src); got != 0 {
		t.Fatalf("damage on a dead enemy should be ignored, got %d", got)
	}
}

func TestInvincibilityWindowRejectsHits(t *testing.T) {
	w := newTestWorld(t)
	target := addEnemy(t, w, component.ArchetypeKnight, 400, 300)
	src := AttackSource{X: 350, Y: 300, Weapon: component.WeaponMelee, FromPlayer: true}

	if got := DamageEnemy(w, target.e, 10, src); got != 10 {
		t.Fatalf("expected first hit to land, got %d", got)
	}
	if got := DamageEnemy(w, target.e, 10, src); got != 0 {
		t.Fatalf("expected hit during i-frames to be ignored, got %d", got)
	}
}

func TestShieldGuardBlocksFrontalMeleeOnly(t *testing.T) {
	cases := []struct {
		name    string
		fromX   float64
		fromY   float64
		weapon  component.Weapon
		blocked bool
	}{
		{"sword_front", 340, 300, component.WeaponSword, true},
		{"sword_behind", 460, 300, component.WeaponSword, false},
		{"sword_above", 400, 240, component.WeaponSword, false},
		{"chain_front", 340, 300, component.WeaponChain, false},
		{"halberd_front", 340, 300, component.WeaponHalberd, false},
		{"hammer_front", 340, 300, component.WeaponHammer, false},
		{"bow_front", 340, 300, component.WeaponBow, false},
	}
	arsenal := component.DefaultArsenal()

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld(t)
			guard := addEnemy(t, w, component.ArchetypeShieldGuard, 400, 300)
			guard.enemy.ShieldDir = common.Left
			startX := guard.tr.X

			src := AttackSource{X: c.fromX, Y: c.fromY, Weapon: arsenal[c.weapon].Kind, Wielded: c.weapon, FromPlayer: true}
			got := DamageEnemy(w, guard.e, 20, src)
			events := w.Events().Drain()

			if c.blocked {
				if got != 0 || guard.hp.Current != guard.hp.Max {
					t.Fatalf("expected block, took %d", got)
				}
				if guard.tr.X != startX {
					t.Fatalf("blocked hit should not knock back")
				}
				if !hasFloatingText(events, "BLOCKED") {
					t.Fatalf("expected BLOCKED text")
				}
				return
			}
			if got != 20 {
				t.Fatalf("expected full damage, got %d", got)
			}
		})
	}
}

func TestVanishedAssassinCannotBeHit(t *testing.T) {
	w := newTestWorld(t)
	a := addEnemy(t, w, component.ArchetypeAssassin, 400, 300)
	a.enemy.State = component.EnemyVanished

	if got := DamageEnemy(w, a.e, 20, AttackSource{X: 350, Y: 300, Weapon: component.WeaponArea}); got != 0 {
		t.Fatalf("expected vanished assassin to be untouchable, got %d", got)
	}
}

func TestBossFirstThresholdGrantsBarrier(t *testing.T) {
	w := newTestWorld(t)
	b := addBoss(t, w, 400, 200, false)

	DamageBoss(w, 150, AttackSource{X: 400, Y: 300, FromPlayer: true})

	if b.hp.Current != 850 {
		t.Fatalf("expected hp 850, got %d", b.hp.Current)
	}
	if b.boss.Phase != 1.5 {
		t.Fatalf("expected phase 1.5, got %v", b.boss.Phase)
	}
	if b.boss.Barrier != 150 || b.boss.BarrierMax != 150 {
		t.Fatalf("expected barrier 150/150, got %d/%d", b.boss.Barrier, b.boss.BarrierMax)
	}
	if n := countEvents(w.Events().Drain(), ecs.EventBossPhase); n != 1 {
		t.Fatalf("expected one phase event, got %d", n)
	}
}

func TestBossBarrierAbsorbsThenCarriesThrough(t *testing.T) {
	w := newTestWorld(t)
	b := addBoss(t, w, 400, 200, false)
	src := AttackSource{X: 400, Y: 300, FromPlayer: true}
	DamageBoss(w, 150, src)

	if got := DamageBoss(w, 100, src); got != 0 {
		t.Fatalf("expected fully absorbed hit, got %d", got)
	}
	if b.boss.Barrier != 50 || b.hp.Current != 850 {
		t.Fatalf("expected barrier 50 hp 850, got barrier %d hp %d", b.boss.Barrier, b.hp.Current)
	}
	if got := DamageBoss(w, 80, src); got != 30 {
		t.Fatalf("expected 30 to carry through, got %d", got)
	}
	if b.boss.Barrier != 0 || b.hp.Current != 820 {
		t.Fatalf("expected barrier 0 hp 820, got barrier %d hp %d", b.boss.Barrier, b.hp.Current)
	}
}

func TestBossThroneImmunity(t *testing.T) {
	w := newTestWorld(t)
	b := addBoss(t, w, 400, 200, true)

	if got := DamageBoss(w, 300, AttackSource{X: 400, Y: 300, FromPlayer: true}); got != 0 {
		t.Fatalf("expected immunity, got %d", got)
	}
	if b.hp.Current != b.hp.Max {
		t.Fatalf("hp changed on throne: %d", b.hp.Current)
	}
	if !hasFloatingText(w.Events().Drain(), "IMMUNE") {
		t.Fatalf("expected IMMUNE text")
	}
}

func TestBossPhasesFireOnceInOrder(t *testing.T) {
	w := newTestWorld(t)
	b := addBoss(t, w, 400, 200, false)
	src := AttackSource{X: 400, Y: 300}

	// One big hit crosses 0.85, 0.65 and 0.40 at once.
	DamageBoss(w, 700, src)
	if b.boss.Phase != 3 {
		t.Fatalf("expected phase 3, got %v", b.boss.Phase)
	}
	if n := countEvents(w.Events().Drain(), ecs.EventBossPhase); n != 3 {
		t.Fatalf("expected 3 phase events, got %d", n)
	}

	phases := []float64{b.boss.Phase}
	total := 3
	for b.hp.Current > 1 {
		amount := 20
		if b.hp.Current-amount < 1 {
			amount = b.hp.Current - 1
		}
		DamageBoss(w, amount, src)
		total += countEvents(w.Events().Drain(), ecs.EventBossPhase)
		phases = append(phases, b.boss.Phase)
	}
	for i := 1; i < len(phases); i++ {
		if phases[i] < phases[i-1] {
			t.Fatalf("phase decreased: %v", phases)
		}
	}
	if total != 5 {
		t.Fatalf("expected 5 phase transitions, got %d", total)
	}
	if b.boss.Phase != 5 {
		t.Fatalf("expected final phase 5, got %v", b.boss.Phase)
	}

	// Re-checking passed thresholds must not fire again.
	applyBossPhases(w, b.boss, b.hp)
	if n := countEvents(w.Events().Drain(), ecs.EventBossPhase); n != 0 {
		t.Fatalf("thresholds re-fired: %d", n)
	}
}

func TestBossDeathIsOneWay(t *testing.T) {
	w := newTestWorld(t)
	b := addBoss(t, w, 400, 200, false)
	minion, err := SpawnMinion(w, component.ArchetypeKnight, 200, 200)
	if err != nil {
		t.Fatal(err)
	}
	w.After(30, bossTimelineTag, func(*ecs.World) { t.Fatalf("boss effect ran after death") })

	b.hp.Current = 10
	DamageBoss(w, 50, AttackSource{X: 400, Y: 300})

	if b.boss.State != component.BossDying || !b.hp.Dead || b.hp.Current != 0 {
		t.Fatalf("expected dying boss at 0 hp, got state=%v hp=%d", b.boss.State, b.hp.Current)
	}
	if ecs.IsAlive(w, minion) {
		t.Fatalf("boss minions should fall with the boss")
	}
	if w.Timeline().Pending(bossTimelineTag) != 0 {
		t.Fatalf("pending boss effects should be cancelled")
	}
	if got := DamageBoss(w, 50, AttackSource{}); got != 0 {
		t.Fatalf("dying boss took damage: %d", got)
	}
}

func TestGeneralDeathReleasesThrone(t *testing.T) {
	w := newTestWorld(t)
	b := addBoss(t, w, 400, 100, true)
	general := addEnemy(t, w, component.ArchetypeGeneral, 400, 300)
	general.enemy.Drops = nil

	general.hp.Current = 5
	DamageEnemy(w, general.e, 20, AttackSource{X: 400, Y: 360, Weapon: component.WeaponPierce, FromPlayer: true})

	if b.boss.OnThrone || b.boss.State != component.BossAwakening {
		t.Fatalf("expected awakening boss, got state=%v onThrone=%v", b.boss.State, b.boss.OnThrone)
	}
	if b.boss.AwakenTimer != 120 {
		t.Fatalf("expected awaken timer 120, got %d", b.boss.AwakenTimer)
	}
	if countEvents(w.Events().Drain(), ecs.EventDialogue) == 0 {
		t.Fatalf("expected the boss to speak")
	}
}

func TestToughEnemyDropsLootButMinionsDoNot(t *testing.T) {
	w := newTestWorld(t)
	src := AttackSource{X: 0, Y: 0, Weapon: component.WeaponArea, FromPlayer: true}

	tough := addEnemy(t, w, component.ArchetypeDarkKnight, 400, 300)
	tough.enemy.Drops = []common.Weighted[string]{{Value: "health", Weight: 1}}
	DamageEnemy(w, tough.e, 500, src)
	if n := countPickups(w); n != 1 {
		t.Fatalf("expected one drop, got %d", n)
	}

	minion, err := SpawnMinion(w, component.ArchetypeDarkKnight, 200, 300)
	if err != nil {
		t.Fatal(err)
	}
	enemy, _ := ecs.Get(w, minion, component.EnemyComponent.Kind())
	enemy.Drops = []common.Weighted[string]{{Value: "health", Weight: 1}}
	DamageEnemy(w, minion, 500, src)
	if n := countPickups(w); n != 1 {
		t.Fatalf("minion should not drop loot, pickups=%d", n)
	}
}

func TestPlayerBuffsAndReflection(t *testing.T) {
	t.Run("shield_halves", func(t *testing.T) {
		w := newTestWorld(t)
		pl := addPlayer(t, w, 100, 100)
		pl.p.Buffs.Grant(component.BuffShield, 60)
		DamagePlayer(w, 25, AttackSource{X: 150, Y: 100})
		if pl.hp.Current != 87 {
			t.Fatalf("expected 87 hp, got %d", pl.hp.Current)
		}
	})

	t.Run("thorns_reflects_nearby", func(t *testing.T) {
		w := newTestWorld(t)
		pl := addPlayer(t, w, 100, 100)
		pl.p.Buffs.Grant(component.BuffThorns, 60)
		nearby := addEnemy(t, w, component.ArchetypeKnight, 180, 100)
		far := addEnemy(t, w, component.ArchetypeKnight, 500, 100)
		DamagePlayer(w, 20, AttackSource{X: 180, Y: 100, Attacker: nearby.e})
		if nearby.hp.Current != nearby.hp.Max-10 {
			t.Fatalf("expected thorns to deal 10, hp=%d", nearby.hp.Current)
		}
		if far.hp.Current != far.hp.Max {
			t.Fatalf("far enemy should be untouched, hp=%d", far.hp.Current)
		}
	})

	t.Run("rage_reflects_to_attacker", func(t *testing.T) {
		w := newTestWorld(t)
		pl := addPlayer(t, w, 100, 100)
		pl.p.Buffs.Grant(component.BuffRage, 60)
		attacker := addEnemy(t, w, component.ArchetypeKnight, 600, 100)
		DamagePlayer(w, 20, AttackSource{X: 600, Y: 100, Attacker: attacker.e})
		if attacker.hp.Current != attacker.hp.Max-5 {
			t.Fatalf("expected rage to reflect 5, hp=%d", attacker.hp.Current)
		}
	})

	t.Run("lifesteal_heals", func(t *testing.T) {
		w := newTestWorld(t)
		pl := addPlayer(t, w, 100, 100)
		pl.p.Buffs.Grant(component.BuffLifesteal, 60)
		pl.hp.Current = 50
		target := addEnemy(t, w, component.ArchetypeKnight, 400, 300)
		DamageEnemy(w, target.e, 25, AttackSource{X: 350, Y: 300, Weapon: component.WeaponPierce, FromPlayer: true})
		if pl.hp.Current != 55 {
			t.Fatalf("expected 55 hp after lifesteal, got %d", pl.hp.Current)
		}
	})

	t.Run("damage_and_rage_stack", func(t *testing.T) {
		p := &component.Player{Buffs: component.Buffs{}}
		p.Buffs.Grant(component.BuffDamage, 10)
		p.Buffs.Grant(component.BuffRage, 10)
		if got := OutgoingDamage(p, 20); got != 40 {
			t.Fatalf("expected 40, got %d", got)
		}
	})
}

func TestPlayerDeathSignalsOnce(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100)

	DamagePlayer(w, 500, AttackSource{X: 150, Y: 100})
	if !pl.hp.Dead || pl.hp.Current != 0 {
		t.Fatalf("expected dead player at 0 hp")
	}
	if pl.p.RespawnTimer != pl.p.RespawnDelay {
		t.Fatalf("expected respawn timer %d, got %d", pl.p.RespawnDelay, pl.p.RespawnTimer)
	}
	pl.hp.IFrames = 0
	if got := DamagePlayer(w, 10, AttackSource{}); got != 0 {
		t.Fatalf("dead player took damage: %d", got)
	}
	if n := countEvents(w.Events().Drain(), ecs.EventPlayerDied); n != 1 {
		t.Fatalf("expected one death event, got %d", n)
	}
}
