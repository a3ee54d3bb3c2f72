package system

import (
	"math"
	"testing"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs/component"
)

func TestPlayerMovement(t *testing.T) {
	cases := []struct {
		name       string
		mx, my     float64
		speedBuff  bool
		dx, dy     float64
		wantFacing common.Dir
	}{
		{"right", 1, 0, false, 3, 0, common.Right},
		{"up", 0, -1, false, 0, -3, common.Up},
		{"diagonal_normalized", 1, 1, false, 3 / math.Sqrt2, 3 / math.Sqrt2, common.Right},
		{"speed_buff", -1, 0, true, -4.5, 0, common.Left},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld(t)
			pl := addPlayer(t, w, 400, 300)
			if c.speedBuff {
				pl.p.Buffs.Grant(component.BuffSpeed, 10)
			}
			x, y := pl.tr.X, pl.tr.Y
			pl.in.MoveX, pl.in.MoveY = c.mx, c.my

			NewPlayerControllerSystem().Update(w)

			if !near(pl.tr.X-x, c.dx) || !near(pl.tr.Y-y, c.dy) {
				t.Fatalf("expected move (%v,%v), got (%v,%v)", c.dx, c.dy, pl.tr.X-x, pl.tr.Y-y)
			}
			if pl.p.Facing != c.wantFacing {
				t.Fatalf("expected facing %v, got %v", c.wantFacing, pl.p.Facing)
			}
		})
	}
}

func TestPlayerBlockedByWalls(t *testing.T) {
	w := newTestWorld(t)
	w.PhysicsWorld().AddWall(common.Rect{X: 114, Y: 0, Width: 20, Height: 600})
	pl := addPlayer(t, w, 100, 300)
	pl.in.MoveX = 1
	s := NewPlayerControllerSystem()

	for i := 0; i < 5; i++ {
		s.Update(w)
	}
	if right := pl.tr.X + pl.tr.Width; right > 114 {
		t.Fatalf("player entered wall: right edge %v", right)
	}
}

func TestWeaponSwitching(t *testing.T) {
	w := newTestWorld(t)
	var sounds soundLog
	w.SetSoundSink(&sounds)
	pl := addPlayer(t, w, 100, 100, component.WeaponSword, component.WeaponBow)
	s := NewPlayerControllerSystem()

	if pl.p.Weapon != component.WeaponSword {
		t.Fatalf("expected sword equipped, got %s", pl.p.Weapon)
	}
	pl.in.NextWeapon = true
	s.Update(w)
	if pl.p.Weapon != component.WeaponBow {
		t.Fatalf("expected bow after cycling, got %s", pl.p.Weapon)
	}
	s.Update(w)
	if pl.p.Weapon != component.WeaponSword {
		t.Fatalf("expected cycle to wrap to sword, got %s", pl.p.Weapon)
	}

	pl.in.NextWeapon = false
	pl.in.SelectWeapon = 3
	s.Update(w)
	if pl.p.Weapon != component.WeaponSword {
		t.Fatalf("selected an unowned weapon: %s", pl.p.Weapon)
	}
	pl.in.SelectWeapon = 4
	s.Update(w)
	if pl.p.Weapon != component.WeaponBow {
		t.Fatalf("expected bow by slot, got %s", pl.p.Weapon)
	}
	if n := sounds.count("switch"); n != 3 {
		t.Fatalf("expected 3 switch cues, got %d", n)
	}
}

func TestSwordHitsNearestOnly(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100)
	first := addEnemy(t, w, component.ArchetypeKnight, 130, 100)
	second := addEnemy(t, w, component.ArchetypeKnight, 145, 100)

	pl.in.Attack = true
	NewPlayerControllerSystem().Update(w)

	if first.hp.Current != first.hp.Max-20 {
		t.Fatalf("expected nearest knight hit, hp=%d", first.hp.Current)
	}
	if second.hp.Current != second.hp.Max {
		t.Fatalf("sword should not cleave, hp=%d", second.hp.Current)
	}
}

func TestShieldGuardStopsSwordButNotChain(t *testing.T) {
	cases := []struct {
		name   string
		weapon component.Weapon
		want   int
	}{
		{"sword", component.WeaponSword, 0},
		{"chain", component.WeaponChain, 15},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld(t)
			pl := addPlayer(t, w, 100, 100, c.weapon)
			guard := addEnemy(t, w, component.ArchetypeShieldGuard, 130, 100)
			guard.enemy.ShieldDir = common.Left

			pl.in.Attack = true
			NewPlayerControllerSystem().Update(w)

			if got := guard.hp.Max - guard.hp.Current; got != c.want {
				t.Fatalf("expected %d damage through the shield, got %d", c.want, got)
			}
		})
	}
}

func TestHalberdPiercesLine(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100, component.WeaponHalberd)
	first := addEnemy(t, w, component.ArchetypeKnight, 130, 100)
	second := addEnemy(t, w, component.ArchetypeKnight, 160, 100)
	behind := addEnemy(t, w, component.ArchetypeKnight, 60, 100)

	pl.in.Attack = true
	NewPlayerControllerSystem().Update(w)

	if first.hp.Current != first.hp.Max-25 || second.hp.Current != second.hp.Max-25 {
		t.Fatalf("expected both knights pierced, hp=%d,%d", first.hp.Current, second.hp.Current)
	}
	if behind.hp.Current != behind.hp.Max {
		t.Fatalf("halberd hit behind the player")
	}
}

func TestHammerHitsAround(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 300, 300, component.WeaponHammer)
	a := addEnemy(t, w, component.ArchetypeKnight, 350, 300)
	b := addEnemy(t, w, component.ArchetypeKnight, 300, 240)
	far := addEnemy(t, w, component.ArchetypeKnight, 400, 300)

	pl.in.Attack = true
	NewPlayerControllerSystem().Update(w)

	if a.hp.Current != a.hp.Max-30 || b.hp.Current != b.hp.Max-30 {
		t.Fatalf("expected both nearby knights hit, hp=%d,%d", a.hp.Current, b.hp.Current)
	}
	if far.hp.Current != far.hp.Max {
		t.Fatalf("hammer reached too far")
	}
}

func TestChainComboBuildsAndLapses(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100, component.WeaponChain)
	target := addEnemy(t, w, component.ArchetypeDummy, 130, 100)
	target.hp.Max, target.hp.Current = 500, 500
	x := target.tr.X
	s := NewPlayerControllerSystem()

	want := []int{15, 20, 25, 30, 30}
	for i, dmg := range want {
		before := target.hp.Current
		target.hp.IFrames = 0
		target.tr.X = x
		pl.p.Cooldowns[component.WeaponChain] = 0
		pl.in.Attack = true
		s.Update(w)
		if got := before - target.hp.Current; got != dmg {
			t.Fatalf("hit %d: expected %d damage, got %d", i+1, dmg, got)
		}
	}

	pl.in.Attack = false
	timers := NewTimerSystem()
	for i := 0; i < 40; i++ {
		timers.Update(w)
	}
	if pl.p.Combo != 0 {
		t.Fatalf("combo should lapse after the window, got %d", pl.p.Combo)
	}
}

func TestAttackRespectsCooldown(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100)
	target := addEnemy(t, w, component.ArchetypeDummy, 130, 100)
	s := NewPlayerControllerSystem()

	pl.in.Attack = true
	s.Update(w)
	target.hp.IFrames = 0
	target.tr.X -= knockbackDistance
	s.Update(w)

	if target.hp.Current != target.hp.Max-20 {
		t.Fatalf("attack ignored cooldown, hp=%d", target.hp.Current)
	}
	if pl.p.Cooldowns[component.WeaponSword] != 18 {
		t.Fatalf("expected sword cooldown 18, got %d", pl.p.Cooldowns[component.WeaponSword])
	}
}

func TestBowArrowTravelsAndHits(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 300, component.WeaponBow)
	target := addEnemy(t, w, component.ArchetypeDummy, 300, 300)

	pl.in.Attack = true
	NewPlayerControllerSystem().Update(w)
	if n := countProjectiles(w, component.ProjectilePlayer); n != 1 {
		t.Fatalf("expected one arrow, got %d", n)
	}

	proj := NewProjectileSystem()
	for i := 0; i < 60; i++ {
		proj.Update(w)
	}
	if target.hp.Current != target.hp.Max-18 {
		t.Fatalf("expected arrow hit for 18, hp=%d", target.hp.Current)
	}
	if n := countProjectiles(w, component.ProjectilePlayer); n != 0 {
		t.Fatalf("arrow should be destroyed on hit, %d left", n)
	}
}

func TestEnemyProjectileStopsAtWalls(t *testing.T) {
	w := newTestWorld(t)
	w.PhysicsWorld().AddWall(common.Rect{X: 200, Y: 0, Width: 20, Height: 600})
	pl := addPlayer(t, w, 100, 300)
	spawnProjectile(w, 0, component.ProjectileArrow, component.SideEnemy, 400, 300, -1, 0, 5, 8)

	proj := NewProjectileSystem()
	for i := 0; i < 100; i++ {
		proj.Update(w)
	}
	if pl.hp.Current != pl.hp.Max {
		t.Fatalf("arrow passed through the wall")
	}
	if n := countProjectiles(w, component.ProjectileArrow); n != 0 {
		t.Fatalf("expected arrow destroyed, %d left", n)
	}
}

func TestRageReflectsToArcherThroughItsArrow(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 300)
	pl.p.Buffs.Grant(component.BuffRage, 600)
	archer := addEnemy(t, w, component.ArchetypeArcher, 400, 300)
	spawnProjectile(w, archer.e, component.ProjectileArrow, component.SideEnemy, 300, 300, -1, 0, 5, 20)

	proj := NewProjectileSystem()
	for i := 0; i < 60 && pl.hp.Current == pl.hp.Max; i++ {
		proj.Update(w)
	}
	if pl.hp.Current != pl.hp.Max-20 {
		t.Fatalf("expected the arrow to land for 20, hp=%d", pl.hp.Current)
	}
	if archer.hp.Current != archer.hp.Max-5 {
		t.Fatalf("expected rage to reflect 5 to the archer, hp=%d", archer.hp.Current)
	}
}

func TestDeadPlayerIgnoresInput(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100)
	pl.hp.Dead = true
	x := pl.tr.X
	pl.in.MoveX = 1
	pl.in.Attack = true

	NewPlayerControllerSystem().Update(w)

	if pl.tr.X != x || pl.p.Swing != 0 {
		t.Fatalf("dead player acted")
	}
}
