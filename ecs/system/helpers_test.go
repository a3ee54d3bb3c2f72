package system

import (
	"testing"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

type soundLog []string

func (s *soundLog) Play(name string) { *s = append(*s, name) }

func (s *soundLog) count(name string) int {
	n := 0
	for _, v := range *s {
		if v == name {
			n++
		}
	}
	return n
}

func newTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	w.SetRNG(common.NewRNG(1))
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(800, 600))
	return w
}

type testPlayer struct {
	e  ecs.Entity
	p  *component.Player
	hp *component.Health
	tr *component.Transform
	in *component.Input
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64, weapons ...component.Weapon) testPlayer {
	t.Helper()
	owned := map[component.Weapon]bool{}
	for _, wpn := range weapons {
		owned[wpn] = true
	}
	e := SpawnPlayer(w, component.DefaultPlayerStats(), owned, x, y)
	tp := testPlayer{e: e}
	tp.p, _ = ecs.Get(w, e, component.PlayerComponent.Kind())
	tp.hp, _ = ecs.Get(w, e, component.HealthComponent.Kind())
	tp.tr, _ = ecs.Get(w, e, component.TransformComponent.Kind())
	tp.in, _ = ecs.Get(w, e, component.InputComponent.Kind())
	if tp.p == nil || tp.hp == nil || tp.tr == nil || tp.in == nil {
		t.Fatalf("player spawn incomplete")
	}
	return tp
}

type testEnemy struct {
	e     ecs.Entity
	enemy *component.Enemy
	hp    *component.Health
	tr    *component.Transform
}

func addEnemy(t *testing.T, w *ecs.World, a component.Archetype, x, y float64) testEnemy {
	t.Helper()
	e, err := SpawnEnemy(w, a, x, y)
	if err != nil {
		t.Fatalf("SpawnEnemy(%s): %v", a, err)
	}
	te := testEnemy{e: e}
	te.enemy, _ = ecs.Get(w, e, component.EnemyComponent.Kind())
	te.hp, _ = ecs.Get(w, e, component.HealthComponent.Kind())
	te.tr, _ = ecs.Get(w, e, component.TransformComponent.Kind())
	return te
}

type testBoss struct {
	e    ecs.Entity
	boss *component.Boss
	hp   *component.Health
	tr   *component.Transform
}

func addBoss(t *testing.T, w *ecs.World, x, y float64, seated bool) testBoss {
	t.Helper()
	e := SpawnBoss(w, component.DefaultBossConfig(), x, y, seated)
	tb := testBoss{e: e}
	tb.boss, _ = ecs.Get(w, e, component.BossComponent.Kind())
	tb.hp, _ = ecs.Get(w, e, component.HealthComponent.Kind())
	tb.tr, _ = ecs.Get(w, e, component.TransformComponent.Kind())
	return tb
}

func countEvents(events []ecs.Event, kind string) int {
	n := 0
	for _, evt := range events {
		if evt.Type == kind {
			n++
		}
	}
	return n
}

func hasFloatingText(events []ecs.Event, text string) bool {
	for _, evt := range events {
		if ft, ok := evt.Data.(ecs.FloatingText); ok && evt.Type == ecs.EventFloatingText && ft.Text == text {
			return true
		}
	}
	return false
}

func countPickups(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.PickupComponent.Kind(), func(ecs.Entity, *component.Pickup) { n++ })
	return n
}

func countProjectiles(w *ecs.World, kind component.ProjectileKind) int {
	n := 0
	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(_ ecs.Entity, p *component.Projectile) {
		if p.Kind == kind {
			n++
		}
	})
	return n
}

func countEnemies(w *ecs.World, a component.Archetype) int {
	n := 0
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), func(_ ecs.Entity, enemy *component.Enemy, hp *component.Health) {
		if enemy.Archetype == a && !hp.Dead {
			n++
		}
	})
	return n
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
