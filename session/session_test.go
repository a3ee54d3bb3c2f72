package session

import (
	"testing"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
	"github.com/milk9111/ironkeep/ecs/system"
	"github.com/milk9111/ironkeep/wave"
)

type completions struct {
	calls []bool
}

func (c *completions) record(won bool) {
	c.calls = append(c.calls, won)
}

func newSession(t *testing.T, opts Options) (*Session, *completions) {
	t.Helper()
	c := &completions{}
	opts.OnComplete = c.record
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, c
}

func playerOf(t *testing.T, s *Session) (*component.Player, *component.Health, *component.Transform) {
	t.Helper()
	w := s.World()
	p, ok := ecs.Get(w, s.Player(), component.PlayerComponent.Kind())
	if !ok {
		t.Fatal("player component missing")
	}
	hp, ok := ecs.Get(w, s.Player(), component.HealthComponent.Kind())
	if !ok {
		t.Fatal("player health missing")
	}
	tr, ok := ecs.Get(w, s.Player(), component.TransformComponent.Kind())
	if !ok {
		t.Fatal("player transform missing")
	}
	return p, hp, tr
}

func hasEvent(events []ecs.Event, kind string) bool {
	for _, evt := range events {
		if evt.Type == kind {
			return true
		}
	}
	return false
}

func TestUnknownGameTypeLosesImmediately(t *testing.T) {
	s, c := newSession(t, Options{GameType: "endless"})

	if len(c.calls) != 1 || c.calls[0] {
		t.Fatalf("expected one loss, got %v", c.calls)
	}
	if done, won := s.Done(); !done || won {
		t.Fatalf("expected done and lost, got done=%v won=%v", done, won)
	}
	if events := s.Update(component.Input{}); events != nil {
		t.Fatalf("expected no events after completion, got %v", events)
	}
	s.Forfeit()
	if len(c.calls) != 1 {
		t.Fatalf("completion reported %d times", len(c.calls))
	}
}

func TestUnknownLevelFallsBackToFirst(t *testing.T) {
	for _, n := range []int{-1, 99} {
		s, _ := newSession(t, Options{Level: n})
		if s.Level() != 0 {
			t.Fatalf("level %d: expected fallback to 0, got %d", n, s.Level())
		}
		if s.LevelData() == nil || s.World() == nil {
			t.Fatalf("level %d: expected a built world", n)
		}
	}
}

func TestForfeitReportsOnce(t *testing.T) {
	s, c := newSession(t, Options{})
	s.Forfeit()
	s.Forfeit()

	if len(c.calls) != 1 || c.calls[0] {
		t.Fatalf("expected a single loss, got %v", c.calls)
	}
}

func TestStartingWeapons(t *testing.T) {
	s, _ := newSession(t, Options{Weapons: []string{"hammer", "bow", "trident"}})

	p, _, _ := playerOf(t, s)
	if !p.Owned[component.WeaponBow] || !p.Owned[component.WeaponHammer] {
		t.Fatalf("expected bow and hammer owned, got %v", p.Owned)
	}
	if p.Owned[component.WeaponSword] {
		t.Fatal("sword should not be granted when other weapons are owned")
	}
	if p.Weapon != component.WeaponBow {
		t.Fatalf("expected first owned weapon in order equipped, got %s", p.Weapon)
	}

	s.SetStartingWeapons(map[string]bool{"chain": true, "bow": false})
	if p.Weapon != component.WeaponChain || p.Owned[component.WeaponBow] {
		t.Fatalf("expected chain only, got weapon %s owned %v", p.Weapon, p.Owned)
	}

	s.SetStartingWeapons(nil)
	if p.Weapon != component.WeaponSword {
		t.Fatalf("expected sword fallback, got %s", p.Weapon)
	}
}

func TestHelpPausesSimulation(t *testing.T) {
	s, _ := newSession(t, Options{})
	w := s.World()

	s.Update(component.Input{Help: true})
	if !s.HelpVisible() {
		t.Fatal("expected help visible")
	}
	if w.Tick() != 0 {
		t.Fatalf("expected paused world, tick %d", w.Tick())
	}
	s.Update(component.Input{})
	if w.Tick() != 0 {
		t.Fatal("world advanced while help was open")
	}

	s.Update(component.Input{Help: true})
	if s.HelpVisible() {
		t.Fatal("expected help hidden")
	}
	if w.Tick() != 1 {
		t.Fatalf("expected one tick after closing help, got %d", w.Tick())
	}
}

func TestLevelExitLoadsNextLevel(t *testing.T) {
	s, c := newSession(t, Options{Weapons: []string{"sword", "halberd"}})
	first := s.World()
	_, _, tr := playerOf(t, s)
	tr.SetRect(common.RectAround(930, 320, tr.Width, tr.Height))

	events := s.Update(component.Input{})

	if !hasEvent(events, ecs.EventLevelExit) {
		t.Fatal("expected level exit event")
	}
	if s.Level() != 1 || s.World() == first {
		t.Fatalf("expected level 1 in a fresh world, got level %d", s.Level())
	}
	if len(c.calls) != 0 {
		t.Fatalf("session should continue, got %v", c.calls)
	}
	p, hp, _ := playerOf(t, s)
	if !p.Owned[component.WeaponHalberd] || !p.Owned[component.WeaponSword] {
		t.Fatalf("weapons lost on transition: %v", p.Owned)
	}
	if hp.Current != hp.Max {
		t.Fatalf("expected full hp, got %d/%d", hp.Current, hp.Max)
	}
}

func TestBossDefeatWins(t *testing.T) {
	s, c := newSession(t, Options{Level: 4})
	s.World().Emit(ecs.EventBossDefeated, nil)

	s.Update(component.Input{})
	s.Update(component.Input{})

	if len(c.calls) != 1 || !c.calls[0] {
		t.Fatalf("expected one win, got %v", c.calls)
	}
	if done, won := s.Done(); !done || !won {
		t.Fatalf("expected done and won, got done=%v won=%v", done, won)
	}
}

func TestRespawnResumesWave(t *testing.T) {
	s, c := newSession(t, Options{Level: 3, Weapons: []string{"halberd"}})
	d, ok := s.director()
	if !ok {
		t.Fatal("siege level has no wave director")
	}
	if !d.Orchestrator.ResumeAt(5) {
		t.Fatal("ResumeAt(5) failed")
	}
	for i := 0; i < 400 && d.Orchestrator.State() != wave.Active; i++ {
		s.Update(component.Input{})
	}
	if d.Orchestrator.State() != wave.Active || d.Orchestrator.CurrentWave() != 5 {
		t.Fatalf("expected wave 5 active, got %s wave %d", d.Orchestrator.State(), d.Orchestrator.CurrentWave())
	}

	_, hp, _ := playerOf(t, s)
	hp.IFrames = 0
	system.DamagePlayer(s.World(), 10000, system.AttackSource{})
	if !hp.Dead {
		t.Fatal("expected player dead")
	}

	before := s.World()
	respawned := false
	for i := 0; i < 300 && !respawned; i++ {
		respawned = hasEvent(s.Update(component.Input{}), ecs.EventRespawn)
	}
	if !respawned {
		t.Fatal("expected a respawn event")
	}
	if s.World() == before {
		t.Fatal("expected the level to be rebuilt")
	}

	p, hp, _ := playerOf(t, s)
	if hp.Dead || hp.Current != hp.Max {
		t.Fatalf("expected full hp, got %d/%d dead=%v", hp.Current, hp.Max, hp.Dead)
	}
	if !p.Owned[component.WeaponHalberd] || p.Weapon != component.WeaponHalberd {
		t.Fatalf("expected halberd retained, got %s %v", p.Weapon, p.Owned)
	}

	d, ok = s.director()
	if !ok {
		t.Fatal("rebuilt level has no wave director")
	}
	if d.Orchestrator.CurrentWave() != 5 || d.Orchestrator.State() != wave.Pause {
		t.Fatalf("expected countdown to wave 5, got %s wave %d", d.Orchestrator.State(), d.Orchestrator.CurrentWave())
	}
	if !system.GateOpen(s.World(), d.PuzzleGate) {
		t.Fatal("rune gate should stay open past the interlude")
	}
	if len(c.calls) != 0 {
		t.Fatalf("respawn must not end the session, got %v", c.calls)
	}
}

func TestRespawnBeforeWavesStartsIdle(t *testing.T) {
	s, _ := newSession(t, Options{Level: 3})
	_, hp, _ := playerOf(t, s)
	system.DamagePlayer(s.World(), 10000, system.AttackSource{})
	if !hp.Dead {
		t.Fatal("expected player dead")
	}
	for i := 0; i < 300; i++ {
		if hasEvent(s.Update(component.Input{}), ecs.EventRespawn) {
			break
		}
	}
	d, ok := s.director()
	if !ok {
		t.Fatal("missing director")
	}
	if d.Orchestrator.State() != wave.Idle {
		t.Fatalf("expected idle orchestrator, got %s", d.Orchestrator.State())
	}
}
