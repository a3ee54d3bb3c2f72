package system

import (
	"testing"

	"github.com/milk9111/ironkeep/circuit"
	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
	"github.com/milk9111/ironkeep/wave"
)

func moveTo(tr *component.Transform, x, y float64) {
	tr.SetRect(common.RectAround(x, y, tr.Width, tr.Height))
}

func addZone[T any](t *testing.T, w *ecs.World, kind component.ComponentKind[T], value *T, x, y, size float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x - size/2, Y: y - size/2, Width: size, Height: size}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, kind, value); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestPickupsCollectOnce(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100)
	pl.hp.Current = 80
	health := SpawnPickup(w, component.Pickup{Kind: component.PickupHealth, Amount: 40}, 100, 100)
	weapon := SpawnPickup(w, component.Pickup{Kind: component.PickupWeapon, Weapon: component.WeaponHammer}, 300, 100)
	s := NewPickupCollectSystem()

	s.Update(w)
	if pl.hp.Current != pl.hp.Max {
		t.Fatalf("expected heal capped at max, got %d", pl.hp.Current)
	}
	if ecs.Exists(w, health) {
		t.Fatalf("collected pickup should be removed")
	}
	s.Update(w)
	if !ecs.Exists(w, weapon) {
		t.Fatalf("distant pickup collected")
	}

	moveTo(pl.tr, 300, 100)
	s.Update(w)
	if !pl.p.Owned[component.WeaponHammer] || pl.p.Weapon != component.WeaponHammer {
		t.Fatalf("expected hammer granted and equipped")
	}
	if countPickups(w) != 0 {
		t.Fatalf("expected no pickups left")
	}
}

func TestBuffPickupAndExpiry(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100)
	SpawnPickup(w, component.Pickup{Kind: component.PickupBuff, Buff: component.BuffThorns, Ticks: 3}, 100, 100)

	NewPickupCollectSystem().Update(w)
	if !pl.p.Buffs.Active(component.BuffThorns) {
		t.Fatalf("expected thorns active")
	}
	timers := NewTimerSystem()
	for i := 0; i < 3; i++ {
		timers.Update(w)
	}
	if pl.p.Buffs.Active(component.BuffThorns) {
		t.Fatalf("expected thorns to expire")
	}
}

func TestHazardHitsOnInterval(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100)
	haz := &component.Hazard{Damage: 5, Interval: 30, Kind: "spikes"}
	addZone(t, w, component.HazardComponent.Kind(), haz, 100, 100, 40)
	s := NewHazardSystem()

	s.Update(w)
	if pl.hp.Current != 95 {
		t.Fatalf("expected immediate contact hit, hp=%d", pl.hp.Current)
	}
	for i := 0; i < 30; i++ {
		pl.hp.IFrames = 0
		s.Update(w)
	}
	if pl.hp.Current != 95 {
		t.Fatalf("hazard hit before its interval, hp=%d", pl.hp.Current)
	}
	pl.hp.IFrames = 0
	s.Update(w)
	if pl.hp.Current != 90 {
		t.Fatalf("expected second hit, hp=%d", pl.hp.Current)
	}

	moveTo(pl.tr, 400, 400)
	s.Update(w)
	if haz.Timer != 0 {
		t.Fatalf("leaving the hazard should reset it, timer=%d", haz.Timer)
	}
}

func TestGatesAndExit(t *testing.T) {
	w := newTestWorld(t)
	w.PhysicsWorld().AddGate("vault", common.Rect{X: 390, Y: 0, Width: 20, Height: 600})
	gate := &component.Gate{ID: "vault"}
	addZone(t, w, component.GateComponent.Kind(), gate, 400, 300, 20)
	zone := &component.ExitZone{GateID: "vault"}
	addZone(t, w, component.ExitZoneComponent.Kind(), zone, 100, 100, 40)
	addPlayer(t, w, 100, 100)
	exit := NewExitSystem()

	if GateOpen(w, "vault") {
		t.Fatalf("gate should start closed")
	}
	if !GateOpen(w, "") || !GateOpen(w, "nowhere") {
		t.Fatalf("empty and unknown gates count as open")
	}
	exit.Update(w)
	if n := countEvents(w.Events().Drain(), ecs.EventLevelExit); n != 0 {
		t.Fatalf("exit used behind a closed gate")
	}

	if !OpenGate(w, "vault") {
		t.Fatalf("expected gate to open")
	}
	if OpenGate(w, "vault") {
		t.Fatalf("reopening should be a no-op")
	}
	if !gate.Open || !GateOpen(w, "vault") || w.PhysicsWorld().Blocked(common.Rect{X: 395, Y: 300, Width: 4, Height: 4}) {
		t.Fatalf("gate still blocks after opening")
	}

	exit.Update(w)
	exit.Update(w)
	if n := countEvents(w.Events().Drain(), ecs.EventLevelExit); n != 1 {
		t.Fatalf("expected one exit event, got %d", n)
	}
}

func TestKeeperCyclesLines(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100)
	k := &component.Keeper{Name: "Keeper", Lines: []string{"one", "two"}, Range: 60}
	addZone(t, w, component.KeeperComponent.Kind(), k, 140, 100, 24)
	s := NewKeeperSystem()

	var lines []string
	pl.in.Interact = true
	for i := 0; i < 3; i++ {
		s.Update(w)
		for _, evt := range w.Events().Drain() {
			if d, ok := evt.Data.(ecs.Dialogue); ok {
				lines = append(lines, d.Line)
			}
		}
	}
	if len(lines) != 3 || lines[0] != "one" || lines[1] != "two" || lines[2] != "one" {
		t.Fatalf("unexpected dialogue: %v", lines)
	}

	moveTo(pl.tr, 500, 500)
	s.Update(w)
	if w.Events().Len() != 0 {
		t.Fatalf("keeper spoke out of range")
	}
}

func vaultBoardNearlySolved(t *testing.T) *circuit.Board {
	t.Helper()
	b := circuit.VaultBoard()
	solution := map[circuit.Cell]int{
		{Col: 0, Row: 1}: 0, {Col: 1, Row: 1}: 2, {Col: 1, Row: 2}: 0, {Col: 2, Row: 2}: 1,
		{Col: 3, Row: 2}: 1, {Col: 4, Row: 2}: 1, {Col: 5, Row: 2}: 1,
	}
	for cell, rot := range solution {
		n := b.Node(cell.Col, cell.Row)
		if n == nil {
			t.Fatalf("missing node %v", cell)
		}
		n.Rotation = rot
	}
	return b
}

func TestCircuitSolveOpensGateAndLocks(t *testing.T) {
	w := newTestWorld(t)
	w.PhysicsWorld().AddGate("vault_gate", common.Rect{X: 780, Y: 0, Width: 20, Height: 600})
	cb := &component.CircuitBoard{Board: vaultBoardNearlySolved(t), OriginX: 150, OriginY: 150, Spacing: 100, GateID: "vault_gate", Dirty: true}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CircuitBoardComponent.Kind(), cb); err != nil {
		t.Fatal(err)
	}
	pl := addPlayer(t, w, 150, 250)
	s := NewCircuitSystem()

	s.Update(w)
	if cb.Solved {
		t.Fatalf("board solved before the last rotation")
	}

	pl.in.Interact = true
	s.Update(w)
	if !cb.Solved {
		t.Fatalf("expected the board solved")
	}
	events := w.Events().Drain()
	if countEvents(events, ecs.EventPuzzleSolved) != 1 || countEvents(events, ecs.EventGateOpened) != 1 {
		t.Fatalf("expected solve and gate events, got %v", events)
	}

	rot := cb.Board.Node(0, 1).Rotation
	s.Update(w)
	if cb.Board.Node(0, 1).Rotation != rot {
		t.Fatalf("solved board should be locked")
	}
	if n := countEvents(w.Events().Drain(), ecs.EventPuzzleSolved); n != 0 {
		t.Fatalf("solve fired twice")
	}
}

func TestCircuitInteractOutOfRange(t *testing.T) {
	w := newTestWorld(t)
	b := circuit.VaultBoard()
	before := b.Rotations()
	cb := &component.CircuitBoard{Board: b, OriginX: 150, OriginY: 150, Spacing: 100}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CircuitBoardComponent.Kind(), cb); err != nil {
		t.Fatal(err)
	}
	pl := addPlayer(t, w, 700, 550)
	pl.in.Interact = true

	NewCircuitSystem().Update(w)

	after := b.Rotations()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("node %d rotated from out of range", i)
		}
	}
}

// Standing closer to a dead cell than to a live node still turns the live
// node.
func TestCircuitInteractSkipsDeadCells(t *testing.T) {
	w := newTestWorld(t)
	b := circuit.NewBoard(1, 2, circuit.Port{Col: 0, Row: 1, Side: common.Down}, circuit.Port{Col: 0, Row: 0, Side: common.Up})
	if err := b.Set(0, 1, circuit.Straight, 1); err != nil {
		t.Fatal(err)
	}
	cb := &component.CircuitBoard{Board: b, OriginX: 150, OriginY: 150, Spacing: 60}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CircuitBoardComponent.Kind(), cb); err != nil {
		t.Fatal(err)
	}
	pl := addPlayer(t, w, 150, 175)
	pl.in.Interact = true

	NewCircuitSystem().Update(w)

	if got := b.Node(0, 1).Rotation; got != 2 {
		t.Fatalf("expected the straight turned to rotation 2, got %d", got)
	}
	if b.Node(0, 0).Rotation != 0 {
		t.Fatalf("dead cell should not turn")
	}
}

type waveRig struct {
	w   *ecs.World
	pl  testPlayer
	d   *component.WaveDirector
	sys *WaveSystem
}

func newWaveRig(t *testing.T) waveRig {
	t.Helper()
	w := newTestWorld(t)
	pw := w.PhysicsWorld()
	pw.AddGate("rune_gate", common.Rect{X: 500, Y: 0, Width: 10, Height: 100})
	pw.AddGate("exit_gate", common.Rect{X: 790, Y: 0, Width: 10, Height: 100})

	cfg := wave.Config{
		PauseTicks:  3,
		PuzzleAfter: 1,
		Waves: []wave.Wave{
			{Arena: 0, Spawns: []wave.Spawn{{Archetype: "knight", X: 300, Y: 300, Count: 2}}},
			{Arena: 1, Spawns: []wave.Spawn{{Archetype: "slime", X: 650, Y: 400}}},
		},
	}
	d := &component.WaveDirector{
		Orchestrator: wave.NewOrchestrator(cfg),
		Runes:        wave.NewRunePuzzle([]int{1, 0}),
		Arenas:       [][2]float64{{100, 300}, {600, 200}},
		TriggerX:     100,
		TriggerY:     300,
		TriggerR:     50,
		ExitGate:     "exit_gate",
		PuzzleGate:   "rune_gate",
		RewardWeapon: component.WeaponHammer,
		RewardBuffs:  []component.Buff{component.BuffDamage},
		RewardTicks:  100,
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.WaveDirectorComponent.Kind(), d); err != nil {
		t.Fatal(err)
	}
	for i, x := range []float64{300, 400} {
		addZone(t, w, component.RuneStoneComponent.Kind(), &component.RuneStone{Index: i}, x, 550, 20)
	}
	return waveRig{w: w, pl: addPlayer(t, w, 100, 300), d: d, sys: NewWaveSystem()}
}

func (r waveRig) run(ticks int) []ecs.Event {
	var events []ecs.Event
	for i := 0; i < ticks; i++ {
		r.sys.Update(r.w)
		events = append(events, r.w.Events().Drain()...)
	}
	return events
}

func (r waveRig) killWave(n int) {
	ecs.ForEach(r.w, component.EnemyComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy) {
		if enemy.Wave == n {
			DamageEnemy(r.w, e, 1000, AttackSource{Weapon: component.WeaponArea})
		}
	})
}

func TestWaveSystemFullRun(t *testing.T) {
	r := newWaveRig(t)
	o := r.d.Orchestrator

	events := r.run(2)
	if o.State() != wave.Pause || countEvents(events, ecs.EventWaveStarted) != 0 {
		t.Fatalf("expected countdown, got %v", o.State())
	}
	events = r.run(1)
	if countEvents(events, ecs.EventWaveStarted) != 1 || liveWaveEnemies(r.w, 1) != 2 {
		t.Fatalf("expected wave 1 with 2 enemies, live=%d", liveWaveEnemies(r.w, 1))
	}

	r.killWave(1)
	events = r.run(1)
	if o.State() != wave.Puzzle || countEvents(events, ecs.EventWaveCleared) != 1 {
		t.Fatalf("expected rune interlude after wave 1, got %v", o.State())
	}

	r.pl.in.Interact = true
	moveTo(r.pl.tr, 300, 550)
	r.run(1)
	if r.d.Runes.Mistakes() != 1 || o.State() != wave.Puzzle {
		t.Fatalf("wrong rune should count a mistake")
	}
	moveTo(r.pl.tr, 400, 550)
	r.run(1)
	moveTo(r.pl.tr, 300, 550)
	events = r.run(1)
	if countEvents(events, ecs.EventPuzzleSolved) != 1 || !GateOpen(r.w, "rune_gate") {
		t.Fatalf("expected rune puzzle solved and gate open")
	}
	r.pl.in.Interact = false

	events = r.run(2)
	if countEvents(events, ecs.EventWaveStarted) != 1 || o.CurrentWave() != 2 {
		t.Fatalf("expected wave 2 to start, current=%d", o.CurrentWave())
	}
	cx, cy := r.pl.tr.Center()
	if !near(cx, 600) || !near(cy, 200) || r.d.CurrentArena != 1 {
		t.Fatalf("expected player moved to arena 1, got (%v,%v)", cx, cy)
	}

	r.killWave(2)
	events = r.run(3)
	if countEvents(events, ecs.EventWavesComplete) != 1 {
		t.Fatalf("expected one completion event")
	}
	if !r.pl.p.Owned[component.WeaponHammer] || !r.pl.p.Buffs.Active(component.BuffDamage) {
		t.Fatalf("reward not granted")
	}
	if !GateOpen(r.w, "exit_gate") || o.State() != wave.Complete {
		t.Fatalf("expected exit open and orchestrator complete")
	}
}

func TestWaveTriggerNeedsProximity(t *testing.T) {
	r := newWaveRig(t)
	moveTo(r.pl.tr, 400, 100)

	r.run(10)

	if r.d.Orchestrator.State() != wave.Idle {
		t.Fatalf("triggered from afar: %v", r.d.Orchestrator.State())
	}
}

func TestRespawnSignalsOnce(t *testing.T) {
	w := newTestWorld(t)
	pl := addPlayer(t, w, 100, 100)
	pl.hp.Dead = true
	pl.p.RespawnTimer = 3
	s := NewRespawnSystem()

	total := 0
	for i := 0; i < 10; i++ {
		s.Update(w)
		n := countEvents(w.Events().Drain(), ecs.EventRespawn)
		if n > 0 && i != 2 {
			t.Fatalf("respawn signalled on tick %d", i)
		}
		total += n
	}
	if total != 1 {
		t.Fatalf("expected one respawn event, got %d", total)
	}
}

func TestCompactionDestroysKilledEntities(t *testing.T) {
	w := newTestWorld(t)
	dead := addEnemy(t, w, component.ArchetypeKnight, 100, 100)
	live := addEnemy(t, w, component.ArchetypeKnight, 300, 100)
	DamageEnemy(w, dead.e, 1000, AttackSource{Weapon: component.WeaponArea})
	if !ecs.Exists(w, dead.e) {
		t.Fatalf("killed enemy should stay until compaction")
	}

	NewCompactionSystem().Update(w)

	if ecs.Exists(w, dead.e) || !ecs.Exists(w, live.e) {
		t.Fatalf("compaction removed the wrong entities")
	}
}

func TestFloatingTextExpires(t *testing.T) {
	w := newTestWorld(t)
	spawnFloatingText(w, "12", 100, 100)
	s := NewTTLSystem()

	for i := 0; i < floatingTextTicks-1; i++ {
		s.Update(w)
	}
	n := 0
	ecs.ForEach(w, component.FloatingTextComponent.Kind(), func(ecs.Entity, *component.FloatingText) { n++ })
	if n != 1 {
		t.Fatalf("text expired early")
	}
	s.Update(w)
	n = 0
	ecs.ForEach(w, component.FloatingTextComponent.Kind(), func(ecs.Entity, *component.FloatingText) { n++ })
	if n != 0 {
		t.Fatalf("text outlived its ttl")
	}
}

func TestSchedulerAdvancesTickAndRunsTimeline(t *testing.T) {
	w := newTestWorld(t)
	addPlayer(t, w, 100, 100)
	ran := 0
	w.After(2, "test", func(*ecs.World) { ran++ })
	s := NewGameScheduler()

	for i := 0; i < 5; i++ {
		s.Update(w)
	}
	if w.Tick() != 5 {
		t.Fatalf("expected tick 5, got %d", w.Tick())
	}
	if ran != 1 {
		t.Fatalf("expected timeline entry to run once, ran %d", ran)
	}
}
