package system

import (
	"math"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
	"github.com/milk9111/ironkeep/wave"
)

const (
	runeTouchRange  = 40.0
	runeFlashTicks  = 20
	waveSpawnSpread = 36.0
)

// WaveSystem feeds the orchestrator its live count and applies each step's
// side effects: spawning, arena teleports, the rune interlude, and the final
// reward.
type WaveSystem struct{}

func NewWaveSystem() *WaveSystem { return &WaveSystem{} }

func (s *WaveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	de, ok := ecs.First(w, component.WaveDirectorComponent.Kind())
	if !ok {
		return
	}
	d, _ := ecs.Get(w, de, component.WaveDirectorComponent.Kind())
	if d == nil || d.Orchestrator == nil {
		return
	}
	pe, p, ok := playerEntity(w)
	if !ok {
		return
	}
	ptr, ok := ecs.Get(w, pe, component.TransformComponent.Kind())
	if !ok {
		return
	}
	o := d.Orchestrator
	px, py := ptr.Center()

	if o.State() == wave.Idle && d.TriggerR > 0 && common.Dist(px, py, d.TriggerX, d.TriggerY) <= d.TriggerR {
		if o.Trigger() {
			w.Logger().Info().Int("waves", o.TotalWaves()).Msg("wave defense triggered")
			w.PlaySound("horn")
		}
	}

	if o.State() == wave.Puzzle {
		s.runes(w, d)
	}

	step := o.Tick(liveWaveEnemies(w, o.CurrentWave()))
	if step.Spawn != nil {
		s.spawnWave(w, d, ptr, step.WaveNumber, step.Spawn)
	}
	if step.Cleared > 0 {
		w.Emit(ecs.EventWaveCleared, step.Cleared)
		w.PlaySound("wavecleared")
		w.Logger().Info().Int("wave", step.Cleared).Msg("wave cleared")
	}
	if step.PuzzleStarted {
		w.Emit(ecs.EventDialogue, ecs.Dialogue{Speaker: "Rune Stones", Line: "The runes hum. Touch them in the order they were carved."})
	}
	if step.Completed && !d.Rewarded {
		d.Rewarded = true
		if d.RewardWeapon != "" {
			GrantWeapon(p, d.RewardWeapon)
		}
		if p.Buffs == nil {
			p.Buffs = component.Buffs{}
		}
		for _, b := range d.RewardBuffs {
			p.Buffs.Grant(b, d.RewardTicks)
		}
		OpenGate(w, d.ExitGate)
		w.Emit(ecs.EventWavesComplete, o.TotalWaves())
		w.PlaySound("fanfare")
		w.Logger().Info().Str("reward", string(d.RewardWeapon)).Msg("all waves cleared")
	}
}

func (s *WaveSystem) runes(w *ecs.World, d *component.WaveDirector) {
	if d.Runes == nil {
		return
	}
	px, py, interact := interactPoint(w)
	ecs.ForEach2(w, component.RuneStoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, r *component.RuneStone, tr *component.Transform) {
		if r.Flash > 0 {
			r.Flash--
		}
		if !interact {
			return
		}
		x, y := tr.Center()
		if common.Dist(px, py, x, y) > runeTouchRange {
			return
		}
		switch d.Runes.Press(r.Index) {
		case wave.PressCorrect:
			r.Flash = runeFlashTicks
			w.PlaySound("rune")
		case wave.PressWrong:
			w.PlaySound("runewrong")
		case wave.PressSolved:
			r.Flash = runeFlashTicks
			if d.Orchestrator.SolvePuzzle() {
				w.Emit(ecs.EventPuzzleSolved, "runes")
				w.PlaySound("puzzle")
				w.Logger().Info().Int("mistakes", d.Runes.Mistakes()).Msg("rune puzzle solved")
				OpenGate(w, d.PuzzleGate)
			}
		}
	})
}

// liveWaveEnemies counts enemies spawned by wave n that are still standing.
func liveWaveEnemies(w *ecs.World, n int) int {
	if n <= 0 {
		return 0
	}
	live := 0
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), func(_ ecs.Entity, enemy *component.Enemy, hp *component.Health) {
		if enemy.Wave == n && !hp.Dead {
			live++
		}
	})
	return live
}

func (s *WaveSystem) spawnWave(w *ecs.World, d *component.WaveDirector, ptr *component.Transform, n int, wv *wave.Wave) {
	if wv.Arena != d.CurrentArena && wv.Arena >= 0 && wv.Arena < len(d.Arenas) {
		d.CurrentArena = wv.Arena
		at := d.Arenas[wv.Arena]
		r := common.RectAround(at[0], at[1], ptr.Width, ptr.Height)
		if pw := w.PhysicsWorld(); pw != nil {
			r = pw.ClampToBounds(r)
		}
		ptr.SetRect(r)
		w.Logger().Info().Int("arena", wv.Arena).Msg("player moved to arena")
	}

	spawned := 0
	for _, sp := range wv.Spawns {
		count := sp.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			x, y := sp.X, sp.Y
			if count > 1 {
				a := 2 * math.Pi * float64(i) / float64(count)
				x += math.Cos(a) * waveSpawnSpread
				y += math.Sin(a) * waveSpawnSpread
			}
			e, err := SpawnEnemy(w, component.Archetype(sp.Archetype), x, y)
			if err != nil {
				w.Logger().Warn().Err(err).Int("wave", n).Msg("wave spawn skipped")
				continue
			}
			if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
				enemy.Wave = n
			}
			spawned++
		}
	}
	w.Emit(ecs.EventWaveStarted, n)
	w.PlaySound("wavestart")
	w.Logger().Info().Int("wave", n).Int("enemies", spawned).Msg("wave started")
}
