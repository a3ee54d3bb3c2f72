package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/ironkeep/circuit"
	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
	"github.com/milk9111/ironkeep/ecs/system"
	"github.com/milk9111/ironkeep/levels"
	"github.com/milk9111/ironkeep/prefabs"
	"github.com/milk9111/ironkeep/wave"
)

const (
	runeStoneSize    = 32.0
	keeperSize       = 24.0
	defaultHazard    = 32.0
	defaultExit      = 40.0
	defaultKeeperR   = 60.0
	defaultSpacing   = 100.0
	defaultTriggerR  = 90.0
	defaultLineSpeak = "Keeper"
)

// Prefabs is the gameplay data a level is built from.
type Prefabs struct {
	Bestiary *component.Bestiary
	Player   component.PlayerStats
	Boss     *component.BossConfig
	Waves    prefabs.WavesSpec
}

// LoadPrefabs reads every prefab file. A file that fails to load is reported
// in errs and replaced by its built-in defaults.
func LoadPrefabs() (Prefabs, []error) {
	var errs []error
	pf := Prefabs{}

	b, err := prefabs.LoadBestiary()
	if err != nil {
		errs = append(errs, err)
		b = component.DefaultBestiary()
	}
	pf.Bestiary = b

	ps, err := prefabs.LoadPlayer()
	if err != nil {
		errs = append(errs, err)
		ps = component.DefaultPlayerStats()
	}
	pf.Player = ps

	boss, err := prefabs.LoadBoss()
	if err != nil {
		errs = append(errs, err)
		boss = component.DefaultBossConfig()
	}
	pf.Boss = boss

	waves, err := prefabs.LoadWaves()
	if err != nil {
		errs = append(errs, err)
		waves = prefabs.WavesSpec{}
	}
	pf.Waves = waves
	return pf, errs
}

// LoadLevelToWorld builds lvl into an empty world: physics walls and gates,
// the bestiary singleton, every placed entity, and finally the player at the
// level's start owning the given weapons.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, pf Prefabs, owned map[component.Weapon]bool) (ecs.Entity, error) {
	if w == nil || lvl == nil {
		return 0, fmt.Errorf("entity: load level: nil world or level")
	}

	pw := ecs.NewPhysicsWorld(float64(lvl.Width), float64(lvl.Height))
	for _, r := range lvl.Walls {
		pw.AddWall(rect(r))
	}
	w.SetPhysicsWorld(pw)
	for _, g := range lvl.Gates {
		if err := addGate(w, g); err != nil {
			return 0, err
		}
	}

	bestiary := pf.Bestiary
	if bestiary == nil {
		bestiary = component.DefaultBestiary()
	}
	if err := ecs.Add(w, ecs.CreateEntity(w), component.BestiaryComponent.Kind(), bestiary); err != nil {
		return 0, fmt.Errorf("entity: load level %s: %w", lvl.Name, err)
	}

	for i, ent := range lvl.Entities {
		if err := buildEntity(w, lvl, ent, pf); err != nil {
			return 0, fmt.Errorf("entity: load level %s: entity %d (%s): %w", lvl.Name, i, ent.Type, err)
		}
	}

	player := system.SpawnPlayer(w, pf.Player, owned, lvl.PlayerStart.X, lvl.PlayerStart.Y)
	w.Logger().Info().
		Str("level", lvl.Name).
		Str("kind", lvl.Kind).
		Int("entities", len(lvl.Entities)).
		Msg("level loaded")
	return player, nil
}

func rect(r levels.Rect) common.Rect {
	return common.Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

func addGate(w *ecs.World, g levels.Gate) error {
	if g.ID == "" {
		return fmt.Errorf("entity: gate without id")
	}
	r := rect(g.Rect)
	w.PhysicsWorld().AddGate(g.ID, r)
	e := ecs.CreateEntity(w)
	tr := &component.Transform{}
	tr.SetRect(r)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		return err
	}
	return ecs.Add(w, e, component.GateComponent.Kind(), &component.Gate{ID: g.ID})
}

func addZone[T any](w *ecs.World, kind component.ComponentKind[T], value *T, x, y, width, height float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	tr := &component.Transform{}
	tr.SetRect(common.RectAround(x, y, width, height))
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, kind, value); err != nil {
		return 0, err
	}
	return e, nil
}

func buildEntity(w *ecs.World, lvl *levels.Level, ent levels.Entity, pf Prefabs) error {
	switch strings.ToLower(ent.Type) {
	case "enemy":
		_, err := system.SpawnEnemy(w, component.Archetype(ent.String("archetype")), ent.X, ent.Y)
		return err
	case "pickup":
		p, err := pickup(ent)
		if err != nil {
			return err
		}
		system.SpawnPickup(w, p, ent.X, ent.Y)
	case "hazard":
		h := &component.Hazard{
			Kind:     ent.String("kind"),
			Damage:   ent.Int("damage", 10),
			Interval: ent.Int("interval", 45),
		}
		_, err := addZone(w, component.HazardComponent.Kind(), h, ent.X, ent.Y,
			ent.Float("w", defaultHazard), ent.Float("h", defaultHazard))
		return err
	case "exit":
		_, err := addZone(w, component.ExitZoneComponent.Kind(), &component.ExitZone{GateID: ent.String("gate")}, ent.X, ent.Y,
			ent.Float("w", defaultExit), ent.Float("h", defaultExit))
		return err
	case "keeper":
		name := ent.String("name")
		if name == "" {
			name = defaultLineSpeak
		}
		k := &component.Keeper{Name: name, Lines: ent.Strings("lines"), Range: ent.Float("range", defaultKeeperR)}
		_, err := addZone(w, component.KeeperComponent.Kind(), k, ent.X, ent.Y, keeperSize, keeperSize)
		return err
	case "circuit":
		cb := &component.CircuitBoard{
			Board:   circuit.VaultBoard(),
			OriginX: ent.X,
			OriginY: ent.Y,
			Spacing: ent.Float("spacing", defaultSpacing),
			GateID:  ent.String("gate"),
			Dirty:   true,
		}
		return ecs.Add(w, ecs.CreateEntity(w), component.CircuitBoardComponent.Kind(), cb)
	case "wave_director":
		return addWaveDirector(w, ent, pf.Waves)
	case "rune":
		_, err := addZone(w, component.RuneStoneComponent.Kind(), &component.RuneStone{Index: ent.Int("index", 0)}, ent.X, ent.Y,
			runeStoneSize, runeStoneSize)
		return err
	case "boss":
		system.SpawnBoss(w, pf.Boss, ent.X, ent.Y, ent.Bool("seated"))
	default:
		w.Logger().Warn().Str("level", lvl.Name).Str("type", ent.Type).Msg("unknown entity type skipped")
	}
	return nil
}

func pickup(ent levels.Entity) (component.Pickup, error) {
	kind := component.PickupKind(ent.String("kind"))
	p := component.Pickup{Kind: kind}
	switch kind {
	case component.PickupHealth:
		p.Amount = ent.Int("amount", 40)
	case component.PickupWeapon:
		wpn, ok := component.ParseWeapon(ent.String("weapon"))
		if !ok {
			return p, fmt.Errorf("unknown weapon %q", ent.String("weapon"))
		}
		p.Weapon = wpn
	case component.PickupBuff:
		p.Buff = component.Buff(ent.String("buff"))
		p.Ticks = ent.Int("ticks", 600)
	default:
		return p, fmt.Errorf("unknown pickup kind %q", kind)
	}
	return p, nil
}

func addWaveDirector(w *ecs.World, ent levels.Entity, spec prefabs.WavesSpec) error {
	if len(spec.Waves) == 0 {
		return fmt.Errorf("no waves configured")
	}
	d := &component.WaveDirector{
		Orchestrator: wave.NewOrchestrator(spec.Config),
		Runes:        wave.NewRunePuzzle(spec.RuneSequence),
		Arenas:       ent.Points("arenas"),
		TriggerX:     ent.X,
		TriggerY:     ent.Y,
		TriggerR:     ent.Float("trigger_r", defaultTriggerR),
		ExitGate:     ent.String("exit_gate"),
		PuzzleGate:   ent.String("puzzle_gate"),
		RewardTicks:  spec.RewardTicks,
	}
	if wpn, ok := component.ParseWeapon(spec.RewardWeapon); ok {
		d.RewardWeapon = wpn
	}
	for _, b := range spec.RewardBuffs {
		d.RewardBuffs = append(d.RewardBuffs, component.Buff(b))
	}
	return ecs.Add(w, ecs.CreateEntity(w), component.WaveDirectorComponent.Kind(), d)
}
