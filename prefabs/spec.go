package prefabs

import (
	"fmt"
	"slices"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs/component"
	"github.com/milk9111/ironkeep/wave"
	"gopkg.in/yaml.v3"
)

const (
	BestiaryFile = "bestiary.yaml"
	PlayerFile   = "player.yaml"
	BossFile     = "boss.yaml"
	WavesFile    = "waves.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type DropSpec struct {
	Drop   string `yaml:"drop"`
	Weight int    `yaml:"weight"`
}

type EnemySpec struct {
	HP             int        `yaml:"hp"`
	Damage         int        `yaml:"damage"`
	Speed          float64    `yaml:"speed"`
	AggroRange     float64    `yaml:"aggro_range"`
	AttackRange    float64    `yaml:"attack_range"`
	AttackCooldown int        `yaml:"attack_cooldown"`
	Size           SizeSpec   `yaml:"size"`
	Tough          bool       `yaml:"tough"`
	Drops          []DropSpec `yaml:"drops"`
	Script         string     `yaml:"script"`
}

type BestiarySpec struct {
	// ToughDrops is used by tough enemies that list no drops of their own.
	ToughDrops []DropSpec           `yaml:"tough_drops"`
	Enemies    map[string]EnemySpec `yaml:"enemies"`
}

func drops(specs []DropSpec) []common.Weighted[string] {
	out := make([]common.Weighted[string], 0, len(specs))
	for _, d := range specs {
		out = append(out, common.Weighted[string]{Value: d.Drop, Weight: d.Weight})
	}
	return out
}

// Bestiary builds the bestiary, rejecting archetypes the game does not know.
func (s BestiarySpec) Bestiary() (*component.Bestiary, error) {
	b := &component.Bestiary{Stats: make(map[component.Archetype]component.EnemyStats, len(s.Enemies))}
	for name, e := range s.Enemies {
		a := component.Archetype(name)
		if !slices.Contains(component.Archetypes, a) {
			return nil, fmt.Errorf("prefabs: bestiary: unknown archetype %q", name)
		}
		if e.HP <= 0 {
			return nil, fmt.Errorf("prefabs: bestiary %s: hp must be positive", name)
		}
		stats := component.EnemyStats{
			HP:             e.HP,
			Damage:         e.Damage,
			Speed:          e.Speed,
			AggroRange:     e.AggroRange,
			AttackRange:    e.AttackRange,
			AttackCooldown: e.AttackCooldown,
			Width:          e.Size.Width,
			Height:         e.Size.Height,
			Tough:          e.Tough,
			Script:         e.Script,
		}
		switch {
		case len(e.Drops) > 0:
			stats.Drops = drops(e.Drops)
		case e.Tough:
			stats.Drops = drops(s.ToughDrops)
		}
		b.Stats[a] = stats
	}
	return b, nil
}

func LoadBestiary() (*component.Bestiary, error) {
	spec, err := LoadSpec[BestiarySpec](BestiaryFile)
	if err != nil {
		return nil, err
	}
	return spec.Bestiary()
}

type WeaponSpec struct {
	Kind            string  `yaml:"kind"`
	Damage          int     `yaml:"damage"`
	Cooldown        int     `yaml:"cooldown"`
	Reach           float64 `yaml:"reach"`
	Width           float64 `yaml:"width"`
	ComboStep       int     `yaml:"combo_step"`
	ComboMax        int     `yaml:"combo_max"`
	ComboWindow     int     `yaml:"combo_window"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
}

type PlayerSpec struct {
	HP           int                   `yaml:"hp"`
	Speed        float64               `yaml:"speed"`
	Size         SizeSpec              `yaml:"size"`
	IFrames      int                   `yaml:"iframes"`
	RespawnDelay int                   `yaml:"respawn_delay"`
	Weapons      map[string]WeaponSpec `yaml:"weapons"`
}

func parseWeaponKind(s string) (component.WeaponKind, error) {
	switch s {
	case "melee", "":
		return component.WeaponMelee, nil
	case "pierce":
		return component.WeaponPierce, nil
	case "area":
		return component.WeaponArea, nil
	case "ranged":
		return component.WeaponRanged, nil
	}
	return 0, fmt.Errorf("unknown weapon kind %q", s)
}

// Stats builds player stats. Weapons missing from the file keep their default
// stats.
func (s PlayerSpec) Stats() (component.PlayerStats, error) {
	out := component.DefaultPlayerStats()
	if s.HP > 0 {
		out.MaxHP = s.HP
	}
	if s.Speed > 0 {
		out.Speed = s.Speed
	}
	if s.Size.Width > 0 && s.Size.Height > 0 {
		out.Width, out.Height = s.Size.Width, s.Size.Height
	}
	if s.IFrames > 0 {
		out.IFrames = s.IFrames
	}
	if s.RespawnDelay > 0 {
		out.RespawnDelay = s.RespawnDelay
	}
	for name, ws := range s.Weapons {
		wpn, ok := component.ParseWeapon(name)
		if !ok {
			return out, fmt.Errorf("prefabs: player: unknown weapon %q", name)
		}
		kind, err := parseWeaponKind(ws.Kind)
		if err != nil {
			return out, fmt.Errorf("prefabs: player weapon %s: %w", name, err)
		}
		out.Arsenal[wpn] = component.WeaponStats{
			Kind:            kind,
			Damage:          ws.Damage,
			Cooldown:        ws.Cooldown,
			Reach:           ws.Reach,
			Width:           ws.Width,
			ComboStep:       ws.ComboStep,
			ComboMax:        ws.ComboMax,
			ComboWindow:     ws.ComboWindow,
			ProjectileSpeed: ws.ProjectileSpeed,
		}
	}
	return out, nil
}

func LoadPlayer() (component.PlayerStats, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return component.DefaultPlayerStats(), err
	}
	return spec.Stats()
}

type ThresholdSpec struct {
	Ratio         float64 `yaml:"ratio"`
	Phase         float64 `yaml:"phase"`
	SpeedBonus    float64 `yaml:"speed_bonus"`
	CooldownScale float64 `yaml:"cooldown_scale"`
	Barrier       int     `yaml:"barrier"`
	Burst         string  `yaml:"burst"`
}

type SummonSpec struct {
	Archetype string `yaml:"archetype"`
	Weight    int    `yaml:"weight"`
}

type BossPhaseSpec struct {
	Phase       float64        `yaml:"phase"`
	DamageScale float64        `yaml:"damage_scale"`
	SummonEvery int            `yaml:"summon_every"`
	Weights     map[string]int `yaml:"weights"`
	Summons     []SummonSpec   `yaml:"summons"`
}

type BossSpec struct {
	HP             int             `yaml:"hp"`
	Speed          float64         `yaml:"speed"`
	AttackCooldown int             `yaml:"attack_cooldown"`
	Damage         map[string]int  `yaml:"damage"`
	AwakenTicks    int             `yaml:"awaken_ticks"`
	TauntEvery     int             `yaml:"taunt_every"`
	RageEvery      int             `yaml:"rage_every"`
	RageSpeed      float64         `yaml:"rage_speed"`
	RageMax        int             `yaml:"rage_max"`
	MeteorDelay    int             `yaml:"meteor_delay"`
	Thresholds     []ThresholdSpec `yaml:"thresholds"`
	Phases         []BossPhaseSpec `yaml:"phases"`
	Taunts         []string        `yaml:"taunts"`
	DeathLines     []string        `yaml:"death_lines"`
	DialogueAt     []int           `yaml:"dialogue_at"`
	Stages         map[string]int  `yaml:"stages"`
}

var bossActions = map[string]component.BossAction{
	"melee":  component.BossActionMelee,
	"ranged": component.BossActionRanged,
	"slam":   component.BossActionSlam,
	"dash":   component.BossActionDash,
	"power":  component.BossActionPower,
	"meteor": component.BossActionMeteor,
	"orb":    component.BossActionOrb,
}

var deathStages = map[string]component.DeathStage{
	"crack":     component.DeathCrack,
	"eruption":  component.DeathEruption,
	"explosion": component.DeathExplosion,
	"afterglow": component.DeathAfterglow,
}

// Config builds the boss config. Thresholds must be listed highest ratio first
// and must not lower the phase.
func (s BossSpec) Config() (*component.BossConfig, error) {
	cfg := &component.BossConfig{
		MaxHP:          s.HP,
		Speed:          s.Speed,
		AttackCooldown: s.AttackCooldown,
		MeleeDamage:    s.Damage["melee"],
		RangedDamage:   s.Damage["ranged"],
		SlamDamage:     s.Damage["slam"],
		DashDamage:     s.Damage["dash"],
		PowerDamage:    s.Damage["power"],
		MeteorDamage:   s.Damage["meteor"],
		OrbDamage:      s.Damage["orb"],
		AwakenTicks:    s.AwakenTicks,
		TauntEvery:     s.TauntEvery,
		RageEvery:      s.RageEvery,
		RageSpeed:      s.RageSpeed,
		RageMax:        s.RageMax,
		MeteorDelay:    s.MeteorDelay,
		Taunts:         s.Taunts,
		DeathLines:     s.DeathLines,
		DialogueAt:     s.DialogueAt,
		StageTicks:     map[component.DeathStage]int{},
	}
	if cfg.MaxHP <= 0 {
		return nil, fmt.Errorf("prefabs: boss: hp must be positive")
	}

	prevRatio, prevPhase := 1.0, 1.0
	for i, th := range s.Thresholds {
		if th.Ratio > prevRatio || th.Phase < prevPhase {
			return nil, fmt.Errorf("prefabs: boss threshold %d: ratio %.2f phase %.1f out of order", i, th.Ratio, th.Phase)
		}
		prevRatio, prevPhase = th.Ratio, th.Phase
		cfg.Thresholds = append(cfg.Thresholds, component.PhaseThreshold(th))
	}

	for _, ps := range s.Phases {
		pc := component.BossPhaseConfig{
			Phase:       ps.Phase,
			DamageScale: ps.DamageScale,
			SummonEvery: ps.SummonEvery,
			Weights:     map[component.BossAction]int{},
		}
		for name, wgt := range ps.Weights {
			action, ok := bossActions[name]
			if !ok {
				return nil, fmt.Errorf("prefabs: boss phase %.1f: unknown action %q", ps.Phase, name)
			}
			pc.Weights[action] = wgt
		}
		for _, sm := range ps.Summons {
			a := component.Archetype(sm.Archetype)
			if !slices.Contains(component.Archetypes, a) {
				return nil, fmt.Errorf("prefabs: boss phase %.1f: unknown summon %q", ps.Phase, sm.Archetype)
			}
			pc.Summons = append(pc.Summons, component.SummonEntry{Archetype: a, Weight: sm.Weight})
		}
		cfg.Phases = append(cfg.Phases, pc)
	}

	if len(s.DeathLines) != len(s.DialogueAt) {
		return nil, fmt.Errorf("prefabs: boss: %d death lines but %d dialogue checkpoints", len(s.DeathLines), len(s.DialogueAt))
	}
	for i := 1; i < len(s.DialogueAt); i++ {
		if s.DialogueAt[i] < s.DialogueAt[i-1] {
			return nil, fmt.Errorf("prefabs: boss: dialogue checkpoint %d goes back in time", i)
		}
	}

	for name, ticks := range s.Stages {
		stage, ok := deathStages[name]
		if !ok {
			return nil, fmt.Errorf("prefabs: boss: unknown death stage %q", name)
		}
		cfg.StageTicks[stage] = ticks
	}
	return cfg, nil
}

func LoadBoss() (*component.BossConfig, error) {
	spec, err := LoadSpec[BossSpec](BossFile)
	if err != nil {
		return nil, err
	}
	return spec.Config()
}

// WavesSpec is the wave defense setup: the orchestrator config plus the rune
// puzzle and the final reward.
type WavesSpec struct {
	wave.Config  `yaml:",inline"`
	RuneSequence []int    `yaml:"rune_sequence"`
	RewardWeapon string   `yaml:"reward_weapon"`
	RewardBuffs  []string `yaml:"reward_buffs"`
	RewardTicks  int      `yaml:"reward_ticks"`
}

// Validate checks references the orchestrator cannot check itself.
func (s WavesSpec) Validate() error {
	if len(s.Waves) == 0 {
		return fmt.Errorf("prefabs: waves: no waves")
	}
	for i, wv := range s.Waves {
		for _, sp := range wv.Spawns {
			if !slices.Contains(component.Archetypes, component.Archetype(sp.Archetype)) {
				return fmt.Errorf("prefabs: wave %d: unknown archetype %q", i+1, sp.Archetype)
			}
		}
	}
	if s.PuzzleAfter > 0 && len(s.RuneSequence) == 0 {
		return fmt.Errorf("prefabs: waves: puzzle after wave %d has no rune sequence", s.PuzzleAfter)
	}
	if s.RewardWeapon != "" {
		if _, ok := component.ParseWeapon(s.RewardWeapon); !ok {
			return fmt.Errorf("prefabs: waves: unknown reward weapon %q", s.RewardWeapon)
		}
	}
	for _, b := range s.RewardBuffs {
		if !slices.Contains(component.AllBuffs, component.Buff(b)) {
			return fmt.Errorf("prefabs: waves: unknown reward buff %q", b)
		}
	}
	return nil
}

func LoadWaves() (WavesSpec, error) {
	spec, err := LoadSpec[WavesSpec](WavesFile)
	if err != nil {
		return spec, err
	}
	return spec, spec.Validate()
}
