package component

import "github.com/milk9111/ironkeep/common"

// Archetype names an enemy behavior profile.
type Archetype string

const (
	ArchetypeDummy          Archetype = "dummy"
	ArchetypeKnight         Archetype = "knight"
	ArchetypeSlime          Archetype = "slime"
	ArchetypeForestCreature Archetype = "forest_creature"
	ArchetypeGeneral        Archetype = "general"
	ArchetypeArcher         Archetype = "archer"
	ArchetypeCrossbow       Archetype = "crossbow"
	ArchetypeNecromancer    Archetype = "necromancer"
	ArchetypeBerserker      Archetype = "berserker"
	ArchetypeShieldGuard    Archetype = "shield_guard"
	ArchetypeAssassin       Archetype = "assassin"
	ArchetypeDarkKnight     Archetype = "dark_knight"
	ArchetypeFireMage       Archetype = "fire_mage"
	ArchetypeWarGolem       Archetype = "war_golem"
	ArchetypeCaptain        Archetype = "captain"
)

var Archetypes = []Archetype{
	ArchetypeDummy, ArchetypeKnight, ArchetypeSlime, ArchetypeForestCreature, ArchetypeGeneral,
	ArchetypeArcher, ArchetypeCrossbow, ArchetypeNecromancer, ArchetypeBerserker, ArchetypeShieldGuard,
	ArchetypeAssassin, ArchetypeDarkKnight, ArchetypeFireMage, ArchetypeWarGolem, ArchetypeCaptain,
}

type EnemyState int

const (
	EnemyIdle EnemyState = iota
	EnemyChasing
	EnemyRetreating
	EnemyWindup
	EnemyCharging
	EnemyVanished
)

func (s EnemyState) String() string {
	switch s {
	case EnemyIdle:
		return "idle"
	case EnemyChasing:
		return "chasing"
	case EnemyRetreating:
		return "retreating"
	case EnemyWindup:
		return "windup"
	case EnemyCharging:
		return "charging"
	case EnemyVanished:
		return "vanished"
	}
	return "unknown"
}

// Enemy carries an enemy's stats and its archetype sub-state. The sub-state
// fields are shared across archetypes; each behavior only touches its own.
type Enemy struct {
	Archetype      Archetype
	Damage         int
	Speed          float64
	AggroRange     float64
	AttackRange    float64
	AttackCooldown int
	Cooldown       int

	State      EnemyState
	StateTimer int
	// DirX, DirY hold a locked direction (charge heading, spread aim).
	DirX, DirY float64
	ShieldDir  common.Dir
	Special    int
	// SpeedMult is the captain aura multiplier, recomputed every tick.
	SpeedMult float64

	Tough bool
	Drops []common.Weighted[string]
	// Minion marks boss or necromancer summons, which never drop loot.
	Minion bool
	// Wave is the wave number that spawned this enemy, 0 for level enemies.
	Wave int
	// Scripted enemies run a tengo behavior; ScriptFailed falls back to the
	// native one.
	Script       string
	ScriptFailed bool
}

// EnemyStats is one bestiary entry.
type EnemyStats struct {
	HP             int
	Damage         int
	Speed          float64
	AggroRange     float64
	AttackRange    float64
	AttackCooldown int
	Width, Height  float64
	Tough          bool
	Drops          []common.Weighted[string]
	Script         string
}

var EnemyComponent = NewComponent[Enemy]()
