package component

type BossState int

const (
	BossOnThrone BossState = iota
	BossAwakening
	BossCombat
	BossDying
	BossDefeated
)

func (s BossState) String() string {
	switch s {
	case BossOnThrone:
		return "on_throne"
	case BossAwakening:
		return "awakening"
	case BossCombat:
		return "combat"
	case BossDying:
		return "dying"
	case BossDefeated:
		return "defeated"
	}
	return "unknown"
}

type BossAction string

const (
	BossActionNone   BossAction = ""
	BossActionMelee  BossAction = "melee"
	BossActionRanged BossAction = "ranged"
	BossActionSlam   BossAction = "slam"
	BossActionDash   BossAction = "dash"
	BossActionPower  BossAction = "power"
	BossActionMeteor BossAction = "meteor"
	BossActionOrb    BossAction = "orb"
)

// DeathStage is the scripted finishing sequence after the dialogue.
type DeathStage int

const (
	DeathDialogue DeathStage = iota
	DeathCrack
	DeathEruption
	DeathExplosion
	DeathAfterglow
	DeathDone
)

// PhaseThreshold fires once when hp/max drops to Ratio or below.
type PhaseThreshold struct {
	Ratio float64
	Phase float64
	// SpeedBonus is added to the base speed; CooldownScale multiplies the
	// attack cooldown.
	SpeedBonus    float64
	CooldownScale float64
	Barrier       int
	// Burst is the reward dropped on transition ("health", "buff", or empty).
	Burst string
}

// BossPhaseConfig holds the attack weights and summon table used while the
// boss is at or above Phase.
type BossPhaseConfig struct {
	Phase       float64
	Weights     map[BossAction]int
	DamageScale float64
	SummonEvery int
	Summons     []SummonEntry
}

type SummonEntry struct {
	Archetype Archetype
	Weight    int
}

type BossConfig struct {
	MaxHP          int
	Speed          float64
	AttackCooldown int
	MeleeDamage    int
	RangedDamage   int
	SlamDamage     int
	DashDamage     int
	PowerDamage    int
	MeteorDamage   int
	OrbDamage      int
	AwakenTicks    int
	TauntEvery     int
	RageEvery      int
	RageSpeed      float64
	RageMax        int
	Thresholds     []PhaseThreshold
	Phases         []BossPhaseConfig
	Taunts         []string
	DeathLines     []string
	// DialogueAt are tick checkpoints into the dying state, one per death
	// line.
	DialogueAt  []int
	StageTicks  map[DeathStage]int
	MeteorDelay int
}

// Boss is the single boss instance's runtime state. Phase only increases and
// State only moves forward.
type Boss struct {
	Config *BossConfig

	State         BossState
	Phase         float64
	NextThreshold int
	Barrier       int
	BarrierMax    int
	OnThrone      bool
	AwakenTimer   int

	Speed          float64
	AttackCooldown int
	Cooldown       int
	DamageScale    float64

	Action      BossAction
	ActionTimer int
	ActionDX    float64
	ActionDY    float64
	ActionHit   bool

	SlamTimer   int
	DashTimer   int
	PowerTimer  int
	MeteorTimer int
	OrbTimer    int

	RageLevel   int
	RageTimer   int
	BattleTicks int
	SummonTimer int
	TauntTimer  int
	TauntIndex  int

	DeathTimer    int
	DeathStage    DeathStage
	DialogueIndex int
	StageTimer    int
}

var BossComponent = NewComponent[Boss]()

// PhaseConfig returns the attack table in effect at phase: the entry with
// the highest Phase not above it.
func (c *BossConfig) PhaseConfig(phase float64) *BossPhaseConfig {
	if c == nil {
		return nil
	}
	var best *BossPhaseConfig
	for i := range c.Phases {
		p := &c.Phases[i]
		if p.Phase <= phase && (best == nil || p.Phase > best.Phase) {
			best = p
		}
	}
	return best
}

// DefaultBossConfig is the Iron King as shipped when no prefab overrides it.
func DefaultBossConfig() *BossConfig {
	return &BossConfig{
		MaxHP:          1000,
		Speed:          1.4,
		AttackCooldown: 70,
		MeleeDamage:    18,
		RangedDamage:   10,
		SlamDamage:     24,
		DashDamage:     20,
		PowerDamage:    40,
		MeteorDamage:   22,
		OrbDamage:      14,
		AwakenTicks:    120,
		TauntEvery:     300,
		RageEvery:      600,
		RageSpeed:      0.25,
		RageMax:        4,
		MeteorDelay:    60,
		Thresholds: []PhaseThreshold{
			{Ratio: 0.85, Phase: 1.5, SpeedBonus: 0.1, CooldownScale: 0.95, Barrier: 150, Burst: "health"},
			{Ratio: 0.65, Phase: 2, SpeedBonus: 0.2, CooldownScale: 0.9},
			{Ratio: 0.40, Phase: 3, SpeedBonus: 0.2, CooldownScale: 0.9, Burst: "buff"},
			{Ratio: 0.18, Phase: 4, SpeedBonus: 0.3, CooldownScale: 0.85, Burst: "health"},
			{Ratio: 0.06, Phase: 5, SpeedBonus: 0.4, CooldownScale: 0.8},
		},
		Phases: []BossPhaseConfig{
			{Phase: 1, DamageScale: 1, SummonEvery: 600,
				Weights: map[BossAction]int{BossActionMelee: 5, BossActionRanged: 3},
				Summons: []SummonEntry{{ArchetypeKnight, 3}, {ArchetypeSlime, 2}}},
			{Phase: 1.5, DamageScale: 1.05, SummonEvery: 540,
				Weights: map[BossAction]int{BossActionMelee: 5, BossActionRanged: 4},
				Summons: []SummonEntry{{ArchetypeKnight, 3}, {ArchetypeSlime, 2}, {ArchetypeArcher, 2}}},
			{Phase: 2, DamageScale: 1.15, SummonEvery: 480,
				Weights: map[BossAction]int{BossActionMelee: 4, BossActionRanged: 3, BossActionSlam: 2, BossActionDash: 2},
				Summons: []SummonEntry{{ArchetypeKnight, 2}, {ArchetypeArcher, 2}, {ArchetypeBerserker, 2}}},
			{Phase: 3, DamageScale: 1.3, SummonEvery: 420,
				Weights: map[BossAction]int{BossActionMelee: 3, BossActionRanged: 3, BossActionSlam: 2, BossActionDash: 2, BossActionPower: 2, BossActionOrb: 2},
				Summons: []SummonEntry{{ArchetypeKnight, 2}, {ArchetypeShieldGuard, 2}, {ArchetypeFireMage, 2}, {ArchetypeBerserker, 1}}},
			{Phase: 4, DamageScale: 1.45, SummonEvery: 360,
				Weights: map[BossAction]int{BossActionMelee: 3, BossActionRanged: 2, BossActionSlam: 2, BossActionDash: 3, BossActionPower: 2, BossActionOrb: 2, BossActionMeteor: 3},
				Summons: []SummonEntry{{ArchetypeShieldGuard, 2}, {ArchetypeAssassin, 2}, {ArchetypeDarkKnight, 2}, {ArchetypeFireMage, 1}}},
			{Phase: 5, DamageScale: 1.6, SummonEvery: 300,
				Weights: map[BossAction]int{BossActionMelee: 2, BossActionRanged: 2, BossActionSlam: 3, BossActionDash: 3, BossActionPower: 3, BossActionOrb: 2, BossActionMeteor: 4},
				Summons: []SummonEntry{{ArchetypeAssassin, 2}, {ArchetypeDarkKnight, 2}, {ArchetypeWarGolem, 1}, {ArchetypeNecromancer, 1}}},
		},
		Taunts: []string{
			"Kneel, little knight. My general will see to you.",
			"The throne does not yield to the likes of you.",
			"Every wall of this keep answers to me.",
		},
		DeathLines: []string{
			"No... the keep... it was mine...",
			"You think the crown makes a king?",
			"Then take it, and the ruin with it!",
		},
		DialogueAt: []int{0, 90, 180},
		StageTicks: map[DeathStage]int{
			DeathCrack:     60,
			DeathEruption:  60,
			DeathExplosion: 45,
			DeathAfterglow: 90,
		},
	}
}
