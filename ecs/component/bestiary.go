package component

import "github.com/milk9111/ironkeep/common"

// Bestiary is a singleton holding stats per archetype. Spawners fall back to
// DefaultBestiary for archetypes it does not list.
type Bestiary struct {
	Stats map[Archetype]EnemyStats
}

func (b *Bestiary) Lookup(a Archetype) (EnemyStats, bool) {
	if b != nil {
		if s, ok := b.Stats[a]; ok {
			return s, true
		}
	}
	s, ok := defaultStats[a]
	return s, ok
}

var toughDrops = []common.Weighted[string]{
	{Value: "", Weight: 50},
	{Value: "health", Weight: 25},
	{Value: "shield", Weight: 15},
	{Value: "buff", Weight: 10},
}

var defaultStats = map[Archetype]EnemyStats{
	ArchetypeDummy:          {HP: 60, Width: 24, Height: 24},
	ArchetypeKnight:         {HP: 60, Damage: 10, Speed: 1.6, AggroRange: 300, AttackRange: 28, AttackCooldown: 50, Width: 24, Height: 24},
	ArchetypeSlime:          {HP: 25, Damage: 6, Speed: 1.2, AggroRange: 260, AttackRange: 22, AttackCooldown: 40, Width: 20, Height: 18},
	ArchetypeForestCreature: {HP: 45, Damage: 9, Speed: 1.8, AggroRange: 320, AttackRange: 26, AttackCooldown: 45, Width: 24, Height: 24, Script: "forest_creature.tengo"},
	ArchetypeGeneral:        {HP: 160, Damage: 16, Speed: 1.5, AggroRange: 360, AttackRange: 32, AttackCooldown: 55, Width: 32, Height: 32, Tough: true, Drops: toughDrops},
	ArchetypeArcher:         {HP: 35, Damage: 8, Speed: 1.4, AggroRange: 380, AttackRange: 300, AttackCooldown: 70, Width: 22, Height: 24},
	ArchetypeCrossbow:       {HP: 45, Damage: 14, Speed: 1.1, AggroRange: 420, AttackRange: 340, AttackCooldown: 95, Width: 22, Height: 24},
	ArchetypeNecromancer:    {HP: 55, Damage: 9, Speed: 1.0, AggroRange: 400, AttackRange: 320, AttackCooldown: 90, Width: 24, Height: 26, Tough: true, Drops: toughDrops},
	ArchetypeBerserker:      {HP: 35, Damage: 18, Speed: 1.8, AggroRange: 320, AttackRange: 220, AttackCooldown: 90, Width: 26, Height: 26, Tough: true, Drops: toughDrops},
	ArchetypeShieldGuard:    {HP: 80, Damage: 12, Speed: 1.2, AggroRange: 300, AttackRange: 28, AttackCooldown: 60, Width: 26, Height: 26, Tough: true, Drops: toughDrops},
	ArchetypeAssassin:       {HP: 40, Damage: 16, Speed: 2.0, AggroRange: 320, AttackRange: 30, AttackCooldown: 150, Width: 22, Height: 22},
	ArchetypeDarkKnight:     {HP: 110, Damage: 22, Speed: 1.3, AggroRange: 300, AttackRange: 60, AttackCooldown: 90, Width: 28, Height: 28, Tough: true, Drops: toughDrops},
	ArchetypeFireMage:       {HP: 50, Damage: 12, Speed: 1.1, AggroRange: 400, AttackRange: 300, AttackCooldown: 100, Width: 22, Height: 26},
	ArchetypeWarGolem:       {HP: 200, Damage: 26, Speed: 0.8, AggroRange: 320, AttackRange: 90, AttackCooldown: 120, Width: 44, Height: 44, Tough: true, Drops: toughDrops},
	ArchetypeCaptain:        {HP: 90, Damage: 10, Width: 26, Height: 28, Tough: true, Drops: toughDrops},
}

// DefaultBestiary returns a copy of the built-in stats table.
func DefaultBestiary() *Bestiary {
	b := &Bestiary{Stats: make(map[Archetype]EnemyStats, len(defaultStats))}
	for k, v := range defaultStats {
		b.Stats[k] = v
	}
	return b
}

var BestiaryComponent = NewComponent[Bestiary]()
