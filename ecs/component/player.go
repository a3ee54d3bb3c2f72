package component

import "github.com/milk9111/ironkeep/common"

type Buff string

const (
	BuffDamage    Buff = "damage"
	BuffShield    Buff = "shield"
	BuffSpeed     Buff = "speed"
	BuffLifesteal Buff = "lifesteal"
	BuffThorns    Buff = "thorns"
	BuffRage      Buff = "rage"
)

var AllBuffs = []Buff{BuffDamage, BuffShield, BuffSpeed, BuffLifesteal, BuffThorns, BuffRage}

// Buffs pairs each timed buff with its remaining ticks. A buff is active
// while its timer is positive.
type Buffs map[Buff]int

func (b Buffs) Active(buff Buff) bool {
	return b[buff] > 0
}

// Grant refreshes a buff to at least ticks.
func (b Buffs) Grant(buff Buff, ticks int) {
	if b == nil || ticks <= 0 {
		return
	}
	if b[buff] < ticks {
		b[buff] = ticks
	}
}

func (b Buffs) Tick() {
	for k, v := range b {
		if v > 0 {
			b[k] = v - 1
		}
	}
}

// Player is the avatar's non-health state. It is rebuilt on respawn from the
// session's retained weapon set.
type Player struct {
	Facing  common.Dir
	Speed   float64
	Weapon  Weapon
	Owned   map[Weapon]bool
	Arsenal map[Weapon]WeaponStats
	// Cooldowns counts down per weapon so switching cannot skip a recovery.
	Cooldowns map[Weapon]int
	Buffs     Buffs
	Combo     int
	ComboIdle int
	// Swing is a short visual timer for the last attack.
	Swing        int
	IFrameTicks  int
	RespawnDelay int
	RespawnTimer int
}

// NextOwned cycles to the next owned weapon in WeaponOrder.
func (p *Player) NextOwned() Weapon {
	if p == nil {
		return ""
	}
	start := 0
	for i, w := range WeaponOrder {
		if w == p.Weapon {
			start = i
			break
		}
	}
	for i := 1; i <= len(WeaponOrder); i++ {
		w := WeaponOrder[(start+i)%len(WeaponOrder)]
		if p.Owned[w] {
			return w
		}
	}
	return p.Weapon
}

var PlayerComponent = NewComponent[Player]()

// PlayerStats is the player prefab.
type PlayerStats struct {
	MaxHP         int
	Speed         float64
	Width, Height float64
	IFrames       int
	RespawnDelay  int
	Arsenal       map[Weapon]WeaponStats
}

func DefaultPlayerStats() PlayerStats {
	return PlayerStats{
		MaxHP:        100,
		Speed:        3,
		Width:        24,
		Height:       24,
		IFrames:      45,
		RespawnDelay: 120,
		Arsenal:      DefaultArsenal(),
	}
}
