package component

type Weapon string

const (
	WeaponSword   Weapon = "sword"
	WeaponHalberd Weapon = "halberd"
	WeaponChain   Weapon = "chain"
	WeaponBow     Weapon = "bow"
	WeaponHammer  Weapon = "hammer"
)

// WeaponOrder is the cycling and slot order.
var WeaponOrder = []Weapon{WeaponSword, WeaponHalberd, WeaponChain, WeaponBow, WeaponHammer}

// WeaponKind decides how a swing is resolved.
type WeaponKind int

const (
	WeaponMelee WeaponKind = iota
	WeaponPierce
	WeaponArea
	WeaponRanged
)

type WeaponStats struct {
	Kind     WeaponKind
	Damage   int
	Cooldown int
	// Reach is how far the hit box extends from the wielder's edge. For area
	// weapons it is the radius around the wielder's center.
	Reach float64
	Width float64
	// ComboStep is added per consecutive hit up to ComboMax steps; the combo
	// lapses after ComboWindow idle ticks.
	ComboStep   int
	ComboMax    int
	ComboWindow int
	// ProjectileSpeed is used by ranged weapons.
	ProjectileSpeed float64
}

// DefaultArsenal is used when no player prefab overrides it.
func DefaultArsenal() map[Weapon]WeaponStats {
	return map[Weapon]WeaponStats{
		WeaponSword:   {Kind: WeaponMelee, Damage: 20, Cooldown: 18, Reach: 34, Width: 30},
		WeaponHalberd: {Kind: WeaponPierce, Damage: 25, Cooldown: 28, Reach: 60, Width: 18},
		WeaponChain:   {Kind: WeaponMelee, Damage: 15, Cooldown: 14, Reach: 44, Width: 26, ComboStep: 5, ComboMax: 3, ComboWindow: 40},
		WeaponBow:     {Kind: WeaponRanged, Damage: 18, Cooldown: 24, ProjectileSpeed: 7},
		WeaponHammer:  {Kind: WeaponArea, Damage: 30, Cooldown: 45, Reach: 70},
	}
}

// ParseWeapon maps a configuration name to a weapon.
func ParseWeapon(name string) (Weapon, bool) {
	for _, w := range WeaponOrder {
		if string(w) == name {
			return w, true
		}
	}
	return "", false
}
