package component

type PickupKind string

const (
	PickupHealth PickupKind = "health"
	PickupWeapon PickupKind = "weapon"
	PickupBuff   PickupKind = "buff"
)

// Pickup is collected at most once; Collected latches before any effect is
// applied.
type Pickup struct {
	Kind      PickupKind
	Weapon    Weapon
	Buff      Buff
	Amount    int
	Ticks     int
	Collected bool
}

var PickupComponent = NewComponent[Pickup]()
