package component

// Input stores the intents translated from raw host input for one tick.
// Edge-triggered intents (Attack, NextWeapon, Interact, Help) are true only
// on the tick the key went down.
type Input struct {
	MoveX, MoveY float64
	Attack       bool
	NextWeapon   bool
	// SelectWeapon is a 1-based slot in WeaponOrder, 0 for none.
	SelectWeapon int
	Interact     bool
	Help         bool
}

var InputComponent = NewComponent[Input]()
