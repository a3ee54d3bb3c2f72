package component

// Hazard damages the player every Interval ticks while they overlap the
// entity's transform.
type Hazard struct {
	Damage   int
	Interval int
	Timer    int
	Kind     string
}

var HazardComponent = NewComponent[Hazard]()
