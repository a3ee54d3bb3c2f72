package component

// Gate mirrors a gate registered with the physics world. Open only latches
// true.
type Gate struct {
	ID   string
	Open bool
}

// ExitZone completes the level when the player stands in it and its gate is
// open. An empty GateID is always open.
type ExitZone struct {
	GateID string
	Used   bool
}

var GateComponent = NewComponent[Gate]()
var ExitZoneComponent = NewComponent[ExitZone]()
