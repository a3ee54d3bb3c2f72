package component

// Keeper is the castle keeper NPC. Interacting in range advances its lines.
type Keeper struct {
	Name  string
	Lines []string
	Index int
	Range float64
}

var KeeperComponent = NewComponent[Keeper]()
