package component

// FloatingText is a short-lived label ("BLOCKED", damage numbers) that
// drifts upward until its TTL runs out.
type FloatingText struct {
	Text string
	VY   float64
}

var FloatingTextComponent = NewComponent[FloatingText]()
