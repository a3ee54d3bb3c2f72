package component

// Health is written only by the combat resolver. Dead flips once and never
// back within a level.
type Health struct {
	Max      int
	Current  int
	IFrames  int
	HitFlash int
	Dead     bool
}

func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

var HealthComponent = NewComponent[Health]()
