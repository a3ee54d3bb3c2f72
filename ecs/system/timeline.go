package system

import "github.com/milk9111/ironkeep/ecs"

// TimelineSystem runs delayed effects that have come due this tick.
type TimelineSystem struct{}

func NewTimelineSystem() *TimelineSystem { return &TimelineSystem{} }

func (s *TimelineSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Timeline().RunDue(w)
}
