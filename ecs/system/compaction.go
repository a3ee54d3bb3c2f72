package system

import "github.com/milk9111/ironkeep/ecs"

const defaultCompactEvery = 120

// CompactionSystem periodically destroys entities that were killed but kept
// in place so handles held by other systems stayed valid in the meantime.
type CompactionSystem struct {
	Every int
}

func NewCompactionSystem() *CompactionSystem {
	return &CompactionSystem{Every: defaultCompactEvery}
}

func (s *CompactionSystem) Update(w *ecs.World) {
	if w == nil || s.Every <= 0 || w.Tick()%uint64(s.Every) != 0 {
		return
	}
	if n := ecs.Compact(w); n > 0 {
		w.Logger().Debug().Int("destroyed", n).Uint64("tick", w.Tick()).Msg("compacted dead entities")
	}
}
