package system

import (
	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
)

// KeeperSystem advances the castle keeper's dialogue when the player
// interacts in range. Lines wrap around.
type KeeperSystem struct{}

func NewKeeperSystem() *KeeperSystem { return &KeeperSystem{} }

func (s *KeeperSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	px, py, interact := interactPoint(w)
	if !interact {
		return
	}
	ecs.ForEach2(w, component.KeeperComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, k *component.Keeper, tr *component.Transform) {
		if len(k.Lines) == 0 {
			return
		}
		x, y := tr.Center()
		if common.Dist(px, py, x, y) > k.Range {
			return
		}
		line := k.Lines[k.Index%len(k.Lines)]
		k.Index = (k.Index + 1) % len(k.Lines)
		w.Emit(ecs.EventDialogue, ecs.Dialogue{Speaker: k.Name, Line: line})
		w.PlaySound("talk")
	})
}
