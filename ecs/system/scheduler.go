package system

import "github.com/milk9111/ironkeep/ecs"

// NewGameScheduler wires every simulation system in tick order. The order is
// load-bearing: timers tick after everything that reads them, and compaction
// runs last so no system sees a destroyed handle mid-tick.
func NewGameScheduler() *ecs.Scheduler {
	return ecs.NewScheduler(
		NewTimelineSystem(),
		NewPlayerControllerSystem(),
		NewAuraSystem(),
		NewEnemyBehaviorSystem(),
		NewBossSystem(),
		NewProjectileSystem(),
		NewHazardSystem(),
		NewPickupCollectSystem(),
		NewCircuitSystem(),
		NewWaveSystem(),
		NewKeeperSystem(),
		NewExitSystem(),
		NewTimerSystem(),
		NewTTLSystem(),
		NewRespawnSystem(),
		NewCompactionSystem(),
	)
}
