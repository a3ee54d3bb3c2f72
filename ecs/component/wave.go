package component

import "github.com/milk9111/ironkeep/wave"

// WaveDirector binds an orchestrator and its rune puzzle to a level.
type WaveDirector struct {
	Orchestrator *wave.Orchestrator
	Runes        *wave.RunePuzzle
	// Arenas are the player's teleport points, one per arena index.
	Arenas       [][2]float64
	CurrentArena int
	TriggerX     float64
	TriggerY     float64
	TriggerR     float64
	ExitGate     string
	PuzzleGate   string
	RewardWeapon Weapon
	RewardBuffs  []Buff
	RewardTicks  int
	Rewarded     bool
}

// RuneStone is one touchable rune of the interlude puzzle.
type RuneStone struct {
	Index int
	Flash int
}

var WaveDirectorComponent = NewComponent[WaveDirector]()
var RuneStoneComponent = NewComponent[RuneStone]()
