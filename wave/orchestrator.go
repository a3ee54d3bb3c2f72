package wave

// State is the orchestrator's phase.
type State int

const (
	Idle State = iota
	Pause
	Active
	Puzzle
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pause:
		return "pause"
	case Active:
		return "active"
	case Puzzle:
		return "puzzle"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Spawn places Count enemies of one archetype around X, Y.
type Spawn struct {
	Archetype string  `yaml:"archetype"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Count     int     `yaml:"count"`
}

// Wave is one batch spawned together in one arena.
type Wave struct {
	Arena  int     `yaml:"arena"`
	Spawns []Spawn `yaml:"spawns"`
}

// Config describes a full wave level.
type Config struct {
	Waves      []Wave `yaml:"waves"`
	PauseTicks int    `yaml:"pause_ticks"`
	// PuzzleAfter is the wave whose clearing opens the rune puzzle
	// interlude. Zero disables the interlude.
	PuzzleAfter int `yaml:"puzzle_after"`
}

// Step reports what happened during one Tick so the caller can apply side
// effects exactly once.
type Step struct {
	// Spawn is set on the tick a wave goes active; it is never set twice for
	// the same wave number.
	Spawn      *Wave
	WaveNumber int
	// Cleared is the wave number that was just cleared, or 0.
	Cleared       int
	PuzzleStarted bool
	// Completed is true only on the tick the final wave is cleared.
	Completed bool
}

// Orchestrator drives wave spawning as idle -> pause -> active -> ... ->
// complete, with an optional puzzle interlude. It holds no world state; the
// caller feeds it the live enemy count.
type Orchestrator struct {
	cfg        Config
	state      State
	current    int
	spawned    int
	pause      int
	cleared    bool
	puzzleDone bool
}

func NewOrchestrator(cfg Config) *Orchestrator {
	if cfg.PauseTicks < 0 {
		cfg.PauseTicks = 0
	}
	return &Orchestrator{cfg: cfg}
}

func (o *Orchestrator) State() State {
	if o == nil {
		return Idle
	}
	return o.state
}

// CurrentWave is the 1-based wave being prepared or fought, 0 before the
// first trigger.
func (o *Orchestrator) CurrentWave() int {
	if o == nil {
		return 0
	}
	return o.current
}

func (o *Orchestrator) TotalWaves() int {
	if o == nil {
		return 0
	}
	return len(o.cfg.Waves)
}

// WavesCleared becomes true once, when the final wave is cleared.
func (o *Orchestrator) WavesCleared() bool {
	return o != nil && o.cleared
}

// PauseRemaining is the countdown before the next wave goes active.
func (o *Orchestrator) PauseRemaining() int {
	if o == nil || o.state != Pause {
		return 0
	}
	return o.pause
}

// Arena returns the arena index of the current wave.
func (o *Orchestrator) Arena() int {
	if o == nil || o.current < 1 || o.current > len(o.cfg.Waves) {
		return 0
	}
	return o.cfg.Waves[o.current-1].Arena
}

// Trigger starts the first wave's countdown. Only valid from idle.
func (o *Orchestrator) Trigger() bool {
	if o == nil || o.state != Idle || len(o.cfg.Waves) == 0 {
		return false
	}
	o.current = 1
	o.enterPause()
	return true
}

// ResumeAt restarts a fresh orchestrator in the countdown before wave n.
// It is used after the player respawns so progress is not lost. Waves before
// n count as already spawned; the puzzle interlude counts as done when n is
// past it.
func (o *Orchestrator) ResumeAt(n int) bool {
	if o == nil || o.state != Idle || n < 1 || n > len(o.cfg.Waves) {
		return false
	}
	o.current = n
	o.spawned = n - 1
	o.puzzleDone = o.cfg.PuzzleAfter > 0 && n > o.cfg.PuzzleAfter
	o.enterPause()
	return true
}

func (o *Orchestrator) enterPause() {
	o.state = Pause
	o.pause = o.cfg.PauseTicks
}

// Tick advances the orchestrator by one simulation step. live is the number
// of spawned enemies of the current wave still alive.
func (o *Orchestrator) Tick(live int) Step {
	var step Step
	if o == nil {
		return step
	}
	switch o.state {
	case Pause:
		if o.pause > 0 {
			o.pause--
		}
		if o.pause > 0 {
			return step
		}
		o.state = Active
		if o.spawned < o.current {
			o.spawned = o.current
			step.Spawn = &o.cfg.Waves[o.current-1]
			step.WaveNumber = o.current
		}
	case Active:
		if live > 0 {
			return step
		}
		step.Cleared = o.current
		switch {
		case o.current >= len(o.cfg.Waves):
			o.state = Complete
			if !o.cleared {
				o.cleared = true
				step.Completed = true
			}
		case o.cfg.PuzzleAfter == o.current && !o.puzzleDone:
			o.state = Puzzle
			step.PuzzleStarted = true
		default:
			o.current++
			o.enterPause()
		}
	}
	return step
}

// SolvePuzzle ends the interlude and starts the next countdown.
func (o *Orchestrator) SolvePuzzle() bool {
	if o == nil || o.state != Puzzle {
		return false
	}
	o.puzzleDone = true
	o.current++
	o.enterPause()
	return true
}
