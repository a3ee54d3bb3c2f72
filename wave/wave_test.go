package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sevenWaves() Config {
	cfg := Config{PauseTicks: 3, PuzzleAfter: 4}
	for i := 1; i <= 7; i++ {
		arena := 0
		if i > 4 {
			arena = 1
		}
		cfg.Waves = append(cfg.Waves, Wave{Arena: arena, Spawns: []Spawn{{Archetype: "knight", Count: i}}})
	}
	return cfg
}

// run ticks until the orchestrator spawns, returning the spawned wave number.
func runUntilSpawn(t *testing.T, o *Orchestrator) Step {
	t.Helper()
	for i := 0; i < 100; i++ {
		if step := o.Tick(0); step.Spawn != nil {
			return step
		}
	}
	t.Fatalf("orchestrator never spawned (state %s)", o.State())
	return Step{}
}

func TestIdleWaitsForTrigger(t *testing.T) {
	o := NewOrchestrator(sevenWaves())
	for i := 0; i < 10; i++ {
		assert.Equal(t, Step{}, o.Tick(0))
	}
	assert.Equal(t, Idle, o.State())
	require.True(t, o.Trigger())
	assert.False(t, o.Trigger(), "trigger is only valid from idle")
	assert.Equal(t, Pause, o.State())
	assert.Equal(t, 1, o.CurrentWave())
}

func TestWaveProgressionIsMonotonic(t *testing.T) {
	o := NewOrchestrator(sevenWaves())
	require.True(t, o.Trigger())

	spawned := map[int]int{}
	last := 0
	completions := 0
	for tick := 0; tick < 2000 && o.State() != Complete; tick++ {
		live := 0
		if o.State() == Active && tick%5 != 0 {
			live = 1
		}
		step := o.Tick(live)
		if step.Spawn != nil {
			spawned[step.WaveNumber]++
		}
		if step.Completed {
			completions++
		}
		if step.Cleared > 0 {
			assert.Equal(t, last+1, step.Cleared, "waves clear strictly in order")
			last = step.Cleared
		}
		if step.PuzzleStarted {
			assert.Equal(t, 4, o.CurrentWave())
			for i := 0; i < 20; i++ {
				assert.Equal(t, Step{}, o.Tick(0), "puzzle interlude suspends spawning")
			}
			require.True(t, o.SolvePuzzle())
		}
		assert.GreaterOrEqual(t, o.CurrentWave(), last)
	}

	assert.Equal(t, Complete, o.State())
	assert.Equal(t, 7, last)
	assert.Equal(t, 1, completions)
	assert.True(t, o.WavesCleared())
	for n := 1; n <= 7; n++ {
		assert.Equal(t, 1, spawned[n], "wave %d spawn count", n)
	}

	for i := 0; i < 10; i++ {
		assert.False(t, o.Tick(0).Completed, "completion fires once")
	}
}

func TestActiveWaitsForLiveEnemies(t *testing.T) {
	o := NewOrchestrator(sevenWaves())
	o.Trigger()
	step := runUntilSpawn(t, o)
	assert.Equal(t, 1, step.WaveNumber)

	for i := 0; i < 50; i++ {
		assert.Equal(t, Step{}, o.Tick(2))
	}
	step = o.Tick(0)
	assert.Equal(t, 1, step.Cleared)
	assert.Equal(t, 2, o.CurrentWave())
	assert.Equal(t, Pause, o.State())
}

func TestResumeAtTargetsSavedWave(t *testing.T) {
	o := NewOrchestrator(sevenWaves())
	require.True(t, o.ResumeAt(5))
	assert.Equal(t, Pause, o.State())
	assert.Equal(t, 5, o.CurrentWave())
	assert.Equal(t, 3, o.PauseRemaining())

	step := runUntilSpawn(t, o)
	assert.Equal(t, 5, step.WaveNumber)
	assert.Equal(t, 1, o.Arena())

	assert.False(t, o.ResumeAt(2), "resume only applies to a fresh orchestrator")
	assert.False(t, NewOrchestrator(sevenWaves()).ResumeAt(8))
}

func TestResumePastPuzzleSkipsInterlude(t *testing.T) {
	cfg := sevenWaves()
	o := NewOrchestrator(cfg)
	require.True(t, o.ResumeAt(4))
	runUntilSpawn(t, o)
	step := o.Tick(0)
	assert.True(t, step.PuzzleStarted, "wave 4 still owes the interlude")

	o = NewOrchestrator(cfg)
	require.True(t, o.ResumeAt(5))
	runUntilSpawn(t, o)
	step = o.Tick(0)
	assert.False(t, step.PuzzleStarted)
	assert.Equal(t, 6, o.CurrentWave())
}

func TestRunePuzzle(t *testing.T) {
	p := NewRunePuzzle([]int{2, 0, 3, 1})
	assert.Equal(t, PressCorrect, p.Press(2))
	assert.Equal(t, PressCorrect, p.Press(0))
	assert.Equal(t, PressWrong, p.Press(1))
	assert.Equal(t, 0, p.Progress())
	assert.Equal(t, PressWrong, p.Press(3))

	assert.Equal(t, PressCorrect, p.Press(2))
	assert.Equal(t, PressCorrect, p.Press(0))
	assert.Equal(t, 2, p.Progress())
	assert.Equal(t, PressCorrect, p.Press(3))
	assert.Equal(t, PressSolved, p.Press(1))
	assert.True(t, p.Solved())
	assert.Equal(t, PressIgnored, p.Press(2))
	assert.Equal(t, 2, p.Mistakes())
}

func TestRunePuzzleWrongOpeningCountsAsFirstStep(t *testing.T) {
	p := NewRunePuzzle([]int{1, 1, 2})
	p.Press(1)
	p.Press(1)
	assert.Equal(t, PressWrong, p.Press(1))
	assert.Equal(t, 1, p.Progress())
}
