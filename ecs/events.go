package ecs

// Event types pushed by the simulation for the host.
const (
	EventSound         = "sound"
	EventFloatingText  = "floating_text"
	EventDialogue      = "dialogue"
	EventBossPhase     = "boss_phase"
	EventBossDefeated  = "boss_defeated"
	EventWaveStarted   = "wave_started"
	EventWaveCleared   = "wave_cleared"
	EventWavesComplete = "waves_complete"
	EventPuzzleSolved  = "puzzle_solved"
	EventGateOpened    = "gate_opened"
	EventPlayerDied    = "player_died"
	EventLevelExit     = "level_exit"
	EventRespawn       = "respawn"
)

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Tick uint64
	Data any
}

// FloatingText is the payload of EventFloatingText.
type FloatingText struct {
	Text string
	X, Y float64
}

// Dialogue is the payload of EventDialogue.
type Dialogue struct {
	Speaker string
	Line    string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports queued events without draining them.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
