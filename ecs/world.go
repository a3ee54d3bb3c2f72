package ecs

import (
	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs/component"
	"github.com/rs/zerolog"
)

// SoundSink receives named sound cues such as "hit" or "victory". The host
// resolves names to actual audio.
type SoundSink interface {
	Play(name string)
}

// World owns the entity arena, component stores, and the per-session
// resources every system reads.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet

	events   EventQueue
	timeline Timeline
	tick     uint64

	logger  zerolog.Logger
	rng     *common.RNG
	sounds  SoundSink
	physics *PhysicsWorld
}

// NewWorld creates an empty ECS world with a silent logger and a time-seeded
// RNG.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
		logger: zerolog.Nop(),
		rng:    common.NewRNG(0),
	}
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

// Tick returns the number of completed simulation steps.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// AdvanceTick closes the current step. Timeline entries scheduled "in n
// ticks" count from here.
func (w *World) AdvanceTick() {
	if w == nil {
		return
	}
	w.tick++
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Emit pushes an event for the host.
func (w *World) Emit(kind string, data any) {
	if w == nil {
		return
	}
	w.events.Push(Event{Type: kind, Tick: w.tick, Data: data})
}

// PlaySound forwards a cue to the sound sink and records it as an event.
func (w *World) PlaySound(name string) {
	if w == nil || name == "" {
		return
	}
	if w.sounds != nil {
		w.sounds.Play(name)
	}
	w.Emit(EventSound, name)
}

func (w *World) SetSoundSink(s SoundSink) {
	if w == nil {
		return
	}
	w.sounds = s
}

func (w *World) Timeline() *Timeline {
	if w == nil {
		return nil
	}
	return &w.timeline
}

func (w *World) SetLogger(l zerolog.Logger) {
	if w == nil {
		return
	}
	w.logger = l
}

// Logger returns a pointer so callers can chain zerolog events without
// copying the logger on every call.
func (w *World) Logger() *zerolog.Logger {
	if w == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return &w.logger
}

func (w *World) SetRNG(r *common.RNG) {
	if w == nil || r == nil {
		return
	}
	w.rng = r
}

func (w *World) RNG() *common.RNG {
	if w == nil {
		return nil
	}
	return w.rng
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physics = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physics
}

// Query returns alive entities that carry every listed component kind.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	var out []Entity
	for _, id := range smallest.snapshot() {
		e := w.entities.entityFor(id)
		if !w.entities.isAlive(e) {
			continue
		}
		all := true
		for _, s := range sets {
			if !s.Has(id) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}
