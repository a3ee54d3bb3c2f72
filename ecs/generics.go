package ecs

import "github.com/milk9111/ironkeep/ecs/component"

// CreateEntity allocates a new alive entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component and frees the slot immediately.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.exists(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e.id())
	}
	return w.entities.release(e)
}

// Kill flags e as no longer alive. Its components stay readable through Get
// until Compact runs, but iteration and queries skip it.
func Kill(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.kill(e)
}

// Compact destroys every killed entity and returns how many slots were
// reclaimed.
func Compact(w *World) int {
	if w == nil {
		return 0
	}
	n := 0
	for _, e := range w.entities.killed() {
		if DestroyEntity(w, e) {
			n++
		}
	}
	return n
}

// IsAlive reports whether e is valid and not killed.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Exists reports whether e still owns its slot, alive or killed.
func Exists(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.exists(e)
}

// Entities lists alive entities.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func AliveCount(w *World) int {
	if w == nil {
		return 0
	}
	return w.entities.aliveCount()
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.exists(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.exists(e) {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).Get(e.id()).(*T)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.exists(e) {
		return false
	}
	return w.store(kind.ID(), false).Has(e.id())
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.exists(e) {
		return false
	}
	return w.store(kind.ID(), false).Remove(e.id())
}

// First returns the first alive entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return 0, false
	}
	for _, id := range s.denseEntities {
		e := w.entities.entityFor(id)
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits alive entities carrying kind. The slot list is snapshotted
// first, so fn may create, kill, or strip entities.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(kind.ID(), false)
	for _, id := range s.snapshot() {
		e := w.entities.entityFor(id)
		if !w.entities.isAlive(e) {
			continue
		}
		v, ok := s.Get(id).(*T)
		if !ok || v == nil {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB && IsAlive(w, e) {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC && IsAlive(w, e) {
			fn(e, a, b, c)
		}
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka, kb, kc, kd) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		d, okD := Get(w, e, kd)
		if okA && okB && okC && okD && IsAlive(w, e) {
			fn(e, a, b, c, d)
		}
	}
}
