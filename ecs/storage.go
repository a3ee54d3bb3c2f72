package ecs

import "math/bits"

// entityStore is the entity arena. Slots are 1-based and stable for the life
// of an entity. The alive bitset is separate from the generation table so an
// entity can be killed (filtered from iteration) while its slot and
// components stay addressable until the next compaction.
type entityStore struct {
	gen   []generation
	alive []uint64
	live  []bool
	free  []entityID
	count int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.live = append(s.live, false)
		id = entityID(len(s.gen))
		for int(id)/64 >= len(s.alive) {
			s.alive = append(s.alive, 0)
		}
	}
	s.live[id-1] = true
	s.setAlive(id, true)
	s.count++
	return makeEntity(id, s.gen[id-1])
}

// exists reports whether e still owns its slot, alive or killed.
func (s *entityStore) exists(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.live[id-1] && s.gen[id-1] == e.generation()
}

func (s *entityStore) isAlive(e Entity) bool {
	return s.exists(e) && s.aliveBit(e.id())
}

func (s *entityStore) kill(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.setAlive(e.id(), false)
	return true
}

// release frees the slot and bumps its generation so stale handles stop
// resolving.
func (s *entityStore) release(e Entity) bool {
	if !s.exists(e) {
		return false
	}
	id := e.id()
	s.setAlive(id, false)
	s.live[id-1] = false
	s.gen[id-1]++
	s.free = append(s.free, id)
	s.count--
	return true
}

// killed lists slots that exist but are no longer alive.
func (s *entityStore) killed() []Entity {
	var out []Entity
	for i, ok := range s.live {
		id := entityID(i + 1)
		if ok && !s.aliveBit(id) {
			out = append(out, makeEntity(id, s.gen[i]))
		}
	}
	return out
}

func (s *entityStore) aliveCount() int {
	n := 0
	for _, word := range s.alive {
		n += bits.OnesCount64(word)
	}
	return n
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, s.count)
	for i, ok := range s.live {
		id := entityID(i + 1)
		if ok && s.aliveBit(id) {
			out = append(out, makeEntity(id, s.gen[i]))
		}
	}
	return out
}

func (s *entityStore) entityFor(id entityID) Entity {
	if id == 0 || int(id) > len(s.gen) {
		return 0
	}
	return makeEntity(id, s.gen[id-1])
}

func (s *entityStore) aliveBit(id entityID) bool {
	word := int(id) / 64
	if word >= len(s.alive) {
		return false
	}
	return s.alive[word]&(1<<(uint(id)%64)) != 0
}

func (s *entityStore) setAlive(id entityID, v bool) {
	word := int(id) / 64
	for word >= len(s.alive) {
		s.alive = append(s.alive, 0)
	}
	if v {
		s.alive[word] |= 1 << (uint(id) % 64)
	} else {
		s.alive[word] &^= 1 << (uint(id) % 64)
	}
}
