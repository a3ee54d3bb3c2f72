package ecs

import "container/heap"

// Timeline is the single home for delayed effects. Entries are keyed by the
// world tick they are due on, so a delayed action runs inside the normal
// update pass and sees the world as it is at that tick.
type Timeline struct {
	items timelineHeap
	seq   uint64
}

type timelineEntry struct {
	at  uint64
	seq uint64
	tag string
	fn  func(w *World)
}

type timelineHeap []*timelineEntry

func (h timelineHeap) Len() int { return len(h) }

func (h timelineHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h timelineHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timelineHeap) Push(x any) { *h = append(*h, x.(*timelineEntry)) }

func (h *timelineHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// After schedules fn to run delay ticks from now. Entries due on the same
// tick run in scheduling order.
func (w *World) After(delay int, tag string, fn func(w *World)) {
	if w == nil || fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	w.timeline.schedule(w.tick+uint64(delay), tag, fn)
}

func (t *Timeline) schedule(at uint64, tag string, fn func(w *World)) {
	t.seq++
	heap.Push(&t.items, &timelineEntry{at: at, seq: t.seq, tag: tag, fn: fn})
}

// RunDue runs every entry due at or before the world's current tick.
func (t *Timeline) RunDue(w *World) int {
	if t == nil || w == nil {
		return 0
	}
	ran := 0
	for len(t.items) > 0 && t.items[0].at <= w.tick {
		it := heap.Pop(&t.items).(*timelineEntry)
		it.fn(w)
		ran++
	}
	return ran
}

// Cancel drops every pending entry carrying tag.
func (t *Timeline) Cancel(tag string) int {
	if t == nil {
		return 0
	}
	kept := t.items[:0]
	dropped := 0
	for _, it := range t.items {
		if it.tag == tag {
			dropped++
			continue
		}
		kept = append(kept, it)
	}
	for i := len(kept); i < len(t.items); i++ {
		t.items[i] = nil
	}
	t.items = kept
	heap.Init(&t.items)
	return dropped
}

func (t *Timeline) Pending(tag string) int {
	if t == nil {
		return 0
	}
	n := 0
	for _, it := range t.items {
		if tag == "" || it.tag == tag {
			n++
		}
	}
	return n
}
