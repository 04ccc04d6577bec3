package repository

import (
	"sync"
	"time"

	"neuronwatch"
)

// DefaultLogCapacity is the number of entries the event log keeps.
const DefaultLogCapacity = 300

// EventRing is a fixed-capacity FIFO of log entries. When full, appending
// evicts the oldest entry. Ids increase monotonically and are never reused,
// not even across Reset. Safe for concurrent use.
type EventRing struct {
	mu     sync.RWMutex
	buf    []neuronwatch.LogEntry
	start  int // index of the oldest entry
	size   int
	lastID uint64
}

func NewEventRing(capacity int) *EventRing {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &EventRing{buf: make([]neuronwatch.LogEntry, capacity)}
}

// Append assigns the next id, stamps ReceivedAt if unset, and stores e.
func (r *EventRing) Append(e neuronwatch.LogEntry) neuronwatch.LogEntry {
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	e.ID = r.lastID

	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = e
		r.size++
		return e
	}
	r.buf[r.start] = e
	r.start = (r.start + 1) % len(r.buf)
	return e
}

// List returns the retained entries, oldest first.
func (r *EventRing) List() []neuronwatch.LogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]neuronwatch.LogEntry, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

func (r *EventRing) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// Reset drops every entry but keeps the id sequence.
func (r *EventRing) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.buf {
		r.buf[i] = neuronwatch.LogEntry{}
	}
	r.start, r.size = 0, 0
}
