package service

import (
	"sort"
	"sync"
	"time"

	"neuronwatch/internal/clock"
)

// DefaultPulseWindow is how long a neuron stays highlighted after a heartbeat.
const DefaultPulseWindow = 4 * time.Second

// PulseTracker keeps a short-lived "recently beat" flag per neuron identity.
//
// Expiry timers are never cancelled. Each one carries the counter value at
// the time it was scheduled and only clears the flag if no newer beat arrived.
type PulseTracker struct {
	mu       sync.Mutex
	clock    clock.Clock
	window   time.Duration
	counters map[string]uint64
	lit      map[string]struct{}
}

func NewPulseTracker(clk clock.Clock, window time.Duration) *PulseTracker {
	if window <= 0 {
		window = DefaultPulseWindow
	}
	return &PulseTracker{
		clock:    clk,
		window:   window,
		counters: make(map[string]uint64),
		lit:      make(map[string]struct{}),
	}
}

// Beat lights the pulse for id and returns its new counter value.
func (p *PulseTracker) Beat(id string) uint64 {
	p.mu.Lock()
	p.counters[id]++
	n := p.counters[id]
	p.lit[id] = struct{}{}
	p.mu.Unlock()

	p.clock.AfterFunc(p.window, func() { p.expire(id, n) })
	return n
}

func (p *PulseTracker) expire(id string, n uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.counters[id] != n {
		return
	}
	delete(p.lit, id)
}

func (p *PulseTracker) IsPulsing(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.lit[id]
	return ok
}

// Pulsing returns the identities currently lit, sorted.
func (p *PulseTracker) Pulsing() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.lit))
	for id := range p.lit {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
