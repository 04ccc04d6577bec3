package clock

import (
	"sync"
	"time"

	bclock "github.com/benbjohnson/clock"
)

type timerState int

const (
	timerPending timerState = iota
	timerFired
	timerStopped
)

// FakeClock is a deterministic Clock on top of a benbjohnson/clock Mock.
// Time stands still until Advance, which fires due timers one deadline at a
// time and returns only after their callbacks have finished.
type FakeClock struct {
	mock *bclock.Mock

	mu       sync.Mutex
	timers   map[*fakeTimer]struct{}
	inFlight sync.WaitGroup
}

type fakeTimer struct {
	clock    *FakeClock
	deadline time.Time
	inner    *bclock.Timer
	state    timerState
	counted  bool // Advance is waiting on this timer
}

// Fake returns a FakeClock set to initial.
func Fake(initial time.Time) *FakeClock {
	m := bclock.NewMock()
	m.Set(initial)
	return &FakeClock{mock: m, timers: make(map[*fakeTimer]struct{})}
}

func (c *FakeClock) Now() time.Time { return c.mock.Now() }

func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, deadline: c.mock.Now().Add(d)}
	t.inner = c.mock.AfterFunc(d, func() { c.fire(t, f) })
	c.timers[t] = struct{}{}
	return t
}

func (c *FakeClock) fire(t *fakeTimer, f func()) {
	c.mu.Lock()
	t.state = timerFired
	counted := t.counted
	delete(c.timers, t)
	c.mu.Unlock()

	f()
	if counted {
		c.inFlight.Done()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves time forward by d and fires every timer that comes due,
// including timers scheduled by callbacks that fall inside the window.
func (c *FakeClock) Advance(d time.Duration) {
	target := c.mock.Now().Add(d)
	for {
		next, ok := c.markNextDue(target)
		if !ok {
			break
		}
		c.mock.Add(next.Sub(c.mock.Now()))
		c.inFlight.Wait()
	}
	if rest := target.Sub(c.mock.Now()); rest > 0 {
		c.mock.Add(rest)
	}
}

// markNextDue finds the earliest pending deadline not after target and
// registers every timer due at that instant with inFlight.
func (c *FakeClock) markNextDue(target time.Time) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var next time.Time
	found := false
	for t := range c.timers {
		if t.deadline.After(target) {
			continue
		}
		if !found || t.deadline.Before(next) {
			next, found = t.deadline, true
		}
	}
	if !found {
		return time.Time{}, false
	}
	for t := range c.timers {
		if t.deadline.Equal(next) && !t.counted {
			t.counted = true
			c.inFlight.Add(1)
		}
	}
	return next, true
}

func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.state != timerPending || !t.inner.Stop() {
		return false
	}
	t.state = timerStopped
	delete(c.timers, t)
	if t.counted {
		c.inFlight.Done()
	}
	return true
}
