package clock

import (
	"sync"
	"testing"
	"time"
)

func TestFakeClock_AdvanceFiresInDeadlineOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Fake(start)

	var order []string
	c.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	c.AfterFunc(1*time.Second, func() { order = append(order, "a") })
	c.AfterFunc(2*time.Second, func() {
		order = append(order, "b")
		c.AfterFunc(500*time.Millisecond, func() { order = append(order, "b2") })
	})

	c.Advance(2 * time.Second)
	if got := len(order); got != 2 {
		t.Fatalf("fired %d timers after 2s, want 2 (%v)", got, order)
	}
	c.Advance(time.Second)

	want := []string{"a", "b", "b2", "c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if !c.Now().Equal(start.Add(3 * time.Second)) {
		t.Fatalf("Now = %v, want %v", c.Now(), start.Add(3*time.Second))
	}
}

func TestFakeClock_Stop(t *testing.T) {
	c := Fake(time.Unix(0, 0))
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if c.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", c.Pending())
	}
	if !timer.Stop() {
		t.Fatalf("Stop on pending timer returned false")
	}
	if timer.Stop() {
		t.Fatalf("second Stop returned true")
	}
	c.Advance(2 * time.Second)
	if fired {
		t.Fatalf("stopped timer fired")
	}
	if c.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", c.Pending())
	}
}

func TestFakeClock_CallbackStopsSiblingAtSameDeadline(t *testing.T) {
	c := Fake(time.Unix(0, 0))
	var sibling Timer
	var mu sync.Mutex
	fired := 0
	first := func() {
		mu.Lock()
		fired++
		mu.Unlock()
		sibling.Stop()
	}
	c.AfterFunc(time.Second, first)
	sibling = c.AfterFunc(time.Second, first)

	c.Advance(time.Second)
	mu.Lock()
	defer mu.Unlock()
	if fired < 1 || fired > 2 {
		t.Fatalf("fired = %d, want 1 or 2", fired)
	}
	if c.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", c.Pending())
	}
}

func TestRealClock_AfterFuncFires(t *testing.T) {
	c := Real()
	done := make(chan struct{})
	c.AfterFunc(5*time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("real timer did not fire")
	}
	if c.AfterFunc(time.Hour, func() {}).Stop() != true {
		t.Fatal("Stop on a pending real timer returned false")
	}
}
