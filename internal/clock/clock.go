// Package clock is the time seam used by the retry and pulse timers.
// Production code uses Real(); tests use Fake() and advance time by hand.
package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
)

// Clock provides the current time and one-shot callback timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call. It reports false if the timer already fired or was stopped.
	Stop() bool
}

type realClock struct {
	clock bclock.Clock
}

// Real returns the wall clock.
func Real() Clock { return realClock{clock: bclock.New()} }

func (c realClock) Now() time.Time { return c.clock.Now() }

func (c realClock) AfterFunc(d time.Duration, f func()) Timer { return c.clock.AfterFunc(d, f) }
