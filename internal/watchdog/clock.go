package watchdog

import (
	"context"
	"errors"
	"time"
)

// ErrClockStopped is returned by ChanClock.Wait once its channel is closed.
var ErrClockStopped = errors.New("tick clock stopped")

// TickClock paces the main loop. Wait is the loop's only suspension point
// apart from a reset pulse.
type TickClock interface {
	// Wait blocks for one tick, or returns ctx.Err() if ctx ends first.
	Wait(ctx context.Context) error
}

// SleepClock waits a full period on every call, measured from the call.
// Time spent in the loop body is not counted against the next tick.
type SleepClock struct {
	Period time.Duration
}

// Wait sleeps for c.Period.
func (c SleepClock) Wait(ctx context.Context) error {
	t := time.NewTimer(c.Period)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ChanClock ticks whenever a value arrives on C. A closed C ends the loop
// with ErrClockStopped.
type ChanClock struct {
	C <-chan time.Time
}

// Wait blocks until the next value on c.C.
func (c ChanClock) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case _, ok := <-c.C:
		if !ok {
			return ErrClockStopped
		}
		return nil
	}
}
