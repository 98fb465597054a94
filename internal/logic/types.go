// Package logic contains the pure watchdog state: the activity latch, the
// timeout tracker and the build-time timing table.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
package logic

import (
	"errors"
	"fmt"
	"time"
)

// Build-time timing. These are not runtime configurable.
const (
	TickPeriod                = 100 * time.Millisecond
	TimeoutDuration           = 3 * time.Minute
	ResetPulseDuration        = 500 * time.Millisecond
	ActivityIndicatorDuration = 200 * time.Millisecond
	TimeoutIndicatorDuration  = 15100 * time.Millisecond
	SelfTestDuration          = 3 * time.Second
)

// Timing groups the durations the watchdog runs on.
type Timing struct {
	TickPeriod        time.Duration
	Timeout           time.Duration
	ResetPulse        time.Duration
	ActivityIndicator time.Duration
	TimeoutIndicator  time.Duration
	SelfTest          time.Duration
}

// DefaultTiming returns the compiled-in timing table.
func DefaultTiming() Timing {
	return Timing{
		TickPeriod:        TickPeriod,
		Timeout:           TimeoutDuration,
		ResetPulse:        ResetPulseDuration,
		ActivityIndicator: ActivityIndicatorDuration,
		TimeoutIndicator:  TimeoutIndicatorDuration,
		SelfTest:          SelfTestDuration,
	}
}

// Ticks converts d to whole ticks, truncating any remainder.
func (t Timing) Ticks(d time.Duration) uint32 {
	if t.TickPeriod <= 0 || d <= 0 {
		return 0
	}
	return uint32(d / t.TickPeriod)
}

// TimeoutTicks is the number of idle ticks before a reset fires.
func (t Timing) TimeoutTicks() uint32 { return t.Ticks(t.Timeout) }

// ActivityIndicatorTicks is the activity LED window in ticks.
func (t Timing) ActivityIndicatorTicks() uint32 { return t.Ticks(t.ActivityIndicator) }

// TimeoutIndicatorTicks is the timeout LED window in ticks.
func (t Timing) TimeoutIndicatorTicks() uint32 { return t.Ticks(t.TimeoutIndicator) }

// Validate reports whether the timing table can drive a watchdog.
// Indicator windows may be zero, which leaves that LED dark.
func (t Timing) Validate() error {
	if t.TickPeriod <= 0 {
		return errors.New("tick period must be positive")
	}
	if t.TimeoutTicks() < 1 {
		return fmt.Errorf("timeout %v is shorter than one tick (%v)", t.Timeout, t.TickPeriod)
	}
	if t.ResetPulse <= 0 {
		return errors.New("reset pulse must be positive")
	}
	return nil
}

// Counts tracks watchdog activity since startup.
type Counts struct {
	Kicks  int // ticks in which activity was observed
	Resets int
}
