package logic

// TimeoutTracker counts consecutive ticks without activity.
type TimeoutTracker struct {
	threshold uint32
	count     uint32
}

// NewTimeoutTracker creates a tracker that fires after threshold idle ticks.
// A threshold of zero is treated as one.
func NewTimeoutTracker(threshold uint32) *TimeoutTracker {
	if threshold == 0 {
		threshold = 1
	}
	return &TimeoutTracker{threshold: threshold}
}

// OnTick advances the tracker by one tick and reports whether it fired.
// Activity in a tick always wins over reaching the threshold in that tick.
func (t *TimeoutTracker) OnTick(activity bool) bool {
	if activity {
		t.count = 0
		return false
	}

	t.count++
	if t.count >= t.threshold {
		t.count = 0
		return true
	}
	return false
}

// Count returns the current number of idle ticks.
func (t *TimeoutTracker) Count() uint32 {
	return t.count
}

// Threshold returns the idle tick count at which the tracker fires.
func (t *TimeoutTracker) Threshold() uint32 {
	return t.threshold
}
