package logic

import "testing"

func TestNewTimeoutTracker(t *testing.T) {
	tr := NewTimeoutTracker(1800)
	if tr.Threshold() != 1800 {
		t.Errorf("expected threshold 1800, got %d", tr.Threshold())
	}
	if tr.Count() != 0 {
		t.Errorf("expected count 0, got %d", tr.Count())
	}
}

func TestTimeoutTrackerZeroThreshold(t *testing.T) {
	tr := NewTimeoutTracker(0)
	if !tr.OnTick(false) {
		t.Error("zero threshold should fire on the first idle tick")
	}
}

func TestTimeoutTrackerFiresAtThreshold(t *testing.T) {
	tr := NewTimeoutTracker(1800)

	for i := 1; i < 1800; i++ {
		if tr.OnTick(false) {
			t.Fatalf("fired early at idle tick %d", i)
		}
		if tr.Count() != uint32(i) {
			t.Fatalf("tick %d: expected count %d, got %d", i, i, tr.Count())
		}
	}

	if !tr.OnTick(false) {
		t.Fatal("expected fire at idle tick 1800")
	}
	if tr.Count() != 0 {
		t.Errorf("expected count 0 after fire, got %d", tr.Count())
	}

	// Counting starts again from zero.
	if tr.OnTick(false) {
		t.Error("should not fire on the tick after a fire")
	}
	if tr.Count() != 1 {
		t.Errorf("expected count 1, got %d", tr.Count())
	}
}

func TestTimeoutTrackerActivityResets(t *testing.T) {
	tr := NewTimeoutTracker(10)

	for i := 0; i < 9; i++ {
		tr.OnTick(false)
	}
	if tr.OnTick(true) {
		t.Error("activity must never fire")
	}
	if tr.Count() != 0 {
		t.Errorf("expected count 0 after activity, got %d", tr.Count())
	}
}

// Activity on the tick that would have reached the threshold suppresses the fire.
func TestTimeoutTrackerActivityWinsTie(t *testing.T) {
	tr := NewTimeoutTracker(5)

	for i := 0; i < 4; i++ {
		tr.OnTick(false)
	}
	if tr.OnTick(true) {
		t.Fatal("activity on the threshold tick must suppress the fire")
	}
	for i := 0; i < 4; i++ {
		if tr.OnTick(false) {
			t.Fatalf("fired early at idle tick %d after activity", i+1)
		}
	}
	if !tr.OnTick(false) {
		t.Error("expected fire after a full idle window")
	}
}

func TestTimeoutTrackerKicksBelowThresholdNeverFire(t *testing.T) {
	tests := []struct {
		name      string
		threshold uint32
		gap       int // idle ticks between kicks
	}{
		{"every tick", 10, 0},
		{"gap one", 10, 1},
		{"gap just under", 10, 9},
		{"production threshold", 1800, 1799},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTimeoutTracker(tt.threshold)
			for round := 0; round < 5; round++ {
				for i := 0; i < tt.gap; i++ {
					if tr.OnTick(false) {
						t.Fatalf("round %d: fired after %d idle ticks", round, i+1)
					}
				}
				tr.OnTick(true)
			}
		})
	}
}
