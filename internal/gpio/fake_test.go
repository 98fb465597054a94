package gpio

import (
	"errors"
	"testing"
)

func TestFakeLineStartsReleased(t *testing.T) {
	f := NewFakeLine()

	if f.State() != StateReleased {
		t.Errorf("expected RELEASED, got %s", f.State())
	}
	if len(f.History()) != 0 {
		t.Errorf("expected empty history, got %v", f.History())
	}
}

func TestFakeLineDriveAndRelease(t *testing.T) {
	f := NewFakeLine()

	if err := f.Drive(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.State() != StateDrivenLow {
		t.Errorf("expected LOW, got %s", f.State())
	}

	if err := f.Drive(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.State() != StateDrivenHigh {
		t.Errorf("expected HIGH, got %s", f.State())
	}

	if err := f.Release(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []State{StateDrivenLow, StateDrivenHigh, StateReleased}
	got := f.History()
	if len(got) != len(want) {
		t.Fatalf("history: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d]: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFakeLineErrors(t *testing.T) {
	f := NewFakeLine()
	f.DriveError = errors.New("simulated drive error")
	f.ReleaseError = errors.New("simulated release error")

	if err := f.Drive(1); err == nil || err.Error() != "simulated drive error" {
		t.Errorf("unexpected drive error: %v", err)
	}
	// The attempt is still recorded.
	if f.State() != StateDrivenHigh {
		t.Errorf("expected HIGH after failed drive, got %s", f.State())
	}

	if err := f.Release(); err == nil {
		t.Error("expected release error")
	}
}

func TestFakeLineReset(t *testing.T) {
	f := NewFakeLine()
	f.Drive(0)
	f.DriveError = errors.New("x")

	f.Reset()

	if f.State() != StateReleased {
		t.Errorf("expected RELEASED after reset, got %s", f.State())
	}
	if len(f.History()) != 0 {
		t.Errorf("expected empty history after reset, got %v", f.History())
	}
	if f.DriveError != nil {
		t.Error("expected DriveError cleared")
	}
}

func TestPinsValidate(t *testing.T) {
	tests := []struct {
		name    string
		pins    Pins
		wantErr bool
	}{
		{"defaults", DefaultPins(), false},
		{"negative", Pins{Kick: -1, Reset: 1, ActivityLED: 2, TimeoutLED: 3}, true},
		{"duplicate", Pins{Kick: 4, Reset: 4, ActivityLED: 2, TimeoutLED: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pins.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseEdge(t *testing.T) {
	for _, s := range []string{"falling", "rising", "both"} {
		e, err := ParseEdge(s)
		if err != nil {
			t.Errorf("ParseEdge(%q): unexpected error: %v", s, err)
		}
		if string(e) != s {
			t.Errorf("ParseEdge(%q): got %q", s, e)
		}
	}

	if _, err := ParseEdge("sideways"); err == nil {
		t.Error("expected error for unknown edge")
	}
}
