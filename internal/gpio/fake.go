package gpio

import "sync"

// State is the observable condition of an output line.
type State string

const (
	StateReleased   State = "RELEASED"
	StateDrivenLow  State = "LOW"
	StateDrivenHigh State = "HIGH"
)

// FakeLine is a test double that records every transition.
// It is safe for concurrent use so tests can inspect it while a loop runs.
type FakeLine struct {
	mu      sync.Mutex
	state   State
	history []State

	// DriveError, if set, is returned by Drive after the state is recorded.
	DriveError error

	// ReleaseError, if set, is returned by Release after the state is recorded.
	ReleaseError error
}

// NewFakeLine creates a FakeLine in the released state.
func NewFakeLine() *FakeLine {
	return &FakeLine{state: StateReleased}
}

// Drive records a driven state.
func (f *FakeLine) Drive(value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if value == 0 {
		f.set(StateDrivenLow)
	} else {
		f.set(StateDrivenHigh)
	}
	return f.DriveError
}

// Release records the released state.
func (f *FakeLine) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.set(StateReleased)
	return f.ReleaseError
}

func (f *FakeLine) set(s State) {
	f.state = s
	f.history = append(f.history, s)
}

// State returns the current state.
func (f *FakeLine) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// History returns a copy of every state the line was put in.
func (f *FakeLine) History() []State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]State(nil), f.history...)
}

// Reset clears recorded history and returns the line to released.
func (f *FakeLine) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateReleased
	f.history = nil
	f.DriveError = nil
	f.ReleaseError = nil
}
