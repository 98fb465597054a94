package watchdog

import (
	"log/slog"

	"github.com/sweeney/hwdog/internal/gpio"
)

// Indicator keeps an LED lit for a bounded number of ticks after being armed.
// remaining > 0 exactly when the LED is driven on.
type Indicator struct {
	log       *slog.Logger
	line      gpio.Line
	remaining uint32
}

// NewIndicator creates an Indicator on line. The LED starts dark.
func NewIndicator(log *slog.Logger, line gpio.Line) *Indicator {
	return &Indicator{log: log, line: line}
}

// Arm restarts the window at ticks and lights the LED immediately.
// Re-arming overwrites what was left; it never extends past ticks.
func (i *Indicator) Arm(ticks uint32) {
	i.remaining = ticks
	if ticks == 0 {
		i.release()
		return
	}
	if err := i.line.Drive(1); err != nil {
		i.log.Error("Failed to light indicator", "err", err)
	}
}

// Tick counts down one tick and turns the LED off when the window closes.
func (i *Indicator) Tick() {
	if i.remaining == 0 {
		return
	}
	i.remaining--
	if i.remaining == 0 {
		i.release()
	}
}

// Remaining returns the ticks left in the current window.
func (i *Indicator) Remaining() uint32 {
	return i.remaining
}

// Lit reports whether the window is open.
func (i *Indicator) Lit() bool {
	return i.remaining > 0
}

// Off closes the window early. Used on shutdown.
func (i *Indicator) Off() {
	i.remaining = 0
	i.release()
}

func (i *Indicator) release() {
	// Drive low first so the LED goes dark even where the pad keeps its
	// last level after being switched to input.
	if err := i.line.Drive(0); err != nil {
		i.log.Error("Failed to turn indicator off", "err", err)
	}
	if err := i.line.Release(); err != nil {
		i.log.Error("Failed to release indicator", "err", err)
	}
}
