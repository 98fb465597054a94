package watchdog

import (
	"log/slog"
	"time"

	"github.com/sweeney/hwdog/internal/gpio"
)

// resetActive is the level that holds the monitored device in reset.
const resetActive = 0

// Sleeper blocks for d. Production code uses time.Sleep.
type Sleeper func(d time.Duration)

// ResetPulser owns the reset line. The line is released except while Fire runs.
type ResetPulser struct {
	log      *slog.Logger
	line     gpio.Line
	duration time.Duration
	sleep    Sleeper
}

// NewResetPulser creates a pulser holding reset for duration on each Fire.
// A nil sleep defaults to time.Sleep.
func NewResetPulser(log *slog.Logger, line gpio.Line, duration time.Duration, sleep Sleeper) *ResetPulser {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &ResetPulser{
		log:      log,
		line:     line,
		duration: duration,
		sleep:    sleep,
	}
}

// Fire drives reset active, blocks for the pulse duration, then releases the
// line. The pulse is never cut short and there is no way to cancel it.
// Hardware errors are logged; release is always attempted.
func (p *ResetPulser) Fire() {
	if err := p.line.Drive(resetActive); err != nil {
		p.log.Error("Failed to assert reset", "err", err)
	}

	p.sleep(p.duration)

	if err := p.line.Release(); err != nil {
		p.log.Error("Failed to release reset", "err", err)
	}
}

// Release tri-states the reset line.
func (p *ResetPulser) Release() error {
	return p.line.Release()
}
