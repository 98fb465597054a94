// Package watchdog runs the kick monitor: once per tick it drains the activity
// latch, advances the timeout tracker, pulses reset on timeout and counts down
// the two indicator LEDs.
package watchdog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sweeney/hwdog/internal/gpio"
	"github.com/sweeney/hwdog/internal/logic"
	"github.com/sweeney/hwdog/internal/mqtt"
)

// Config holds the watchdog's timing and pacing hooks.
type Config struct {
	Timing logic.Timing

	// Heartbeat is how often Run logs a summary line. Zero disables it.
	Heartbeat time.Duration

	// Sleep is used for the reset pulse and the self-test. Nil means time.Sleep.
	Sleep Sleeper

	// MQTT, if set, adds the broker connection state to heartbeat lines.
	MQTT mqtt.ConnectionStatus
}

// Lines are the outputs the watchdog drives.
type Lines struct {
	Reset       gpio.Line
	ActivityLED gpio.Line
	TimeoutLED  gpio.Line
}

// StepResult describes what happened in one tick.
type StepResult struct {
	Activity bool
	Fired    bool
}

// Watchdog is the main loop state. Only Signal on its latch may be called
// from other goroutines; everything else belongs to the loop goroutine.
type Watchdog struct {
	log    *slog.Logger
	timing logic.Timing
	sleep  Sleeper

	latch       *logic.Latch
	tracker     *logic.TimeoutTracker
	pulser      *ResetPulser
	activityLED *Indicator
	timeoutLED  *Indicator

	activityTicks uint32
	timeoutTicks  uint32

	mqtt           mqtt.ConnectionStatus
	heartbeatTicks uint64
	ticks          uint64
	counts         logic.Counts
}

// New creates a Watchdog that reads activity from latch and drives lines.
func New(log *slog.Logger, cfg Config, latch *logic.Latch, lines Lines) (*Watchdog, error) {
	if err := cfg.Timing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timing: %w", err)
	}
	if latch == nil {
		return nil, fmt.Errorf("latch is required")
	}
	if lines.Reset == nil || lines.ActivityLED == nil || lines.TimeoutLED == nil {
		return nil, fmt.Errorf("reset and both indicator lines are required")
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	t := cfg.Timing
	return &Watchdog{
		log:    log,
		timing: t,
		sleep:  sleep,

		latch:       latch,
		tracker:     logic.NewTimeoutTracker(t.TimeoutTicks()),
		pulser:      NewResetPulser(log.With("line", "reset"), lines.Reset, t.ResetPulse, sleep),
		activityLED: NewIndicator(log.With("line", "activity"), lines.ActivityLED),
		timeoutLED:  NewIndicator(log.With("line", "timeout"), lines.TimeoutLED),

		activityTicks:  t.ActivityIndicatorTicks(),
		timeoutTicks:   t.TimeoutIndicatorTicks(),
		mqtt:           cfg.MQTT,
		heartbeatTicks: uint64(t.Ticks(cfg.Heartbeat)),
	}, nil
}

// SelfTest lights both LEDs for d and then turns them off.
// It is cosmetic and independent of the timeout state.
func (w *Watchdog) SelfTest(d time.Duration) {
	if d <= 0 {
		return
	}
	w.log.Info("Power-on indicator flash", "duration", d)
	w.activityLED.Arm(1)
	w.timeoutLED.Arm(1)
	w.sleep(d)
	w.activityLED.Off()
	w.timeoutLED.Off()
}

// Step runs the body of one tick. The caller is responsible for pacing.
func (w *Watchdog) Step() StepResult {
	w.ticks++

	activity := w.latch.Consume()
	if activity {
		w.counts.Kicks++
		w.log.Debug("Kick observed", "tick", w.ticks)
		w.activityLED.Arm(w.activityTicks)
	}

	fired := w.tracker.OnTick(activity)
	if fired {
		w.counts.Resets++
		w.log.Warn("No kick within timeout, pulsing reset",
			"timeout", w.timing.Timeout,
			"pulse", w.timing.ResetPulse,
			"resets", w.counts.Resets,
		)
		w.pulser.Fire()
		w.log.Info("Reset released")
		w.timeoutLED.Arm(w.timeoutTicks)
	}

	w.activityLED.Tick()
	w.timeoutLED.Tick()

	if w.heartbeatTicks > 0 && w.ticks%w.heartbeatTicks == 0 {
		w.heartbeat()
	}

	return StepResult{Activity: activity, Fired: fired}
}

func (w *Watchdog) heartbeat() {
	attrs := []any{
		"ticks", w.ticks,
		"idle_ticks", w.tracker.Count(),
		"kicks", w.counts.Kicks,
		"resets", w.counts.Resets,
	}
	if w.mqtt != nil {
		attrs = append(attrs, "mqtt_connected", w.mqtt.IsConnected())
	}
	w.log.Info("Heartbeat", attrs...)
}

// Run paces Step with clock until ctx is cancelled, then releases every
// output. It returns nil on cancellation and the clock's error otherwise.
func (w *Watchdog) Run(ctx context.Context, clock TickClock) error {
	defer w.releaseAll()

	w.log.Info("Watchdog started",
		"tick", w.timing.TickPeriod,
		"timeout", w.timing.Timeout,
		"timeout_ticks", w.tracker.Threshold(),
		"pulse", w.timing.ResetPulse,
	)

	for {
		if err := clock.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				w.log.Info("Stopping due to context cancellation",
					"cause", context.Cause(ctx),
					"kicks", w.counts.Kicks,
					"resets", w.counts.Resets,
				)
				return nil
			}
			return fmt.Errorf("tick clock: %w", err)
		}
		w.Step()
	}
}

func (w *Watchdog) releaseAll() {
	w.activityLED.Off()
	w.timeoutLED.Off()
	if err := w.pulser.Release(); err != nil {
		w.log.Error("Failed to release reset on shutdown", "err", err)
	}
}

// Counts returns activity totals since startup.
func (w *Watchdog) Counts() logic.Counts {
	return w.counts
}

// IdleTicks returns the number of consecutive ticks without a kick.
func (w *Watchdog) IdleTicks() uint32 {
	return w.tracker.Count()
}

// ActivityLED exposes the activity indicator for inspection.
func (w *Watchdog) ActivityLED() *Indicator { return w.activityLED }

// TimeoutLED exposes the timeout indicator for inspection.
func (w *Watchdog) TimeoutLED() *Indicator { return w.timeoutLED }
