// Command hwdog watches a kick signal and pulses a reset line when the kick
// stops for longer than the compiled-in timeout.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sweeney/hwdog/internal/gpio"
	"github.com/sweeney/hwdog/internal/logic"
	"github.com/sweeney/hwdog/internal/mqtt"
	"github.com/sweeney/hwdog/internal/watchdog"
)

func main() {
	if err := mainE(); err != nil {
		os.Exit(1)
	}
}

func mainE() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := NewRootCmd(os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return err
	}
	return nil
}

// Kick sources. Exactly one is active.
const (
	sourceGPIO = "gpio"
	sourceMQTT = "mqtt"
)

// options holds the wiring flags. Timing is not among them: it is fixed at
// build time in package logic.
type options struct {
	chip      string
	pins      gpio.Pins
	edge      string
	source    string
	broker    string
	topic     string
	selfTest  bool
	heartbeat time.Duration
	logLevel  string

	// edgeKind is edge parsed by validate.
	edgeKind gpio.Edge
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVar(&o.chip, "chip", gpio.DefaultChip, "GPIO chip name")
	fs.IntVar(&o.pins.Kick, "pin-kick", gpio.DefaultPinKick, "BCM pin number of the kick input")
	fs.IntVar(&o.pins.Reset, "pin-reset", gpio.DefaultPinReset, "BCM pin number of the reset output (active low)")
	fs.IntVar(&o.pins.ActivityLED, "pin-led-activity", gpio.DefaultPinActivity, "BCM pin number of the activity LED")
	fs.IntVar(&o.pins.TimeoutLED, "pin-led-timeout", gpio.DefaultPinTimeout, "BCM pin number of the timeout LED")
	fs.StringVar(&o.edge, "edge", string(gpio.EdgeFalling), "Kick edge: falling, rising or both")
	fs.StringVar(&o.source, "source", sourceGPIO, "Kick source: gpio or mqtt")
	fs.StringVar(&o.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address (mqtt source)")
	fs.StringVar(&o.topic, "topic", mqtt.DefaultTopic, "MQTT kick topic (mqtt source)")
	fs.BoolVar(&o.selfTest, "self-test", true, "Light both LEDs briefly at startup")
	fs.DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat log interval (0 to disable)")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
}

func (o *options) validate() error {
	edge, err := gpio.ParseEdge(o.edge)
	if err != nil {
		return err
	}
	o.edgeKind = edge
	if err := o.pins.Validate(); err != nil {
		return err
	}
	switch o.source {
	case sourceGPIO:
	case sourceMQTT:
		if o.broker == "" {
			return fmt.Errorf("--broker is required with --source=mqtt")
		}
		if o.topic == "" {
			return fmt.Errorf("--topic is required with --source=mqtt")
		}
	default:
		return fmt.Errorf("unknown source %q (want gpio or mqtt)", o.source)
	}
	if o.heartbeat < 0 {
		return fmt.Errorf("--heartbeat must not be negative")
	}
	return nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// NewRootCmd returns the hwdog command tree. Logs go to logOut.
func NewRootCmd(logOut io.Writer) *cobra.Command {
	var o options

	root := &cobra.Command{
		Use:   "hwdog",
		Short: "External hardware watchdog",
		Long: fmt.Sprintf(`hwdog watches a kick signal and resets the monitored device when it stops.

If no kick arrives for %v (checked every %v) the reset line is held low
for %v. The activity LED lights for %v after each kick and the timeout LED
for %v after each reset. These timings are fixed at build time.
`, logic.TimeoutDuration, logic.TickPeriod, logic.ResetPulseDuration,
			logic.ActivityIndicatorDuration, logic.TimeoutIndicatorDuration),

		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,

		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},

		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			log, err := newLogger(logOut, o.logLevel)
			if err != nil {
				return err
			}
			return run(cmd.Context(), log, o)
		},
	}
	bindFlags(root.PersistentFlags(), &o)

	root.AddCommand(newPrintStateCmd(&o))
	return root
}

func newPrintStateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "print-state",
		Short: "Print the current kick input level and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.pins.Validate(); err != nil {
				return err
			}
			board, err := gpio.OpenBoard(o.chip, o.pins, gpio.EdgeFalling, nil)
			if err != nil {
				return fmt.Errorf("init gpio: %w", err)
			}
			defer board.Close()

			v, err := board.KickValue()
			if err != nil {
				return fmt.Errorf("read gpio: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "KICK: %s\n", levelString(v))
			return nil
		},
	}
}

func run(ctx context.Context, log *slog.Logger, o options) error {
	latch := new(logic.Latch)

	// The GPIO edge handler only sets the latch.
	var onKick func()
	if o.source == sourceGPIO {
		onKick = latch.Signal
	}

	board, err := gpio.OpenBoard(o.chip, o.pins, o.edgeKind, onKick)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer func() {
		if err := board.Close(); err != nil {
			log.Error("Failed to close gpio", "err", err)
		}
	}()

	var status mqtt.ConnectionStatus
	if o.source == sourceMQTT {
		sub, err := mqtt.NewRealSubscriber(log.With("sys", "mqtt"), o.broker)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		defer sub.Close()

		if err := subscribeKicks(sub, o.topic, latch); err != nil {
			return err
		}
		status = sub
	}

	log.Info("Started",
		"source", o.source,
		"chip", o.chip,
		"pin_kick", o.pins.Kick,
		"pin_reset", o.pins.Reset,
		"edge", o.edgeKind,
	)

	lines := watchdog.Lines{
		Reset:       board.Reset(),
		ActivityLED: board.ActivityLED(),
		TimeoutLED:  board.TimeoutLED(),
	}
	return runWatchdog(ctx, log, o, latch, lines, status, watchdog.SleepClock{Period: logic.TickPeriod}, nil)
}

func subscribeKicks(sub mqtt.Subscriber, topic string, latch *logic.Latch) error {
	if err := sub.Subscribe(topic, latch.Signal); err != nil {
		return fmt.Errorf("subscribe kicks: %w", err)
	}
	return nil
}

// runWatchdog builds the watchdog on the given lines, runs the optional
// power-on flash and then blocks in the main loop until ctx is cancelled.
// status may be nil when kicks do not come from MQTT.
func runWatchdog(ctx context.Context, log *slog.Logger, o options, latch *logic.Latch, lines watchdog.Lines, status mqtt.ConnectionStatus, clock watchdog.TickClock, sleep watchdog.Sleeper) error {
	wd, err := watchdog.New(log.With("sys", "watchdog"), watchdog.Config{
		Timing:    logic.DefaultTiming(),
		Heartbeat: o.heartbeat,
		Sleep:     sleep,
		MQTT:      status,
	}, latch, lines)
	if err != nil {
		return err
	}

	if o.selfTest {
		wd.SelfTest(logic.SelfTestDuration)
	}
	// Kicks seen before the loop starts are not counted.
	latch.Consume()

	if err := wd.Run(ctx, clock); err != nil {
		return err
	}

	c := wd.Counts()
	log.Info("Shut down", "kicks", c.Kicks, "resets", c.Resets)
	return nil
}

func levelString(v int) string {
	if v == 0 {
		return "LOW"
	}
	return "HIGH"
}
