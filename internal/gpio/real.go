//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

const consumer = "hwdog"

// Board owns the watchdog's lines on a Linux GPIO chip.
type Board struct {
	chip        *gpiocdev.Chip
	kick        *gpiocdev.Line
	reset       *RealLine
	activityLED *RealLine
	timeoutLED  *RealLine
}

// OpenBoard requests all watchdog lines from the named chip.
//
// The kick line is an input with pull-up. If onKick is non-nil it is called
// from the gpiocdev event goroutine for every qualifying edge; it must only
// record the event and return. The reset and LED lines start released.
func OpenBoard(chipName string, pins Pins, edge Edge, onKick func()) (*Board, error) {
	if err := pins.Validate(); err != nil {
		return nil, err
	}

	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}
	b := &Board{chip: chip}

	kickOpts := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullUp}
	if onKick != nil {
		kickOpts = append(kickOpts, edgeOption(edge), gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) {
			onKick()
		}))
	}
	b.kick, err = chip.RequestLine(pins.Kick, kickOpts...)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("request kick pin %d: %w", pins.Kick, err)
	}

	if b.reset, err = requestReleased(chip, "reset", pins.Reset); err != nil {
		b.Close()
		return nil, err
	}
	if b.activityLED, err = requestReleased(chip, "activity LED", pins.ActivityLED); err != nil {
		b.Close()
		return nil, err
	}
	if b.timeoutLED, err = requestReleased(chip, "timeout LED", pins.TimeoutLED); err != nil {
		b.Close()
		return nil, err
	}

	return b, nil
}

func edgeOption(e Edge) gpiocdev.LineReqOption {
	switch e {
	case EdgeRising:
		return gpiocdev.WithRisingEdge
	case EdgeBoth:
		return gpiocdev.WithBothEdges
	default:
		return gpiocdev.WithFallingEdge
	}
}

func requestReleased(chip *gpiocdev.Chip, name string, offset int) (*RealLine, error) {
	l, err := chip.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithBiasDisabled)
	if err != nil {
		return nil, fmt.Errorf("request %s pin %d: %w", name, offset, err)
	}
	return &RealLine{name: name, line: l}, nil
}

// Reset returns the reset output.
func (b *Board) Reset() *RealLine { return b.reset }

// ActivityLED returns the activity indicator output.
func (b *Board) ActivityLED() *RealLine { return b.activityLED }

// TimeoutLED returns the timeout indicator output.
func (b *Board) TimeoutLED() *RealLine { return b.timeoutLED }

// KickValue returns the raw level of the kick input.
func (b *Board) KickValue() (int, error) {
	v, err := b.kick.Value()
	if err != nil {
		return 0, fmt.Errorf("read kick pin: %w", err)
	}
	return v, nil
}

// Close releases every output back to a high impedance input before closing,
// so the monitored device is never left held in reset.
func (b *Board) Close() error {
	var errs []error

	for _, l := range []*RealLine{b.reset, b.activityLED, b.timeoutLED} {
		if l == nil {
			continue
		}
		if err := l.Release(); err != nil {
			errs = append(errs, err)
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", l.name, err))
		}
	}
	if b.kick != nil {
		if err := b.kick.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kick pin: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealLine is a GPIO output that is tri-stated by reconfiguring it as an input.
type RealLine struct {
	name string
	line *gpiocdev.Line
}

// Drive reconfigures the line as an output at value.
func (l *RealLine) Drive(value int) error {
	if err := l.line.Reconfigure(gpiocdev.AsOutput(value)); err != nil {
		return fmt.Errorf("drive %s pin to %d: %w", l.name, value, err)
	}
	return nil
}

// Release reconfigures the line as an input with bias disabled.
func (l *RealLine) Release() error {
	if err := l.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithBiasDisabled); err != nil {
		return fmt.Errorf("release %s pin: %w", l.name, err)
	}
	return nil
}
