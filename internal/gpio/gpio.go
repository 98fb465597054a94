// Package gpio provides the watchdog's GPIO lines with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "fmt"

// Line is an output that is either driven to a level or released (tri-stated).
type Line interface {
	// Drive actively drives the line to value (0 or 1).
	Drive(value int) error

	// Release stops driving the line, leaving it high impedance.
	Release() error
}

// Pins holds the BCM line offsets the watchdog uses.
type Pins struct {
	Kick        int
	Reset       int
	ActivityLED int
	TimeoutLED  int
}

// Default pin assignments (BCM numbering).
const (
	DefaultChip        = "gpiochip0"
	DefaultPinKick     = 17
	DefaultPinReset    = 27
	DefaultPinActivity = 22
	DefaultPinTimeout  = 23
)

// DefaultPins returns the default wiring.
func DefaultPins() Pins {
	return Pins{
		Kick:        DefaultPinKick,
		Reset:       DefaultPinReset,
		ActivityLED: DefaultPinActivity,
		TimeoutLED:  DefaultPinTimeout,
	}
}

// Validate rejects negative or duplicate offsets.
func (p Pins) Validate() error {
	named := []struct {
		name string
		pin  int
	}{
		{"kick", p.Kick},
		{"reset", p.Reset},
		{"activity LED", p.ActivityLED},
		{"timeout LED", p.TimeoutLED},
	}
	seen := make(map[int]string, len(named))
	for _, n := range named {
		if n.pin < 0 {
			return fmt.Errorf("%s pin %d: must not be negative", n.name, n.pin)
		}
		if other, ok := seen[n.pin]; ok {
			return fmt.Errorf("%s pin %d: already used by %s", n.name, n.pin, other)
		}
		seen[n.pin] = n.name
	}
	return nil
}

// Edge selects which kick line transitions count as activity.
type Edge string

const (
	EdgeFalling Edge = "falling"
	EdgeRising  Edge = "rising"
	EdgeBoth    Edge = "both"
)

// ParseEdge converts a flag value to an Edge.
func ParseEdge(s string) (Edge, error) {
	switch e := Edge(s); e {
	case EdgeFalling, EdgeRising, EdgeBoth:
		return e, nil
	}
	return "", fmt.Errorf("unknown edge %q (want falling, rising or both)", s)
}
