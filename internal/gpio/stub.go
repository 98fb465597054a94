//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// Board is not available on non-Linux platforms.
type Board struct{}

// OpenBoard returns an error on non-Linux platforms.
func OpenBoard(chipName string, pins Pins, edge Edge, onKick func()) (*Board, error) {
	return nil, errUnsupported
}

// Reset is not implemented on non-Linux platforms.
func (b *Board) Reset() *RealLine { return &RealLine{} }

// ActivityLED is not implemented on non-Linux platforms.
func (b *Board) ActivityLED() *RealLine { return &RealLine{} }

// TimeoutLED is not implemented on non-Linux platforms.
func (b *Board) TimeoutLED() *RealLine { return &RealLine{} }

// KickValue is not implemented on non-Linux platforms.
func (b *Board) KickValue() (int, error) { return 0, errUnsupported }

// Close is not implemented on non-Linux platforms.
func (b *Board) Close() error { return nil }

// RealLine is not available on non-Linux platforms.
type RealLine struct{}

// Drive is not implemented on non-Linux platforms.
func (l *RealLine) Drive(value int) error { return errUnsupported }

// Release is not implemented on non-Linux platforms.
func (l *RealLine) Release() error { return errUnsupported }
