// Package testlog adapts slog to testing.T for package tests.
package testlog

import (
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
)

// New returns a *slog.Logger that writes through t.Log.
func New(t testing.TB) *slog.Logger {
	return slogt.New(t, slogt.Text())
}
