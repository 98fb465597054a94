package watchdog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sweeney/hwdog/internal/gpio"
	"github.com/sweeney/hwdog/internal/testlog"
	"github.com/sweeney/hwdog/internal/watchdog"
)

func TestIndicator_armAndExpire(t *testing.T) {
	t.Parallel()

	line := gpio.NewFakeLine()
	ind := watchdog.NewIndicator(testlog.New(t), line)
	require.False(t, ind.Lit())

	ind.Arm(3)
	require.True(t, ind.Lit())
	require.Equal(t, gpio.StateDrivenHigh, line.State())

	ind.Tick()
	ind.Tick()
	require.True(t, ind.Lit())
	require.Equal(t, gpio.StateDrivenHigh, line.State())

	ind.Tick()
	require.False(t, ind.Lit())
	require.Equal(t, []gpio.State{gpio.StateDrivenHigh, gpio.StateDrivenLow, gpio.StateReleased}, line.History())

	// Ticking a dark indicator does nothing.
	ind.Tick()
	require.Len(t, line.History(), 3)
}

func TestIndicator_rearmOverwrites(t *testing.T) {
	t.Parallel()

	ind := watchdog.NewIndicator(testlog.New(t), gpio.NewFakeLine())

	ind.Arm(5)
	ind.Tick()
	ind.Tick()
	ind.Arm(5)
	require.Equal(t, uint32(5), ind.Remaining())

	ind.Arm(5)
	require.Equal(t, uint32(5), ind.Remaining(), "re-arming must not accumulate")
}

func TestIndicator_armZeroReleases(t *testing.T) {
	t.Parallel()

	line := gpio.NewFakeLine()
	ind := watchdog.NewIndicator(testlog.New(t), line)

	ind.Arm(4)
	ind.Arm(0)
	require.False(t, ind.Lit())
	require.Equal(t, gpio.StateReleased, line.State())
}

func TestResetPulser_fire(t *testing.T) {
	t.Parallel()

	line := gpio.NewFakeLine()
	var held []gpio.State
	p := watchdog.NewResetPulser(testlog.New(t), line, 500*time.Millisecond, func(d time.Duration) {
		require.Equal(t, 500*time.Millisecond, d)
		held = append(held, line.State())
	})

	p.Fire()

	require.Equal(t, []gpio.State{gpio.StateDrivenLow}, held)
	require.Equal(t, gpio.StateReleased, line.State())
}

func TestSleepClock_wait(t *testing.T) {
	t.Parallel()

	c := watchdog.SleepClock{Period: 5 * time.Millisecond}

	start := time.Now()
	require.NoError(t, c.Wait(context.Background()))
	require.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestSleepClock_canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := watchdog.SleepClock{Period: time.Hour}
	require.ErrorIs(t, c.Wait(ctx), context.Canceled)
}
