package mqtt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sweeney/hwdog/internal/logic"
)

var _ Subscriber = (*RealSubscriber)(nil)
var _ Subscriber = (*FakeSubscriber)(nil)
var _ ConnectionStatus = (*RealSubscriber)(nil)

func TestKickHandlerCountsMessages(t *testing.T) {
	kicks := 0
	h := kickHandler(func() { kicks++ })

	h(nil, &fakeMessage{topic: DefaultTopic, payload: []byte("alive")})
	h(nil, &fakeMessage{topic: DefaultTopic})

	require.Equal(t, 2, kicks)
}

func TestKickHandlerIgnoresRetained(t *testing.T) {
	kicks := 0
	h := kickHandler(func() { kicks++ })

	h(nil, &fakeMessage{topic: DefaultTopic, payload: []byte("stale"), retained: true})

	require.Zero(t, kicks)
}

func TestFakeSubscriberFeedsLatch(t *testing.T) {
	var latch logic.Latch
	f := NewFakeSubscriber()

	require.False(t, f.Deliver([]byte("early"), false), "no subscription yet")

	require.NoError(t, f.Subscribe(DefaultTopic, latch.Signal))
	require.Equal(t, DefaultTopic, f.Topic)

	require.True(t, f.Deliver([]byte("1"), false))
	require.True(t, f.Deliver([]byte("2"), false))
	require.True(t, latch.Consume())
	require.False(t, latch.Consume())

	f.Deliver([]byte("retained"), true)
	require.False(t, latch.Consume())
}

func TestFakeSubscriberError(t *testing.T) {
	f := NewFakeSubscriber()
	f.SubscribeError = errors.New("simulated error")

	err := f.Subscribe(DefaultTopic, func() {})
	require.EqualError(t, err, "simulated error")
	require.Empty(t, f.Topic)
}

func TestFakeSubscriberClose(t *testing.T) {
	f := NewFakeSubscriber()
	require.False(t, f.Closed)

	require.NoError(t, f.Close())
	require.True(t, f.Closed)
}
