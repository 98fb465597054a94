package mqtt

import (
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// FakeSubscriber records the subscription so tests can deliver messages.
type FakeSubscriber struct {
	mu sync.Mutex

	// Topic is the topic passed to Subscribe.
	Topic string

	// SubscribeError, if set, will be returned by Subscribe.
	SubscribeError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool

	handler paho.MessageHandler
}

// NewFakeSubscriber creates a FakeSubscriber for testing.
func NewFakeSubscriber() *FakeSubscriber {
	return &FakeSubscriber{}
}

// Subscribe records the topic and handler.
func (f *FakeSubscriber) Subscribe(topic string, onKick func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SubscribeError != nil {
		return f.SubscribeError
	}
	f.Topic = topic
	f.handler = kickHandler(onKick)
	return nil
}

// Deliver simulates a message arriving on the subscribed topic.
// It reports whether a subscription existed.
func (f *FakeSubscriber) Deliver(payload []byte, retained bool) bool {
	f.mu.Lock()
	h, topic := f.handler, f.Topic
	f.mu.Unlock()

	if h == nil {
		return false
	}
	h(nil, &fakeMessage{topic: topic, payload: payload, retained: retained})
	return true
}

// Close marks the subscriber as closed.
func (f *FakeSubscriber) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake subscriber is "connected".
func (f *FakeSubscriber) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Connected
}

// fakeMessage implements paho.Message.
type fakeMessage struct {
	topic    string
	payload  []byte
	retained bool
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 0 }
func (m *fakeMessage) Retained() bool    { return m.retained }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}
