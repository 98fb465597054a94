package mqtt

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// RealSubscriber subscribes to an actual MQTT broker.
type RealSubscriber struct {
	log    *slog.Logger
	client paho.Client

	mu      sync.Mutex
	topic   string
	handler paho.MessageHandler
}

// NewRealSubscriber creates a subscriber connected to the given broker.
// The subscription is restored from the OnConnect handler after every
// reconnect.
func NewRealSubscriber(log *slog.Logger, broker string) (*RealSubscriber, error) {
	s := &RealSubscriber{log: log}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(s.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Warn("MQTT connection lost", "err", err)
		})

	s.client = paho.NewClient(opts)
	token := s.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return s, nil
}

// Subscribe registers onKick for topic.
func (s *RealSubscriber) Subscribe(topic string, onKick func()) error {
	s.mu.Lock()
	s.topic = topic
	s.handler = kickHandler(onKick)
	s.mu.Unlock()

	return s.subscribe(s.client)
}

func (s *RealSubscriber) onConnect(c paho.Client) {
	s.log.Info("MQTT connected")
	if err := s.subscribe(c); err != nil {
		s.log.Error("MQTT resubscribe failed", "err", err)
	}
}

func (s *RealSubscriber) subscribe(c paho.Client) error {
	s.mu.Lock()
	topic, handler := s.topic, s.handler
	s.mu.Unlock()

	if handler == nil {
		return nil
	}

	// QoS 0 (at-most-once): a lost kick is made up by the next one.
	token := c.Subscribe(topic, 0, handler)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("subscribe %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	s.log.Info("Subscribed to kick topic", "topic", topic)
	return nil
}

// IsConnected reports whether the client currently has a broker connection.
func (s *RealSubscriber) IsConnected() bool {
	return s.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (s *RealSubscriber) Close() error {
	s.client.Disconnect(1000) // 1 second timeout
	return nil
}
