// Package mqtt provides an MQTT kick source with abstraction for testing.
// Any non-retained message on the kick topic counts as one kick.
package mqtt

import paho "github.com/eclipse/paho.mqtt.golang"

// DefaultTopic is the MQTT topic the monitored device publishes kicks to.
const DefaultTopic = "hwdog/kick"

// ClientID is the MQTT client identifier used by the watchdog.
const ClientID = "hwdog"

// Subscriber delivers kicks from an MQTT topic.
type Subscriber interface {
	// Subscribe calls onKick for every kick message on topic.
	// onKick runs on the client's delivery goroutine and must not block.
	Subscribe(topic string, onKick func()) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// kickHandler adapts onKick to a paho message handler.
// Retained messages are skipped: a stale retained kick replayed on every
// (re)connect would otherwise hold off a reset indefinitely.
func kickHandler(onKick func()) paho.MessageHandler {
	return func(_ paho.Client, m paho.Message) {
		if m.Retained() {
			return
		}
		onKick()
	}
}
