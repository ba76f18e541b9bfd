package pubsub

import "context"

type PubSubClient interface {
	// SendMessage publishes data, msgpack encoded, tagged with eventType.
	SendMessage(ctx context.Context, eventType EventType, data any) error
	// ProcessMessage decodes a msgpack payload into returnValue.
	ProcessMessage(data []byte, returnValue any) error
	Close()
}
