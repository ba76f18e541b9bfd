package pubsub

import (
	"context"

	"github.com/charmbracelet/log"
)

// Handler receives the events a local client publishes.
type Handler func(ctx context.Context, eventType EventType, payload []byte) error

type localClient struct {
	handler Handler
}

// NewLocal returns a client for running without Google Cloud. Published events are
// encoded exactly like the real client and handed to handler in-process. A nil handler
// drops them.
func NewLocal(handler Handler) PubSubClient {
	return &localClient{handler: handler}
}

func (c *localClient) SendMessage(ctx context.Context, eventType EventType, data any) error {
	payload, err := encode(data)
	if err != nil {
		return err
	}
	if c.handler == nil {
		log.Debug("Dropping event, no local handler", "eventType", eventType)
		return nil
	}
	return c.handler(ctx, eventType, payload)
}

func (c *localClient) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

func (c *localClient) Close() {}
