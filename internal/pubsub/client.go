package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub and publishes every event to topicID.
func New(ctx context.Context, projectID, topicID string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	topic := pubSubC.Topic(topicID)
	teardown := func() {
		topic.Stop()
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		topic:    topic,
		teardown: teardown,
	}, nil
}

func (c *client) SendMessage(ctx context.Context, eventType EventType, data any) error {
	msgpackData, err := encode(data)
	if err != nil {
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{EventTypeAttribute: string(eventType)},
	}
	result := c.topic.Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", c.topic.ID(), "eventType", eventType)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "eventType", eventType)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

func (c *client) Close() {
	c.teardown()
}

func encode(data any) ([]byte, error) {
	b, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return nil, err
	}
	return b, nil
}

// Decode unpacks a msgpack payload produced by SendMessage.
func Decode(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}
