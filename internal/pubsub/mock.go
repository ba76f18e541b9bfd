package pubsub

import (
	"context"
	"sync"
)

var _ PubSubClient = (*MockPubSubClient)(nil)

// MockPubSubClient records published events instead of sending them.
// It is safe for concurrent use.
type MockPubSubClient struct {
	mu sync.Mutex

	SendMessageCalls []SendMessageCall

	// Err, when set, is returned by SendMessage after recording the call.
	Err error
}

// SendMessageCall holds the arguments for a call to SendMessage.
type SendMessageCall struct {
	EventType EventType
	Data      any
}

// NewMock creates a new mock PubSubClient.
func NewMock() *MockPubSubClient {
	return &MockPubSubClient{}
}

// Reset clears all call records.
func (m *MockPubSubClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMessageCalls = nil
}

// Sent returns a copy of the SendMessage calls so far.
func (m *MockPubSubClient) Sent() []SendMessageCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SendMessageCall(nil), m.SendMessageCalls...)
}

func (m *MockPubSubClient) SendMessage(_ context.Context, eventType EventType, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMessageCalls = append(m.SendMessageCalls, SendMessageCall{EventType: eventType, Data: data})
	return m.Err
}

// ProcessMessage decodes a msgpack payload like the real client.
func (m *MockPubSubClient) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

func (m *MockPubSubClient) Close() {}
