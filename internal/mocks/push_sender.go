package mocks

import (
	"context"
	"sync"

	"github.com/lost-and-found-api/pkg/push"
)

// SentPush records one delivery attempt made through MockPushSender
type SentPush struct {
	Token   string
	Message push.Message
}

// MockPushSender is a recording implementation of push.Sender
type MockPushSender struct {
	mu        sync.Mutex
	Sent      []SentPush
	SendError error
}

func NewMockPushSender() *MockPushSender {
	return &MockPushSender{}
}

func (m *MockPushSender) Send(ctx context.Context, token string, msg push.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendError != nil {
		return m.SendError
	}
	m.Sent = append(m.Sent, SentPush{Token: token, Message: msg})
	return nil
}

// Count returns the number of recorded deliveries
func (m *MockPushSender) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
