package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of handlers.Sender.
type MockSender struct {
	mock.Mock
}

// SendText delivers a text message to a phone number.
func (m *MockSender) SendText(ctx context.Context, number, text string) error {
	args := m.Called(ctx, number, text)
	return args.Error(0)
}
