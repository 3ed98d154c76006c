package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wagateway/gateway/internal/domain/models"
)

// MockCompletionClient is a mock implementation of completion.Client.
type MockCompletionClient struct {
	mock.Mock
}

// Complete requests a completion.
func (m *MockCompletionClient) Complete(ctx context.Context, req models.CompletionRequest) (models.CompletionResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.CompletionResult), args.Error(1)
}
