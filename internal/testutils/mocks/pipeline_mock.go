package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wagateway/gateway/internal/domain/models"
)

// MockPipeline is a mock implementation of pipeline.Pipeline.
type MockPipeline struct {
	mock.Mock
}

// Handle processes one inbound message.
func (m *MockPipeline) Handle(ctx context.Context, origin models.Origin, userID, message string) (models.Reply, error) {
	args := m.Called(ctx, origin, userID, message)
	return args.Get(0).(models.Reply), args.Error(1)
}
