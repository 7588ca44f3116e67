package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docorch/internal/port"
)

// MockCompletionClient is a mock implementation of port.CompletionClient.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) CompleteJSON(ctx context.Context, system, user string) (*port.Completion, error) {
	args := m.Called(ctx, system, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Completion), args.Error(1)
}
