package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docorch/internal/domain"
)

// MockAlertDispatcher is a mock implementation of port.AlertDispatcher.
type MockAlertDispatcher struct {
	mock.Mock
}

func (m *MockAlertDispatcher) Dispatch(ctx context.Context, payload domain.AlertPayload) (*domain.DispatchResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchResult), args.Error(1)
}
