package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docorch/internal/domain"
	"docorch/internal/session"
)

// MockAlertService is a mock implementation of service.AlertService.
type MockAlertService struct {
	mock.Mock
}

func (m *MockAlertService) Send(ctx context.Context, sess *session.Session, recipient string) (*domain.AlertView, error) {
	args := m.Called(ctx, sess, recipient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AlertView), args.Error(1)
}
