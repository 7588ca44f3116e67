package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docorch/internal/domain"
	"docorch/internal/service"
	"docorch/internal/session"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, sess *session.Session, input service.ExtractInput) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, sess, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}
