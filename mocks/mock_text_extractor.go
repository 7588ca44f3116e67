package mocks

import (
	"github.com/stretchr/testify/mock"

	"docorch/internal/domain"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(data []byte, kind domain.DocumentKind) (string, error) {
	args := m.Called(data, kind)
	return args.String(0), args.Error(1)
}
