package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billscan/internal/port"
)

// MockTextLayoutReader is a mock implementation of port.TextLayoutReader.
type MockTextLayoutReader struct {
	mock.Mock
}

func (m *MockTextLayoutReader) Blocks(ctx context.Context, doc []byte) ([]port.TextBlock, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.TextBlock), args.Error(1)
}
