package mocks

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"
)

// MockBarcodeScanner is a mock implementation of port.BarcodeScanner.
type MockBarcodeScanner struct {
	mock.Mock
}

func (m *MockBarcodeScanner) Scan(ctx context.Context, img image.Image) ([]byte, error) {
	args := m.Called(ctx, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
