package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendRejectionNotice(ctx context.Context, ingestion *domain.Ingestion) error {
	args := m.Called(ctx, ingestion)
	return args.Error(0)
}
