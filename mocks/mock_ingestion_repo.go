package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
)

// MockIngestionRepo is a mock implementation of port.IngestionRepository.
type MockIngestionRepo struct {
	mock.Mock
}

func (m *MockIngestionRepo) Create(ctx context.Context, ingestion *domain.Ingestion) error {
	args := m.Called(ctx, ingestion)
	return args.Error(0)
}

func (m *MockIngestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ingestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ingestion), args.Error(1)
}

func (m *MockIngestionRepo) List(ctx context.Context, offset, limit int) ([]domain.Ingestion, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Ingestion), args.Int(1), args.Error(2)
}
