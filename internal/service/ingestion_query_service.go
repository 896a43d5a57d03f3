package service

import (
	"context"

	"github.com/google/uuid"

	"billscan/internal/domain"
	"billscan/internal/port"
)

// IngestionQueryService exposes the ingestion audit trail.
type IngestionQueryService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ingestion, error)
	List(ctx context.Context, offset, limit int) ([]domain.Ingestion, int, error)
}

type ingestionQueryService struct {
	ingestionRepo port.IngestionRepository
}

// NewIngestionQueryService creates an IngestionQueryService implementation.
func NewIngestionQueryService(ingestionRepo port.IngestionRepository) IngestionQueryService {
	return &ingestionQueryService{ingestionRepo: ingestionRepo}
}

func (s *ingestionQueryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ingestion, error) {
	return s.ingestionRepo.GetByID(ctx, id)
}

func (s *ingestionQueryService) List(ctx context.Context, offset, limit int) ([]domain.Ingestion, int, error) {
	return s.ingestionRepo.List(ctx, offset, limit)
}
