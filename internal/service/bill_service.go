package service

import (
	"context"

	"github.com/google/uuid"

	"billscan/internal/domain"
	"billscan/internal/port"
)

// BillService defines the stored-bill query contract.
type BillService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.Bill, int, error)
}

type billService struct {
	billRepo port.BillRepository
}

// NewBillService creates a BillService implementation.
func NewBillService(billRepo port.BillRepository) BillService {
	return &billService{billRepo: billRepo}
}

func (s *billService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	return s.billRepo.GetByID(ctx, id)
}

func (s *billService) List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error) {
	return s.billRepo.List(ctx, offset, limit)
}

func (s *billService) ListByBusiness(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.Bill, int, error) {
	return s.billRepo.ListByBusiness(ctx, businessID, offset, limit)
}
