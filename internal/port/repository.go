package port

import (
	"context"

	"github.com/google/uuid"

	"billscan/internal/domain"
)

// BusinessRepository defines the contract for business persistence.
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	// GetByAccount resolves a business by exact match on its bank account
	// number. Returns domain.ErrNotFound when no business matches.
	GetByAccount(ctx context.Context, account string) (*domain.Business, error)
	List(ctx context.Context, offset, limit int) ([]domain.Business, int, error)
}

// BillRepository defines the contract for normalized bill persistence.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.Bill, int, error)
}

// IngestionRepository defines the contract for the ingestion audit trail.
type IngestionRepository interface {
	Create(ctx context.Context, ingestion *domain.Ingestion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ingestion, error)
	List(ctx context.Context, offset, limit int) ([]domain.Ingestion, int, error)
}

// AddressRepository defines the contract for address persistence.
type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Address, error)
}
