package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billscan/internal/domain"
	"billscan/internal/port"
)

type addressRepo struct {
	db *sqlx.DB
}

// NewAddressRepo creates a new PostgreSQL-backed AddressRepository.
func NewAddressRepo(db *sqlx.DB) port.AddressRepository {
	return &addressRepo{db: db}
}

func (r *addressRepo) Create(ctx context.Context, address *domain.Address) error {
	address.CreatedAt = time.Now().UTC()

	query := `INSERT INTO addresses (id, street, number, city, postal_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		address.ID, address.Street, address.Number, address.City,
		address.PostalCode, address.CreatedAt)
	if err != nil {
		return fmt.Errorf("addressRepo.Create: %w", err)
	}
	return nil
}

func (r *addressRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	var address domain.Address
	err := r.db.GetContext(ctx, &address, "SELECT * FROM addresses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("addressRepo.GetByID: %w", err)
	}
	return &address, nil
}
