package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billscan/internal/domain"
	"billscan/internal/port"
)

type businessRepo struct {
	db *sqlx.DB
}

// NewBusinessRepo creates a new PostgreSQL-backed BusinessRepository.
func NewBusinessRepo(db *sqlx.DB) port.BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, business *domain.Business) error {
	now := time.Now().UTC()
	business.CreatedAt = now
	business.UpdatedAt = now

	query := `INSERT INTO businesses
		(id, name, bank_account, pdf_producer, type, url, address_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		business.ID, business.Name, business.BankAccount, business.PDFProducer,
		business.Type, business.URL, business.AddressID, business.CreatedAt, business.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateAccount
		}
		return fmt.Errorf("businessRepo.Create: %w", err)
	}
	return nil
}

func (r *businessRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	var business domain.Business
	err := r.db.GetContext(ctx, &business,
		"SELECT * FROM businesses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("businessRepo.GetByID: %w", err)
	}
	return &business, nil
}

func (r *businessRepo) GetByAccount(ctx context.Context, account string) (*domain.Business, error) {
	var business domain.Business
	err := r.db.GetContext(ctx, &business,
		"SELECT * FROM businesses WHERE bank_account = $1", account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("businessRepo.GetByAccount: %w", err)
	}
	return &business, nil
}

func (r *businessRepo) List(ctx context.Context, offset, limit int) ([]domain.Business, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM businesses"); err != nil {
		return nil, 0, fmt.Errorf("businessRepo.List count: %w", err)
	}

	var businesses []domain.Business
	err := r.db.SelectContext(ctx, &businesses,
		"SELECT * FROM businesses ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("businessRepo.List: %w", err)
	}
	return businesses, total, nil
}
