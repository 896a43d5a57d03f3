package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billscan/internal/domain"
	"billscan/internal/port"
)

type ingestionRepo struct {
	db *sqlx.DB
}

// NewIngestionRepo creates a new PostgreSQL-backed IngestionRepository.
func NewIngestionRepo(db *sqlx.DB) port.IngestionRepository {
	return &ingestionRepo{db: db}
}

func (r *ingestionRepo) Create(ctx context.Context, ingestion *domain.Ingestion) error {
	query := `INSERT INTO ingestions
		(id, file_name, s3_bucket, s3_key, status, stage, reason, raw_value, bill_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		ingestion.ID, ingestion.FileName, ingestion.S3Bucket, ingestion.S3Key,
		ingestion.Status, ingestion.Stage, ingestion.Reason, ingestion.RawValue,
		ingestion.BillID, ingestion.CreatedAt)
	if err != nil {
		return fmt.Errorf("ingestionRepo.Create: %w", err)
	}
	return nil
}

func (r *ingestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ingestion, error) {
	var ingestion domain.Ingestion
	err := r.db.GetContext(ctx, &ingestion, "SELECT * FROM ingestions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ingestionRepo.GetByID: %w", err)
	}
	return &ingestion, nil
}

func (r *ingestionRepo) List(ctx context.Context, offset, limit int) ([]domain.Ingestion, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM ingestions"); err != nil {
		return nil, 0, fmt.Errorf("ingestionRepo.List count: %w", err)
	}

	var ingestions []domain.Ingestion
	err := r.db.SelectContext(ctx, &ingestions,
		"SELECT * FROM ingestions ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ingestionRepo.List: %w", err)
	}
	return ingestions, total, nil
}
