package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/port"
)

// IngestInput is the DTO for ingesting one scanned document.
type IngestInput struct {
	FileName string
	Content  []byte
}

// IngestService runs the full pipeline for one document: archive the
// original scan, reconcile it into a bill, persist the result and record
// the outcome in the audit trail.
type IngestService interface {
	Ingest(ctx context.Context, input IngestInput) (*domain.Ingestion, error)
}

type ingestService struct {
	reconciler    ReconcileService
	billRepo      port.BillRepository
	ingestionRepo port.IngestionRepository
	storage       port.ObjectStorage
	emails        port.EmailSender
	cfg           *config.S3Config
}

// NewIngestService creates an IngestService implementation.
func NewIngestService(
	reconciler ReconcileService,
	billRepo port.BillRepository,
	ingestionRepo port.IngestionRepository,
	storage port.ObjectStorage,
	emails port.EmailSender,
	cfg *config.S3Config,
) IngestService {
	return &ingestService{
		reconciler:    reconciler,
		billRepo:      billRepo,
		ingestionRepo: ingestionRepo,
		storage:       storage,
		emails:        emails,
		cfg:           cfg,
	}
}

func (s *ingestService) Ingest(ctx context.Context, input IngestInput) (*domain.Ingestion, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	ingestion := &domain.Ingestion{
		ID:        uuid.New(),
		FileName:  input.FileName,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.archive(ctx, ingestion, input); err != nil {
		return nil, err
	}

	outcome, err := s.reconciler.Reconcile(ctx, input.Content)
	if err != nil {
		return nil, fmt.Errorf("reconciling %s: %w", input.FileName, err)
	}

	switch outcome.Status {
	case OutcomeAssembled:
		if err := s.billRepo.Create(ctx, outcome.Bill); err != nil {
			return nil, fmt.Errorf("persisting bill: %w", err)
		}
		ingestion.Status = domain.IngestionProcessed
		ingestion.BillID = &outcome.Bill.ID
		log.Printf("service.Ingest: %s assembled bill %s (%s)", input.FileName, outcome.Bill.ID, outcome.Bill.Name)

	case OutcomeRejected:
		ingestion.Status = domain.IngestionRejected
		ingestion.Stage = outcome.Stage
		ingestion.Reason = outcome.Reason
		ingestion.RawValue = outcome.RawValue
		log.Printf("service.Ingest: %s rejected at %s: %s", input.FileName, outcome.Stage, outcome.Reason)
	}

	if err := s.ingestionRepo.Create(ctx, ingestion); err != nil {
		return nil, fmt.Errorf("recording ingestion: %w", err)
	}

	if ingestion.Status == domain.IngestionRejected {
		// Notify for manual handling. A delivery failure must not undo an
		// already recorded rejection.
		if err := s.emails.SendRejectionNotice(ctx, ingestion); err != nil {
			log.Printf("service.Ingest: rejection notice for %s failed: %v", input.FileName, err)
		}
	}

	return ingestion, nil
}

// validate checks file extension, magic bytes and size before any work.
func (s *ingestService) validate(input *IngestInput) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if int64(len(input.Content)) > maxBytes {
		return domain.ErrFileTooLarge
	}

	head := input.Content
	if len(head) > 512 {
		head = head[:512]
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(head)]; !ok {
		return domain.ErrUnsupportedFileType
	}
	return nil
}

// archive uploads the original scan to object storage. Archival is
// skipped when no bucket is configured (one-shot CLI use).
func (s *ingestService) archive(ctx context.Context, ingestion *domain.Ingestion, input IngestInput) error {
	if s.cfg.Bucket == "" {
		return nil
	}

	key := fmt.Sprintf("scans/%s/%s%s",
		ingestion.CreatedAt.Format("2006/01"), ingestion.ID, filepath.Ext(input.FileName))

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(input.Content),
		ContentType: "application/pdf",
		Size:        int64(len(input.Content)),
	})
	if err != nil {
		log.Printf("service.Ingest: archiving %s failed: %v", input.FileName, err)
		return domain.ErrUploadFailed
	}

	ingestion.S3Bucket = s.cfg.Bucket
	ingestion.S3Key = key
	return nil
}
