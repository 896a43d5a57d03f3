package noop

import (
	"context"
	"log"

	"billscan/internal/domain"
	"billscan/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs rejection notices
// to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendRejectionNotice(_ context.Context, ingestion *domain.Ingestion) error {
	log.Printf("[NOOP EMAIL] Rejection notice for %s: stage=%s reason=%q raw=%q",
		ingestion.FileName, ingestion.Stage, ingestion.Reason, ingestion.RawValue)
	return nil
}
