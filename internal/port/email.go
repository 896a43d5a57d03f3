package port

import (
	"context"

	"billscan/internal/domain"
)

// EmailSender defines the contract for operator notifications.
type EmailSender interface {
	// SendRejectionNotice reports a rejected document with enough context
	// (file name, failing stage, raw offending value) for manual correction.
	SendRejectionNotice(ctx context.Context, ingestion *domain.Ingestion) error
}
