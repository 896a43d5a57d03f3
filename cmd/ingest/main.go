package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/email/noop"
	"billscan/internal/layout"
	"billscan/internal/pdfio"
	"billscan/internal/port"
	"billscan/internal/repository/postgres"
	"billscan/internal/scan"
	"billscan/internal/service"
	s3storage "billscan/internal/storage/s3"
)

// One-shot ingestion of scanned bill PDFs from the command line. Archival
// is skipped unless a bucket is configured; rejection notices go to the
// log.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: ingest <file.pdf> [<file.pdf> ...]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	businessRepo := postgres.NewBusinessRepo(db)
	billRepo := postgres.NewBillRepo(db)
	ingestionRepo := postgres.NewIngestionRepo(db)

	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	decoder := scan.NewPayloadDecoder(pdfio.NewRenderer(), pdfio.NewScanner(), cfg.Scan.DPI)
	reconcileSvc := service.NewReconcileService(decoder, pdfio.NewLayoutReader(), businessRepo, layout.DefaultRegistry())
	ingestSvc := service.NewIngestService(reconcileSvc, billRepo, ingestionRepo, storage, noop.NewNoopSender(), &cfg.S3)

	ctx := context.Background()
	for _, path := range os.Args[1:] {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		ingestion, err := ingestSvc.Ingest(ctx, service.IngestInput{
			FileName: filepath.Base(path),
			Content:  content,
		})
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		switch ingestion.Status {
		case domain.IngestionProcessed:
			fmt.Printf("%s: bill %s\n", path, ingestion.BillID)
		case domain.IngestionRejected:
			fmt.Printf("%s: rejected at %s: %s\n", path, ingestion.Stage, ingestion.Reason)
		}
	}
	return nil
}
