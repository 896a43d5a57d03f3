package main

import (
	"fmt"
	"log"

	"billscan/internal/config"
	"billscan/internal/email/noop"
	"billscan/internal/email/ses"
	"billscan/internal/handler"
	"billscan/internal/layout"
	"billscan/internal/pdfio"
	"billscan/internal/port"
	"billscan/internal/repository/postgres"
	"billscan/internal/router"
	"billscan/internal/scan"
	"billscan/internal/service"
	s3storage "billscan/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	businessRepo := postgres.NewBusinessRepo(db)
	billRepo := postgres.NewBillRepo(db)
	ingestionRepo := postgres.NewIngestionRepo(db)
	addressRepo := postgres.NewAddressRepo(db)

	// Initialize scan archive storage
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize email sender
	var emails port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emails, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.ToAddress)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emails = noop.NewNoopSender()
	}

	// Initialize the scanning pipeline
	decoder := scan.NewPayloadDecoder(pdfio.NewRenderer(), pdfio.NewScanner(), cfg.Scan.DPI)
	rules := layout.DefaultRegistry()

	// Initialize services
	reconcileSvc := service.NewReconcileService(decoder, pdfio.NewLayoutReader(), businessRepo, rules)
	ingestSvc := service.NewIngestService(reconcileSvc, billRepo, ingestionRepo, storage, emails, &cfg.S3)
	ingestionQuerySvc := service.NewIngestionQueryService(ingestionRepo)
	billSvc := service.NewBillService(billRepo)
	businessSvc := service.NewBusinessService(businessRepo, addressRepo)
	reportSvc := service.NewReportService(billRepo, businessRepo)

	// Initialize handlers
	ingestH := handler.NewIngestHandler(ingestSvc, ingestionQuerySvc)
	billH := handler.NewBillHandler(billSvc)
	businessH := handler.NewBusinessHandler(businessSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.Auth.APIKey, ingestH, billH, businessH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
