package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"careflow/internal/config"
	"careflow/internal/email/noop"
	"careflow/internal/email/ses"
	"careflow/internal/extract"
	"careflow/internal/handler"
	"careflow/internal/pdftext"
	"careflow/internal/port"
	"careflow/internal/repository/postgres"
	"careflow/internal/router"
	"careflow/internal/service"
	s3storage "careflow/internal/storage/s3"
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

	db, err := postgres.Connect(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	reportRepo := postgres.NewReportFileRepo(db)
	recordRepo := postgres.NewDischargeRecordRepo(db)
	auditRepo := postgres.NewRecordAuditRepo(db)
	lookupRepo := postgres.NewLookupRepo(db)

	// Initialize storage and email
	reportStore, err := s3storage.NewReportStorage(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize report storage: %w", err)
	}
	emailSender, err := newEmailSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize extraction engine
	engine := extract.NewEngine(extract.Penalties{
		MissingRecordID:  cfg.Extract.PenaltyMissingRecordID,
		MissingDate:      cfg.Extract.PenaltyMissingDate,
		UnknownName:      cfg.Extract.PenaltyUnknownName,
		UnknownOutcome:   cfg.Extract.PenaltyUnknownOutcome,
		MissingPhone:     cfg.Extract.PenaltyMissingPhone,
		ReformattedPhone: cfg.Extract.PenaltyReformattedPhone,
		MissingPCP:       cfg.Extract.PenaltyMissingPCP,
		UnknownPayer:     cfg.Extract.PenaltyUnknownPayer,
	})

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	reportSvc := service.NewReportService(reportRepo, reportStore, &cfg.S3)
	enrichmentSvc := service.NewEnrichmentService(lookupRepo)
	ingestSvc := service.NewIngestService(
		reportRepo, recordRepo, auditRepo,
		reportStore, pdftext.NewExtractor(), engine, enrichmentSvc, emailSender,
		service.IngestConfig{
			ConfidenceThreshold: cfg.Review.ConfidenceThreshold,
			ReviewerAddrs:       cfg.Email.ReviewerAddrs,
		},
	)
	reviewSvc := service.NewReviewService(recordRepo, auditRepo, cfg.Review)
	exportSvc := service.NewExportService(reportRepo, recordRepo)
	userSvc := service.NewUserService(userRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	reportH := handler.NewReportHandler(reportSvc)
	recordH := handler.NewRecordHandler(reviewSvc)
	exportH := handler.NewExportHandler(exportSvc)
	userH := handler.NewUserHandler(userSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, authSvc, authH, reportH, recordH, exportH, userH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the ingest queue worker alongside the HTTP server.
	worker := service.NewIngestQueueWorker(reportRepo, ingestSvc, service.IngestQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone

	return nil
}

func newEmailSender(cfg *config.Config) (port.EmailSender, error) {
	switch cfg.Email.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
	default:
		return noop.NewNoopSender(), nil
	}
}
