package service

import (
	"context"
	"log"
	"sync"
	"time"

	"careflow/internal/port"
)

// IngestQueueConfig holds settings for the ingest queue worker.
type IngestQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// IngestQueueWorker polls for queued report files and dispatches them for
// ingestion.
type IngestQueueWorker struct {
	reportRepo    port.ReportFileRepository
	ingestService IngestService
	cfg           IngestQueueConfig
	wg            sync.WaitGroup
}

// NewIngestQueueWorker creates a new IngestQueueWorker.
func NewIngestQueueWorker(reportRepo port.ReportFileRepository, ingestService IngestService, cfg IngestQueueConfig) *IngestQueueWorker {
	return &IngestQueueWorker{
		reportRepo:    reportRepo,
		ingestService: ingestService,
		cfg:           cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight ingest goroutines have finished.
func (w *IngestQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("ingestQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("ingestQueueWorker: shutting down, waiting for in-flight ingests...")
			w.wg.Wait()
			log.Printf("ingestQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			reports, err := w.reportRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll, exit gracefully on the
					// next select pass.
					continue
				}
				log.Printf("ingestQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range reports {
				report := reports[i] // copy for goroutine
				report.IngestAttempts++

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight ingests complete even during shutdown.
					ingestCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					log.Printf("ingestQueueWorker: dispatching report %s (attempt %d)", report.ID, report.IngestAttempts)
					w.ingestService.IngestReport(ingestCtx, &report, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
