package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"careflow/internal/domain"
	"careflow/internal/extract"
	"careflow/internal/port"
)

// IngestConfig holds the settings the ingest pipeline reads at dispatch time.
type IngestConfig struct {
	// ConfidenceThreshold is the score below which a record is counted as
	// flagged; a reviewer alert goes out when any record falls under it.
	ConfidenceThreshold float64
	ReviewerAddrs       []string
}

// IngestService runs the extraction pipeline for one claimed report file.
type IngestService interface {
	// IngestReport downloads, extracts, enriches and persists the report's
	// records. It owns the report's terminal status: completed, requeued
	// for another attempt, or failed once maxRetries is exhausted.
	IngestReport(ctx context.Context, report *domain.ReportFile, maxRetries int)
}

type ingestService struct {
	reportRepo port.ReportFileRepository
	recordRepo port.DischargeRecordRepository
	auditRepo  port.RecordAuditRepository
	storage    port.ReportStorage
	extractor  port.TextExtractor
	engine     *extract.Engine
	enrichment EnrichmentService
	email      port.EmailSender
	cfg        IngestConfig
}

// NewIngestService creates a new IngestService implementation.
func NewIngestService(
	reportRepo port.ReportFileRepository,
	recordRepo port.DischargeRecordRepository,
	auditRepo port.RecordAuditRepository,
	storage port.ReportStorage,
	extractor port.TextExtractor,
	engine *extract.Engine,
	enrichment EnrichmentService,
	email port.EmailSender,
	cfg IngestConfig,
) IngestService {
	return &ingestService{
		reportRepo: reportRepo,
		recordRepo: recordRepo,
		auditRepo:  auditRepo,
		storage:    storage,
		extractor:  extractor,
		engine:     engine,
		enrichment: enrichment,
		email:      email,
		cfg:        cfg,
	}
}

func (s *ingestService) IngestReport(ctx context.Context, report *domain.ReportFile, maxRetries int) {
	if err := s.ingest(ctx, report); err != nil {
		log.Printf("ingestService.IngestReport: report %s attempt %d failed: %v",
			report.ID, report.IngestAttempts, err)
		s.handleFailure(ctx, report, maxRetries, err)
		return
	}
	log.Printf("ingestService.IngestReport: report %s completed with %d records",
		report.ID, report.RecordCount)
}

func (s *ingestService) ingest(ctx context.Context, report *domain.ReportFile) error {
	data, err := s.storage.Download(ctx, report.S3Bucket, report.S3Key)
	if err != nil {
		return err
	}

	text, err := s.extractor.ExtractText(ctx, data, report.ContentType)
	if err != nil {
		return err
	}

	result := s.engine.Parse(text)

	records := make([]domain.DischargeRecord, 0, len(result.Records))
	flagged := 0
	lowest := 1.0
	for i := range result.Records {
		rec := toDischargeRecord(report.ID, &result.Records[i])
		if err := s.enrichment.Enrich(ctx, &rec); err != nil {
			return err
		}
		if rec.Confidence < s.cfg.ConfidenceThreshold {
			flagged++
		}
		if rec.Confidence < lowest {
			lowest = rec.Confidence
		}
		records = append(records, rec)
	}

	if err := s.recordRepo.CreateBatch(ctx, records); err != nil {
		return err
	}
	for i := range records {
		s.appendIngestAudit(ctx, report, &records[i])
	}

	now := time.Now().UTC()
	report.FacilityName = result.FacilityName
	report.ReportDate = result.ReportDate
	report.IngestStatus = domain.IngestStatusCompleted
	report.IngestError = ""
	report.RecordCount = len(records)
	report.IngestedAt = &now
	if err := s.reportRepo.UpdateIngestResult(ctx, report); err != nil {
		return err
	}

	if flagged > 0 {
		alert := port.ReviewAlert{
			FacilityName:     report.FacilityName,
			ReportDate:       report.ReportDate,
			ReportFileName:   report.OriginalName,
			TotalRecords:     len(records),
			FlaggedRecords:   flagged,
			LowestConfidence: lowest,
		}
		if err := s.email.SendReviewAlert(ctx, s.cfg.ReviewerAddrs, alert); err != nil {
			// Alert delivery is best effort; the records are already in the
			// review queue.
			log.Printf("ingestService.ingest: review alert for report %s failed: %v", report.ID, err)
		}
	}

	return nil
}

func (s *ingestService) handleFailure(ctx context.Context, report *domain.ReportFile, maxRetries int, cause error) {
	report.IngestError = cause.Error()

	if report.IngestAttempts < maxRetries {
		// One update both records the error and returns the claim to the
		// queue; the report is never left in processing between two writes.
		if err := s.reportRepo.Requeue(ctx, report.ID, report.IngestError); err != nil {
			log.Printf("ingestService.handleFailure: requeue report %s: %v", report.ID, err)
		}
		return
	}

	report.IngestStatus = domain.IngestStatusFailed
	if err := s.reportRepo.UpdateIngestResult(ctx, report); err != nil {
		log.Printf("ingestService.handleFailure: marking report %s failed: %v", report.ID, err)
	}
}

func (s *ingestService) appendIngestAudit(ctx context.Context, report *domain.ReportFile, rec *domain.DischargeRecord) {
	snapshot, err := json.Marshal(rec)
	if err != nil {
		log.Printf("ingestService.appendIngestAudit: snapshot record %s: %v", rec.ID, err)
		return
	}
	entry := &domain.RecordAuditEntry{
		ID:        uuid.New(),
		RecordID:  rec.ID,
		Actor:     report.UploadedBy,
		Action:    domain.AuditActionIngested,
		NewValues: snapshot,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		log.Printf("ingestService.appendIngestAudit: append for record %s: %v", rec.ID, err)
	}
}

// toDischargeRecord maps an engine result row onto a persistable record.
func toDischargeRecord(reportID uuid.UUID, parsed *extract.ParsedRecord) domain.DischargeRecord {
	return domain.DischargeRecord{
		ID:                  uuid.New(),
		ReportFileID:        reportID,
		PatientName:         parsed.PatientName,
		RecordCode:          parsed.RecordID,
		PhoneNumber:         parsed.PhoneNumber,
		AttendingProvider:   parsed.AttendingProvider,
		EventDate:           parsed.EventDate,
		PrimaryCareProvider: parsed.PrimaryCareProvider,
		Payer:               parsed.Payer,
		Outcome:             parsed.Outcome,
		Confidence:          parsed.Confidence,
		SourceText:          parsed.SourceText,
		ReviewStatus:        domain.ReviewStatusPending,
	}
}
