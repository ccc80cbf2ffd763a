package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"careflow/internal/config"
	"careflow/internal/domain"
	"careflow/internal/port"
)

// AmendInput is the DTO for record amendment requests. Nil fields are left
// untouched; ClearPhone and ClearPCP explicitly blank an extracted value.
type AmendInput struct {
	PatientName         *string `json:"patient_name"`
	RecordCode          *string `json:"record_code"`
	PhoneNumber         *string `json:"phone_number"`
	ClearPhone          bool    `json:"clear_phone"`
	AttendingProvider   *string `json:"attending_provider"`
	EventDate           *string `json:"event_date"`
	PrimaryCareProvider *string `json:"primary_care_provider"`
	ClearPCP            bool    `json:"clear_pcp"`
	Payer               *string `json:"payer"`
	Outcome             *string `json:"outcome"`
	Notes               string  `json:"notes"`
}

// ReviewService defines the record review workflow contract.
type ReviewService interface {
	GetRecord(ctx context.Context, recordID uuid.UUID) (*domain.DischargeRecord, error)
	ListByReport(ctx context.Context, reportID uuid.UUID, offset, limit int) ([]domain.DischargeRecord, int, error)
	// Queue lists pending records at or below the configured confidence
	// threshold, least confident first.
	Queue(ctx context.Context, offset, limit int) ([]domain.DischargeRecord, int, error)
	Approve(ctx context.Context, recordID, reviewer uuid.UUID, notes string) (*domain.DischargeRecord, error)
	Reject(ctx context.Context, recordID, reviewer uuid.UUID, notes string) (*domain.DischargeRecord, error)
	Amend(ctx context.Context, recordID, reviewer uuid.UUID, input AmendInput) (*domain.DischargeRecord, error)
	AuditTrail(ctx context.Context, recordID uuid.UUID) ([]domain.RecordAuditEntry, error)
}

type reviewService struct {
	recordRepo port.DischargeRecordRepository
	auditRepo  port.RecordAuditRepository
	cfg        config.ReviewConfig
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	recordRepo port.DischargeRecordRepository,
	auditRepo port.RecordAuditRepository,
	cfg config.ReviewConfig,
) ReviewService {
	return &reviewService{
		recordRepo: recordRepo,
		auditRepo:  auditRepo,
		cfg:        cfg,
	}
}

func (s *reviewService) GetRecord(ctx context.Context, recordID uuid.UUID) (*domain.DischargeRecord, error) {
	return s.recordRepo.GetByID(ctx, recordID)
}

func (s *reviewService) ListByReport(ctx context.Context, reportID uuid.UUID, offset, limit int) ([]domain.DischargeRecord, int, error) {
	return s.recordRepo.ListByReport(ctx, reportID, offset, limit)
}

func (s *reviewService) Queue(ctx context.Context, offset, limit int) ([]domain.DischargeRecord, int, error) {
	return s.recordRepo.ListReviewQueue(ctx, s.cfg.ConfidenceThreshold, offset, limit)
}

func (s *reviewService) Approve(ctx context.Context, recordID, reviewer uuid.UUID, notes string) (*domain.DischargeRecord, error) {
	return s.resolve(ctx, recordID, reviewer, notes, domain.ReviewStatusApproved, domain.AuditActionApproved)
}

func (s *reviewService) Reject(ctx context.Context, recordID, reviewer uuid.UUID, notes string) (*domain.DischargeRecord, error) {
	return s.resolve(ctx, recordID, reviewer, notes, domain.ReviewStatusRejected, domain.AuditActionRejected)
}

func (s *reviewService) resolve(
	ctx context.Context,
	recordID, reviewer uuid.UUID,
	notes string,
	status domain.ReviewStatus,
	action domain.AuditAction,
) (*domain.DischargeRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.ReviewStatus != domain.ReviewStatusPending {
		return nil, domain.ErrInvalidReviewAction
	}

	now := time.Now().UTC()
	record.ReviewStatus = status
	record.ReviewedBy = &reviewer
	record.ReviewedAt = &now
	record.ReviewerNotes = notes

	if err := s.recordRepo.UpdateReview(ctx, record); err != nil {
		return nil, fmt.Errorf("review.resolve: %w", err)
	}
	s.appendAudit(ctx, record, reviewer, action, nil, notes)

	return record, nil
}

func (s *reviewService) Amend(ctx context.Context, recordID, reviewer uuid.UUID, input AmendInput) (*domain.DischargeRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.ReviewStatus != domain.ReviewStatusPending {
		return nil, domain.ErrInvalidReviewAction
	}

	oldSnapshot, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("review.Amend: snapshot: %w", err)
	}

	applyAmendment(record, input)

	if err := s.recordRepo.UpdateFields(ctx, record); err != nil {
		return nil, fmt.Errorf("review.Amend: %w", err)
	}

	now := time.Now().UTC()
	record.ReviewStatus = domain.ReviewStatusAmended
	record.ReviewedBy = &reviewer
	record.ReviewedAt = &now
	record.ReviewerNotes = input.Notes
	if err := s.recordRepo.UpdateReview(ctx, record); err != nil {
		return nil, fmt.Errorf("review.Amend: %w", err)
	}

	s.appendAudit(ctx, record, reviewer, domain.AuditActionAmended, oldSnapshot, input.Notes)

	return record, nil
}

func applyAmendment(record *domain.DischargeRecord, input AmendInput) {
	if input.PatientName != nil {
		record.PatientName = *input.PatientName
	}
	if input.RecordCode != nil {
		record.RecordCode = *input.RecordCode
	}
	switch {
	case input.ClearPhone:
		record.PhoneNumber = nil
		record.PhoneVerified = false
	case input.PhoneNumber != nil:
		record.PhoneNumber = input.PhoneNumber
		record.PhoneVerified = false
	}
	if input.AttendingProvider != nil {
		record.AttendingProvider = *input.AttendingProvider
	}
	if input.EventDate != nil {
		record.EventDate = *input.EventDate
	}
	switch {
	case input.ClearPCP:
		record.PrimaryCareProvider = nil
	case input.PrimaryCareProvider != nil:
		record.PrimaryCareProvider = input.PrimaryCareProvider
	}
	if input.Payer != nil {
		record.Payer = *input.Payer
	}
	if input.Outcome != nil {
		record.Outcome = *input.Outcome
	}
}

func (s *reviewService) appendAudit(
	ctx context.Context,
	record *domain.DischargeRecord,
	actor uuid.UUID,
	action domain.AuditAction,
	oldValues json.RawMessage,
	note string,
) {
	newSnapshot, err := json.Marshal(record)
	if err != nil {
		log.Printf("reviewService.appendAudit: snapshot record %s: %v", record.ID, err)
		return
	}
	entry := &domain.RecordAuditEntry{
		ID:        uuid.New(),
		RecordID:  record.ID,
		Actor:     actor,
		Action:    action,
		OldValues: oldValues,
		NewValues: newSnapshot,
		Note:      note,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		log.Printf("reviewService.appendAudit: append for record %s: %v", record.ID, err)
	}
}

func (s *reviewService) AuditTrail(ctx context.Context, recordID uuid.UUID) ([]domain.RecordAuditEntry, error) {
	if _, err := s.recordRepo.GetByID(ctx, recordID); err != nil {
		return nil, err
	}
	return s.auditRepo.ListByRecord(ctx, recordID)
}
