package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"careflow/internal/domain"
	"careflow/internal/port"
)

type dischargeRecordRepo struct {
	db *sqlx.DB
}

// NewDischargeRecordRepo creates a new PostgreSQL-backed DischargeRecordRepository.
func NewDischargeRecordRepo(db *sqlx.DB) port.DischargeRecordRepository {
	return &dischargeRecordRepo{db: db}
}

const recordInsert = `INSERT INTO discharge_records (
	id, report_file_id, patient_name, record_code,
	phone_number, phone_verified, attending_provider, event_date,
	primary_care_provider, payer, payer_plan_code, outcome,
	confidence, source_text,
	review_status, reviewed_by, reviewed_at, reviewer_notes,
	created_at, updated_at
) VALUES (
	:id, :report_file_id, :patient_name, :record_code,
	:phone_number, :phone_verified, :attending_provider, :event_date,
	:primary_care_provider, :payer, :payer_plan_code, :outcome,
	:confidence, :source_text,
	:review_status, :reviewed_by, :reviewed_at, :reviewer_notes,
	:created_at, :updated_at
)`

func (r *dischargeRecordRepo) CreateBatch(ctx context.Context, records []domain.DischargeRecord) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range records {
		records[i].CreatedAt = now
		records[i].UpdatedAt = now
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("dischargeRecordRepo.CreateBatch begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, recordInsert, records); err != nil {
		return fmt.Errorf("dischargeRecordRepo.CreateBatch insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dischargeRecordRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *dischargeRecordRepo) GetByID(ctx context.Context, recordID uuid.UUID) (*domain.DischargeRecord, error) {
	var record domain.DischargeRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM discharge_records WHERE id = $1", recordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("dischargeRecordRepo.GetByID: %w", err)
	}
	return &record, nil
}

func (r *dischargeRecordRepo) ListByReport(ctx context.Context, reportID uuid.UUID, offset, limit int) ([]domain.DischargeRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM discharge_records WHERE report_file_id = $1", reportID)
	if err != nil {
		return nil, 0, fmt.Errorf("dischargeRecordRepo.ListByReport count: %w", err)
	}

	var records []domain.DischargeRecord
	err = r.db.SelectContext(ctx, &records,
		`SELECT * FROM discharge_records WHERE report_file_id = $1
		 ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		reportID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("dischargeRecordRepo.ListByReport: %w", err)
	}
	return records, total, nil
}

func (r *dischargeRecordRepo) ListReviewQueue(ctx context.Context, maxConfidence float64, offset, limit int) ([]domain.DischargeRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM discharge_records
		 WHERE review_status = $1 AND confidence <= $2`,
		domain.ReviewStatusPending, maxConfidence)
	if err != nil {
		return nil, 0, fmt.Errorf("dischargeRecordRepo.ListReviewQueue count: %w", err)
	}

	// Lowest confidence first: the least trustworthy extractions surface at
	// the top of the reviewer's queue.
	var records []domain.DischargeRecord
	err = r.db.SelectContext(ctx, &records,
		`SELECT * FROM discharge_records
		 WHERE review_status = $1 AND confidence <= $2
		 ORDER BY confidence ASC, created_at ASC LIMIT $3 OFFSET $4`,
		domain.ReviewStatusPending, maxConfidence, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("dischargeRecordRepo.ListReviewQueue: %w", err)
	}
	return records, total, nil
}

func (r *dischargeRecordRepo) UpdateReview(ctx context.Context, record *domain.DischargeRecord) error {
	record.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE discharge_records SET
			review_status = $1, reviewed_by = $2, reviewed_at = $3,
			reviewer_notes = $4, updated_at = $5
		 WHERE id = $6`,
		record.ReviewStatus, record.ReviewedBy, record.ReviewedAt,
		record.ReviewerNotes, record.UpdatedAt,
		record.ID)
	if err != nil {
		return fmt.Errorf("dischargeRecordRepo.UpdateReview: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *dischargeRecordRepo) UpdateFields(ctx context.Context, record *domain.DischargeRecord) error {
	record.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE discharge_records SET
			patient_name = $1, record_code = $2, phone_number = $3,
			phone_verified = $4, attending_provider = $5, event_date = $6,
			primary_care_provider = $7, payer = $8, payer_plan_code = $9,
			outcome = $10, updated_at = $11
		 WHERE id = $12`,
		record.PatientName, record.RecordCode, record.PhoneNumber,
		record.PhoneVerified, record.AttendingProvider, record.EventDate,
		record.PrimaryCareProvider, record.Payer, record.PayerPlanCode,
		record.Outcome, record.UpdatedAt,
		record.ID)
	if err != nil {
		return fmt.Errorf("dischargeRecordRepo.UpdateFields: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
