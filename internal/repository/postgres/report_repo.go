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

type reportFileRepo struct {
	db *sqlx.DB
}

// NewReportFileRepo creates a new PostgreSQL-backed ReportFileRepository.
func NewReportFileRepo(db *sqlx.DB) port.ReportFileRepository {
	return &reportFileRepo{db: db}
}

func (r *reportFileRepo) Create(ctx context.Context, report *domain.ReportFile) error {
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	query := `INSERT INTO report_files (
		id, uploaded_by, file_name, original_name, file_type, file_size,
		s3_bucket, s3_key, content_type,
		facility_name, report_date,
		ingest_status, ingest_error, ingest_attempts, record_count, ingested_at,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9,
		$10, $11,
		$12, $13, $14, $15, $16,
		$17, $18
	)`

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.UploadedBy, report.FileName, report.OriginalName, report.FileType, report.FileSize,
		report.S3Bucket, report.S3Key, report.ContentType,
		report.FacilityName, report.ReportDate,
		report.IngestStatus, report.IngestError, report.IngestAttempts, report.RecordCount, report.IngestedAt,
		report.CreatedAt, report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("reportFileRepo.Create: %w", err)
	}
	return nil
}

func (r *reportFileRepo) GetByID(ctx context.Context, reportID uuid.UUID) (*domain.ReportFile, error) {
	var report domain.ReportFile
	err := r.db.GetContext(ctx, &report,
		"SELECT * FROM report_files WHERE id = $1", reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("reportFileRepo.GetByID: %w", err)
	}
	return &report, nil
}

func (r *reportFileRepo) List(ctx context.Context, offset, limit int) ([]domain.ReportFile, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM report_files")
	if err != nil {
		return nil, 0, fmt.Errorf("reportFileRepo.List count: %w", err)
	}

	var reports []domain.ReportFile
	err = r.db.SelectContext(ctx, &reports,
		`SELECT * FROM report_files ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reportFileRepo.List: %w", err)
	}
	return reports, total, nil
}

func (r *reportFileRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ReportFile, error) {
	// FOR UPDATE SKIP LOCKED so concurrent workers never claim the same file.
	var reports []domain.ReportFile
	err := r.db.SelectContext(ctx, &reports,
		`UPDATE report_files SET
			ingest_status = $1, updated_at = $2
		 WHERE id IN (
			SELECT id FROM report_files
			WHERE ingest_status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.IngestStatusProcessing, time.Now().UTC(), domain.IngestStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("reportFileRepo.ClaimQueued: %w", err)
	}
	return reports, nil
}

func (r *reportFileRepo) Requeue(ctx context.Context, reportID uuid.UUID, ingestError string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE report_files SET ingest_status = $1, ingest_error = $2, updated_at = $3 WHERE id = $4`,
		domain.IngestStatusQueued, ingestError, time.Now().UTC(), reportID)
	if err != nil {
		return fmt.Errorf("reportFileRepo.Requeue: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *reportFileRepo) UpdateIngestResult(ctx context.Context, report *domain.ReportFile) error {
	report.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE report_files SET
			facility_name = $1, report_date = $2,
			ingest_status = $3, ingest_error = $4, ingest_attempts = $5,
			record_count = $6, ingested_at = $7, updated_at = $8
		 WHERE id = $9`,
		report.FacilityName, report.ReportDate,
		report.IngestStatus, report.IngestError, report.IngestAttempts,
		report.RecordCount, report.IngestedAt, report.UpdatedAt,
		report.ID)
	if err != nil {
		return fmt.Errorf("reportFileRepo.UpdateIngestResult: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}
