package port

import (
	"context"

	"github.com/google/uuid"

	"careflow/internal/domain"
)

// DischargeRecordRepository manages persisted discharge records.
type DischargeRecordRepository interface {
	CreateBatch(ctx context.Context, records []domain.DischargeRecord) error
	GetByID(ctx context.Context, recordID uuid.UUID) (*domain.DischargeRecord, error)
	ListByReport(ctx context.Context, reportID uuid.UUID, offset, limit int) ([]domain.DischargeRecord, int, error)
	// ListReviewQueue returns pending records ordered by ascending
	// confidence, so the least trustworthy extractions surface first.
	ListReviewQueue(ctx context.Context, maxConfidence float64, offset, limit int) ([]domain.DischargeRecord, int, error)
	UpdateReview(ctx context.Context, record *domain.DischargeRecord) error
	UpdateFields(ctx context.Context, record *domain.DischargeRecord) error
}
