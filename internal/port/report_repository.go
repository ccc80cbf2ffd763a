package port

import (
	"context"

	"github.com/google/uuid"

	"careflow/internal/domain"
)

// ReportFileRepository manages uploaded report file metadata.
type ReportFileRepository interface {
	Create(ctx context.Context, report *domain.ReportFile) error
	GetByID(ctx context.Context, reportID uuid.UUID) (*domain.ReportFile, error)
	List(ctx context.Context, offset, limit int) ([]domain.ReportFile, int, error)
	// ClaimQueued atomically marks up to limit queued report files as
	// processing and returns them, so concurrent workers never claim the
	// same file twice.
	ClaimQueued(ctx context.Context, limit int) ([]domain.ReportFile, error)
	// Requeue returns a failed claim to the queue for another attempt,
	// recording the failure in the same update.
	Requeue(ctx context.Context, reportID uuid.UUID, ingestError string) error
	UpdateIngestResult(ctx context.Context, report *domain.ReportFile) error
}
