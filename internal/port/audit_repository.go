package port

import (
	"context"

	"github.com/google/uuid"

	"careflow/internal/domain"
)

// RecordAuditRepository is the append-only audit trail for discharge records.
type RecordAuditRepository interface {
	Append(ctx context.Context, entry *domain.RecordAuditEntry) error
	ListByRecord(ctx context.Context, recordID uuid.UUID) ([]domain.RecordAuditEntry, error)
}
