package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"careflow/internal/domain"
	"careflow/internal/port"
)

type recordAuditRepo struct {
	db *sqlx.DB
}

// NewRecordAuditRepo creates a new PostgreSQL-backed RecordAuditRepository.
func NewRecordAuditRepo(db *sqlx.DB) port.RecordAuditRepository {
	return &recordAuditRepo{db: db}
}

func (r *recordAuditRepo) Append(ctx context.Context, entry *domain.RecordAuditEntry) error {
	entry.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO record_audit_entries (
			id, record_id, actor, action, old_values, new_values, note, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.RecordID, entry.Actor, entry.Action,
		entry.OldValues, entry.NewValues, entry.Note, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("recordAuditRepo.Append: %w", err)
	}
	return nil
}

func (r *recordAuditRepo) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]domain.RecordAuditEntry, error) {
	var entries []domain.RecordAuditEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM record_audit_entries WHERE record_id = $1 ORDER BY created_at`,
		recordID)
	if err != nil {
		return nil, fmt.Errorf("recordAuditRepo.ListByRecord: %w", err)
	}
	return entries, nil
}
