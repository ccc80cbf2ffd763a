package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"careflow/internal/domain"
	"careflow/internal/port"
)

type lookupRepo struct {
	db *sqlx.DB
}

// NewLookupRepo creates a new PostgreSQL-backed LookupRepository.
func NewLookupRepo(db *sqlx.DB) port.LookupRepository {
	return &lookupRepo{db: db}
}

func (r *lookupRepo) FindPhone(ctx context.Context, phone string) (*domain.PhoneDirectoryEntry, error) {
	var entry domain.PhoneDirectoryEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM phone_directory WHERE phone = $1", phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lookupRepo.FindPhone: %w", err)
	}
	return &entry, nil
}

func (r *lookupRepo) FindPayerPlan(ctx context.Context, payerName string) (*domain.PayerPlan, error) {
	var plan domain.PayerPlan
	err := r.db.GetContext(ctx, &plan,
		"SELECT * FROM payer_plans WHERE payer_name = $1 AND is_active", payerName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lookupRepo.FindPayerPlan: %w", err)
	}
	return &plan, nil
}
