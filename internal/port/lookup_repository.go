package port

import (
	"context"

	"careflow/internal/domain"
)

// LookupRepository serves the enrichment reference tables. These are plain
// table lookups; no parsing logic lives behind this interface.
type LookupRepository interface {
	// FindPhone returns the directory entry for a normalized phone number,
	// or domain.ErrNotFound.
	FindPhone(ctx context.Context, phone string) (*domain.PhoneDirectoryEntry, error)
	// FindPayerPlan returns the active plan for a payer name, or
	// domain.ErrNotFound.
	FindPayerPlan(ctx context.Context, payerName string) (*domain.PayerPlan, error)
}
