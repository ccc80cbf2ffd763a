package service

import (
	"context"
	"errors"
	"fmt"

	"careflow/internal/domain"
	"careflow/internal/port"
)

// EnrichmentService annotates extracted records against the reference tables.
// It never alters what the extraction engine produced; verification flags and
// plan codes are additive.
type EnrichmentService interface {
	Enrich(ctx context.Context, record *domain.DischargeRecord) error
}

type enrichmentService struct {
	lookupRepo port.LookupRepository
}

// NewEnrichmentService creates a new EnrichmentService implementation.
func NewEnrichmentService(lookupRepo port.LookupRepository) EnrichmentService {
	return &enrichmentService{lookupRepo: lookupRepo}
}

func (s *enrichmentService) Enrich(ctx context.Context, record *domain.DischargeRecord) error {
	if record.PhoneNumber != nil {
		_, err := s.lookupRepo.FindPhone(ctx, *record.PhoneNumber)
		switch {
		case err == nil:
			record.PhoneVerified = true
		case errors.Is(err, domain.ErrNotFound):
			// Unlisted numbers stay unverified.
		default:
			return fmt.Errorf("enrichment.Enrich phone: %w", err)
		}
	}

	if record.Payer != "" && record.Payer != "Unknown" {
		plan, err := s.lookupRepo.FindPayerPlan(ctx, record.Payer)
		switch {
		case err == nil:
			record.PayerPlanCode = plan.PlanCode
		case errors.Is(err, domain.ErrNotFound):
			// Payer names outside the plan table export without a code.
		default:
			return fmt.Errorf("enrichment.Enrich payer: %w", err)
		}
	}

	return nil
}
