package noop

import (
	"context"
	"log"
	"strings"

	"careflow/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs alerts to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReviewAlert(_ context.Context, to []string, alert port.ReviewAlert) error {
	log.Printf("[NOOP EMAIL] Review alert to %s: %d/%d records from %s flagged (lowest confidence %.2f)",
		strings.Join(to, ", "), alert.FlaggedRecords, alert.TotalRecords,
		alert.FacilityName, alert.LowestConfidence)
	return nil
}
