package port

import "context"

// ReviewAlert describes an ingest that produced low-confidence records.
type ReviewAlert struct {
	FacilityName     string
	ReportDate       string
	ReportFileName   string
	TotalRecords     int
	FlaggedRecords   int
	LowestConfidence float64
}

// EmailSender delivers reviewer notifications.
type EmailSender interface {
	SendReviewAlert(ctx context.Context, to []string, alert ReviewAlert) error
}
