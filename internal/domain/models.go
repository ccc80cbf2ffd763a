package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user of the review application.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ReportFile stores metadata about an uploaded discharge-list export and the
// state of its ingestion.
type ReportFile struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	UploadedBy     uuid.UUID    `db:"uploaded_by" json:"uploaded_by"`
	FileName       string       `db:"file_name" json:"file_name"`
	OriginalName   string       `db:"original_name" json:"original_name"`
	FileType       FileType     `db:"file_type" json:"file_type"`
	FileSize       int64        `db:"file_size" json:"file_size"`
	S3Bucket       string       `db:"s3_bucket" json:"s3_bucket"`
	S3Key          string       `db:"s3_key" json:"s3_key"`
	ContentType    string       `db:"content_type" json:"content_type"`
	FacilityName   string       `db:"facility_name" json:"facility_name"`
	ReportDate     string       `db:"report_date" json:"report_date"`
	IngestStatus   IngestStatus `db:"ingest_status" json:"ingest_status"`
	IngestError    string       `db:"ingest_error" json:"ingest_error"`
	IngestAttempts int          `db:"ingest_attempts" json:"ingest_attempts"`
	RecordCount    int          `db:"record_count" json:"record_count"`
	IngestedAt     *time.Time   `db:"ingested_at" json:"ingested_at"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

// DischargeRecord is one persisted discharge entry extracted from a report
// line, together with its enrichment annotations and review state.
//
// PhoneNumber and PrimaryCareProvider are pointers because the extraction
// engine distinguishes an absent field from an empty one; that distinction is
// preserved all the way to the API.
type DischargeRecord struct {
	ID                  uuid.UUID    `db:"id" json:"id"`
	ReportFileID        uuid.UUID    `db:"report_file_id" json:"report_file_id"`
	PatientName         string       `db:"patient_name" json:"patient_name"`
	RecordCode          string       `db:"record_code" json:"record_code"`
	PhoneNumber         *string      `db:"phone_number" json:"phone_number,omitempty"`
	PhoneVerified       bool         `db:"phone_verified" json:"phone_verified"`
	AttendingProvider   string       `db:"attending_provider" json:"attending_provider"`
	EventDate           string       `db:"event_date" json:"event_date"`
	PrimaryCareProvider *string      `db:"primary_care_provider" json:"primary_care_provider,omitempty"`
	Payer               string       `db:"payer" json:"payer"`
	PayerPlanCode       string       `db:"payer_plan_code" json:"payer_plan_code"`
	Outcome             string       `db:"outcome" json:"outcome"`
	Confidence          float64      `db:"confidence" json:"confidence"`
	SourceText          string       `db:"source_text" json:"source_text"`
	ReviewStatus        ReviewStatus `db:"review_status" json:"review_status"`
	ReviewedBy          *uuid.UUID   `db:"reviewed_by" json:"reviewed_by"`
	ReviewedAt          *time.Time   `db:"reviewed_at" json:"reviewed_at"`
	ReviewerNotes       string       `db:"reviewer_notes" json:"reviewer_notes"`
	CreatedAt           time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time    `db:"updated_at" json:"updated_at"`
}

// RecordAuditEntry is one append-only audit trail entry for a discharge
// record. Old and new values are JSON snapshots of the record fields touched
// by the action.
type RecordAuditEntry struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	RecordID  uuid.UUID       `db:"record_id" json:"record_id"`
	Actor     uuid.UUID       `db:"actor" json:"actor"`
	Action    AuditAction     `db:"action" json:"action"`
	OldValues json.RawMessage `db:"old_values" json:"old_values,omitempty"`
	NewValues json.RawMessage `db:"new_values" json:"new_values,omitempty"`
	Note      string          `db:"note" json:"note"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// PhoneDirectoryEntry is one known patient callback number used to verify
// extracted phone fields.
type PhoneDirectoryEntry struct {
	Phone        string    `db:"phone" json:"phone"`
	ProviderName string    `db:"provider_name" json:"provider_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PayerPlan maps a payer name from the extraction vocabulary to a billing
// plan code.
type PayerPlan struct {
	PayerName string    `db:"payer_name" json:"payer_name"`
	PlanCode  string    `db:"plan_code" json:"plan_code"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
