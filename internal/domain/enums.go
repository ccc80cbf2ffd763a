package domain

// FileType represents the allowed file types for report uploads.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeTXT FileType = "txt"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeTXT: "text/plain",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
	"txt": FileTypeTXT,
}

// UserRole defines the application role hierarchy.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleReviewer UserRole = "reviewer"
)

// IngestStatus represents the lifecycle of an uploaded report file.
type IngestStatus string

const (
	IngestStatusQueued     IngestStatus = "queued"
	IngestStatusProcessing IngestStatus = "processing"
	IngestStatusCompleted  IngestStatus = "completed"
	IngestStatusFailed     IngestStatus = "failed"
)

// ReviewStatus represents the review state of a discharge record.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
	ReviewStatusAmended  ReviewStatus = "amended"
)

// AuditAction identifies the kind of change recorded in the audit trail.
type AuditAction string

const (
	AuditActionIngested AuditAction = "ingested"
	AuditActionApproved AuditAction = "approved"
	AuditActionRejected AuditAction = "rejected"
	AuditActionAmended  AuditAction = "amended"
)
