package port

import (
	"context"
	"io"
)

// ReportUpload carries one report file's bytes and placement for storage.
type ReportUpload struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// StoredReport records where an uploaded report file landed.
type StoredReport struct {
	Location string
	ETag     string
}

// ReportStorage keeps the original report files. Database rows hold only the
// bucket/key pair; the ingest worker pulls the bytes back through Download,
// and the API hands browsers a presigned URL instead of proxying the file.
type ReportStorage interface {
	Upload(ctx context.Context, upload ReportUpload) (*StoredReport, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	PresignDownload(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
