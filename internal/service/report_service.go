package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"careflow/internal/config"
	"careflow/internal/domain"
	"careflow/internal/port"
)

// ReportUploadInput is the DTO for report file upload requests.
type ReportUploadInput struct {
	UploadedBy uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// ReportService defines the report file management contract.
type ReportService interface {
	Upload(ctx context.Context, input ReportUploadInput) (*domain.ReportFile, error)
	GetByID(ctx context.Context, reportID uuid.UUID) (*domain.ReportFile, error)
	List(ctx context.Context, offset, limit int) ([]domain.ReportFile, int, error)
	GetDownloadURL(ctx context.Context, reportID uuid.UUID) (string, error)
}

type reportService struct {
	reportRepo port.ReportFileRepository
	storage    port.ReportStorage
	cfg        *config.S3Config
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	reportRepo port.ReportFileRepository,
	storage port.ReportStorage,
	cfg *config.S3Config,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		storage:    storage,
		cfg:        cfg,
	}
}

func (s *reportService) Upload(ctx context.Context, input ReportUploadInput) (*domain.ReportFile, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detected := http.DetectContentType(buf[:n])
	if !contentTypeMatches(fileType, detected) {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	reportID := uuid.New()
	s3Key := fmt.Sprintf("reports/%s/%s", reportID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	report := &domain.ReportFile{
		ID:           reportID,
		UploadedBy:   input.UploadedBy,
		FileName:     reportID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  contentType,
		IngestStatus: domain.IngestStatusQueued,
	}

	log.Printf("reportService.Upload: uploading report %s (%s, %d bytes) by user %s",
		input.Header.Filename, contentType, input.Header.Size, input.UploadedBy)

	_, err = s.storage.Upload(ctx, port.ReportUpload{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("reportService.Upload: S3 upload failed for report %s: %v", reportID, err)
		return nil, domain.ErrUploadFailed
	}

	// Persist metadata after the bytes are durable; the queue worker picks
	// it up from the queued status.
	if err := s.reportRepo.Create(ctx, report); err != nil {
		log.Printf("reportService.Upload: failed to create report metadata: %v", err)
		return nil, fmt.Errorf("creating report metadata: %w", err)
	}

	return report, nil
}

// contentTypeMatches checks the sniffed content type against the declared
// file type. http.DetectContentType reports text as "text/plain; charset=...".
func contentTypeMatches(fileType domain.FileType, detected string) bool {
	switch fileType {
	case domain.FileTypePDF:
		return detected == "application/pdf"
	case domain.FileTypeTXT:
		return strings.HasPrefix(detected, "text/plain")
	default:
		return false
	}
}

func (s *reportService) GetByID(ctx context.Context, reportID uuid.UUID) (*domain.ReportFile, error) {
	return s.reportRepo.GetByID(ctx, reportID)
}

func (s *reportService) List(ctx context.Context, offset, limit int) ([]domain.ReportFile, int, error) {
	return s.reportRepo.List(ctx, offset, limit)
}

func (s *reportService) GetDownloadURL(ctx context.Context, reportID uuid.UUID) (string, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return "", err
	}
	return s.storage.PresignDownload(ctx, report.S3Bucket, report.S3Key, s.cfg.PresignExpiry)
}
