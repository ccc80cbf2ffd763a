package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"careflow/internal/domain"
	"careflow/internal/export"
	"careflow/internal/port"
)

// exportPageSize bounds each repository fetch while exporting a report.
const exportPageSize = 500

// ExportFile is a rendered download ready to stream to the client.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders a report's extracted records as a file download.
type ExportService interface {
	ExportCSV(ctx context.Context, reportID uuid.UUID) (*ExportFile, error)
	ExportXLSX(ctx context.Context, reportID uuid.UUID) (*ExportFile, error)
}

type exportService struct {
	reportRepo port.ReportFileRepository
	recordRepo port.DischargeRecordRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	reportRepo port.ReportFileRepository,
	recordRepo port.DischargeRecordRepository,
) ExportService {
	return &exportService{
		reportRepo: reportRepo,
		recordRepo: recordRepo,
	}
}

func (s *exportService) ExportCSV(ctx context.Context, reportID uuid.UUID) (*ExportFile, error) {
	report, records, err := s.collect(ctx, reportID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := buf.Write(export.BOM); err != nil {
		return nil, fmt.Errorf("export.ExportCSV: %w", err)
	}
	w := export.NewCSVWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, fmt.Errorf("export.ExportCSV: %w", err)
	}
	if err := w.WriteRecords(records); err != nil {
		return nil, fmt.Errorf("export.ExportCSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export.ExportCSV: %w", err)
	}

	return &ExportFile{
		FileName:    export.BuildFilename(report.FacilityName, "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func (s *exportService) ExportXLSX(ctx context.Context, reportID uuid.UUID) (*ExportFile, error) {
	report, records, err := s.collect(ctx, reportID)
	if err != nil {
		return nil, err
	}

	buf, err := export.WriteXLSX(records)
	if err != nil {
		return nil, fmt.Errorf("export.ExportXLSX: %w", err)
	}

	return &ExportFile{
		FileName:    export.BuildFilename(report.FacilityName, "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// collect loads the report and every record it produced, page by page.
func (s *exportService) collect(ctx context.Context, reportID uuid.UUID) (*domain.ReportFile, []domain.DischargeRecord, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if report.IngestStatus != domain.IngestStatusCompleted {
		return nil, nil, domain.ErrReportNotIngested
	}

	var records []domain.DischargeRecord
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.recordRepo.ListByReport(ctx, reportID, offset, exportPageSize)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, page...)
		if len(records) >= total || len(page) == 0 {
			break
		}
	}
	return report, records, nil
}
