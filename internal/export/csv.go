// Package export renders persisted discharge records as CSV or XLSX
// downloads for handoff to billing and care coordination teams.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"careflow/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row (14 columns).
var columns = []string{
	"Patient Name",
	"Record ID",
	"Phone Number",
	"Phone Verified",
	"Attending Provider",
	"Event Date",
	"Primary Care Provider",
	"Payer",
	"Payer Plan Code",
	"Outcome",
	"Confidence",
	"Review Status",
	"Reviewer Notes",
	"Created At",
}

// CSVWriter wraps csv.Writer for exporting discharge records as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *CSVWriter) WriteRecords(records []domain.DischargeRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// recordToRow converts a single record to a string slice matching columns.
// Absent optional fields export as empty cells.
func recordToRow(rec *domain.DischargeRecord) []string {
	row := make([]string, len(columns))
	row[0] = rec.PatientName
	row[1] = rec.RecordCode
	row[2] = derefOrEmpty(rec.PhoneNumber)
	row[3] = formatBool(rec.PhoneVerified)
	row[4] = rec.AttendingProvider
	row[5] = rec.EventDate
	row[6] = derefOrEmpty(rec.PrimaryCareProvider)
	row[7] = rec.Payer
	row[8] = rec.PayerPlanCode
	row[9] = rec.Outcome
	row[10] = strconv.FormatFloat(rec.Confidence, 'f', 2, 64)
	row[11] = string(rec.ReviewStatus)
	row[12] = rec.ReviewerNotes
	row[13] = rec.CreatedAt.Format(time.RFC3339)
	return row
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a facility name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_facility_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(facilityName, ext string) string {
	sanitized := SanitizeFilename(facilityName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
