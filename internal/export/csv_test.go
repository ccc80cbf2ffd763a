package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"careflow/internal/domain"
)

func sampleRecords() []domain.DischargeRecord {
	phone := "555-123-4567"
	pcp := "Jones, Mary MD"
	return []domain.DischargeRecord{
		{
			ID:                  uuid.New(),
			PatientName:         "Doe, Jane",
			RecordCode:          "EP123456789",
			PhoneNumber:         &phone,
			PhoneVerified:       true,
			AttendingProvider:   "Smith, John MD",
			EventDate:           "01-15-2024",
			PrimaryCareProvider: &pcp,
			Payer:               "Medicare",
			PayerPlanCode:       "MCR-01",
			Outcome:             "Home",
			Confidence:          1.0,
			ReviewStatus:        domain.ReviewStatusApproved,
			CreatedAt:           time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:           uuid.New(),
			PatientName:  "Roe, Richard",
			RecordCode:   "EP987654321",
			EventDate:    "01-16-2024",
			Payer:        "Unknown",
			Outcome:      "SNF",
			Confidence:   0.7,
			ReviewStatus: domain.ReviewStatusPending,
			CreatedAt:    time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestCSVWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords(sampleRecords()))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Patient Name", rows[0][0])
	assert.Equal(t, "Created At", rows[0][13])

	first := rows[1]
	assert.Equal(t, "Doe, Jane", first[0])
	assert.Equal(t, "555-123-4567", first[2])
	assert.Equal(t, "Yes", first[3])
	assert.Equal(t, "1.00", first[10])

	// Absent optional fields export as empty cells, not the word "nil".
	second := rows[2]
	assert.Equal(t, "", second[2])
	assert.Equal(t, "No", second[3])
	assert.Equal(t, "", second[6])
	assert.Equal(t, "0.70", second[10])
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	buf, err := WriteXLSX(sampleRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Discharges")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Patient Name", rows[0][0])
	assert.Equal(t, "Doe, Jane", rows[1][0])
	assert.Equal(t, "EP987654321", rows[2][1])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "St_Mary_s_Hospital", SanitizeFilename("St. Mary's Hospital"))
	assert.Equal(t, "plain-name_1", SanitizeFilename("plain-name_1"))
	assert.Equal(t, "a", SanitizeFilename("///a///"))

	long := strings.Repeat("x", 150)
	assert.Len(t, SanitizeFilename(long), 100)
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("General Hospital", "csv")
	assert.True(t, strings.HasPrefix(name, "General_Hospital_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
