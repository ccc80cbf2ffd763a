package extract_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careflow/internal/extract"
)

func newEngine() *extract.Engine {
	return extract.NewEngine(extract.DefaultPenalties())
}

func TestParse_MinimalRow(t *testing.T) {
	result := newEngine().Parse("Doe, JohnEP12345678901-01-2024Home")

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "Doe, John", rec.PatientName)
	assert.Equal(t, "EP123456789", rec.RecordID)
	assert.Equal(t, "01-01-2024", rec.EventDate)
	assert.Equal(t, "Home", rec.Outcome)
	assert.Nil(t, rec.PhoneNumber)
	assert.Equal(t, "Doe, JohnEP12345678901-01-2024Home", rec.SourceText)
}

func TestParse_UnrecognizedOutcome(t *testing.T) {
	result := newEngine().Parse("Test, PatientEP00000000101-01-2024SomePlace")

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "Unknown", rec.Outcome)
	assert.Less(t, rec.Confidence, 1.0)
}

func TestParse_WhitespaceOnly(t *testing.T) {
	result := newEngine().Parse("   \n\t\n  ")

	assert.Empty(t, result.Records)
	assert.NotNil(t, result.Records)
	assert.Equal(t, "Unknown Hospital", result.FacilityName)
	assert.Equal(t, "", result.ReportDate)
}

func TestParse_Totality(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"no anchors here at all",
		"AB12345", // too short to be an identifier
		"||||||",
		"Doe, JohnEP123456789",
	}
	e := newEngine()
	for _, in := range inputs {
		result := e.Parse(in)
		require.NotNil(t, result)
		assert.NotNil(t, result.Records)
	}
}

func TestParse_Header(t *testing.T) {
	text := "General Hospital Discharges for Jan 1st, 2024\n" +
		"Doe, JohnEP12345678901-01-2024Home\n"
	result := newEngine().Parse(text)

	assert.Equal(t, "General Hospital", result.FacilityName)
	assert.Equal(t, "Jan 1st, 2024", result.ReportDate)
	assert.Len(t, result.Records, 1)
}

func TestParse_AnchorGate(t *testing.T) {
	text := "Doe, JohnEP12345678901-01-2024Home\n" +
		"Patient Name Phone Attending Date PCP Payer Outcome\n" +
		"Roe, JaneEP98765432102-02-2024SNF\n"
	result := newEngine().Parse(text)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "EP123456789", result.Records[0].RecordID)
	assert.Equal(t, "EP987654321", result.Records[1].RecordID)
}

func TestParse_PreformattedPhonePreserved(t *testing.T) {
	line := "Doe, JaneAB123456789555-123-4567Smith, John MD01-02-2024Jones, Amy MDMedicareHome"
	result := newEngine().Parse(line)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	require.NotNil(t, rec.PhoneNumber)
	assert.Equal(t, "555-123-4567", *rec.PhoneNumber)
	assert.Equal(t, "Smith, John MD", rec.AttendingProvider)
	require.NotNil(t, rec.PrimaryCareProvider)
	assert.Equal(t, "Jones, Amy MD", *rec.PrimaryCareProvider)
	assert.Equal(t, "Medicare", rec.Payer)
	assert.Equal(t, "Home", rec.Outcome)
	assert.Equal(t, 1.0, rec.Confidence)
}

func TestParse_RawPhoneReformatted(t *testing.T) {
	line := "Doe, JaneAB1234567895551234567Smith, John MD01-02-2024Jones, Amy MDMedicareHome"
	result := newEngine().Parse(line)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	require.NotNil(t, rec.PhoneNumber)
	assert.Equal(t, "555-123-4567", *rec.PhoneNumber)
	assert.Equal(t, 0.9, rec.Confidence)
}

func TestParse_PhoneAbsenceMarker(t *testing.T) {
	line := "Doe, JohnEP123456789[MISSING]Sloan, Mark MD01-01-2024Home"
	result := newEngine().Parse(line)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Nil(t, rec.PhoneNumber)
	assert.Equal(t, "Sloan, Mark MD", rec.AttendingProvider)
	assert.Equal(t, "01-01-2024", rec.EventDate)
}

func TestParse_AttendingCredentialRepair(t *testing.T) {
	line := "Doe, JohnEP123456789Sloan, MD Mark01-01-2024Home"
	result := newEngine().Parse(line)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Sloan, Mark MD", result.Records[0].AttendingProvider)
}

func TestParse_MissingPCPMarker(t *testing.T) {
	line := "Doe, JohnEP123456789555-123-4567Smith, John MD01-01-2024[Missing]MedicaidHome"
	result := newEngine().Parse(line)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Nil(t, rec.PrimaryCareProvider)
	assert.Equal(t, "Medicaid", rec.Payer)
}

func TestParse_UnknownName(t *testing.T) {
	result := newEngine().Parse("EP12345678901-01-2024Home")

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "Unknown", rec.PatientName)
	assert.Less(t, rec.Confidence, 1.0)
}

func TestParse_MissingDate(t *testing.T) {
	result := newEngine().Parse("Doe, JohnEP123456789Smith, John MDHome")

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "", rec.EventDate)
	assert.Equal(t, "Smith, John MD", rec.AttendingProvider)
	assert.Equal(t, "Home", rec.Outcome)
}

func TestParse_ConfidenceBounds(t *testing.T) {
	inputs := []string{
		"Doe, JohnEP12345678901-01-2024Home",
		"EP123456789",
		"Test, PatientEP00000000101-01-2024SomePlace",
		"XX000000000",
	}
	e := newEngine()
	for _, in := range inputs {
		for _, rec := range e.Parse(in).Records {
			assert.GreaterOrEqual(t, rec.Confidence, 0.0)
			assert.LessOrEqual(t, rec.Confidence, 1.0)
			// rounded to exactly two decimals
			scaled := rec.Confidence * 100
			assert.InDelta(t, math.Round(scaled), scaled, 1e-9)
		}
	}
}

func TestParse_OutcomeClosure(t *testing.T) {
	valid := make(map[string]bool, len(extract.Outcomes)+1)
	for _, o := range extract.Outcomes {
		valid[o] = true
	}
	valid["Unknown"] = true

	inputs := []string{
		"Doe, JohnEP12345678901-01-2024Home",
		"Doe, JohnEP12345678901-01-2024Hospice",
		"Doe, JohnEP12345678901-01-2024Nursing",
		"Doe, JohnEP12345678901-01-2024",
	}
	e := newEngine()
	for _, in := range inputs {
		for _, rec := range e.Parse(in).Records {
			assert.True(t, valid[rec.Outcome], "unexpected outcome %q for %q", rec.Outcome, in)
		}
	}
}

func TestParse_DelimiterArtifactsStripped(t *testing.T) {
	text := "| Doe, JohnEP12345678901-01-2024Home |\n"
	result := newEngine().Parse(text)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Doe, JohnEP12345678901-01-2024Home", result.Records[0].SourceText)
}

func TestParse_SourceTextPreserved(t *testing.T) {
	text := "General Hospital Discharges for Jan 1st, 2024\nDoe, JohnEP12345678901-01-2024Home"
	result := newEngine().Parse(text)

	assert.Equal(t, text, result.SourceText)
}
