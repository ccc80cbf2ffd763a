// Package extract recovers structured discharge records from report text
// that has lost its column delimiters during PDF extraction. Fields run
// together with no separators, so extraction anchors on fixed-pattern tokens
// (record identifier, event date, outcome vocabulary) and carves each line
// into field spans between those anchors.
package extract

// ParsedRecord is one discharge entry recovered from one normalized line.
//
// PhoneNumber and PrimaryCareProvider are pointers so that "absent" and
// "empty string" are never conflated downstream.
type ParsedRecord struct {
	PatientName         string  `json:"patient_name"`
	RecordID            string  `json:"record_id"`
	PhoneNumber         *string `json:"phone_number,omitempty"`
	AttendingProvider   string  `json:"attending_provider"`
	EventDate           string  `json:"event_date"`
	PrimaryCareProvider *string `json:"primary_care_provider,omitempty"`
	Payer               string  `json:"payer"`
	Outcome             string  `json:"outcome"`
	Confidence          float64 `json:"confidence"`
	SourceText          string  `json:"source_text"`
}

// ParseResult aggregates one extraction pass over a report export.
type ParseResult struct {
	FacilityName string         `json:"facility_name"`
	ReportDate   string         `json:"report_date"`
	Records      []ParsedRecord `json:"records"`
	SourceText   string         `json:"source_text"`
}

// Engine is the discharge-list extraction engine. It holds no state between
// calls and is safe for concurrent use.
type Engine struct {
	pen Penalties
}

// NewEngine creates an Engine with the given confidence penalties.
func NewEngine(pen Penalties) *Engine {
	return &Engine{pen: pen}
}

// Parse extracts every data row from the report text. It is total: any input,
// including empty or whitespace-only text, yields a result. Lines without the
// record-identifier anchor are silently skipped as non-data; malformed fields
// within a data row degrade confidence instead of failing the row.
func (e *Engine) Parse(text string) *ParseResult {
	result := &ParseResult{
		FacilityName: "Unknown Hospital",
		Records:      []ParsedRecord{},
		SourceText:   text,
	}

	lines := NormalizeLines(text)
	if facility, reportDate, ok := extractHeader(lines); ok {
		result.FacilityName = facility
		result.ReportDate = reportDate
	}

	for _, line := range lines {
		if !recordIDPattern.MatchString(line) {
			continue
		}
		result.Records = append(result.Records, e.extractRow(line))
	}
	return result
}
