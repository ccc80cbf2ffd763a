package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// recordIDPattern is the sole gate for data rows: two uppercase letters
	// immediately followed by nine digits. It is the only field format
	// searchable independently of everything else packed onto the line.
	recordIDPattern = regexp.MustCompile(`[A-Z]{2}\d{9}`)

	eventDatePattern = regexp.MustCompile(`\d{2}-\d{2}-\d{4}`)

	phoneFormatted = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}`)
	// phoneRaw requires a trailing whitespace or letter so a ten-digit run is
	// never carved out of the start of a following event date.
	phoneRaw     = regexp.MustCompile(`^(\d{10})[\sA-Za-z]`)
	phoneMissing = regexp.MustCompile(`(?i)^\[\s*missing\s*\]`)
)

// extractRow carves one normalized data line into fields. Anchors are found
// left to right (identifier, phone, event date, outcome suffix) and each
// variable-length span is sliced between the anchor offsets of its neighbors.
// Every failed anchor degrades to a placeholder value plus a confidence
// penalty; a single row never fails outright.
func (e *Engine) extractRow(line string) ParsedRecord {
	rec := ParsedRecord{
		PatientName: "Unknown",
		Payer:       "Unknown",
		Outcome:     "Unknown",
		SourceText:  line,
	}
	score := 1.0

	// Identifier anchor. Its start offset closes the patient name span.
	idStart, idEnd := 0, 0
	if loc := recordIDPattern.FindStringIndex(line); loc != nil {
		idStart, idEnd = loc[0], loc[1]
		rec.RecordID = line[idStart:idEnd]
	} else {
		score -= e.pen.MissingRecordID
	}

	if name := strings.TrimSpace(line[:idStart]); name != "" {
		rec.PatientName = name
	} else {
		score -= e.pen.UnknownName
	}

	// Phone is examined only in the text immediately following the
	// identifier; digit runs elsewhere on the line could be misread as one.
	rest := line[idEnd:]
	attendingStart := idEnd
	switch {
	case phoneMissing.MatchString(rest):
		marker := phoneMissing.FindString(rest)
		attendingStart = idEnd + len(marker)
		score -= e.pen.MissingPhone
	case phoneFormatted.MatchString(rest):
		phone := phoneFormatted.FindString(rest)
		rec.PhoneNumber = &phone
		attendingStart = idEnd + len(phone)
	case phoneRaw.MatchString(rest):
		digits := phoneRaw.FindStringSubmatch(rest)[1]
		phone := fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:6], digits[6:])
		rec.PhoneNumber = &phone
		attendingStart = idEnd + len(digits)
		score -= e.pen.ReformattedPhone
	default:
		score -= e.pen.MissingPhone
	}

	// Event date anchor: first NN-NN-NNNN after the identifier. Closes the
	// attending span and opens the PCP+payer span.
	dateStart, dateEnd := -1, -1
	if loc := eventDatePattern.FindStringIndex(line[idEnd:]); loc != nil {
		dateStart, dateEnd = idEnd+loc[0], idEnd+loc[1]
		rec.EventDate = line[dateStart:dateEnd]
	} else {
		score -= e.pen.MissingDate
	}

	// Outcome is matched as a literal suffix against the closed vocabulary;
	// its start offset closes the PCP+payer span.
	middleEnd := len(line)
	outcomeFound := false
	for _, o := range Outcomes {
		if strings.HasSuffix(line, o) {
			rec.Outcome = o
			middleEnd = len(line) - len(o)
			outcomeFound = true
			break
		}
	}
	if !outcomeFound {
		score -= e.pen.UnknownOutcome
	}

	// Attending span runs from the phone (or identifier) boundary to the
	// date; without a date it absorbs everything up to the outcome and the
	// PCP+payer span is empty.
	attendingEnd := dateStart
	middleStart := dateEnd
	if dateStart < 0 {
		attendingEnd = middleEnd
		middleStart = middleEnd
	}
	if attendingEnd < attendingStart {
		attendingEnd = attendingStart
	}
	rec.AttendingProvider = NormalizeName(line[attendingStart:attendingEnd])

	if middleStart > middleEnd {
		middleStart = middleEnd
	}
	pcp, payer := splitMiddle(line[middleStart:middleEnd])
	rec.PrimaryCareProvider = pcp
	rec.Payer = payer
	if pcp == nil {
		score -= e.pen.MissingPCP
	}
	if payer == "Unknown" {
		score -= e.pen.UnknownPayer
	}

	rec.Confidence = roundConfidence(score)
	return rec
}
