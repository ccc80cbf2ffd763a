package extract

import (
	"regexp"
	"strings"
)

// credentialWord matches a provider credential as a whole word, the signal
// that an otherwise unmatched span is a provider name rather than payer text.
var credentialWord = regexp.MustCompile(`(?i)\b(MD|DO|PA|NP|RN)\b`)

// splitMiddle disambiguates the span between the event date and the outcome
// suffix, which may hold a PCP name, a payer name, both, or neither.
//
// The payer vocabulary is scanned longest-first; the first entry found
// anywhere in the span is the payer and whatever precedes it is the PCP
// candidate. A span with no payer but a credential token is treated entirely
// as a PCP name; otherwise the whole span is payer text verbatim. A PCP
// carrying the textual absence marker is reported as absent, not literal.
func splitMiddle(span string) (pcp *string, payer string) {
	span = strings.TrimSpace(span)
	if span == "" {
		return nil, "Unknown"
	}

	for _, name := range Payers {
		idx := strings.Index(span, name)
		if idx < 0 {
			continue
		}
		if before := strings.TrimSpace(span[:idx]); before != "" && !containsMissingMarker(before) {
			normalized := NormalizeName(before)
			pcp = &normalized
		}
		return pcp, name
	}

	if credentialWord.MatchString(span) {
		if !containsMissingMarker(span) {
			normalized := NormalizeName(span)
			pcp = &normalized
		}
		return pcp, "Unknown"
	}

	return nil, span
}

func containsMissingMarker(s string) bool {
	return strings.Contains(strings.ToLower(s), "missing")
}
