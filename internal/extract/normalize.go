package extract

import (
	"regexp"
	"strings"
)

var (
	delimiterRun  = regexp.MustCompile(`\s*\|+\s*`)
	whitespaceRun = regexp.MustCompile(`\s{2,}`)
)

// NormalizeLines splits raw report text into trimmed, delimiter-free lines.
// Table-delimiter runs collapse to a single space, as do runs of whitespace.
// Blank lines are dropped; order is preserved. Empty or all-whitespace input
// yields no lines.
func NormalizeLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := delimiterRun.ReplaceAllString(raw, " ")
		line = whitespaceRun.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// headerLine captures "<facility> Discharges for <date-phrase>".
var headerLine = regexp.MustCompile(`(?i)^(.*\S)\s+discharges\s+for\s+(.+)$`)

// extractHeader scans normalized lines for the first title line naming the
// facility and report date. Best-effort metadata: a missing or malformed
// title leaves the caller's defaults in place.
func extractHeader(lines []string) (facility, reportDate string, ok bool) {
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "hospital") || !strings.Contains(lower, "discharges") {
			continue
		}
		m := headerLine.FindStringSubmatch(line)
		if m == nil {
			return "", "", false
		}
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
	}
	return "", "", false
}
