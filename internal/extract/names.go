package extract

import (
	"regexp"
	"strings"
)

// misplacedCredential matches the source-system defect where the credential
// is wedged between the surname and the given name: "Sloan, MD Mark".
// PA-C is listed before PA so the hyphenated form is not split.
var misplacedCredential = regexp.MustCompile(`(?i)^(.+?),\s*(PA-C|MD|DO|PA|NP|RN|BSN)\s+(.+)$`)

// NormalizeName repairs credential placement in provider names, rewriting
// "<Surname>, <CREDENTIAL> <GivenName(s)>" to
// "<Surname>, <GivenName(s)> <CREDENTIAL>" with the credential uppercased.
// Names that do not exhibit the defect, including already-correct trailing
// credentials, pass through trimmed and unchanged, so the function is
// idempotent.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	m := misplacedCredential.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	return m[1] + ", " + m[3] + " " + strings.ToUpper(m[2])
}
