package extract

import "sort"

// Outcomes is the closed set of discharge disposition values a data line may
// end with. The tokens are mutually disjoint, so suffix matching is
// unambiguous.
var Outcomes = []string{
	"Home",
	"SNF",
	"HHS",
	"Rehab",
	"AMA",
	"Hospice",
	"LTAC",
	"Deceased",
}

// Payers is the closed vocabulary of payer names recognized inside the
// PCP+payer segment. Kept sorted by descending length so the longest, most
// specific name wins and a short name never matches inside a longer one
// ("Medicare" inside "Medicare Advantage").
var Payers = []string{
	"Blue Cross Blue Shield",
	"Medicare Advantage",
	"Kaiser Permanente",
	"UnitedHealthcare",
	"Medicare",
	"Medicaid",
	"Self Pay",
	"Tricare",
	"Anthem",
	"Humana",
	"Aetna",
	"Cigna",
}

func init() {
	sort.SliceStable(Payers, func(i, j int) bool {
		return len(Payers[i]) > len(Payers[j])
	})
}
