package extract

import "math"

// Penalties holds the per-field confidence deductions applied while
// extracting a row. The values are empirically tuned against real discharge
// exports; deployments can override them through configuration.
type Penalties struct {
	MissingRecordID  float64
	MissingDate      float64
	UnknownName      float64
	UnknownOutcome   float64
	MissingPhone     float64
	ReformattedPhone float64
	MissingPCP       float64
	UnknownPayer     float64
}

// DefaultPenalties returns the standard penalty set.
func DefaultPenalties() Penalties {
	return Penalties{
		MissingRecordID:  0.2,
		MissingDate:      0.2,
		UnknownName:      0.2,
		UnknownOutcome:   0.1,
		MissingPhone:     0.1,
		ReformattedPhone: 0.1,
		MissingPCP:       0.1,
		UnknownPayer:     0.1,
	}
}

// roundConfidence clamps a score to [0, 1] and rounds it to two decimals.
func roundConfidence(score float64) float64 {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return math.Round(score*100) / 100
}
