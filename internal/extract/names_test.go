package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"careflow/internal/extract"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"misplaced_md", "Sloan, MD Mark", "Sloan, Mark MD"},
		{"misplaced_do", "Park, DO Nancy", "Park, Nancy DO"},
		{"misplaced_pac", "Reyes, PA-C Luis", "Reyes, Luis PA-C"},
		{"misplaced_lowercase", "Sloan, md Mark", "Sloan, Mark MD"},
		{"misplaced_middle_name", "Sloan, MD Mark Edward", "Sloan, Mark Edward MD"},
		{"already_trailing", "Sloan, Mark MD", "Sloan, Mark MD"},
		{"no_credential", "Doe, John", "Doe, John"},
		{"no_comma", "John Doe MD", "John Doe MD"},
		{"given_name_resembles_credential", "Doe, Don", "Doe, Don"},
		{"trimmed", "  Sloan, Mark MD  ", "Sloan, Mark MD"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extract.NormalizeName(tc.in))
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"Sloan, MD Mark",
		"Park, DO Nancy",
		"Sloan, Mark MD",
		"Doe, John",
		"",
	}
	for _, in := range inputs {
		once := extract.NormalizeName(in)
		assert.Equal(t, once, extract.NormalizeName(once), "input %q", in)
	}
}
