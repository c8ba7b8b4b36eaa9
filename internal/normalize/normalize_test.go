package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase", "Aspirin", "aspirin"},
		{"hyphen becomes space", "beta-blockers", "beta blockers"},
		{"apostrophe removed", "Crohn's disease", "crohns disease"},
		{"whitespace collapsed", "  blood \t\n pressure  ", "blood pressure"},
		{"punctuation stripped", "ECG, (12-lead)!", "ecg 12 lead"},
		{"slash stripped without space", "seclusion/restraint assessment", "seclusionrestraint assessment"},
		{"non ascii stripped", "Guillain-Barré syndrome", "guillain barr syndrome"},
		{"digits kept", "SGLT2 inhibitors", "sglt2 inhibitors"},
		{"hyphen run", "non--opioid", "non opioid"},
		{"lone punctuation leaves one space", "aspirin , morphine", "aspirin morphine"},
		{"non breaking space", "blood\u00a0pressure", "blood pressure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"The 45-year-old female patient received aspirin.",
		"Patient's BP: 120/80 -- stable ",
		"x  -  y",
		"A.B.C. d'e-f",
		"tab\tand\nnewline",
		"aspirin , morphine ; ecg",
	}
	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "input %q", in)
	}
}

func TestPattern(t *testing.T) {
	tests := []struct {
		keyword string
		text    string
		want    bool
	}{
		{"statins", "patient on statins daily", true},
		{"statin", "patient on antistatins", false},
		{"statins", "antistatins", false},
		{"beta-blockers", "started beta blockers", true},
		{"ACE inhibitors", "ace inhibitors given", true},
		{"ECG", "ecg performed", true},
		{"ECG", "ecgs performed", false},
		{"Crohn's disease", "history of crohns disease", true},
		{"tPA", "tpa administered", true},
	}
	for _, tt := range tests {
		t.Run(tt.keyword+"/"+tt.text, func(t *testing.T) {
			re, err := Pattern(tt.keyword)
			require.NoError(t, err)
			require.NotNil(t, re)
			assert.Equal(t, tt.want, re.MatchString(tt.text))
		})
	}
}

func TestPatternLiteral(t *testing.T) {
	// Normalisation strips regexp metacharacters, but quoting still applies
	// to whatever survives.
	re, err := Pattern("a.b")
	require.NoError(t, err)
	assert.True(t, re.MatchString("ab"))
	assert.False(t, re.MatchString("axb"))
}

func TestPatternEmptyKeyword(t *testing.T) {
	re, err := Pattern("'--'")
	require.NoError(t, err)
	assert.Nil(t, re)
}
