package extract

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/casegrade/internal/keywords"
	"github.com/pdiddy/casegrade/pkg/types"
)

const sampleCase = "The 45-year-old female patient received aspirin and morphine. " +
	"Procedures included ECG and blood pressure monitoring. " +
	"Pain assessment was documented. Patient was stabilized and improved."

func TestExtractSampleCase(t *testing.T) {
	want := types.FeatureRecord{
		Medications:   2, // aspirin, morphine
		Procedures:    4, // ecg, blood pressure, monitoring, assessment
		Pain:          2, // pain assessment, morphine
		Diagnoses:     0,
		Stabilization: 1,
		Improvement:   1,
		Documentation: 1,
		Collaboration: 0,
		Sentiment:     1,
		Age:           45,
		Gender:        types.GenderFemale,
	}

	t.Run("pattern only", func(t *testing.T) {
		got, err := NewExtractor(nil, nil).Extract(context.Background(), sampleCase)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("with entities", func(t *testing.T) {
		stub := &stubRecognizer{spans: []types.EntitySpan{
			span("aspirin", types.CategoryChemical),
			span("morphine", types.CategoryDrug),
			span("ECG", types.CategoryTest),
			span("Pain assessment", types.CategoryProcedure),
		}}
		got, err := NewExtractor(stub, nil).Extract(context.Background(), sampleCase)
		require.NoError(t, err)
		assert.Equal(t, want, got, "entity matches must not double count literal matches")
		assert.Equal(t, 1, stub.calls, "recognition runs once per record")
	})
}

func TestExtractSecondCase(t *testing.T) {
	text := "A 67-year-old male with congestive heart failure and COPD was given diuretics, " +
		"oxygen therapy and nitroglycerin. Vital signs and telemetry were monitored; the nurse " +
		"communicated with the team. Pain score reduced with pain medication; patient felt better."

	got, err := NewExtractor(nil, nil).Extract(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, types.FeatureRecord{
		Medications:   3,
		Procedures:    4,
		Pain:          2,
		Diagnoses:     2,
		Collaboration: 1,
		Sentiment:     1,
		Age:           67,
		Gender:        types.GenderMale,
	}, got)
}

func TestExtractEmpty(t *testing.T) {
	got, err := NewExtractor(&stubRecognizer{}, nil).Extract(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, types.DefaultFeatureRecord(), got)
}

func TestExtractInternalFailureYieldsDefaults(t *testing.T) {
	cat := *keywords.Default()
	cat.Diagnoses = nil

	got, err := NewExtractor(nil, &cat).Extract(context.Background(), sampleCase)
	assert.Error(t, err)
	assert.Equal(t, types.DefaultFeatureRecord(), got)
}

func TestExtractAgeOverflowKeepsOtherFields(t *testing.T) {
	text := "99999999999999999999-year-old female given aspirin, stabilized"

	got, err := NewExtractor(nil, nil).Extract(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got.Age)
	assert.Equal(t, types.GenderFemale, got.Gender)
	assert.Equal(t, 1, got.Medications)
	assert.Equal(t, 1, got.Stabilization)
	assert.Equal(t, 1, got.Sentiment)
}

func TestExtractRecognizerFailureDegrades(t *testing.T) {
	ex := NewExtractor(&stubRecognizer{err: errors.New("timeout")}, nil)

	res := ex.extract(context.Background(), sampleCase)
	require.NoError(t, res.err)
	assert.Error(t, res.degraded)
	assert.Equal(t, 2, res.features.Medications)
	assert.Equal(t, 45, res.features.Age)

	rec, err := ex.Extract(context.Background(), sampleCase)
	assert.NoError(t, err, "a recogniser failure is not an extraction failure")
	assert.Equal(t, res.features, rec)
}

func TestExtractRecord(t *testing.T) {
	ex := NewExtractor(nil, nil)

	res := ex.extractRecord(context.Background(), types.CaseRecord{Index: 3})
	require.NoError(t, res.err)
	assert.Equal(t, types.DefaultFeatureRecord(), res.features)

	res = ex.extractRecord(context.Background(), types.CaseRecord{Text: "male, 30-year-old", Valid: true})
	require.NoError(t, res.err)
	assert.Equal(t, 30, res.features.Age)
	assert.Equal(t, types.GenderMale, res.features.Gender)
}

func TestExtractAge(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"a 45-year-old woman", 45},
		{"first 8-year-old then 80-year-old", 8},
		{"aged 45 years old", 0},
		{"45 year-old", 0},
		{"007-year-old", 7},
		{"", 0},
		{"123456789012345678901234567890-year-old", math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, extractAge(tt.text))
		})
	}
}

func TestExtractGender(t *testing.T) {
	tests := []struct {
		text string
		want types.Gender
	}{
		{"female patient", types.GenderFemale},
		{"male patient", types.GenderMale},
		{"the male nurse and the female patient", types.GenderFemale},
		{"no hint", types.GenderUnknown},
		{"", types.GenderUnknown},
		{"she sold a tamale", types.GenderMale}, // raw substring containment, not a word match
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, extractGender(tt.text))
		})
	}
}

func TestFlags(t *testing.T) {
	got, err := NewExtractor(nil, nil).Extract(context.Background(), "Condition IMPROVED after the team COMMUNICATED; nothing was documented-ish")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Improvement)
	assert.Equal(t, 1, got.Collaboration)
	assert.Equal(t, 1, got.Documentation)
	assert.Equal(t, 0, got.Stabilization)
	assert.Equal(t, 1, got.Sentiment)

	got, err = NewExtractor(nil, nil).Extract(context.Background(), "Feeling better today")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Sentiment)
	assert.Equal(t, 0, got.Improvement)
}
