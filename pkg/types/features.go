// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"
)

// Gender is the categorical gender value extracted from a case narrative.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// ParseGender maps a stored gender value back to a Gender. Anything other
// than male or female is GenderUnknown.
func ParseGender(s string) Gender {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s)
	default:
		return GenderUnknown
	}
}

// Feature table column names, in output order.
const (
	ColMedications   = "Medications Administered"
	ColProcedures    = "Procedures Performed"
	ColPain          = "Pain Management Strategies"
	ColDiagnoses     = "Identification of Diagnoses"
	ColStabilization = "Patient Stabilization"
	ColImprovement   = "Improvement in Symptoms"
	ColDocumentation = "Documentation Accuracy"
	ColCollaboration = "Collaboration with Healthcare Team"
	ColSentiment     = "Sentiment Analysis"
	ColAge           = "Age"
	ColGender        = "Gender"
)

// FeatureColumns lists the 11 feature table columns in output order.
var FeatureColumns = []string{
	ColMedications,
	ColProcedures,
	ColPain,
	ColDiagnoses,
	ColStabilization,
	ColImprovement,
	ColDocumentation,
	ColCollaboration,
	ColSentiment,
	ColAge,
	ColGender,
}

// CaseRecord is one input row: a free-text case narrative.
type CaseRecord struct {
	// Index is the zero-based position of the row in the input table.
	Index int `json:"index" yaml:"index"`

	// ID is an optional identifier taken from the input table, if it has one.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Text is the "Case Study" narrative. Valid is false when the cell was
	// missing from the row, which extraction treats as non-string input.
	Text  string `json:"text" yaml:"text"`
	Valid bool   `json:"-" yaml:"-"`
}

// FeatureRecord is the fixed-schema extraction output for one case narrative.
// Every field is always populated; failed extraction yields DefaultFeatureRecord.
type FeatureRecord struct {
	Medications   int    `json:"medications_administered" yaml:"medications_administered"`
	Procedures    int    `json:"procedures_performed" yaml:"procedures_performed"`
	Pain          int    `json:"pain_management_strategies" yaml:"pain_management_strategies"`
	Diagnoses     int    `json:"identification_of_diagnoses" yaml:"identification_of_diagnoses"`
	Stabilization int    `json:"patient_stabilization" yaml:"patient_stabilization"`
	Improvement   int    `json:"improvement_in_symptoms" yaml:"improvement_in_symptoms"`
	Documentation int    `json:"documentation_accuracy" yaml:"documentation_accuracy"`
	Collaboration int    `json:"collaboration_with_healthcare_team" yaml:"collaboration_with_healthcare_team"`
	Sentiment     int    `json:"sentiment_analysis" yaml:"sentiment_analysis"`
	Age           int    `json:"age" yaml:"age"`
	Gender        Gender `json:"gender" yaml:"gender"`
}

// DefaultFeatureRecord returns the all-zero record with unknown gender.
func DefaultFeatureRecord() FeatureRecord {
	return FeatureRecord{Gender: GenderUnknown}
}

// KeywordSum is the sum of the four keyword-count features.
func (r FeatureRecord) KeywordSum() int {
	return r.Medications + r.Procedures + r.Pain + r.Diagnoses
}

// Row renders the record as strings in FeatureColumns order.
func (r FeatureRecord) Row() []string {
	return []string{
		strconv.Itoa(r.Medications),
		strconv.Itoa(r.Procedures),
		strconv.Itoa(r.Pain),
		strconv.Itoa(r.Diagnoses),
		strconv.Itoa(r.Stabilization),
		strconv.Itoa(r.Improvement),
		strconv.Itoa(r.Documentation),
		strconv.Itoa(r.Collaboration),
		strconv.Itoa(r.Sentiment),
		strconv.Itoa(r.Age),
		string(r.Gender),
	}
}

// ParseFeatureRow is the inverse of Row. Columns are looked up by name in
// header so callers may read tables with extra or reordered columns.
func ParseFeatureRow(header map[string]int, row []string) (FeatureRecord, error) {
	rec := DefaultFeatureRecord()
	ints := []struct {
		col string
		dst *int
	}{
		{ColMedications, &rec.Medications},
		{ColProcedures, &rec.Procedures},
		{ColPain, &rec.Pain},
		{ColDiagnoses, &rec.Diagnoses},
		{ColStabilization, &rec.Stabilization},
		{ColImprovement, &rec.Improvement},
		{ColDocumentation, &rec.Documentation},
		{ColCollaboration, &rec.Collaboration},
		{ColSentiment, &rec.Sentiment},
		{ColAge, &rec.Age},
	}
	for _, f := range ints {
		i, ok := header[f.col]
		if !ok || i >= len(row) {
			continue
		}
		v, err := strconv.Atoi(row[i])
		if err != nil {
			return FeatureRecord{}, fmt.Errorf("column %q: %w", f.col, err)
		}
		*f.dst = v
	}
	if i, ok := header[ColGender]; ok && i < len(row) {
		rec.Gender = ParseGender(row[i])
	}
	return rec, nil
}

// Grade is the coarse label assigned from the keyword sum.
type Grade string

const (
	GradeO Grade = "O"
	GradeA Grade = "A"
	GradeB Grade = "B"
)

// GradeColumn is the single column of the grade table.
const GradeColumn = "RF_Model_Grade"
