// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/casegrade/pkg/types"
)

func TestReadCases(t *testing.T) {
	input := "ID,Case Study,Ward\n" +
		"c1,\"A 45-year-old female, stable.\",ICU\n" +
		"c2,\"Line one\nline two\",ER\n" +
		"c3\n" +
		"c4,,ER\n"

	records, err := ReadCases(strings.NewReader(input), CaseOptions{})
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, types.CaseRecord{Index: 0, ID: "c1", Text: "A 45-year-old female, stable.", Valid: true}, records[0])
	assert.Equal(t, "Line one\nline two", records[1].Text)
	assert.Equal(t, types.CaseRecord{Index: 2, ID: "c3"}, records[2], "short row is kept as invalid")
	assert.Equal(t, types.CaseRecord{Index: 3, ID: "c4", Valid: true}, records[3], "empty cell is valid empty text")
}

func TestReadCasesOptions(t *testing.T) {
	input := "\ufeffnarrative\tcase_id\nPatient improved.\tx-1\n"

	records, err := ReadCases(strings.NewReader(input), CaseOptions{TextColumn: "narrative", Comma: '\t'})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Patient improved.", records[0].Text)
	assert.Equal(t, "x-1", records[0].ID)
}

func TestReadCasesErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"empty", "", "empty"},
		{"missing column", "id,notes\n1,text\n", `no "Case Study" column`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCases(strings.NewReader(tt.input), CaseOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReadCasesNoRows(t *testing.T) {
	records, err := ReadCases(strings.NewReader("Case Study\n"), CaseOptions{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWriteFeatures(t *testing.T) {
	records := []types.FeatureRecord{
		{Medications: 2, Procedures: 4, Pain: 2, Stabilization: 1, Improvement: 1, Documentation: 1, Sentiment: 1, Age: 45, Gender: types.GenderFemale},
		types.DefaultFeatureRecord(),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFeatures(&buf, records))

	want := "Medications Administered,Procedures Performed,Pain Management Strategies," +
		"Identification of Diagnoses,Patient Stabilization,Improvement in Symptoms," +
		"Documentation Accuracy,Collaboration with Healthcare Team,Sentiment Analysis,Age,Gender\n" +
		"2,4,2,0,1,1,1,0,1,45,female\n" +
		"0,0,0,0,0,0,0,0,0,0,unknown\n"
	assert.Equal(t, want, buf.String())
}

func TestReadFeatures(t *testing.T) {
	var buf bytes.Buffer
	in := []types.FeatureRecord{
		{Medications: 3, Procedures: 4, Pain: 2, Diagnoses: 2, Collaboration: 1, Sentiment: 1, Age: 67, Gender: types.GenderMale},
		types.DefaultFeatureRecord(),
	}
	require.NoError(t, WriteFeatures(&buf, in))

	got, err := ReadFeatures(&buf, ',')
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestReadFeaturesWithoutAgeAndGender(t *testing.T) {
	input := "Identification of Diagnoses,Medications Administered,Procedures Performed,Pain Management Strategies\n" +
		"1,2,3,4\n"

	got, err := ReadFeatures(strings.NewReader(input), ',')
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].KeywordSum())
	assert.Equal(t, types.GenderUnknown, got[0].Gender)
}

func TestReadFeaturesErrors(t *testing.T) {
	_, err := ReadFeatures(strings.NewReader("Age,Gender\n3,male\n"), ',')
	assert.ErrorContains(t, err, "Medications Administered")

	_, err = ReadFeatures(strings.NewReader(strings.Join(types.FeatureColumns, ",")+"\nx,0,0,0,0,0,0,0,0,0,male\n"), ',')
	assert.ErrorContains(t, err, "row 1")

	_, err = ReadFeatures(strings.NewReader(""), ',')
	assert.Error(t, err)
}

func TestWriteGrades(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGrades(&buf, []types.Grade{types.GradeO, types.GradeB, types.GradeA}))
	assert.Equal(t, "RF_Model_Grade\nO\nB\nA\n", buf.String())
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "features.csv")

	rec := types.FeatureRecord{Medications: 1, Age: 30, Gender: types.GenderMale}
	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		return WriteFeatures(w, []types.FeatureRecord{rec})
	}))

	got, err := ReadFeaturesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []types.FeatureRecord{rec}, got)

	casesPath := filepath.Join(dir, "cases.tsv")
	require.NoError(t, os.WriteFile(casesPath, []byte("Case Study\tid\nA 30-year-old male.\t7\n"), 0o644))
	cases, err := ReadCasesFile(casesPath, "")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "7", cases[0].ID)

	_, err = ReadCasesFile(filepath.Join(dir, "missing.csv"), "")
	assert.Error(t, err)
}

func TestCommaFor(t *testing.T) {
	assert.Equal(t, '\t', CommaFor("cases.TSV"))
	assert.Equal(t, ',', CommaFor("cases.csv"))
	assert.Equal(t, ',', CommaFor("cases"))
}
