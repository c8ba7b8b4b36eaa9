package grade

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/casegrade/pkg/types"
)

func counts(med, proc, pain, diag int) types.FeatureRecord {
	rec := types.DefaultFeatureRecord()
	rec.Medications, rec.Procedures, rec.Pain, rec.Diagnoses = med, proc, pain, diag
	return rec
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name string
		rec  types.FeatureRecord
		want types.Grade
	}{
		{"sum 16", counts(5, 5, 3, 3), types.GradeO},
		{"sum 8", counts(2, 2, 2, 2), types.GradeA},
		{"sum 4", counts(1, 1, 1, 1), types.GradeB},
		{"sum 0", types.DefaultFeatureRecord(), types.GradeB},
		{"sum 7", counts(7, 0, 0, 0), types.GradeB},
		{"sum 15", counts(0, 0, 0, 15), types.GradeA},
		{"large sum", counts(40, 40, 40, 40), types.GradeO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(tt.rec); got != tt.want {
				t.Errorf("Grade(%+v) = %q, want %q", tt.rec, got, tt.want)
			}
		})
	}
}

func TestGradeIgnoresOtherFeatures(t *testing.T) {
	rec := counts(1, 1, 1, 1)
	rec.Age = 99
	rec.Gender = types.GenderFemale
	rec.Stabilization, rec.Improvement, rec.Documentation, rec.Collaboration, rec.Sentiment = 1, 1, 1, 1, 1

	if got := Grade(rec); got != types.GradeB {
		t.Errorf("Grade = %q, want B", got)
	}
}

func TestForSumBoundaries(t *testing.T) {
	for sum := -1; sum <= 20; sum++ {
		got := ForSum(sum)
		var want types.Grade
		switch {
		case sum >= 16:
			want = types.GradeO
		case sum >= 8:
			want = types.GradeA
		default:
			want = types.GradeB
		}
		if got != want {
			t.Errorf("ForSum(%d) = %q, want %q", sum, got, want)
		}
	}
}

func TestGradeAll(t *testing.T) {
	records := []types.FeatureRecord{
		counts(5, 5, 3, 3),
		counts(1, 1, 1, 1),
		counts(2, 2, 2, 2),
		counts(0, 0, 0, 0),
	}

	var buf bytes.Buffer
	grades, summary := GradeAll(records, &buf)

	want := []types.Grade{types.GradeO, types.GradeB, types.GradeA, types.GradeB}
	if len(grades) != len(want) {
		t.Fatalf("got %d grades, want %d", len(grades), len(want))
	}
	for i := range want {
		if grades[i] != want[i] {
			t.Errorf("grades[%d] = %q, want %q", i, grades[i], want[i])
		}
	}
	if summary != (Summary{O: 1, A: 1, B: 2}) {
		t.Errorf("summary = %+v", summary)
	}
	if !strings.Contains(buf.String(), "graded: 4 (O: 1, A: 1, B: 2)") {
		t.Errorf("output = %q", buf.String())
	}
}
