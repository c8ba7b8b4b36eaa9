// Package grade assigns a coarse grade to each feature record from the sum
// of its four keyword counts.
package grade

import (
	"fmt"
	"io"

	"github.com/pdiddy/casegrade/pkg/types"
)

// Sums above OThreshold grade O; sums of at least AThreshold grade A.
const (
	OThreshold = 15
	AThreshold = 8
)

// Grade returns the grade for rec. Age, gender and the lexical flags do not
// contribute.
func Grade(rec types.FeatureRecord) types.Grade {
	return ForSum(rec.KeywordSum())
}

// ForSum maps a keyword sum to its grade.
func ForSum(sum int) types.Grade {
	switch {
	case sum > OThreshold:
		return types.GradeO
	case sum >= AThreshold:
		return types.GradeA
	default:
		return types.GradeB
	}
}

// Summary counts the grades assigned in a batch.
type Summary struct {
	O, A, B int
}

// Total returns the number of records graded.
func (s Summary) Total() int {
	return s.O + s.A + s.B
}

func (s *Summary) add(g types.Grade) {
	switch g {
	case types.GradeO:
		s.O++
	case types.GradeA:
		s.A++
	default:
		s.B++
	}
}

// GradeAll grades every record, preserving order, and writes a distribution
// line to w.
func GradeAll(records []types.FeatureRecord, w io.Writer) ([]types.Grade, Summary) {
	grades := make([]types.Grade, len(records))
	var summary Summary
	for i, rec := range records {
		grades[i] = Grade(rec)
		summary.add(grades[i])
	}

	fmt.Fprintf(w, "graded: %d (O: %d, A: %d, B: %d)\n", summary.Total(), summary.O, summary.A, summary.B)
	return grades, summary
}
