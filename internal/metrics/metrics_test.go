package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/casegrade/internal/extract"
	"github.com/pdiddy/casegrade/internal/grade"
)

func TestObserveExtraction(t *testing.T) {
	m := New()
	m.ObserveExtraction(extract.BatchSummary{Extracted: 10, Degraded: 3, Fallback: 2})

	assert.Equal(t, 7.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("extracted")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("degraded")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("fallback")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RecognizerFallbacks))
}

func TestObserveGrades(t *testing.T) {
	m := New()
	m.ObserveGrades(grade.Summary{O: 1, A: 4, B: 2})
	m.ObserveGrades(grade.Summary{B: 1})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GradesTotal.WithLabelValues("O")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.GradesTotal.WithLabelValues("A")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.GradesTotal.WithLabelValues("B")))
}

func TestObserveCacheAndFinish(t *testing.T) {
	m := New()
	m.ObserveCache(5, 2)
	start := time.Unix(1_700_000_000, 0)
	m.Finish(start, start.Add(1500*time.Millisecond))

	assert.Equal(t, 5.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMisses))
	assert.Equal(t, 1.5, testutil.ToFloat64(m.RunDuration))
	assert.Equal(t, 1_700_000_001.0, testutil.ToFloat64(m.LastRun))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveExtraction(extract.BatchSummary{Extracted: 2, Fallback: 1})
	m.ObserveGrades(grade.Summary{A: 2, B: 1})

	path := filepath.Join(t.TempDir(), "casegrade.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	for _, want := range []string{
		`casegrade_records_total{outcome="extracted"} 2`,
		`casegrade_records_total{outcome="fallback"} 1`,
		`casegrade_grades_total{grade="A"} 2`,
		"# TYPE casegrade_run_duration_seconds gauge",
	} {
		assert.True(t, strings.Contains(out, want), "textfile missing %q:\n%s", want, out)
	}
}

func TestWriteTextfileEmptyPath(t *testing.T) {
	assert.NoError(t, New().WriteTextfile(""))
}

func TestNewIsIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveGrades(grade.Summary{O: 1})
	assert.Equal(t, 0.0, testutil.ToFloat64(b.GradesTotal.WithLabelValues("O")))
}
