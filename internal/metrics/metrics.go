// Package metrics collects batch counters for a casegrade run and writes
// them in the prometheus text format for a node-exporter textfile
// collector.
//
// Metrics:
//   - casegrade_records_total{outcome} - records by outcome: extracted, degraded, fallback
//   - casegrade_recognizer_fallbacks_total - records counted by pattern matching alone
//   - casegrade_recognizer_cache_hits_total / _misses_total - recogniser cache lookups
//   - casegrade_grades_total{grade} - grades assigned
//   - casegrade_run_duration_seconds - wall time of the last run
//   - casegrade_last_run_timestamp_seconds - when the last run finished
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/casegrade/internal/extract"
	"github.com/pdiddy/casegrade/internal/grade"
	"github.com/pdiddy/casegrade/pkg/types"
)

// Metrics holds the collectors of one run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RecordsTotal        *prometheus.CounterVec
	RecognizerFallbacks prometheus.Counter
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	GradesTotal         *prometheus.CounterVec
	RunDuration         prometheus.Gauge
	LastRun             prometheus.Gauge
}

// New creates and registers the run metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "casegrade_records_total",
				Help: "Case records processed, by outcome",
			},
			[]string{"outcome"},
		),
		RecognizerFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casegrade_recognizer_fallbacks_total",
			Help: "Records whose keyword counts fell back to pattern matching",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casegrade_recognizer_cache_hits_total",
			Help: "Recogniser cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casegrade_recognizer_cache_misses_total",
			Help: "Recogniser cache misses",
		}),
		GradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "casegrade_grades_total",
				Help: "Grades assigned, by grade",
			},
			[]string{"grade"},
		),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "casegrade_run_duration_seconds",
			Help: "Wall time of the last run in seconds",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "casegrade_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}
	m.registry.MustRegister(
		m.RecordsTotal,
		m.RecognizerFallbacks,
		m.CacheHits,
		m.CacheMisses,
		m.GradesTotal,
		m.RunDuration,
		m.LastRun,
	)
	return m
}

// ObserveExtraction adds the outcome counts of an extraction batch.
// Degraded records are counted under degraded rather than extracted.
func (m *Metrics) ObserveExtraction(s extract.BatchSummary) {
	m.RecordsTotal.WithLabelValues("extracted").Add(float64(s.Extracted - s.Degraded))
	m.RecordsTotal.WithLabelValues("degraded").Add(float64(s.Degraded))
	m.RecordsTotal.WithLabelValues("fallback").Add(float64(s.Fallback))
	m.RecognizerFallbacks.Add(float64(s.Degraded))
}

// ObserveCache adds recogniser cache lookup counts.
func (m *Metrics) ObserveCache(hits, misses int64) {
	m.CacheHits.Add(float64(hits))
	m.CacheMisses.Add(float64(misses))
}

// ObserveGrades adds the grade distribution of a grading batch.
func (m *Metrics) ObserveGrades(s grade.Summary) {
	m.GradesTotal.WithLabelValues(string(types.GradeO)).Add(float64(s.O))
	m.GradesTotal.WithLabelValues(string(types.GradeA)).Add(float64(s.A))
	m.GradesTotal.WithLabelValues(string(types.GradeB)).Add(float64(s.B))
}

// Finish records the duration of a run that started at start.
func (m *Metrics) Finish(start, end time.Time) {
	m.RunDuration.Set(end.Sub(start).Seconds())
	m.LastRun.Set(float64(end.Unix()))
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics to path atomically. An empty path is a
// no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
