package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/casegrade/internal/extract"
	"github.com/pdiddy/casegrade/internal/grade"
	"github.com/pdiddy/casegrade/internal/keywords"
	"github.com/pdiddy/casegrade/internal/metrics"
	"github.com/pdiddy/casegrade/internal/recognize"
	"github.com/pdiddy/casegrade/internal/store"
	"github.com/pdiddy/casegrade/internal/table"
	"github.com/pdiddy/casegrade/pkg/types"
)

// extraction is the outcome of the extract stage.
type extraction struct {
	run      types.Run
	records  []types.CaseRecord
	features []types.FeatureRecord
	summary  extract.BatchSummary
}

// runExtraction reads the case table, extracts every record, and writes the
// feature table. Per-record failures are reported in the summary; only I/O
// failures are returned.
func runExtraction(ctx context.Context, cfg types.PipelineConfig, m *metrics.Metrics, w io.Writer) (extraction, error) {
	ecfg := cfg.Extraction
	if ecfg.InputPath == "" {
		return extraction{}, fmt.Errorf("no input table: use --input or extraction.input")
	}

	catalog := keywords.Default()
	if ecfg.KeywordsFile != "" {
		var err error
		if catalog, err = keywords.Load(ecfg.KeywordsFile); err != nil {
			return extraction{}, err
		}
	}

	for _, set := range []*keywords.Set{catalog.Medications, catalog.Procedures, catalog.PainManagement, catalog.Diagnoses} {
		log.Debug().Str("set", set.Name()).Int("terms", set.Len()).Msg("keyword set loaded")
	}

	rec, err := recognize.New(cfg.Recognizer, cfg.Cache, catalog)
	if err != nil {
		return extraction{}, err
	}

	records, err := table.ReadCasesFile(ecfg.InputPath, ecfg.TextColumn)
	if err != nil {
		return extraction{}, err
	}
	log.Info().
		Str("input", ecfg.InputPath).
		Int("records", len(records)).
		Str("recognizer", string(cfg.Recognizer.Kind)).
		Int("workers", ecfg.Workers).
		Msg("extracting features")

	run := types.Run{
		ID:        store.NewRunID(),
		Input:     ecfg.InputPath,
		StartedAt: time.Now(),
		Status:    types.RunExtracted,
	}

	ex := extract.NewExtractor(rec, catalog)
	features, summary, err := extract.ExtractAll(ctx, ex, records, ecfg, w)
	if err != nil {
		return extraction{}, err
	}
	if summary.HasFailures() {
		log.Warn().Int("fallback", summary.Fallback).Msg("some records fell back to default features")
	}

	if err := table.WriteFile(ecfg.OutputPath, func(fw io.Writer) error {
		return table.WriteFeatures(fw, features)
	}); err != nil {
		return extraction{}, err
	}
	fmt.Fprintf(w, "features written to %s\n", ecfg.OutputPath)

	run.FinishedAt = time.Now()
	run.Records = summary.Total()
	run.Fallbacks = summary.Fallback
	run.Degraded = summary.Degraded

	m.ObserveExtraction(summary)
	if c, ok := rec.(*recognize.Cached); ok {
		m.ObserveCache(c.Stats())
	}

	return extraction{run: run, records: records, features: features, summary: summary}, nil
}

// runGrading grades features and writes the grade table to output.
func runGrading(features []types.FeatureRecord, output string, m *metrics.Metrics, w io.Writer) ([]types.Grade, error) {
	grades, summary := grade.GradeAll(features, w)
	if err := table.WriteFile(output, func(fw io.Writer) error {
		return table.WriteGrades(fw, grades)
	}); err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "grades written to %s\n", output)

	m.ObserveGrades(summary)
	return grades, nil
}

// openStore opens the run database, or returns nil when persistence is off.
func openStore(cfg types.PipelineConfig) (*store.Store, error) {
	if cfg.Store.DBPath == "" {
		return nil, nil
	}
	return store.Open(cfg.Store.DBPath)
}

// finishMetrics records the run duration and writes the textfile. Write
// failures are logged; metrics never fail a run.
func finishMetrics(cfg types.PipelineConfig, m *metrics.Metrics, start time.Time) {
	m.Finish(start, time.Now())
	if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		log.Warn().Err(err).Msg("metrics not written")
	}
}
