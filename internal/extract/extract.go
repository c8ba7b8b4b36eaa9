// Package extract derives fixed-schema clinical features from free-text case
// narratives: keyword counts that combine entity recognition with literal
// matching, lexical flags, age and gender.
package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/casegrade/pkg/types"
)

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	// Extracted counts records whose features were computed.
	Extracted int

	// Degraded counts extracted records whose keyword counts fell back to
	// pattern matching because entity recognition failed.
	Degraded int

	// Fallback counts records replaced by the default record.
	Fallback int
}

// Total returns the number of records processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Fallback
}

// HasFailures reports whether any record fell back to defaults.
func (s BatchSummary) HasFailures() bool {
	return s.Fallback > 0
}

// ExtractAll extracts every record and returns one FeatureRecord per input
// record, in input order. Per-record failures never abort the batch; they
// are reported to w, logged, and counted in the summary. Up to cfg.Workers
// records are extracted concurrently. The only error returned is context
// cancellation.
func ExtractAll(ctx context.Context, ex *Extractor, records []types.CaseRecord, cfg types.ExtractionConfig, w io.Writer) ([]types.FeatureRecord, BatchSummary, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	results := make([]result, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ex.extractRecord(gctx, rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, BatchSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, BatchSummary{}, err
	}

	features := make([]types.FeatureRecord, len(records))
	var summary BatchSummary
	for i, res := range results {
		features[i] = res.features
		label := recordLabel(records[i])

		switch {
		case res.err != nil:
			log.Error().Err(res.err).Int("record", records[i].Index).Msg("feature extraction failed, using defaults")
			fmt.Fprintf(w, "fallback  %s: %v\n", label, res.err)
			summary.Fallback++
		case res.degraded != nil:
			log.Warn().Err(res.degraded).Int("record", records[i].Index).Msg("entity recognition failed, pattern matching only")
			fmt.Fprintf(w, "degraded  %s (sum %d)\n", label, res.features.KeywordSum())
			summary.Extracted++
			summary.Degraded++
		default:
			fmt.Fprintf(w, "extracted %s (sum %d)\n", label, res.features.KeywordSum())
			summary.Extracted++
		}
	}

	fmt.Fprintf(w, "\nextracted: %d, degraded: %d, fallback: %d\n",
		summary.Extracted, summary.Degraded, summary.Fallback)

	return features, summary, nil
}

func recordLabel(rec types.CaseRecord) string {
	if rec.ID != "" {
		return fmt.Sprintf("#%d [%s]", rec.Index, rec.ID)
	}
	return fmt.Sprintf("#%d", rec.Index)
}
