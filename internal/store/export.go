// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/casegrade/pkg/types"
)

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ExportEntry holds a run with its stored cases.
type ExportEntry struct {
	Run   types.Run      `json:"run" yaml:"run"`
	Cases []types.RunRow `json:"cases" yaml:"cases"`
}

// Export writes runs with their cases to w as YAML or JSON. An empty runID
// exports every run; otherwise runID is resolved as in GetRun.
func (s *Store) Export(ctx context.Context, runID, format string, w io.Writer) error {
	entries, err := s.exportEntries(ctx, runID)
	if err != nil {
		return err
	}

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q (want yaml or json)", format)
	}
}

func (s *Store) exportEntries(ctx context.Context, runID string) ([]ExportEntry, error) {
	var runs []types.Run
	if runID != "" {
		run, err := s.GetRun(ctx, runID)
		if err != nil {
			return nil, err
		}
		runs = []types.Run{run}
	} else {
		var err error
		if runs, err = s.ListRuns(ctx); err != nil {
			return nil, fmt.Errorf("querying for export: %w", err)
		}
	}

	entries := make([]ExportEntry, len(runs))
	for i, run := range runs {
		cases, err := s.Cases(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("querying cases of run %s: %w", run.ID, err)
		}
		entries[i] = ExportEntry{Run: run, Cases: cases}
	}
	return entries, nil
}
