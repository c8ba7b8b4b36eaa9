// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table reads case-study tables and reads and writes the feature
// and grade tables exchanged between the extraction and grading stages.
// Files ending in .tsv are tab separated; everything else is CSV.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/casegrade/pkg/types"
)

// DefaultTextColumn holds the narrative in case-study tables.
const DefaultTextColumn = "Case Study"

// idColumns are header names recognised as a row identifier, in order of
// preference.
var idColumns = []string{"id", "case_id", "case id"}

// CaseOptions controls how a case-study table is read.
type CaseOptions struct {
	// TextColumn names the narrative column (default DefaultTextColumn).
	TextColumn string

	// Comma is the field separator (default ',').
	Comma rune
}

// ReadCases reads a case-study table. Every data row yields one CaseRecord,
// in order. A row too short to reach the narrative column is returned with
// Valid false rather than dropped.
func ReadCases(r io.Reader, opts CaseOptions) ([]types.CaseRecord, error) {
	textCol := opts.TextColumn
	if textCol == "" {
		textCol = DefaultTextColumn
	}

	cr := newReader(r, opts.Comma)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("case table is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := indexHeader(header)

	textIdx, ok := cols[textCol]
	if !ok {
		return nil, fmt.Errorf("case table has no %q column", textCol)
	}
	idIdx := findID(header)

	var records []types.CaseRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+1, err)
		}

		rec := types.CaseRecord{Index: len(records)}
		if textIdx < len(row) {
			rec.Text = row[textIdx]
			rec.Valid = true
		}
		if idIdx >= 0 && idIdx < len(row) {
			rec.ID = strings.TrimSpace(row[idIdx])
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadCasesFile opens path and reads it with ReadCases, picking the
// separator from the file extension.
func ReadCasesFile(path, textColumn string) ([]types.CaseRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadCases(f, CaseOptions{TextColumn: textColumn, Comma: CommaFor(path)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// WriteFeatures writes the feature table: a header of types.FeatureColumns
// and one row per record.
func WriteFeatures(w io.Writer, records []types.FeatureRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.FeatureColumns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFeatures reads a feature table written by WriteFeatures. Columns are
// matched by name; the four keyword-count columns are required and the rest
// default when absent.
func ReadFeatures(r io.Reader, comma rune) ([]types.FeatureRecord, error) {
	cr := newReader(r, comma)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("feature table is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := indexHeader(header)
	for _, c := range []string{types.ColMedications, types.ColProcedures, types.ColPain, types.ColDiagnoses} {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("feature table has no %q column", c)
		}
	}

	var records []types.FeatureRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+1, err)
		}
		rec, err := types.ParseFeatureRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteGrades writes the single-column grade table.
func WriteGrades(w io.Writer, grades []types.Grade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{types.GradeColumn}); err != nil {
		return err
	}
	for _, g := range grades {
		if err := cw.Write([]string{string(g)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates path, creating parent directories, and fills it with
// write. The file is removed if write fails.
func WriteFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// ReadFeaturesFile opens path and reads it with ReadFeatures.
func ReadFeaturesFile(path string) ([]types.FeatureRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadFeatures(f, CommaFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// CommaFor returns the field separator implied by the extension of path.
func CommaFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

func newReader(r io.Reader, comma rune) *csv.Reader {
	cr := csv.NewReader(r)
	if comma != 0 {
		cr.Comma = comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// findID returns the position of the first header matching idColumns,
// ignoring case, or -1.
func findID(header []string) int {
	for _, name := range idColumns {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), name) {
				return i
			}
		}
	}
	return -1
}

// indexHeader maps trimmed column names to their positions. A UTF-8 byte
// order mark on the first column is dropped.
func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}
