// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus records how a batch run finished.
type RunStatus string

const (
	RunExtracted RunStatus = "extracted"
	RunGraded    RunStatus = "graded"
)

// Run describes one extraction batch and what it produced.
type Run struct {
	// ID is a random UUID assigned when the run starts.
	ID string `json:"id" yaml:"id"`

	// Input is the path of the case-study table that was extracted.
	Input string `json:"input" yaml:"input"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	Status RunStatus `json:"status" yaml:"status"`

	// Records, Fallbacks and Degraded mirror the batch summary counts.
	Records   int `json:"records" yaml:"records"`
	Fallbacks int `json:"fallbacks" yaml:"fallbacks"`
	Degraded  int `json:"degraded" yaml:"degraded"`
}

// RunRow is one stored row of a run: the case, its features and, once
// graded, its grade.
type RunRow struct {
	Index    int           `json:"index" yaml:"index"`
	CaseID   string        `json:"case_id,omitempty" yaml:"case_id,omitempty"`
	Features FeatureRecord `json:"features" yaml:"features"`
	Grade    Grade         `json:"grade,omitempty" yaml:"grade,omitempty"`
}
