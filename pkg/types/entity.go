// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// EntityCategory is a semantic label attached to a recognised span.
// Categories are compared in lowercase.
type EntityCategory string

const (
	CategoryChemical  EntityCategory = "chemical"
	CategoryDrug      EntityCategory = "drug"
	CategoryProcedure EntityCategory = "procedure"
	CategoryTest      EntityCategory = "test"
	CategoryDisease   EntityCategory = "disease"
	CategoryDiagnosis EntityCategory = "diagnosis"
)

// NewEntityCategory canonicalises a label from any recogniser.
func NewEntityCategory(label string) EntityCategory {
	return EntityCategory(strings.ToLower(strings.TrimSpace(label)))
}

// EntitySpan is a text segment tagged by an entity recogniser.
type EntitySpan struct {
	// Text is the segment as it appears in the raw input.
	Text string `json:"text" yaml:"text"`

	// Category is the semantic label of the segment.
	Category EntityCategory `json:"category" yaml:"category"`

	// Start and End are byte offsets into the raw input when the recogniser
	// reports them; both are zero otherwise.
	Start int `json:"start,omitempty" yaml:"start,omitempty"`
	End   int `json:"end,omitempty" yaml:"end,omitempty"`
}
