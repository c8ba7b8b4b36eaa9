// Package keywords holds the fixed clinical keyword sets used for feature
// extraction. Sets are built once, with each term normalised and compiled
// into a boundary-anchored pattern, and are read-only afterwards.
package keywords

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/casegrade/internal/normalize"
)

// Term is one keyword of a Set.
type Term struct {
	// Raw is the keyword as written in the reference data.
	Raw string

	// Normalized is normalize.Text(Raw).
	Normalized string

	// Pattern matches Normalized in normalised text. It is nil when
	// Normalized is empty.
	Pattern *regexp.Regexp
}

// Set is a named, immutable keyword set.
type Set struct {
	name  string
	terms []Term
}

// NewSet builds a set from raw keywords. Exact duplicates are dropped;
// distinct spellings that normalise to the same text are kept.
func NewSet(name string, raw []string) (*Set, error) {
	seen := make(map[string]struct{}, len(raw))
	terms := make([]Term, 0, len(raw))
	for _, kw := range raw {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}

		re, err := normalize.Pattern(kw)
		if err != nil {
			return nil, fmt.Errorf("keyword set %s: %w", name, err)
		}
		terms = append(terms, Term{
			Raw:        kw,
			Normalized: normalize.Text(kw),
			Pattern:    re,
		})
	}
	return &Set{name: name, terms: terms}, nil
}

// MustNewSet is NewSet for reference data known to compile.
func MustNewSet(name string, raw []string) *Set {
	s, err := NewSet(name, raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the set's name.
func (s *Set) Name() string { return s.name }

// Len returns the number of terms.
func (s *Set) Len() int { return len(s.terms) }

// Each calls fn for every term in the set.
func (s *Set) Each(fn func(Term)) {
	for _, t := range s.terms {
		fn(t)
	}
}

// Catalog groups the four domain sets used by feature extraction.
type Catalog struct {
	Medications    *Set
	Procedures     *Set
	PainManagement *Set
	Diagnoses      *Set
}

var builtin = sync.OnceValue(func() *Catalog {
	return &Catalog{
		Medications:    MustNewSet("medications", medicationsTerms),
		Procedures:     MustNewSet("procedures", proceduresTerms),
		PainManagement: MustNewSet("pain_management", painManagementTerms),
		Diagnoses:      MustNewSet("diagnoses", diagnosesTerms),
	}
})

// Default returns the built-in catalog. It is shared process-wide.
func Default() *Catalog {
	return builtin()
}

// File is the YAML layout of a keyword override file. Lists left empty keep
// the built-in set.
type File struct {
	Medications    []string `yaml:"medications"`
	Procedures     []string `yaml:"procedures"`
	PainManagement []string `yaml:"pain_management"`
	Diagnoses      []string `yaml:"diagnoses"`
}

// Load reads a keyword override file and returns a catalog in which each
// non-empty list replaces the matching built-in set. An empty path returns
// Default().
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keywords file %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}

	def := Default()
	cat := *def
	overrides := []struct {
		name string
		raw  []string
		dst  **Set
	}{
		{"medications", f.Medications, &cat.Medications},
		{"procedures", f.Procedures, &cat.Procedures},
		{"pain_management", f.PainManagement, &cat.PainManagement},
		{"diagnoses", f.Diagnoses, &cat.Diagnoses},
	}
	for _, o := range overrides {
		if len(o.raw) == 0 {
			continue
		}
		s, err := NewSet(o.name, o.raw)
		if err != nil {
			return nil, err
		}
		*o.dst = s
	}
	return &cat, nil
}
