// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/blevesearch/segment"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/casegrade/internal/keywords"
	"github.com/pdiddy/casegrade/pkg/types"
)

// DefaultMaxCompoundTokens is the longest run of words looked up as a
// single dictionary term when no limit is configured.
const DefaultMaxCompoundTokens = 4

// DictionaryFile is the YAML layout read by LoadDictionary:
//
//	categories:
//	  chemical: [aspirin, morphine]
//	  disease: [sepsis, congestive heart failure]
type DictionaryFile struct {
	Categories map[string][]string `yaml:"categories"`
}

// Dictionary recognises entities by exact lookup of word sequences in a
// term table. Lookups prefer the longest compound starting at each word.
type Dictionary struct {
	terms     map[string]types.EntityCategory
	maxTokens int
}

// NewDictionary builds a Dictionary from category term lists. Terms are
// segmented and canonicalised the same way as input text, so "Beta-Blockers"
// matches "beta blockers". A term listed under more than one category keeps
// the alphabetically first category.
func NewDictionary(entries map[types.EntityCategory][]string, maxTokens int) *Dictionary {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxCompoundTokens
	}
	d := &Dictionary{terms: make(map[string]types.EntityCategory), maxTokens: maxTokens}
	for _, cat := range slices.Sorted(maps.Keys(entries)) {
		terms := entries[cat]
		cat = types.NewEntityCategory(string(cat))
		for _, term := range terms {
			words := tokenize(term)
			if len(words) == 0 || len(words) > maxTokens {
				continue
			}
			key := joinWords(words)
			if _, ok := d.terms[key]; !ok {
				d.terms[key] = cat
			}
		}
	}
	return d
}

// LoadDictionary reads a DictionaryFile from path.
func LoadDictionary(path string, maxTokens int) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %w", path, err)
	}
	var f DictionaryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing dictionary %s: %w", path, err)
	}
	entries := make(map[types.EntityCategory][]string, len(f.Categories))
	for label, terms := range f.Categories {
		cat := types.NewEntityCategory(label)
		entries[cat] = append(entries[cat], terms...)
	}
	return NewDictionary(entries, maxTokens), nil
}

// CatalogDictionary derives a dictionary from the keyword sets: medications
// tag as drug, procedures as procedure and diagnoses as disease. Pain
// management terms mix drugs and procedures and are left to pattern
// matching.
func CatalogDictionary(cat *keywords.Catalog, maxTokens int) *Dictionary {
	if cat == nil {
		cat = keywords.Default()
	}
	raw := func(s *keywords.Set) []string {
		var out []string
		s.Each(func(t keywords.Term) { out = append(out, t.Raw) })
		return out
	}
	return NewDictionary(map[types.EntityCategory][]string{
		types.CategoryDrug:      raw(cat.Medications),
		types.CategoryProcedure: raw(cat.Procedures),
		types.CategoryDisease:   raw(cat.Diagnoses),
	}, maxTokens)
}

// Len returns the number of distinct terms.
func (d *Dictionary) Len() int {
	return len(d.terms)
}

// Recognize returns one span per matched term, in text order. Matches do
// not overlap.
func (d *Dictionary) Recognize(ctx context.Context, text string) ([]types.EntitySpan, error) {
	words := tokenize(text)

	var spans []types.EntitySpan
	for i := 0; i < len(words); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := d.longestMatch(words[i:])
		if n == 0 {
			i++
			continue
		}
		first, last := words[i], words[i+n-1]
		spans = append(spans, types.EntitySpan{
			Text:     text[first.start:last.end],
			Category: d.terms[joinWords(words[i:i+n])],
			Start:    first.start,
			End:      last.end,
		})
		i += n
	}
	return spans, nil
}

func (d *Dictionary) longestMatch(words []word) int {
	for n := min(d.maxTokens, len(words)); n > 0; n-- {
		if _, ok := d.terms[joinWords(words[:n])]; ok {
			return n
		}
	}
	return 0
}

// word is a letter or number segment of the input with its byte offsets.
type word struct {
	norm       string
	start, end int
}

// tokenize splits text on unicode word boundaries and drops punctuation and
// whitespace segments. Each word is NFKC normalised and lowercased.
func tokenize(text string) []word {
	var words []word
	seg := segment.NewWordSegmenterDirect([]byte(text))
	pos := 0
	for seg.Segment() {
		b := seg.Bytes()
		start := pos
		pos += len(b)
		if seg.Type() == segment.None {
			continue
		}
		words = append(words, word{
			norm:  strings.ToLower(norm.NFKC.String(string(b))),
			start: start,
			end:   pos,
		})
	}
	return words
}

func joinWords(words []word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.norm
	}
	return strings.Join(parts, " ")
}
