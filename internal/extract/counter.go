package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/casegrade/internal/keywords"
	"github.com/pdiddy/casegrade/internal/normalize"
	"github.com/pdiddy/casegrade/pkg/types"
)

// Recognizer abstracts the named-entity recognition capability so tests can
// supply a stub. Implementations receive raw, unnormalised text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]types.EntitySpan, error)
}

// Counter counts keyword occurrences by combining recognised entities with
// boundary-anchored literal matching over normalised text.
type Counter struct {
	recognizer Recognizer
}

// NewCounter returns a Counter backed by r. A nil r counts by pattern
// matching alone.
func NewCounter(r Recognizer) *Counter {
	return &Counter{recognizer: r}
}

// Count returns how many keywords of set occur in text. Entity spans whose
// category is in categories count once per (span, keyword) substring match;
// literal matches then count once per distinct normalised keyword not
// already found through an entity.
//
// A non-nil error means recognition failed and the count came from pattern
// matching alone. The count is valid either way.
func (c *Counter) Count(ctx context.Context, text string, set *keywords.Set, categories []types.EntityCategory) (int, error) {
	if text == "" {
		return 0, nil
	}
	spans, err := c.recognize(ctx, text)
	return tally(normalize.Text(text), spans, err, set, categories), err
}

// recognize runs the recogniser, turning a panic into an error.
func (c *Counter) recognize(ctx context.Context, text string) (spans []types.EntitySpan, err error) {
	if c.recognizer == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			spans = nil
			err = fmt.Errorf("entity recognition panicked: %v", r)
		}
	}()
	spans, err = c.recognizer.Recognize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("entity recognition: %w", err)
	}
	return spans, nil
}

// tally applies the entity step then the pattern step, sharing one found set
// so a keyword seen as an entity is not counted again literally. When
// recognition failed (recErr != nil) only the pattern step runs.
func tally(textNorm string, spans []types.EntitySpan, recErr error, set *keywords.Set, categories []types.EntityCategory) int {
	found := make(map[string]struct{})
	count := 0
	if recErr == nil {
		count = countEntities(spans, set, categories, found)
	}
	return count + countPatterns(textNorm, set, found)
}

// countEntities counts every (span, keyword) pair where either normalised
// string contains the other. A span that normalises to "" is contained in
// every keyword and so counts once per keyword.

func countEntities(spans []types.EntitySpan, set *keywords.Set, categories []types.EntityCategory, found map[string]struct{}) int {
	if len(spans) == 0 || len(categories) == 0 {
		return 0
	}
	wanted := make(map[types.EntityCategory]struct{}, len(categories))
	for _, cat := range categories {
		wanted[types.NewEntityCategory(string(cat))] = struct{}{}
	}

	count := 0
	for _, span := range spans {
		if _, ok := wanted[types.NewEntityCategory(string(span.Category))]; !ok {
			continue
		}
		ent := normalize.Text(span.Text)
		set.Each(func(term keywords.Term) {
			kw := term.Normalized
			if kw == "" {
				return
			}
			if strings.Contains(ent, kw) || strings.Contains(kw, ent) {
				found[kw] = struct{}{}
				count++
			}
		})
	}
	return count
}

func countPatterns(textNorm string, set *keywords.Set, found map[string]struct{}) int {
	if textNorm == "" {
		return 0
	}
	count := 0
	set.Each(func(term keywords.Term) {
		if term.Pattern == nil {
			return
		}
		for _, m := range term.Pattern.FindAllString(textNorm, -1) {
			matched := normalize.Text(m)
			if _, ok := found[matched]; ok {
				continue
			}
			found[matched] = struct{}{}
			count++
		}
	})
	return count
}
