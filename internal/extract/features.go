package extract

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/casegrade/internal/keywords"
	"github.com/pdiddy/casegrade/internal/normalize"
	"github.com/pdiddy/casegrade/pkg/types"
)

var agePattern = regexp.MustCompile(`(\d+)-year-old`)

// Entity categories consulted for each keyword feature.
var (
	medicationCategories = []types.EntityCategory{types.CategoryChemical, types.CategoryDrug}
	procedureCategories  = []types.EntityCategory{types.CategoryProcedure, types.CategoryTest}
	painCategories       = []types.EntityCategory{types.CategoryProcedure, types.CategoryChemical}
	diagnosisCategories  = []types.EntityCategory{types.CategoryDisease, types.CategoryDiagnosis}
)

var sentimentWords = []string{"improved", "stabilized", "better"}

// Extractor turns a case narrative into a FeatureRecord.
type Extractor struct {
	counter *Counter
	catalog *keywords.Catalog
}

// NewExtractor returns an Extractor using r for entity recognition and the
// keyword sets of cat. A nil cat uses keywords.Default().
func NewExtractor(r Recognizer, cat *keywords.Catalog) *Extractor {
	if cat == nil {
		cat = keywords.Default()
	}
	return &Extractor{counter: NewCounter(r), catalog: cat}
}

// Extract returns the features of text. It never fails outright: a non-nil
// error means extraction broke down and the returned record is
// types.DefaultFeatureRecord().
func (e *Extractor) Extract(ctx context.Context, text string) (types.FeatureRecord, error) {
	res := e.extract(ctx, text)
	return res.features, res.err
}

// extractRecord extracts one input row. A row without a narrative cell is
// treated as empty input.
func (e *Extractor) extractRecord(ctx context.Context, rec types.CaseRecord) result {
	if !rec.Valid {
		return result{features: types.DefaultFeatureRecord()}
	}
	return e.extract(ctx, rec.Text)
}

// result carries one record's features along with how they were obtained.
type result struct {
	features types.FeatureRecord

	// degraded is set when entity recognition failed and the keyword
	// counts come from pattern matching alone.
	degraded error

	// err is set when extraction failed; features is then the default record.
	err error
}

func (e *Extractor) extract(ctx context.Context, text string) (res result) {
	defer func() {
		if r := recover(); r != nil {
			res = result{features: types.DefaultFeatureRecord(), err: fmt.Errorf("extraction panicked: %v", r)}
		}
	}()

	return e.features(ctx, text)
}

func (e *Extractor) features(ctx context.Context, text string) result {
	lower := strings.ToLower(text)

	rec := types.FeatureRecord{
		Age:           extractAge(text),
		Gender:        extractGender(lower),
		Stabilization: flag(lower, "stabilized"),
		Improvement:   flag(lower, "improved"),
		Documentation: flag(lower, "documented"),
		Collaboration: flag(lower, "communicated"),
		Sentiment:     flag(lower, sentimentWords...),
	}

	// Recognition runs once per record and its spans feed all four counts.
	// On failure every count falls back to pattern matching.
	var degraded error
	var spans []types.EntitySpan
	if text != "" {
		spans, degraded = e.counter.recognize(ctx, text)
	}
	textNorm := normalize.Text(text)
	count := func(set *keywords.Set, cats []types.EntityCategory) int {
		return tally(textNorm, spans, degraded, set, cats)
	}

	rec.Medications = count(e.catalog.Medications, medicationCategories)
	rec.Procedures = count(e.catalog.Procedures, procedureCategories)
	rec.Pain = count(e.catalog.PainManagement, painCategories)
	rec.Diagnoses = count(e.catalog.Diagnoses, diagnosisCategories)

	return result{features: rec, degraded: degraded}
}

// extractAge returns the number preceding the first "-year-old", or 0. Ages
// too large for an int saturate at math.MaxInt.
func extractAge(text string) int {
	m := agePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	age, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	return age
}

// extractGender checks "female" first because it contains "male".
func extractGender(lower string) types.Gender {
	switch {
	case strings.Contains(lower, "female"):
		return types.GenderFemale
	case strings.Contains(lower, "male"):
		return types.GenderMale
	default:
		return types.GenderUnknown
	}
}

// flag is 1 when lower contains any of words.
func flag(lower string, words ...string) int {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return 1
		}
	}
	return 0
}
