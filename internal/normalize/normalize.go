// Package normalize canonicalises free text for keyword matching and builds
// boundary-anchored literal patterns over the canonical form.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// Text lowercases s, turns hyphens into spaces, drops apostrophes, collapses
// whitespace runs to one space, strips everything outside [a-z0-9 ] and trims.
// The steps run in that order: "beta-blockers" becomes "beta blockers".
//
// Stripping can leave two spaces where punctuation stood alone ("a , b"), so
// whitespace is collapsed once more at the end. The result never holds a
// double space and Text(Text(s)) == Text(s).
func Text(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")
	s = collapse(s)
	s = strings.Map(keep, s)
	return collapse(s)
}

// collapse joins the whitespace-separated fields of s with single spaces,
// which also trims both ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func keep(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
		return r
	default:
		return -1
	}
}

// Pattern compiles a regexp that matches the normalised keyword as a whole
// word sequence in normalised text, so "statins" never matches inside
// "antistatins". Keywords that normalise to "" yield a nil pattern.
func Pattern(keyword string) (*regexp.Regexp, error) {
	n := Text(keyword)
	if n == "" {
		return nil, nil
	}
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(n) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern for %q: %w", keyword, err)
	}
	return re, nil
}
