// Package dues maps free-text due requests onto the due type catalog.
package dues

import (
	"strings"

	"porttariff/internal/domain"
)

// minKeywordLen drops short filler words such as "of" and "and".
const minKeywordLen = 3

// Resolve returns the catalog entries that freeText refers to, in catalog
// order and without duplicates. An input keyword matches an entry when one
// of them is a substring of one of the entry's keywords. No match yields an
// empty slice.
func Resolve(freeText string, catalog []domain.DueType) []domain.DueType {
	input := expandAbbreviations(keywords(freeText))

	matched := []domain.DueType{}
	seen := make(map[domain.DueType]struct{}, len(catalog))
	for _, due := range catalog {
		if _, dup := seen[due]; dup {
			continue
		}
		if matchesAny(input, keywords(string(due))) {
			seen[due] = struct{}{}
			matched = append(matched, due)
		}
	}
	return matched
}

// keywords lower-cases s, removes the "dues" token and splits on whitespace.
func keywords(s string) []string {
	s = strings.ReplaceAll(strings.ToLower(s), " dues", "")
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if f != "dues" {
			out = append(out, f)
		}
	}
	return out
}

// expandAbbreviations adds "vts" when the input names vessel traffic
// services, including the common "vehicle traffic" mis-transcription.
func expandAbbreviations(words []string) []string {
	has := func(w string) bool {
		for _, x := range words {
			if x == w {
				return true
			}
		}
		return false
	}
	if has("traffic") && (has("vessel") || has("vehicle")) {
		words = append(words, "vts")
	}
	return words
}

func matchesAny(input, dueWords []string) bool {
	for _, in := range input {
		if len(in) < minKeywordLen {
			continue
		}
		for _, dw := range dueWords {
			if strings.Contains(dw, in) || strings.Contains(in, dw) {
				return true
			}
		}
	}
	return false
}
