package textfmt

import (
	"fmt"
	"regexp"
	"strings"
)

// Dessert cells frequently hold two items the OCR glued together, e.g.
// "Yaourt Fruit du jour". The table has no separator of its own, so we
// reinsert " / " between the cheese/dairy category and whatever follows.

// categoryPrefixes are dessert categories that are always followed by the
// actual item when two desserts share a cell.
var categoryPrefixes = []string{
	"Sélection de notre affineur",
	"Yaourt",
	"Fromage blanc",
	"Fromage qui chlingue",
}

// dessertIndicators drive the fallback segmentation: a token from this set
// starts a new dessert when one is already being collected.
var dessertIndicators = map[string]struct{}{
	"sélection": {}, "yaourt": {}, "fromage": {}, "fruit": {},
	"compote": {}, "mousse": {}, "cake": {}, "cookies": {},
}

var prefixRes = buildPrefixRes()

func buildPrefixRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(categoryPrefixes))
	for i, p := range categoryPrefixes {
		// Prefix matched case-insensitively, then a second phrase starting
		// with a capital and not already containing a separator. The (?i)
		// stays scoped to the prefix so \p{Lu} keeps meaning uppercase.
		res[i] = regexp.MustCompile(fmt.Sprintf(`^((?i:%s))\s+(\p{Lu}[^/]*)$`, regexp.QuoteMeta(p)))
	}
	return res
}

// FormatDessert inserts " / " between multiple dessert items detected in a
// single cell. Text with no segmentation signal passes through unchanged.
func FormatDessert(text string) string {
	if text == "" {
		return text
	}

	// Already-separated cells are left alone; re-segmenting them would
	// double the separators.
	if strings.Contains(text, "/") {
		return text
	}

	for _, re := range prefixRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1] + " / " + m[2]
		}
	}

	return segmentByIndicators(text)
}

// segmentByIndicators splits on indicator words: each indicator seen while a
// segment is already open starts a new segment.
func segmentByIndicators(text string) string {
	var segments []string
	var current []string

	for _, word := range strings.Fields(text) {
		_, indicator := dessertIndicators[strings.ToLower(word)]
		if indicator && len(current) > 0 {
			segments = append(segments, strings.Join(current, " "))
			current = []string{word}
			continue
		}
		current = append(current, word)
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, " "))
	}

	if len(segments) > 1 {
		return strings.Join(segments, " / ")
	}
	return text
}
