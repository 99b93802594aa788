// Package textfmt normalizes free-text menu fields coming out of OCR.
package textfmt

import (
	"regexp"
	"strings"

	"github.com/tarikhaida/menu-tracker/constants"
)

var asterisksRe = regexp.MustCompile(`\*+`)

// Clean strips markdown emphasis artifacts and collapses whitespace runs.
func Clean(text string) string {
	text = asterisksRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// CleanField cleans a content field and substitutes the placeholder for
// empty or "not detected" values. Output is never empty.
func CleanField(text string) string {
	cleaned := Clean(text)
	if cleaned == "" {
		return constants.FieldPlaceholder
	}
	if _, notDetected := constants.NotDetectedValues[strings.ToLower(cleaned)]; notDetected {
		return constants.FieldPlaceholder
	}
	return cleaned
}
