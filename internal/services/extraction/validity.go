package extraction

import (
	"strings"
	"unicode"
)

// DefaultMinTextLength is the minimum trimmed length for extracted text to
// be considered usable.
const DefaultMinTextLength = 100

// minReadableRatio is the required share of letters, digits and whitespace
// in the trimmed text. Symbol-heavy output below this ratio is a proxy for
// garbled parsing or OCR noise.
const minReadableRatio = 0.70

// IsTextValid reports whether a candidate extracted text is usable. The same
// predicate gates every strategy's output, regardless of which method
// produced it.
func IsTextValid(text string, minLength int) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	runes := []rune(trimmed)
	if len(runes) < minLength {
		return false
	}

	readable := 0
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			readable++
		}
	}

	return float64(readable)/float64(len(runes)) > minReadableRatio
}
