package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NFKD also folds compatibility forms such as the ordinal indicators,
// so "2ª" becomes "2a".
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds text for matching: lower-case, no diacritics,
// punctuation replaced by spaces, whitespace collapsed.
// Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	if folded, _, err := transform.String(stripMarks, text); err == nil {
		text = folded
	}

	var builder strings.Builder
	builder.Grow(len(text))

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(builder.String()), " ")
}

// Tokens splits normalized text into words.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text))
}
