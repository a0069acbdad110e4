package extract

import (
	"strings"
	"unicode"
)

// TitleCase upper-cases a cased letter that follows a non-letter and
// lower-cases one that follows a letter. Digits and punctuation both start a
// new word, so "jane@example.com" becomes "Jane@Example.Com" and "1st"
// becomes "1St".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		if isCased(r) {
			if prevCased {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevCased = true
			continue
		}
		b.WriteRune(r)
		prevCased = false
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}
