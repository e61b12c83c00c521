package extraction

import (
	"strings"
	"unicode"
)

// Normalize lowercases a mention, strips emoji and punctuation, and collapses
// whitespace. Every downstream comparison (stoplist, similarity clustering)
// operates on this form.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '\'' || r == '’':
			// Apostrophes are dropped outright so "Joe's" and "joes"
			// normalize identically.
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			// Punctuation, symbols and emoji become separators so that
			// "Joe's Pizza" and "joes pizza" collapse to the same form.
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
