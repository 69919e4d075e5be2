package stringutils

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Clean strips control characters and HTML entities from scraped text and
// collapses runs of whitespace into single spaces.
func Clean(s string) string {
	s = html.UnescapeString(s)

	var builder strings.Builder
	builder.Grow(len(s))

	space := false
	for _, r := range s {
		if r == utf8.RuneError || r == 0 || r == 127 || (r >= 128 && r <= 159) {
			continue
		}
		if unicode.IsSpace(r) {
			space = builder.Len() > 0
			continue
		}
		if !unicode.IsPrint(r) {
			continue
		}
		if space {
			builder.WriteByte(' ')
			space = false
		}
		builder.WriteRune(r)
	}

	return builder.String()
}

// Truncate cuts s to at most max runes. A non-positive max disables the cap.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
