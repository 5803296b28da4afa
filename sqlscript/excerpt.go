package sqlscript

import (
	"unicode/utf8"

	c "github.com/relloyd/hptransform/constants"
)

// Excerpt returns query unchanged when it is at most ExcerptMaxChars characters long.
// Longer queries are reduced to the first and last ExcerptEdgeChars characters joined by a "..." line.
// Characters are runes, so multi-byte characters are never split.
func Excerpt(query string) string {
	if utf8.RuneCountInString(query) <= c.ExcerptMaxChars {
		return query
	}
	r := []rune(query)
	return string(r[:c.ExcerptEdgeChars]) + c.ExcerptSeparator + string(r[len(r)-c.ExcerptEdgeChars:])
}
