package rdbms

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// EscapeIdentifier upper-cases name, using full Unicode case mapping, and wraps it in double quotes.
func EscapeIdentifier(name string) string {
	return `"` + upper.String(name) + `"`
}
