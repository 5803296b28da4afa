// Package sqlscript prepares user authored SQL scripts for execution and builds the short
// excerpts of them that are used in logs and error messages.
package sqlscript

import (
	"strings"
	"unicode"
)

// Kind says what the transformation should do with a script.
type Kind int

const (
	KindExecutable   Kind = iota // run it
	KindEmpty                    // nothing left after comments and terminators are removed
	KindReadOnlySkip             // a bare SELECT whose results have nowhere to go
)

func (k Kind) String() string {
	switch k {
	case KindExecutable:
		return "executable"
	case KindEmpty:
		return "empty"
	case KindReadOnlySkip:
		return "read-only"
	default:
		return "unknown"
	}
}

// Statement is a normalized script.
type Statement struct {
	Text string
	Kind Kind
}

// Normalize strips comments and surrounding terminators from raw and classifies the result.
func Normalize(raw string) Statement {
	txt := TrimTerminators(RemoveComments(raw))
	switch {
	case txt == "":
		return Statement{Kind: KindEmpty}
	case strings.EqualFold(firstToken(txt), "SELECT"):
		return Statement{Text: txt, Kind: KindReadOnlySkip}
	default:
		return Statement{Text: txt, Kind: KindExecutable}
	}
}

// TrimTerminators removes whitespace and ";" from both ends of s.
// Semicolons inside the statement, e.g. in PL/SQL blocks, are left alone.
func TrimTerminators(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == ';' || unicode.IsSpace(r)
	})
}

// firstToken returns the leading run of identifier characters in s.
func firstToken(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' || r == '#')
	})
	if end < 0 {
		return s
	}
	return s[:end]
}
