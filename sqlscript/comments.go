package sqlscript

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// qQuoteClosers maps the opening delimiter of an Oracle alternative quote, q'[...]', to its closer.
var qQuoteClosers = map[rune]rune{
	'[': ']',
	'{': '}',
	'(': ')',
	'<': '>',
}

// RemoveComments strips "--" line comments and "/* */" block comments from sql.
// Single quoted literals, Oracle q'...' literals and double quoted identifiers are copied verbatim.
// Malformed input never fails: an unterminated block comment runs to the end of the input and an
// unterminated literal is kept as it is.
func RemoveComments(sql string) string {
	var b strings.Builder
	b.Grow(len(sql))
	i := 0
	for i < len(sql) {
		c := sql[i]
		switch {
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-': // line comment; keep the line break...
			nl := strings.IndexByte(sql[i:], '\n')
			if nl < 0 {
				i = len(sql)
			} else {
				i += nl
			}
		case c == '/' && i+1 < len(sql) && sql[i+1] == '*': // block comment...
			end := strings.Index(sql[i+2:], "*/")
			next := len(sql)
			if end >= 0 {
				next = i + 2 + end + 2
			}
			if needsSeparator(b.String(), sql[next:]) { // avoid gluing two tokens together...
				b.WriteByte(' ')
			}
			i = next
		case (c == 'q' || c == 'Q') && i+2 < len(sql) && sql[i+1] == '\'' && !precededByIdentifier(sql[:i]):
			n := quotedLength(sql[i+2:])
			b.WriteString(sql[i : i+2+n])
			i += 2 + n
		case c == '\'':
			n := literalLength(sql[i:], '\'')
			b.WriteString(sql[i : i+n])
			i += n
		case c == '"':
			n := literalLength(sql[i:], '"')
			b.WriteString(sql[i : i+n])
			i += n
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// literalLength returns the length in bytes of the quoted text at the start of s, including both quotes.
// A doubled quote is an escaped quote. Unterminated text runs to the end of s.
func literalLength(s string, quote byte) int {
	for i := 1; i < len(s); i++ {
		if s[i] != quote {
			continue
		}
		if i+1 < len(s) && s[i+1] == quote { // escaped quote...
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}

// quotedLength returns the length of an Oracle q-quote body, e.g. "[it's]'" in q'[it's]'.
func quotedLength(s string) int {
	open, size := utf8.DecodeRuneInString(s)
	if open == utf8.RuneError || unicode.IsSpace(open) {
		return literalLength("'"+s, '\'') - 1
	}
	closer := open
	if c, ok := qQuoteClosers[open]; ok {
		closer = c
	}
	end := strings.Index(s[size:], string(closer)+"'")
	if end < 0 {
		return len(s)
	}
	return size + end + utf8.RuneLen(closer) + 1
}

func precededByIdentifier(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' || r == '#')
}

func needsSeparator(before string, after string) bool {
	if before == "" || after == "" {
		return false
	}
	l, _ := utf8.DecodeLastRuneInString(before)
	r, _ := utf8.DecodeRuneInString(after)
	return !unicode.IsSpace(l) && !unicode.IsSpace(r)
}
