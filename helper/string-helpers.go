package helper

import (
	"regexp"
	"strings"
)

// GetTrueFalseStringAsBool trims spaces from s and checks if it can regexp (case insensitive) match "true" or "1".
// It returns true if there's a match else false.
func GetTrueFalseStringAsBool(s string) bool {
	re := regexp.MustCompile("(?i)^(true|1)$")
	return re.MatchString(strings.TrimSpace(s))
}

// SplitRight splits s at the last occurrence of c.
// If c is not found, return s, "".
func SplitRight(s string, c string) (string, string) {
	i := strings.LastIndex(s, c)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+len(c):]
}

// Split splits s at the first occurrence of c.
// If c is not found, return s, "".
func Split(s string, c string) (string, string) {
	i := strings.Index(s, c)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+len(c):]
}

// StringSliceContains returns true if s contains v exactly.
func StringSliceContains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Obfuscate returns a fixed mask when s is not empty, for use when logging secrets.
func Obfuscate(s string) string {
	if s == "" {
		return ""
	}
	return "xxxxx"
}
