// Package stringutil provides common string manipulation utilities.
package stringutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery prepares free text for pattern matching.
// It applies NFKC folding (full-width letters, ligatures, compatibility
// punctuation), lowercases and trims surrounding whitespace.
//
// Example:
//
//	NormalizeQuery("  When is the ＥＳＳＡＹ due?  ") returns "when is the essay due?"
func NormalizeQuery(s string) string {
	return strings.TrimSpace(strings.ToLower(norm.NFKC.String(s)))
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// SplitLines splits text on newlines and strips a trailing carriage return
// from every line, so CRLF documents behave like LF documents.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Truncate shortens s to at most maxRunes runes, appending "…" when cut.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "…"
}
