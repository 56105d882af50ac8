// Package textutil provides the low-level text primitives shared by the
// keyword extraction, matching, and scoring packages: tokenization,
// sequence similarity, and suffix stemming.
package textutil

import (
	"regexp"
	"strings"
)

var (
	wordPattern     = regexp.MustCompile(`\b\w+\b`)
	sentencePattern = regexp.MustCompile(`[.!?\n]+`)
	numberPattern   = regexp.MustCompile(`\d+[%+]?`)
)

// stopWords are short function words ignored when diffing keyword sets.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

// Words returns the lowercase word tokens of text.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// ContentWords returns lowercase alphanumeric tokens longer than two
// characters, the vocabulary used for phrase mining.
func ContentWords(text string) []string {
	var out []string
	for _, w := range Words(text) {
		if len(w) > 2 && isAlnum(w) {
			out = append(out, w)
		}
	}
	return out
}

// Sentences splits text on terminal punctuation and newlines.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentencePattern.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NGrams returns all contiguous n-word phrases of words joined by spaces.
func NGrams(words []string, n int) []string {
	if n <= 0 || len(words) < n {
		return nil
	}
	out := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		out = append(out, strings.Join(words[i:i+n], " "))
	}
	return out
}

// IsStopWord reports whether w is a common function word.
func IsStopWord(w string) bool {
	return stopWords[strings.ToLower(w)]
}

// HasNumber reports whether text contains a number, optionally suffixed
// with % or +. Used as a quantified-result signal.
func HasNumber(text string) bool {
	return numberPattern.MatchString(text)
}

// CountOccurrences counts non-overlapping case-insensitive occurrences of
// needle in text.
func CountOccurrences(text, needle string) int {
	if needle == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), strings.ToLower(needle))
}

func isAlnum(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return s != ""
}
