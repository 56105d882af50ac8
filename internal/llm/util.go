package llm

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	fencePattern      = regexp.MustCompile("^```[a-zA-Z]*\n?|```$")
	bulletLeadPattern = regexp.MustCompile(`^[\-\*•]\s*`)
	boldWrapPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// CleanResponse normalizes a raw model completion into a single usable
// line: code fences, surrounding quotes, list markers, and markdown bold
// are stripped and the first letter is capitalized.
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)
	s = fencePattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = bulletLeadPattern.ReplaceAllString(s, "")
	s = boldWrapPattern.ReplaceAllString(s, "$1")
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
