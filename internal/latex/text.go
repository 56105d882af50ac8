package latex

import (
	"regexp"
	"strings"
)

var (
	// Formatting commands whose argument is kept verbatim.
	keepArgPattern = regexp.MustCompile(`\\(?:textbf|textit|texttt|emph|underline|textsc|mbox)\{([^{}]*)\}`)
	// Remaining commands are dropped along with optional arguments.
	commandPattern    = regexp.MustCompile(`\\[a-zA-Z]+\*?(?:\[[^\]]*\])?`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

var escapeReplacer = strings.NewReplacer(
	`\&`, "&",
	`\%`, "%",
	`\$`, "$",
	`\#`, "#",
	`\_`, "_",
	`\{`, "(",
	`\}`, ")",
	"~", " ",
	"---", "-",
	"--", "-",
	`\\`, " ",
)

// ToPlainText strips LaTeX markup from a fragment, keeping the arguments of
// formatting commands and dropping everything else.
func ToPlainText(s string) string {
	// Unwrap nested formatting, innermost first.
	for range [5]struct{}{} {
		next := keepArgPattern.ReplaceAllString(s, "$1")
		if next == s {
			break
		}
		s = next
	}
	s = escapeReplacer.Replace(s)
	s = commandPattern.ReplaceAllString(s, "")
	s = strings.NewReplacer("{", "", "}", "").Replace(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
