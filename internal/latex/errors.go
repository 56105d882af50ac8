// Package latex parses LaTeX resume documents into structured data and
// provides the primitives (brace scanning, macro expansion, section
// splitting) needed to rewrite them.
package latex

import "fmt"

// ParseError indicates a document could not be parsed into a resume.
type ParseError struct {
	Path    string
	Section string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := "latex parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Section != "" {
		msg += fmt.Sprintf(" (section %q)", e.Section)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
