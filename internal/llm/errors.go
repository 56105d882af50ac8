package llm

import "fmt"

// GenerationError indicates a model request failed or returned an unusable
// response.
type GenerationError struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e *GenerationError) Error() string {
	msg := "llm generation error: " + e.Message
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
