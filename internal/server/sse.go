package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-tailor/internal/types"
)

// taskStream pushes generation task snapshots to one client as Server-Sent
// Events. Every event carries a full TaskState so the client can render
// progress without a follow-up status call.
type taskStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newTaskStream(w http.ResponseWriter) (*taskStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &taskStream{w: w, flusher: flusher}, nil
}

// Progress emits one task snapshot.
func (s *taskStream) Progress(state types.TaskState) error {
	return s.emit("progress", state)
}

// Complete closes out the stream with the terminal snapshot.
func (s *taskStream) Complete(state types.TaskState) {
	s.emit("complete", state) //nolint:errcheck
}

// Interrupted reports a stream that ended before the task did, distinct
// from a task that failed.
func (s *taskStream) Interrupted(message string) {
	s.emit("error", map[string]string{"error": message}) //nolint:errcheck
}

func (s *taskStream) emit(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
