package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
)

func TestTaskStreamFraming(t *testing.T) {
	rec := httptest.NewRecorder()
	stream, err := newTaskStream(rec)
	require.NoError(t, err)

	require.NoError(t, stream.Progress(types.TaskState{
		ID:       "abc123",
		Status:   types.TaskRunning,
		Progress: 40,
		Message:  "enhancing bullets",
	}))
	stream.Complete(types.TaskState{ID: "abc123", Status: types.TaskCompleted, Progress: 100})
	stream.Interrupted("task state is no longer available")

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: progress\ndata: ")
	assert.Contains(t, body, `"progress":40`)
	assert.Contains(t, body, "event: complete\n")
	assert.Contains(t, body, `"task_id":"abc123"`)
	assert.Contains(t, body, `"status":"completed"`)
	assert.Contains(t, body, `event: error`)
}
