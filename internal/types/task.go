package types

import "time"

// TaskStatus is the lifecycle state of a background generation task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// TaskState is an immutable snapshot of a background task, safe to hand to
// HTTP handlers and SSE streams.
type TaskState struct {
	ID        string     `json:"task_id"`
	Status    TaskStatus `json:"status"`
	Progress  int        `json:"progress"`
	Message   string     `json:"message"`
	Error     string     `json:"error,omitempty"`
	VariantID string     `json:"variant_id,omitempty"`
	PDFPath   string     `json:"pdf_path,omitempty"`
	ATSScore  *float64   `json:"ats_score,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
