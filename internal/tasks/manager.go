// Package tasks tracks background generation runs in memory and lets HTTP
// handlers poll or stream their progress.
package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// pollInterval drives Subscribe's change detection.
	pollInterval = 500 * time.Millisecond

	// retention is how long finished tasks stay queryable.
	retention = time.Hour
)

// Manager holds task state behind a mutex. All returned snapshots are
// copies, so callers can't race the manager.
type Manager struct {
	mu    sync.RWMutex
	tasks map[string]types.TaskState
}

// NewManager returns an empty task registry.
func NewManager() *Manager {
	return &Manager{tasks: make(map[string]types.TaskState)}
}

// Create registers a new pending task and returns its short ID.
func (m *Manager) Create() string {
	id := uuid.NewString()[:8]
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[id] = types.TaskState{
		ID:        id,
		Status:    types.TaskPending,
		Message:   "queued",
		StartedAt: now,
		UpdatedAt: now,
	}
	return id
}

// Progress moves a running task forward. Progress never goes backwards and
// terminal tasks ignore further updates.
func (m *Manager) Progress(id string, percent int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.Status.Terminal() {
		return
	}
	t.Status = types.TaskRunning
	if percent > t.Progress {
		t.Progress = percent
	}
	if t.Progress > 100 {
		t.Progress = 100
	}
	t.Message = message
	t.UpdatedAt = time.Now()
	m.tasks[id] = t
}

// Complete marks the task finished and records its outputs.
func (m *Manager) Complete(id, variantID, pdfPath string, atsScore *float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.Status.Terminal() {
		return
	}
	t.Status = types.TaskCompleted
	t.Progress = 100
	t.Message = "completed"
	t.VariantID = variantID
	t.PDFPath = pdfPath
	t.ATSScore = atsScore
	t.UpdatedAt = time.Now()
	m.tasks[id] = t
}

// Fail marks the task failed with the given reason.
func (m *Manager) Fail(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.Status.Terminal() {
		return
	}
	t.Status = types.TaskFailed
	t.Message = "failed"
	if err != nil {
		t.Error = err.Error()
	}
	t.UpdatedAt = time.Now()
	m.tasks[id] = t
}

// Get returns a snapshot of the task.
func (m *Manager) Get(id string) (types.TaskState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	return t, ok
}

// Subscribe emits a snapshot whenever the task changes, then the terminal
// snapshot, and closes. The channel also closes if the context ends or the
// task is unknown.
func (m *Manager) Subscribe(ctx context.Context, id string) <-chan types.TaskState {
	ch := make(chan types.TaskState, 1)

	go func() {
		defer close(ch)

		var last types.TaskState
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			t, ok := m.Get(id)
			if !ok {
				return
			}
			if t.UpdatedAt != last.UpdatedAt || t.Status != last.Status {
				last = t
				select {
				case ch <- t:
				case <-ctx.Done():
					return
				}
			}
			if t.Status.Terminal() {
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// StartJanitor prunes finished tasks older than the retention window until
// the context ends.
func (m *Manager) StartJanitor(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(retention / 4)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.prune(time.Now().Add(-retention))
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) prune(cutoff time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.tasks {
		if t.Status.Terminal() && t.UpdatedAt.Before(cutoff) {
			delete(m.tasks, id)
		}
	}
}
