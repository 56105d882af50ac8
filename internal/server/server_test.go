package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
)

const testResume = `---
name: Jordan Smith
---
\documentclass{article}
\begin{document}
{\Huge \bfseries Jordan Smith}\\
jordan@example.com

%----------SUMMARY----------
\section*{Summary}
Site reliability engineer with eight years of experience running distributed systems.
%----------EXPERIENCE----------
\section{Experience}
\resumeSubheading{Platform Engineer}{Jan 2021 -- Present}{Acme}{Remote}
\resumeItemListStart
      \resumeItem{Automated Kafka cluster deployments with Terraform, cutting release time by 70\%}
      \resumeItem{Managed Kubernetes clusters serving production traffic}
\resumeItemListEnd
\end{document}
`

const testJD = `We need a Platform Engineer with Kafka, Kubernetes, and Terraform experience.

Requirements:
- 5+ years with Kafka in production
- Kubernetes and Docker
`

type offlineClient struct{}

func (offlineClient) Generate(context.Context, string, string, llm.Options) (string, error) {
	return "", &llm.GenerationError{Message: "offline"}
}
func (offlineClient) IsAvailable(context.Context) bool { return false }
func (offlineClient) Model() string                    { return "offline" }

func testServer(t *testing.T, baseResume string) *Server {
	t.Helper()
	base := t.TempDir()

	store, err := db.Open(context.Background(), filepath.Join(base, "tailor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Config{
		BaseResume: baseResume,
		OutputDir:  filepath.Join(base, "out"),
		DataDir:    filepath.Join(base, "data"),
		Port:       0,
		Generation: types.DefaultGenerationConfig(),
	}
	require.NoError(t, cfg.EnsureDirs())

	return New(cfg, store, offlineClient{}, zerolog.Nop())
}

func writeTestResume(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.tex")
	require.NoError(t, os.WriteFile(path, []byte(testResume), 0644))
	return path
}

func generateForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func startGeneration(t *testing.T, srv *Server) string {
	t.Helper()
	body, contentType := generateForm(t, map[string]string{
		"job_title":       "Platform Engineer",
		"company":         "Acme",
		"job_description": testJD,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/generate/start", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp["task_id"], 8)
	return resp["task_id"]
}

func waitForCompletion(t *testing.T, srv *Server, taskID string) types.TaskState {
	t.Helper()
	var state types.TaskState
	require.Eventually(t, func() bool {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/generate/status/"+taskID, nil)
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			return false
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
		return state.Status.Terminal()
	}, 30*time.Second, 100*time.Millisecond)
	return state
}

func TestHealth(t *testing.T) {
	srv := testServer(t, "")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestGenerateStartValidation(t *testing.T) {
	srv := testServer(t, writeTestResume(t))

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{name: "missing title", fields: map[string]string{"company": "Acme", "job_description": testJD}},
		{name: "missing company", fields: map[string]string{"job_title": "SRE", "job_description": testJD}},
		{name: "missing description", fields: map[string]string{"job_title": "SRE", "company": "Acme"}},
		{name: "bad target bullets", fields: map[string]string{
			"job_title": "SRE", "company": "Acme", "job_description": testJD, "target_bullets": "200",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := generateForm(t, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/generate/start", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGenerateStartWithoutAnyResume(t *testing.T) {
	srv := testServer(t, "")
	body, contentType := generateForm(t, map[string]string{
		"job_title": "SRE", "company": "Acme", "job_description": testJD,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/generate/start", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no resume")
}

func TestGenerateLifecycle(t *testing.T) {
	srv := testServer(t, writeTestResume(t))

	taskID := startGeneration(t, srv)
	state := waitForCompletion(t, srv, taskID)
	require.Equal(t, types.TaskCompleted, state.Status)
	require.NotEmpty(t, state.VariantID)
	assert.Equal(t, 100, state.Progress)

	// The variant is now listed with its job and score.
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/variants", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Count    int                `json:"count"`
		Variants []db.VariantRecord `json:"variants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, state.VariantID, list.Variants[0].VariantID)
	assert.Equal(t, "Acme", list.Variants[0].Company)

	// Single fetch inlines the metadata document.
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/variants/"+state.VariantID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"metadata"`)

	// LaTeX download works even when pdflatex is absent.
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/variants/"+state.VariantID+"/download-tex", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `\documentclass`)

	// Stats reflect the run.
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats db.Statistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalJobs)
	assert.Equal(t, 1, stats.TotalVariants)

	// Delete removes the row and the files.
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/variants/"+state.VariantID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/variants/"+state.VariantID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateStream(t *testing.T) {
	srv := testServer(t, writeTestResume(t))
	taskID := startGeneration(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/generate/stream/"+taskID, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "event: progress")
	assert.Contains(t, body, "event: complete")
	assert.Contains(t, body, fmt.Sprintf(`"task_id":"%s"`, taskID))
}

func TestStatusUnknownTask(t *testing.T) {
	srv := testServer(t, "")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/generate/status/deadbeef", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplicationsFlow(t *testing.T) {
	srv := testServer(t, writeTestResume(t))
	taskID := startGeneration(t, srv)
	state := waitForCompletion(t, srv, taskID)
	require.Equal(t, types.TaskCompleted, state.Status)

	// Find the job created by the run.
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var jobs struct {
		Jobs []db.Job `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	require.Len(t, jobs.Jobs, 1)

	payload, _ := json.Marshal(map[string]any{
		"job_id":     jobs.Jobs[0].ID,
		"variant_id": state.VariantID,
		"method":     "referral",
	})
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewReader(payload)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	statusBody, _ := json.Marshal(map[string]string{"status": "interviewing"})
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/applications/%d/status", created.ID), bytes.NewReader(statusBody)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/applications?active=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"interviewing"`)
	assert.Contains(t, rec.Body.String(), `"Acme"`)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pipeline", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var pipeline struct {
		Pipeline []db.PipelineRow `json:"pipeline"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pipeline))
	require.Len(t, pipeline.Pipeline, 1)
	assert.Equal(t, 1, pipeline.Pipeline[0].VariantCount)
	assert.Equal(t, 1, pipeline.Pipeline[0].ApplicationCount)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"interviewing"`)
}
