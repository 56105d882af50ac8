package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-tailor/internal/db"
)

// handleListJobs returns all tracked jobs, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobs(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list jobs failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// handlePipeline returns every job with its funnel counts and best score.
func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	pipeline, err := s.store.JobPipeline(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("pipeline query failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to load job pipeline")
		return
	}
	if pipeline == nil {
		pipeline = []db.PipelineRow{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"pipeline": pipeline, "count": len(pipeline)})
}

type applicationRequest struct {
	JobID           int64  `json:"job_id"`
	VariantID       string `json:"variant_id,omitempty"`
	Method          string `json:"method,omitempty"`
	URL             string `json:"url,omitempty"`
	CoverLetterPath string `json:"cover_letter_path,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// handleRecordApplication marks a job as applied to.
func (s *Server) handleRecordApplication(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.JobID == 0 {
		s.errorResponse(w, http.StatusBadRequest, "job_id is required")
		return
	}
	if _, err := s.store.GetJob(r.Context(), req.JobID); errors.Is(err, db.ErrNotFound) {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	id, err := s.store.RecordApplication(r.Context(), db.Application{
		JobID:           req.JobID,
		VariantID:       req.VariantID,
		Method:          req.Method,
		URL:             req.URL,
		CoverLetterPath: req.CoverLetterPath,
		Notes:           req.Notes,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("record application failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to record application")
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": id, "status": "applied"})
}

// handleListApplications lists applications, optionally filtered by job_id.
// With ?active=true only applications still in play are returned, joined
// with their jobs.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("active") == "true" {
		apps, err := s.store.ActiveApplications(r.Context())
		if err != nil {
			s.log.Error().Err(err).Msg("list active applications failed")
			s.errorResponse(w, http.StatusInternalServerError, "failed to list applications")
			return
		}
		if apps == nil {
			apps = []db.ActiveApplication{}
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps, "count": len(apps)})
		return
	}

	var jobID int64
	if v := r.URL.Query().Get("job_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "job_id must be an integer")
			return
		}
		jobID = id
	}

	apps, err := s.store.ListApplications(r.Context(), jobID)
	if err != nil {
		s.log.Error().Err(err).Msg("list applications failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	if apps == nil {
		apps = []db.Application{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps, "count": len(apps)})
}

type statusRequest struct {
	Status string `json:"status"`
}

var validApplicationStatuses = map[string]bool{
	"applied": true, "screening": true, "interviewing": true,
	"offer": true, "rejected": true, "withdrawn": true,
}

// handleApplicationStatus advances an application through the funnel.
func (s *Server) handleApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "application id must be an integer")
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !validApplicationStatuses[req.Status] {
		s.errorResponse(w, http.StatusBadRequest, "status must be one of applied, screening, interviewing, offer, rejected, withdrawn")
		return
	}

	err = s.store.UpdateApplicationStatus(r.Context(), id, req.Status)
	if errors.Is(err, db.ErrNotFound) {
		s.errorResponse(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("update application failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to update application")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

// handleHealth reports readiness of the server and its dependencies.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok"}
	if err := s.store.Ping(r.Context()); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// handleStats returns tracker counts and the average ATS score.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("stats failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleExport dumps jobs, variants, and applications as one JSON document.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to export jobs")
		return
	}
	variants, err := s.store.ListVariants(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to export variants")
		return
	}
	apps, err := s.store.ListApplications(r.Context(), 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to export applications")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="resume-tailor-export.json"`)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":         jobs,
		"variants":     variants,
		"applications": apps,
	})
}
