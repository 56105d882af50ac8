package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/types"
)

// maxUploadSize bounds the multipart form, resume file included.
const maxUploadSize = 32 << 20

// handleGenerateStart accepts a multipart form describing the job and kicks
// off generation in the background. The response carries the task ID the
// client polls or streams.
func (s *Server) handleGenerateStart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	jobTitle := strings.TrimSpace(r.FormValue("job_title"))
	company := strings.TrimSpace(r.FormValue("company"))
	jobDescription := r.FormValue("job_description")
	if jobTitle == "" || company == "" || strings.TrimSpace(jobDescription) == "" {
		s.errorResponse(w, http.StatusBadRequest, "job_title, company, and job_description are required")
		return
	}

	genCfg := s.cfg.Generation
	if v := r.FormValue("target_bullets"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			s.errorResponse(w, http.StatusBadRequest, "target_bullets must be between 1 and 50")
			return
		}
		genCfg.TargetBullets = n
	}
	if v := r.FormValue("use_ai"); v != "" {
		useAI, err := strconv.ParseBool(v)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "use_ai must be a boolean")
			return
		}
		genCfg.UseAIEnhancement = useAI
	}

	taskID := s.tasks.Create()

	resumePath, err := s.resolveResume(r, taskID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jdPath, err := s.saveJobDescription(company, jobTitle, taskID, jobDescription)
	if err != nil {
		s.log.Error().Err(err).Msg("cannot save job description")
		s.errorResponse(w, http.StatusInternalServerError, "failed to save job description")
		return
	}

	opts := pipeline.Options{
		BaseResumePath: resumePath,
		JobTitle:       jobTitle,
		Company:        company,
		JobDescription: jobDescription,
		JDFilePath:     jdPath,
		JobURL:         r.FormValue("job_url"),
		OutputDir:      s.cfg.OutputDir,
		Config:         genCfg,
		OnProgress: func(percent int, message string) {
			s.tasks.Progress(taskID, percent, message)
		},
	}

	go s.runGeneration(taskID, opts)

	s.jsonResponse(w, http.StatusAccepted, map[string]string{
		"task_id": taskID,
		"status":  string(types.TaskPending),
	})
}

func (s *Server) runGeneration(taskID string, opts pipeline.Options) {
	ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
	defer cancel()

	variant, err := s.generator.Generate(ctx, opts)
	if err != nil {
		s.log.Error().Err(err).Str("task", taskID).Msg("generation failed")
		s.tasks.Fail(taskID, err)
		return
	}

	var score *float64
	if variant.ATS != nil {
		score = &variant.ATS.Overall
	}
	s.tasks.Complete(taskID, variant.ShortID(), variant.PDFPath, score)
}

// resolveResume stores an uploaded resume, or falls back to the configured
// base resume when the form has none.
func (s *Server) resolveResume(r *http.Request, taskID string) (string, error) {
	file, header, err := r.FormFile("resume")
	if err == http.ErrMissingFile {
		if s.cfg.BaseResume == "" {
			return "", fmt.Errorf("no resume uploaded and no base resume configured")
		}
		return s.cfg.BaseResume, nil
	}
	if err != nil {
		return "", fmt.Errorf("invalid resume upload")
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".tex") {
		return "", fmt.Errorf("resume must be a .tex file")
	}

	dst := filepath.Join(s.cfg.DataDir, fmt.Sprintf("resume_%s.tex", taskID))
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("cannot store uploaded resume")
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("cannot store uploaded resume")
	}
	return dst, nil
}

func (s *Server) saveJobDescription(company, title, taskID, text string) (string, error) {
	name := fmt.Sprintf("%s_%s_%s.txt", sanitizeName(company), sanitizeName(title), taskID)
	path := filepath.Join(s.cfg.DataDir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func sanitizeName(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "x"
	}
	return b.String()
}

// handleGenerateStatus returns the current task snapshot.
func (s *Server) handleGenerateStatus(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task_id")
	state, ok := s.tasks.Get(taskID)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "task not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, state)
}

// handleGenerateStream streams task progress as Server-Sent Events until the
// task reaches a terminal state or the client disconnects.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task_id")
	if _, ok := s.tasks.Get(taskID); !ok {
		s.errorResponse(w, http.StatusNotFound, "task not found")
		return
	}

	stream, err := newTaskStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	var last types.TaskState
	for state := range s.tasks.Subscribe(r.Context(), taskID) {
		last = state
		if err := stream.Progress(state); err != nil {
			return
		}
	}
	if last.Status.Terminal() {
		stream.Complete(last)
	} else if r.Context().Err() == nil {
		stream.Interrupted("task state is no longer available")
	}
}
