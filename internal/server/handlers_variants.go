package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/jonathan/resume-tailor/internal/db"
)

// handleListVariants returns stored variants with job info and latest score
// attached, optionally filtered by job_id and capped by limit.
func (s *Server) handleListVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := s.store.ListVariants(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list variants failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to list variants")
		return
	}
	if variants == nil {
		variants = []db.VariantRecord{}
	}

	if v := r.URL.Query().Get("job_id"); v != "" {
		jobID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "job_id must be an integer")
			return
		}
		filtered := variants[:0]
		for _, variant := range variants {
			if variant.JobID == jobID {
				filtered = append(filtered, variant)
			}
		}
		variants = filtered
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if limit < len(variants) {
			variants = variants[:limit]
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"variants": variants,
		"count":    len(variants),
	})
}

// handleGetVariant returns one variant, with its generation metadata inlined
// when the metadata file still exists.
func (s *Server) handleGetVariant(w http.ResponseWriter, r *http.Request) {
	variant, ok := s.loadVariant(w, r)
	if !ok {
		return
	}

	response := map[string]any{"variant": variant}
	if variant.MetadataPath != "" {
		if data, err := os.ReadFile(variant.MetadataPath); err == nil {
			var metadata json.RawMessage = data
			response["metadata"] = metadata
		}
	}
	s.jsonResponse(w, http.StatusOK, response)
}

// handleDeleteVariant removes the variant's files first, then the row.
// Missing files are fine; a row that outlives its files is not.
func (s *Server) handleDeleteVariant(w http.ResponseWriter, r *http.Request) {
	variant, ok := s.loadVariant(w, r)
	if !ok {
		return
	}

	for _, path := range []string{variant.LatexPath, variant.PDFPath, variant.MetadataPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", path).Msg("cannot remove variant file")
		}
	}

	if err := s.store.DeleteVariant(r.Context(), variant.VariantID); err != nil {
		s.log.Error().Err(err).Msg("delete variant failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete variant")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "deleted": variant.VariantID})
}

// handleDownloadPDF serves the compiled PDF.
func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	variant, ok := s.loadVariant(w, r)
	if !ok {
		return
	}
	if variant.PDFPath == "" {
		s.errorResponse(w, http.StatusNotFound, "variant has no PDF; pdflatex may not be installed")
		return
	}
	if _, err := os.Stat(variant.PDFPath); err != nil {
		s.errorResponse(w, http.StatusNotFound, "PDF file is missing on disk")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+variant.VariantID+`.pdf"`)
	http.ServeFile(w, r, variant.PDFPath)
}

// handleDownloadTex serves the rendered LaTeX source.
func (s *Server) handleDownloadTex(w http.ResponseWriter, r *http.Request) {
	variant, ok := s.loadVariant(w, r)
	if !ok {
		return
	}
	if variant.LatexPath == "" {
		s.errorResponse(w, http.StatusNotFound, "variant has no LaTeX output")
		return
	}
	if _, err := os.Stat(variant.LatexPath); err != nil {
		s.errorResponse(w, http.StatusNotFound, "LaTeX file is missing on disk")
		return
	}
	w.Header().Set("Content-Type", "application/x-tex")
	w.Header().Set("Content-Disposition", `attachment; filename="`+variant.VariantID+`.tex"`)
	http.ServeFile(w, r, variant.LatexPath)
}

func (s *Server) loadVariant(w http.ResponseWriter, r *http.Request) (*db.VariantRecord, bool) {
	id := r.PathValue("id")
	variant, err := s.store.GetVariant(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		s.errorResponse(w, http.StatusNotFound, "variant not found")
		return nil, false
	}
	if err != nil {
		s.log.Error().Err(err).Msg("get variant failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to load variant")
		return nil, false
	}
	return variant, true
}
