package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chatreveal/chatscope/internal/events"
)

// maxUploadBytes caps the raw chat export body. Exports beyond this are
// rejected before parsing.
const maxUploadBytes = 10 << 20

func analysisKey(id string) string { return "analysis:" + id }
func datasetKey(id string) string  { return "dataset:" + id }

// createAnalysis handles POST /api/v1/analyses. The body is the raw chat
// export text; the response carries the run id and the assembled report.
func (s *Server) createAnalysis(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "empty upload")
		return
	}

	runID := uuid.New().String()
	s.publish(events.SubjectAnalysisStarted, map[string]string{"id": runID})

	rep, ds, err := s.pipeline.Run(r.Context(), runID, string(body))
	if err != nil {
		s.publish(events.SubjectAnalysisFailed, map[string]string{"id": runID, "error": err.Error()})
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if s.store != nil {
		if err := s.persist(r, runID, rep, ds); err != nil {
			s.logger.Error("persist analysis", "run_id", runID, "error", err)
		}
	}

	s.publish(events.SubjectAnalysisCompleted, map[string]any{
		"id":       runID,
		"format":   rep.Metadata.Format,
		"messages": rep.Metadata.TotalMessages,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"id":     runID,
		"report": rep,
	})
}

// getAnalysis handles GET /api/v1/analyses/{id}.
func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}
	id := chi.URLParam(r, "id")
	value, ok, err := s.store.Get(r.Context(), analysisKey(id))
	if err != nil {
		s.logger.Error("load analysis", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, value)
}

// deleteAnalysis handles DELETE /api/v1/analyses/{id}.
func (s *Server) deleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.store.Remove(r.Context(), analysisKey(id)); err != nil {
		s.logger.Error("delete analysis", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	if err := s.store.Remove(r.Context(), datasetKey(id)); err != nil {
		s.logger.Error("delete dataset", "id", id, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) persist(r *http.Request, runID string, rep, ds any) error {
	repJSON, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := s.store.Set(r.Context(), analysisKey(runID), string(repJSON)); err != nil {
		return err
	}
	dsJSON, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	return s.store.Set(r.Context(), datasetKey(runID), string(dsJSON))
}

func (s *Server) publish(subject string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, payload); err != nil {
		s.logger.Warn("publish event", "subject", subject, "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
