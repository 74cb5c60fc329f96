package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jonathan/video-analyzer/internal/source"
	"github.com/jonathan/video-analyzer/internal/store"
	"github.com/jonathan/video-analyzer/internal/types"
)

// AnalyzeRequest represents the request body for /analyze.
type AnalyzeRequest struct {
	URL string `json:"url" validate:"required"`
}

// AnalyzeResponse represents the response for /analyze.
type AnalyzeResponse struct {
	JobID   string `json:"job_id"`
	State   string `json:"state"`
	Message string `json:"message"`
}

// StatusResponse represents the response for /status.
type StatusResponse struct {
	JobID     string `json:"job_id"`
	State     string `json:"state"`
	Timestamp string `json:"timestamp,omitempty"`
}

// handleAnalyze accepts a video URL and schedules the analysis pipeline.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	jobID, err := s.orchestrator.Submit(req.URL)
	if err != nil {
		var unsupported *source.ErrUnsupportedURL
		if errors.As(err, &unsupported) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusAccepted, AnalyzeResponse{
		JobID:   jobID,
		State:   string(types.JobStateProcessing),
		Message: "Analysis started. Poll /status/{id} and /result/{id} for the outcome.",
	})
}

// handleStatus reports the lifecycle state of a job. It never fails: an
// unknown id reports processing, same as an in-flight job.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Job ID is required")
		return
	}

	state, ts := s.orchestrator.Status(r.Context(), jobID)

	resp := StatusResponse{JobID: jobID, State: string(state)}
	if ts != nil {
		resp.Timestamp = ts.Format(time.RFC3339)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleResult returns the persisted terminal record verbatim.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Job ID is required")
		return
	}

	result, err := s.orchestrator.Result(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, (&ErrJobNotFound{JobID: jobID}).Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
