package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/brfss/internal/codebook"
	"github.com/JonMunkholm/brfss/internal/core"
	"github.com/JonMunkholm/brfss/internal/logging"
)

// maxFormMemory is how much of a multipart upload is buffered in memory
// before spilling to a temp file.
const maxFormMemory = 8 << 20

// handleSubmit validates the multipart "file" part synchronously and
// returns the stored report.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if limit := s.service.MaxFileSize(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(w, r, fmt.Errorf("%w: %w", core.ErrFileTooLarge, err), http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, r, fmt.Errorf("%w: %w", core.ErrNoFile, err), http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A file input submitted with nothing chosen arrives as a plain
		// form value with an empty filename.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			respondError(w, r, core.ErrNoFileSelected, http.StatusBadRequest)
			return
		}
		respondError(w, r, core.ErrNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := s.service.Submit(r.Context(), header.Filename, file)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, res)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	reports, err := s.service.List(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	out := make([]core.SubmissionOverview, len(reports))
	for i, res := range reports {
		out[i] = core.Overview(res)
	}
	writeJSON(w, r, out)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, res)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.service.Summary(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, sum)
}

func (s *Server) handleStateStatus(w http.ResponseWriter, r *http.Request) {
	states, err := s.service.StateStatus(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, states)
}

// clearResponse acknowledges POST /api/clear.
type clearResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.Clear(r.Context()); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, clearResponse{Status: "cleared", Message: "All submissions have been cleared"})
}

type variablesResponse struct {
	Count     int                    `json:"count"`
	Variables []codebook.VariableDoc `json:"variables"`
}

func (s *Server) handleCodebookVariables(w http.ResponseWriter, r *http.Request) {
	vars := s.service.Codebook().VariableDocs()
	writeJSON(w, r, variablesResponse{Count: len(vars), Variables: vars})
}

type healthResponse struct {
	Status  string                   `json:"status"`
	Store   string                   `json:"store"`
	Uploads core.UploadLimiterStatus `json:"uploads"`
}

// handleHealth pings the report store. An unreachable store answers 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Store: "ok", Uploads: s.service.UploadLimiterStatus()}
	if err := s.service.Ping(ctx); err != nil {
		logging.FromContext(r.Context()).Warn("health check: store unreachable", "error", err)
		resp.Status, resp.Store = "degraded", "unreachable"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	writeJSON(w, r, resp)
}
