package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/codealign/repo-align/apimodels"
	"github.com/codealign/repo-align/internal/github"
)

func (s *Server) handleAnalyseGitHub(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	defer r.Body.Close()

	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Debug("Received analysis request", "url", req.GitHubURL, "question_count", req.QuestionCount)

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		slog.Error("Analysis request failed", "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("Encoding response failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// validateRequest rejects malformed input before any network call is made.
func validateRequest(req apimodels.AnalysisRequest) error {
	if req.GitHubURL == "" {
		return errors.New("github_url is required")
	}
	if req.Curriculum == "" {
		return errors.New("curriculum is required")
	}
	if req.QuestionCount < 1 || req.QuestionCount > 20 {
		return errors.New("question_count must be between 1 and 20")
	}
	return nil
}

// statusForError maps upstream failures to transport status codes. Anything
// unrecognized is a generic server-side failure with the original message
// kept for diagnostics.
func statusForError(err error) int {
	switch {
	case errors.Is(err, github.ErrInvalidRepoURL):
		return http.StatusBadRequest
	case errors.Is(err, github.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, github.ErrNotFound), errors.Is(err, github.ErrNoSupportedFiles):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apimodels.ErrorResponse{Detail: detail})
}
