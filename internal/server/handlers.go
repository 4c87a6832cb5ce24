package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-scorer/internal/content"
	"github.com/jonathan/resume-scorer/internal/db"
	"github.com/jonathan/resume-scorer/internal/matching"
	"github.com/jonathan/resume-scorer/internal/parsing"
	"github.com/jonathan/resume-scorer/internal/server/middleware"
	"github.com/jonathan/resume-scorer/internal/types"
)

// ParseResponse is the response for POST /v1/resumes/parse.
type ParseResponse struct {
	ID     string              `json:"id,omitempty"`
	Resume *types.ParsedResume `json:"resume"`
}

// NormalizeResponse is the response for POST /v1/resumes/normalize.
type NormalizeResponse struct {
	Resume *types.ParsedResume `json:"resume"`
	Text   string              `json:"text"`
}

// KeywordsResponse is the response for POST /v1/jobs/keywords.
type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

// MatchResponse is the response for POST /v1/match.
type MatchResponse struct {
	ID      string             `json:"id,omitempty"`
	Result  *types.MatchResult `json:"result"`
	Refined bool               `json:"refined"`
}

// ListAnalysesResponse is the response for GET /v1/analyses.
type ListAnalysesResponse struct {
	Analyses []db.Analysis `json:"analyses"`
}

type validatable interface {
	Validate() error
}

// decodeRequest reads a size-limited JSON body into req and validates it.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) bool {
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxInputBytes))

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}

	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return false
	}
	return true
}

// handleParseResume parses plain resume text.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	var req types.ParseRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	resume := parsing.ParseResume(req.Text)
	id := s.saveAnalysis(r.Context(), db.KindParse, req.Text, resume)
	s.jsonResponse(w, http.StatusOK, ParseResponse{ID: id, Resume: resume})
}

// handleNormalizeResume converts structured resume content of any supported
// shape into a ParsedResume and its plain-text rendering.
func (s *Server) handleNormalizeResume(w http.ResponseWriter, r *http.Request) {
	var req types.NormalizeRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	c, err := content.Normalize(req.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, NormalizeResponse{
		Resume: parsing.FromContent(c, s.now()),
		Text:   content.Render(c),
	})
}

// handleJobKeywords extracts the technical keywords of a job description.
func (s *Server) handleJobKeywords(w http.ResponseWriter, r *http.Request) {
	var req types.KeywordsRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	keywords := matching.ExtractJobKeywords(req.JobDescription)
	if keywords == nil {
		keywords = []string{}
	}
	s.jsonResponse(w, http.StatusOK, KeywordsResponse{Keywords: keywords})
}

// handleMatch scores a resume against a job description. With use_ai and a
// configured refiner the heuristic result is refined by the model.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	var refiner matching.Refiner
	if req.UseAI {
		if s.refiner == nil {
			s.logger.Warn("AI refinement requested but not configured",
				"request_id", middleware.GetRequestID(r.Context()))
		}
		refiner = s.refiner
	}

	result, refined := matching.RefineMatch(r.Context(), refiner, nil, req.ResumeText, req.JobDescription)

	id := s.saveAnalysis(r.Context(), db.KindMatch, req.ResumeText+"\n\n"+req.JobDescription, result)
	s.jsonResponse(w, http.StatusOK, MatchResponse{
		ID:      id,
		Result:  result,
		Refined: refined,
	})
}

// handleGetAnalysis returns a stored analysis.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "analysis history"})
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if analysis == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "analysis", ID: idStr})
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleListAnalyses lists recent analyses, optionally filtered by ?kind=
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "analysis history"})
		return
	}

	kind := db.Kind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		s.writeError(w, r, &ErrValidation{Field: "kind", Message: "must be parse or match"})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	analyses, err := s.store.ListAnalyses(r.Context(), kind, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if analyses == nil {
		analyses = []db.Analysis{}
	}
	s.jsonResponse(w, http.StatusOK, ListAnalysesResponse{Analyses: analyses})
}

// saveAnalysis stores result when history is enabled. Storage failures are
// logged and the response is sent without an ID.
func (s *Server) saveAnalysis(ctx context.Context, kind db.Kind, input string, result any) string {
	if s.store == nil {
		return ""
	}
	id, err := s.store.SaveAnalysis(ctx, kind, input, result)
	if err != nil {
		s.logger.Warn("failed to save analysis",
			"request_id", middleware.GetRequestID(ctx),
			"kind", kind,
			"error", err)
		return ""
	}
	return id.String()
}
