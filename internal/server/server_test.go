package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/db"
	"github.com/jonathan/resume-scorer/internal/matching"
	"github.com/jonathan/resume-scorer/internal/server/ratelimit"
	"github.com/jonathan/resume-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testResume = "Frontend engineer building React applications"
	testJob    = "Looking for a React and TypeScript developer with leadership experience"
)

// mockStore keeps analyses in memory.
type mockStore struct {
	mu       sync.Mutex
	analyses map[uuid.UUID]*db.Analysis
	saveErr  error
	getErr   error
}

func newMockStore() *mockStore {
	return &mockStore{analyses: make(map[uuid.UUID]*db.Analysis)}
}

func (m *mockStore) SaveAnalysis(_ context.Context, kind db.Kind, input string, result any) (uuid.UUID, error) {
	if m.saveErr != nil {
		return uuid.Nil, m.saveErr
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.analyses[id] = &db.Analysis{
		ID:        id,
		Kind:      kind,
		InputHash: db.HashInput(input),
		Result:    payload,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return id, nil
}

func (m *mockStore) GetAnalysis(_ context.Context, id uuid.UUID) (*db.Analysis, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analyses[id], nil
}

func (m *mockStore) ListAnalyses(_ context.Context, kind db.Kind, _ int) ([]db.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Analysis
	for _, a := range m.analyses {
		if kind == "" || a.Kind == kind {
			out = append(out, *a)
		}
	}
	return out, nil
}

type refinerFunc func(ctx context.Context, in matching.MatchInput, h *types.MatchResult) (*matching.Refinement, error)

func (f refinerFunc) Refine(ctx context.Context, in matching.MatchInput, h *types.MatchResult) (*matching.Refinement, error) {
	return f(ctx, in, h)
}

func disabledRateLimit() *ratelimit.Config {
	cfg := ratelimit.DefaultConfig()
	cfg.Enabled = false
	return cfg
}

func newTestServer(t *testing.T, cfg config.Config, opts Options) *Server {
	t.Helper()
	if opts.RateLimit == nil {
		opts.RateLimit = disabledRateLimit()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := New(cfg, opts)
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, config.Config{}, Options{})

	w := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestParseEndpoint(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, config.Config{}, Options{Store: store})

	body, _ := json.Marshal(types.ParseRequest{Text: "Jane Doe\njane@example.com\n\nSKILLS\nPython, Docker"})
	w := do(t, s, http.MethodPost, "/v1/resumes/parse", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[ParseResponse](t, w)
	assert.Equal(t, "jane@example.com", resp.Resume.Contact.Email)
	assert.NotEmpty(t, resp.Resume.Skills)
	require.NotEmpty(t, resp.ID)

	stored, err := store.GetAnalysis(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, db.KindParse, stored.Kind)
}

func TestParseEndpoint_Validation(t *testing.T) {
	s := newTestServer(t, config.Config{}, Options{})

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"missing text", `{}`, http.StatusBadRequest, "validation error: text - is required"},
		{"malformed JSON", `{"text":`, http.StatusBadRequest, "Invalid request body"},
		{"wrong type", `{"text": 5}`, http.StatusBadRequest, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/v1/resumes/parse", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decode[map[string]string](t, w)["error"], tt.message)
		})
	}
}

func TestParseEndpoint_BodyTooLarge(t *testing.T) {
	s := newTestServer(t, config.Config{MaxInputBytes: 64}, Options{})

	body := `{"text": "` + strings.Repeat("a", 200) + `"}`
	w := do(t, s, http.MethodPost, "/v1/resumes/parse", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestParseEndpoint_SaveFailureStillResponds(t *testing.T) {
	store := newMockStore()
	store.saveErr = errors.New("connection refused")
	s := newTestServer(t, config.Config{}, Options{Store: store})

	w := do(t, s, http.MethodPost, "/v1/resumes/parse", `{"text": "Jane Doe"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[ParseResponse](t, w).ID)
}

func TestNormalizeEndpoint(t *testing.T) {
	s := newTestServer(t, config.Config{}, Options{})

	body := `{"content": {"resume": {
		"personalInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com"},
		"skills": ["Go", "Kubernetes"]
	}}}`
	w := do(t, s, http.MethodPost, "/v1/resumes/normalize", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[NormalizeResponse](t, w)
	assert.Equal(t, "Jane Doe", resp.Resume.Contact.Name)
	assert.Len(t, resp.Resume.Skills, 2)
	assert.Contains(t, resp.Text, "Jane Doe")
}

func TestNormalizeEndpoint_Errors(t *testing.T) {
	s := newTestServer(t, config.Config{}, Options{})

	w := do(t, s, http.MethodPost, "/v1/resumes/normalize", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/v1/resumes/normalize", `{"content": [1, 2]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "JSON object")
}

func TestKeywordsEndpoint(t *testing.T) {
	s := newTestServer(t, config.Config{}, Options{})

	w := do(t, s, http.MethodPost, "/v1/jobs/keywords", `{"job_description": "`+testJob+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"react", "typescript", "leadership"}, decode[KeywordsResponse](t, w).Keywords)

	w = do(t, s, http.MethodPost, "/v1/jobs/keywords", `{"job_description": "We sell flowers"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"keywords": []}`, w.Body.String())
}

func TestMatchEndpoint(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, config.Config{}, Options{Store: store})

	body, _ := json.Marshal(types.MatchRequest{ResumeText: testResume, JobDescription: testJob})
	w := do(t, s, http.MethodPost, "/v1/match", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[MatchResponse](t, w)
	assert.Equal(t, 33, resp.Result.KeywordMatch)
	assert.Equal(t, []string{"react"}, resp.Result.MatchedKeywords)
	assert.False(t, resp.Refined)
	assert.NotEmpty(t, resp.ID)
}

func TestMatchEndpoint_WithRefiner(t *testing.T) {
	score := 72
	refiner := refinerFunc(func(context.Context, matching.MatchInput, *types.MatchResult) (*matching.Refinement, error) {
		return &matching.Refinement{OverallScore: &score}, nil
	})
	s := newTestServer(t, config.Config{}, Options{Refiner: refiner})

	body, _ := json.Marshal(types.MatchRequest{ResumeText: testResume, JobDescription: testJob, UseAI: true})
	w := do(t, s, http.MethodPost, "/v1/match", string(body))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[MatchResponse](t, w)
	assert.True(t, resp.Refined)
	assert.Equal(t, 72, resp.Result.OverallScore)

	// Without use_ai the refiner is not consulted
	body, _ = json.Marshal(types.MatchRequest{ResumeText: testResume, JobDescription: testJob})
	w = do(t, s, http.MethodPost, "/v1/match", string(body))
	resp = decode[MatchResponse](t, w)
	assert.False(t, resp.Refined)
	assert.NotEqual(t, 72, resp.Result.OverallScore)
}

func TestMatchEndpoint_AIRequestedWithoutRefiner(t *testing.T) {
	s := newTestServer(t, config.Config{}, Options{})

	body, _ := json.Marshal(types.MatchRequest{ResumeText: testResume, JobDescription: testJob, UseAI: true})
	w := do(t, s, http.MethodPost, "/v1/match", string(body))
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[MatchResponse](t, w).Refined)
}

func TestMatchEndpoint_Validation(t *testing.T) {
	s := newTestServer(t, config.Config{}, Options{})

	w := do(t, s, http.MethodPost, "/v1/match", `{"resume_text": "Go developer"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation error: job_description - is required", decode[map[string]string](t, w)["error"])
}

func TestAnalysesEndpoints(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, config.Config{}, Options{Store: store})

	w := do(t, s, http.MethodPost, "/v1/resumes/parse", `{"text": "Jane Doe"}`)
	id := decode[ParseResponse](t, w).ID

	w = do(t, s, http.MethodGet, "/v1/analyses/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	analysis := decode[db.Analysis](t, w)
	assert.Equal(t, db.KindParse, analysis.Kind)
	assert.Equal(t, db.HashInput("Jane Doe"), analysis.InputHash)

	w = do(t, s, http.MethodGet, "/v1/analyses/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodGet, "/v1/analyses/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/v1/analyses?kind=parse", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[ListAnalysesResponse](t, w).Analyses, 1)

	w = do(t, s, http.MethodGet, "/v1/analyses?kind=match", "")
	assert.JSONEq(t, `{"analyses": []}`, w.Body.String())

	w = do(t, s, http.MethodGet, "/v1/analyses?kind=other", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/v1/analyses?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalysesEndpoints_NoStore(t *testing.T) {
	s := newTestServer(t, config.Config{}, Options{})

	w := do(t, s, http.MethodGet, "/v1/analyses/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "analysis history is not available", decode[map[string]string](t, w)["error"])

	w = do(t, s, http.MethodGet, "/v1/analyses", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAnalysesEndpoint_StoreError(t *testing.T) {
	store := newMockStore()
	store.getErr = errors.New("connection reset")
	s := newTestServer(t, config.Config{}, Options{Store: store})

	w := do(t, s, http.MethodGet, "/v1/analyses/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal details are not leaked
	assert.Equal(t, "internal server error", decode[map[string]string](t, w)["error"])
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, config.Config{}, Options{})

	w := do(t, s, http.MethodGet, "/v1/match", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORS(t *testing.T) {
	t.Run("any origin by default", func(t *testing.T) {
		s := newTestServer(t, config.Config{}, Options{})
		w := do(t, s, http.MethodGet, "/health", "")
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("configured origins", func(t *testing.T) {
		s := newTestServer(t, config.Config{AllowedOrigins: []string{"https://app.example.com"}}, Options{})

		req := httptest.NewRequest(http.MethodOptions, "/v1/match", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w = httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimit(t *testing.T) {
	rl := ratelimit.DefaultConfig()
	rl.CleanupInterval = 0
	rl.EndpointConfigs = []ratelimit.EndpointConfig{
		{Path: "/v1/jobs/", Method: "POST", Limit: 2, Window: time.Hour},
	}
	s := newTestServer(t, config.Config{}, Options{RateLimit: rl})

	body := `{"job_description": "Go"}`
	for i := 0; i < 2; i++ {
		w := do(t, s, http.MethodPost, "/v1/jobs/keywords", body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := do(t, s, http.MethodPost, "/v1/jobs/keywords", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	s := newTestServer(t, config.Config{}, Options{Logger: logger})

	do(t, s, http.MethodGet, "/health", "")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "/health", entry["path"])
	assert.EqualValues(t, 200, entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestExtractClientID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", extractClientID(req))

	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", extractClientID(req))
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, config.Config{Port: 0}, Options{})
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
