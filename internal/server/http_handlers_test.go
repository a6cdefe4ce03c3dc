package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"hirepulse/internal/catalog"
	"hirepulse/internal/config"
	"hirepulse/internal/errors"
	"hirepulse/internal/matching"
	"hirepulse/internal/observability"
	"hirepulse/internal/scoring"
	"hirepulse/internal/session"
	"hirepulse/internal/types"
)

func newTestServer(t *testing.T, apiKeys []string) (*Server, http.Handler) {
	t.Helper()

	appCfg := &config.Config{
		App: config.AppConfig{
			LogLevel:         "error",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
		},
		Scoring: config.ScoringConfig{IncludeIndividualScores: true},
	}

	logger := errors.NewLogger(slog.LevelError)
	provider, err := catalog.NewProvider("", logger)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	store := session.NewStore(0, logger)
	t.Cleanup(store.Close)

	srv := NewServer(appCfg, ServerConfig{
		Host:           "localhost",
		Port:           "0",
		Version:        "test",
		TLSConfig:      config.TLSConfig{Mode: "disabled"},
		APIKeys:        apiKeys,
		MaxRequestSize: 1 << 20,
	}, Components{
		Rubric:   scoring.DefaultRubric(),
		Engine:   matching.NewDefault(),
		Catalog:  provider,
		Sessions: store,
	}, logger)

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, appCfg)
	if err != nil {
		t.Fatalf("NewObservabilityManager() error = %v", err)
	}

	return srv, srv.setupRoutes(om)
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMatchEndpoint(t *testing.T) {
	_, handler := newTestServer(t, nil)

	profile := types.CandidateProfile{
		Name:              "Maria Santos",
		Email:             "maria@example.com",
		Experience:        "4-6 years",
		Skills:            "Python, Django, PostgreSQL, Docker",
		SalaryExpectation: "95k",
		WorkType:          types.WorkTypeRemote,
	}

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/match", profile)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var resp types.MatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.CandidateID == "" {
		t.Error("candidate_id is empty")
	}
	if resp.TotalMatches == 0 {
		t.Fatal("expected at least one match against the builtin catalog")
	}
	if resp.Matches[0].PositionID != "pos_003" {
		t.Errorf("top match = %s, want pos_003", resp.Matches[0].PositionID)
	}
	if resp.Matches[0].MatchScore != 1.0 {
		t.Errorf("top match score = %v, want 1.0", resp.Matches[0].MatchScore)
	}
}

func TestMatchEndpointValidation(t *testing.T) {
	_, handler := newTestServer(t, nil)

	t.Run("missing name", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/match",
			types.CandidateProfile{Skills: "Go"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("missing skills", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/match",
			types.CandidateProfile{Name: "Ana"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("wrong content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/match", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestScoreEndpoint(t *testing.T) {
	_, handler := newTestServer(t, nil)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/score", ScoreRequest{
		Text: "I have experience with code and testing, for example debugging a project I built.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var result types.ResponseScore
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if result.Rating == "" {
		t.Error("rating is empty")
	}
	if result.WordCount == 0 {
		t.Error("word_count is zero")
	}

	t.Run("empty text rejected", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/score", ScoreRequest{Text: "   "})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	_, handler := newTestServer(t, nil)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions", CreateSessionRequest{
		CandidateName: "Ana Lima",
		InterviewType: "technical",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal create response: %v", err)
	}
	if created.SessionID == "" {
		t.Fatal("session_id is empty")
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/sessions/"+created.SessionID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var meta struct {
		TotalTurns int `json:"total_turns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil {
		t.Fatalf("unmarshal get response: %v", err)
	}
	if meta.TotalTurns != 0 {
		t.Errorf("total_turns = %d, want 0", meta.TotalTurns)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/turns",
		TurnRequest{Role: types.RoleInterviewer, Content: "Tell me about a recent project."})
	if rec.Code != http.StatusOK {
		t.Fatalf("append status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/turns",
		TurnRequest{Role: types.RoleCandidate, Content: "I built a Python service and wrote tests for it."})
	if rec.Code != http.StatusOK {
		t.Fatalf("append status = %d, want 200", rec.Code)
	}

	t.Run("invalid role rejected", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/turns",
			TurnRequest{Role: "observer", Content: "hm"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("blank content rejected", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/turns",
			TurnRequest{Role: types.RoleCandidate, Content: "   "})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/sessions/"+created.SessionID+"/score", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("score status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	var score types.SessionScore
	if err := json.Unmarshal(rec.Body.Bytes(), &score); err != nil {
		t.Fatalf("unmarshal score response: %v", err)
	}
	if score.TotalResponses != 1 {
		t.Errorf("total_responses = %d, want 1 (interviewer turns excluded)", score.TotalResponses)
	}

	t.Run("unknown session", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/api/v1/sessions/nope/score", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestCompaniesEndpoints(t *testing.T) {
	_, handler := newTestServer(t, nil)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/companies", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var list struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal list response: %v", err)
	}
	if list.Total != 3 {
		t.Errorf("total = %d, want 3", list.Total)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/companies/comp_001", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var company types.Company
	if err := json.Unmarshal(rec.Body.Bytes(), &company); err != nil {
		t.Fatalf("unmarshal company: %v", err)
	}
	if company.Name != "TechCorp Inc" {
		t.Errorf("company name = %q, want TechCorp Inc", company.Name)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/companies/comp_999", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown company status = %d, want 404", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	_, handler := newTestServer(t, []string{"secret-key"})

	t.Run("missing key", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/api/v1/companies", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
		req.Header.Set("X-API-Key", "wrong")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid key via header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
		req.Header.Set("X-API-Key", "secret-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("valid key via bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
		req.Header.Set("Authorization", "Bearer secret-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("health is open", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/health", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestHealthAndStats(t *testing.T) {
	_, handler := newTestServer(t, nil)

	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}
	var health struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Catalog struct {
			Companies int `json:"companies"`
			Positions int `json:"positions"`
		} `json:"catalog"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("status = %q, want healthy", health.Status)
	}
	if health.Catalog.Companies != 3 || health.Catalog.Positions != 4 {
		t.Errorf("catalog = %d companies / %d positions, want 3/4",
			health.Catalog.Companies, health.Catalog.Positions)
	}

	rec = doJSON(t, handler, http.MethodGet, "/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", rec.Code)
	}
}
