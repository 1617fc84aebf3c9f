package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
	logpkg "github.com/Ritam-Vaskar/helpdesk-odoo/internal/logger"
	assistantuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/assistant"
	complaintuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/complaint"
	healthuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/health"
	rankinguc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/ranking"
	searchuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/search"
)

// --- Mocks ---

type mockGenerator struct {
	generateFn func(ctx context.Context, operation, prompt string) (string, error)
	calls      int
}

func (m *mockGenerator) Generate(ctx context.Context, operation, prompt string) (string, error) {
	m.calls++
	if m.generateFn != nil {
		return m.generateFn(ctx, operation, prompt)
	}
	return "generated", nil
}

type mockRepo struct {
	queryNearestFn func(ctx context.Context, vector []float32, k int) ([]domain.Match, error)
	listAllFn      func(ctx context.Context) ([]domain.Complaint, error)
	lastK          int
}

func (m *mockRepo) Insert(_ context.Context, _ *domain.Complaint, _ []float32) error { return nil }

func (m *mockRepo) QueryNearest(ctx context.Context, vector []float32, k int) ([]domain.Match, error) {
	m.lastK = k
	if m.queryNearestFn != nil {
		return m.queryNearestFn(ctx, vector, k)
	}
	return nil, nil
}

func (m *mockRepo) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

type mockEmbedder struct{}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

type mockPinger struct{}

func (m *mockPinger) Ping(_ context.Context) error { return nil }

type testEnv struct {
	router *gochi.Mux
	server *Server
	gen    *mockGenerator
	repo   *mockRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gen := &mockGenerator{}
	repo := &mockRepo{}

	complaintSvc := complaintuc.New(repo, &mockEmbedder{})
	searchSvc := searchuc.New(complaintSvc, 1.2, 1.5)
	rankingSvc := rankinguc.New(gen, 2, zap.NewNop())
	assistantSvc := assistantuc.New(gen)
	healthSvc := healthuc.New(&mockPinger{}, nil)

	server := NewServer(assistantSvc, complaintSvc, searchSvc, rankingSvc, healthSvc, 5, zap.NewNop())

	r := gochi.NewRouter()
	server.Routes(r)

	return &testEnv{router: r, server: server, gen: gen, repo: repo}
}

func (e *testEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// --- Tests ---

func TestSummarize_EmptyTextRejectedBeforeGeneration(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/summarize", map[string]string{"text": ""})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if env.gen.calls != 0 {
		t.Errorf("generation collaborator must not be invoked, got %d calls", env.gen.calls)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] == "" {
		t.Error("expected an error body")
	}
}

func TestSummarize_OK(t *testing.T) {
	env := newTestEnv(t)
	env.gen.generateFn = func(_ context.Context, _, _ string) (string, error) {
		return "**Issue:** fridge not cooling", nil
	}

	rec := env.post(t, "/summarize", map[string]string{"text": "my fridge stopped cooling"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["summary"] != "Issue: fridge not cooling" {
		t.Errorf("expected markdown-free summary, got %q", body["summary"])
	}
}

func TestSummarize_GenerationFailureIs500WithMessage(t *testing.T) {
	env := newTestEnv(t)
	env.gen.generateFn = func(_ context.Context, _, _ string) (string, error) {
		return "", errors.New("quota exceeded")
	}

	rec := env.post(t, "/summarize", map[string]string{"text": "a complaint"})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] == "" {
		t.Error("failure message must be passed through to the caller")
	}
}

func TestPriorityScore_OK(t *testing.T) {
	env := newTestEnv(t)
	env.gen.generateFn = func(_ context.Context, operation, _ string) (string, error) {
		if operation != "priority_score" {
			t.Errorf("unexpected operation %q", operation)
		}
		return "9", nil
	}

	rec := env.post(t, "/priority_score", map[string]string{"text": "data center flooded"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["priority_score"] != "9" {
		t.Errorf("expected priority_score 9, got %q", body["priority_score"])
	}
}

func TestAddComplaint_AssemblesMetadata(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/add_complaint", map[string]string{
		"text":      "tv arrived with cracked screen",
		"category":  "electronics",
		"timestamp": "2025-06-01T10:00:00Z",
		"user_id":   "u42",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body addComplaintResponse
	decodeBody(t, rec, &body)
	if body.ID == "" {
		t.Error("id must be generated server-side")
	}
	if body.Metadata["category"] != "electronics" || body.Metadata["user_id"] != "u42" {
		t.Errorf("metadata not assembled from request fields: %v", body.Metadata)
	}
}

func TestAddComplaint_EmptyText(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/add_complaint", map[string]string{"text": " "})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSearchSimilar_DefaultsAndRounding(t *testing.T) {
	env := newTestEnv(t)
	env.repo.queryNearestFn = func(_ context.Context, _ []float32, k int) ([]domain.Match, error) {
		return []domain.Match{
			domain.NewMatch("c1", "fridge leaking water", 0.33333),
		}, nil
	}

	rec := env.post(t, "/search_similar_complaints", map[string]string{"query": "fridge leak"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.repo.lastK != 5 {
		t.Errorf("expected default max_results 5, got %d", env.repo.lastK)
	}

	var body searchResponse
	decodeBody(t, rec, &body)
	if body.TotalFound != 1 {
		t.Fatalf("expected 1 result, got %d", body.TotalFound)
	}
	got := body.SimilarComplaints[0]
	if got.Distance != 0.333 {
		t.Errorf("distance must be rounded to 3 decimals, got %v", got.Distance)
	}
	if got.SimilarityScore != 0.667 {
		t.Errorf("similarity must be rounded to 3 decimals, got %v", got.SimilarityScore)
	}
}

func TestSearchSimilar_EmptyQuery(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/search_similar_complaints", map[string]string{"query": ""})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestEnhancedSearch_OK(t *testing.T) {
	env := newTestEnv(t)
	env.repo.queryNearestFn = func(_ context.Context, _ []float32, _ int) ([]domain.Match, error) {
		return []domain.Match{domain.NewMatch("c1", "fridge noise", 0.5)}, nil
	}

	rec := env.post(t, "/enhanced_search_complaints", map[string]any{
		"query":       "fridge issue",
		"max_results": 3,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body enhancedSearchResponse
	decodeBody(t, rec, &body)
	// "fridge" and "issue" both trigger expansions.
	if body.ExpandedSearches != 2 {
		t.Errorf("expected 2 expanded searches, got %d", body.ExpandedSearches)
	}
	if body.TotalFound != 1 {
		t.Errorf("expected deduplicated single result, got %d", body.TotalFound)
	}
}

func TestAllComplaints_OK(t *testing.T) {
	env := newTestEnv(t)
	env.repo.listAllFn = func(_ context.Context) ([]domain.Complaint, error) {
		return []domain.Complaint{
			domain.NewComplaint("c1", "fridge broken", nil),
			domain.NewComplaint("c2", "late delivery", map[string]string{"category": "logistics"}),
		}, nil
	}

	rec := env.get(t, "/all_complaints")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body allComplaintsResponse
	decodeBody(t, rec, &body)
	if body.TotalComplaints != 2 || len(body.Complaints) != 2 {
		t.Fatalf("expected 2 complaints, got %+v", body)
	}
	if body.Complaints[0].ID != "c1" || body.Complaints[1].Metadata["category"] != "logistics" {
		t.Errorf("unexpected dump contents: %+v", body.Complaints)
	}
}

func TestAllComplaints_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.repo.listAllFn = func(_ context.Context) ([]domain.Complaint, error) {
		return nil, errors.New("scan failed")
	}

	rec := env.get(t, "/all_complaints")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestResolveComplaint_OK(t *testing.T) {
	env := newTestEnv(t)
	env.gen.generateFn = func(_ context.Context, _, _ string) (string, error) {
		return "We apologize for the inconvenience and will ship a replacement.", nil
	}

	rec := env.post(t, "/resolve_complaint", map[string]string{"query": "my order arrived damaged"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["response"] == "" {
		t.Error("expected a response body")
	}
}

func TestPriorityUsers_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/priority-users", map[string]any{"question": "", "users": []any{}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing question, got %d", rec.Code)
	}

	rec = env.post(t, "/priority-users", map[string]any{"question": "GPU crash"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing users, got %d", rec.Code)
	}
	if env.gen.calls != 0 {
		t.Error("generator must not be invoked on validation failure")
	}
}

func TestPriorityUsers_OK(t *testing.T) {
	env := newTestEnv(t)
	env.gen.generateFn = func(_ context.Context, _, _ string) (string, error) {
		return "8", nil
	}

	rec := env.post(t, "/priority-users", map[string]any{
		"question": "How to fix GPU driver issues?",
		"users": []map[string]any{
			{"userId": "u1", "solvedQueries": []string{"How to fix GPU driver issues on laptop?"}},
		},
		"top_n": 5,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body priorityUsersResponse
	decodeBody(t, rec, &body)
	if body.TotalUsersAnalyzed != 1 || len(body.PriorityUsers) != 1 {
		t.Fatalf("unexpected response: %+v", body)
	}
	if body.PriorityUsers[0].RelevanceScore != 8 {
		t.Errorf("expected score 8, got %d", body.PriorityUsers[0].RelevanceScore)
	}
	if body.Summary.MostRelevantUser == nil || *body.Summary.MostRelevantUser != "u1" {
		t.Errorf("unexpected summary: %+v", body.Summary)
	}
}

func TestHealth_OK(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/health")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/summarize", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDomainErrorLoggedWithRequestLogger(t *testing.T) {
	env := newTestEnv(t)
	env.gen.generateFn = func(_ context.Context, _, _ string) (string, error) {
		return "", fmt.Errorf("%w: provider down", domain.ErrGeneration)
	}

	core, logs := observer.New(zap.WarnLevel)
	reqLogger := zap.New(core).With(zap.String("request_id", "req-1"))

	// Mount the routes behind a middleware that injects a per-request
	// logger, the way the composition root does.
	r := gochi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
			next.ServeHTTP(w, rq.WithContext(logpkg.ContextWithLogger(rq.Context(), reqLogger)))
		})
	})
	env.server.Routes(r)

	data, _ := json.Marshal(map[string]string{"text": "fridge broken"})
	req := httptest.NewRequest(http.MethodPost, "/summarize", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	entries := logs.FilterMessage("domain error").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 domain error entry on the request logger, got %d", len(entries))
	}
	if entries[0].ContextMap()["request_id"] != "req-1" {
		t.Errorf("expected request_id field on the log entry, got %v", entries[0].ContextMap())
	}
}
