package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-studio/internal/ai"
	"resume-studio/internal/contract"
	"resume-studio/internal/resume"
	sharedauth "resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/server/middleware"
)

func setupRouter(t *testing.T, providers map[string]ai.Provider) (*gin.Engine, *MemoryRepo, *Saver) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	repo := NewMemoryRepo()
	saver := NewSaver(repo, nil)
	t.Cleanup(saver.Close)

	svc := NewService(repo, providers, "gemini", saver, nil)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth("dev"))
	NewHandler(svc).RegisterRoutes(api)
	return router, repo, saver
}

func signTestToken(t *testing.T, sub string) string {
	t.Helper()
	token, err := sharedauth.SignJWT(sharedauth.Claims{Sub: sub})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return token
}

func analyzeBody(t *testing.T, raw resume.RawSnapshot, analysisType, provider string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"resumeData":   raw,
		"analysisType": analysisType,
		"provider":     provider,
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return body
}

func TestAnalyzeEndpointGuestFallback(t *testing.T) {
	router, _, _ := setupRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/analyze",
		bytes.NewReader(analyzeBody(t, validRaw(), "comprehensive", "basic")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}

	var got struct {
		Success  bool `json:"success"`
		Data     EnrichedResult
		Metadata struct {
			AnalysisID *string   `json:"analysisId"`
			AnalyzedAt time.Time `json:"analyzedAt"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !got.Success {
		t.Fatal("expected success=true")
	}
	if got.Metadata.AnalysisID != nil {
		t.Fatalf("expected null analysisId for guest, got %v", *got.Metadata.AnalysisID)
	}
	if !got.Data.IsFallback {
		t.Fatal("expected fallback heuristic result")
	}
	if got.Data.OverallScore != 35 {
		t.Fatalf("overallScore = %d, want 35", got.Data.OverallScore)
	}
	if got.Metadata.AnalyzedAt.IsZero() {
		t.Fatal("expected analyzedAt timestamp")
	}
}

func TestAnalyzeEndpointValidationError(t *testing.T) {
	router, _, _ := setupRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/analyze",
		bytes.NewReader(analyzeBody(t, resume.RawSnapshot{}, "", "")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	var got struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Error != "Invalid resume data" {
		t.Fatalf("error = %q", got.Error)
	}
	if len(got.Details) != 2 {
		t.Fatalf("details = %v", got.Details)
	}
}

func TestAnalyzeEndpointPersistsForUser(t *testing.T) {
	provider := &stubProvider{name: contract.ProviderGemini, result: aiResult(contract.ProviderGemini)}
	router, repo, _ := setupRouter(t, map[string]ai.Provider{contract.ProviderGemini: provider})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/analyze",
		bytes.NewReader(analyzeBody(t, validRaw(), "comprehensive", "gemini")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "google:u1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	var got struct {
		Metadata struct {
			AnalysisID *string `json:"analysisId"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Metadata.AnalysisID == nil {
		t.Fatal("expected analysisId for authenticated non-fallback analysis")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := repo.GetByID(req.Context(), "google:u1", *got.Metadata.AnalysisID); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("record never persisted")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSaveEndpointAlwaysSucceeds(t *testing.T) {
	router, _, _ := setupRouter(t, nil)

	body := []byte(`{"analysisResult":{"overallScore":80},"timestamp":"2026-08-01T10:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/save", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	var got struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		SavedAt string `json:"savedAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !got.Success || got.Message == "" || got.SavedAt == "" {
		t.Fatalf("response = %+v", got)
	}
}

func TestHistoryEndpointRejectsGuests(t *testing.T) {
	router, _, _ := setupRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/history", nil)
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestHistoryEndpointPagination(t *testing.T) {
	router, repo, _ := setupRouter(t, nil)

	base := time.Now().UTC()
	for i := 0; i < 12; i++ {
		err := repo.Create(context.Background(), Analysis{
			ID:           uuid.NewString(),
			UserID:       "google:u1",
			AnalysisType: contract.TypeComprehensive,
			Score:        60 + i,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/history?page=2&limit=5", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "google:u1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	var got struct {
		Success    bool       `json:"success"`
		Data       []Summary  `json:"data"`
		Pagination Pagination `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Data) != 5 {
		t.Fatalf("data = %d items, want 5", len(got.Data))
	}
	if got.Pagination != (Pagination{Page: 2, Limit: 5, Total: 12, Pages: 3}) {
		t.Fatalf("pagination = %+v", got.Pagination)
	}
	// Newest first: page 2 starts at the 6th newest record.
	if got.Data[0].Score != 66 {
		t.Fatalf("first score on page 2 = %d, want 66", got.Data[0].Score)
	}
}

func TestGetEndpointScoping(t *testing.T) {
	router, repo, _ := setupRouter(t, nil)

	id := uuid.NewString()
	if err := repo.Create(context.Background(), Analysis{
		ID:        id,
		UserID:    "google:owner",
		Score:     77,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Unowned lookup is a plain 404, indistinguishable from absence.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "google:intruder"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("intruder status = %d, want 404", resp.Code)
	}
	var notFound struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&notFound); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if notFound.Error != "Analysis not found" {
		t.Fatalf("error = %q", notFound.Error)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analysis/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "google:owner"))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("owner status = %d, body %s", resp.Code, resp.Body.String())
	}
}

func TestProvidersEndpoint(t *testing.T) {
	provider := &stubProvider{name: contract.ProviderGemini}
	router, _, _ := setupRouter(t, map[string]ai.Provider{contract.ProviderGemini: provider})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/providers", nil)
	req.Header.Set("X-Guest-Id", "guest-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var got struct {
		Success   bool           `json:"success"`
		Providers []ProviderInfo `json:"providers"`
		Default   string         `json:"default"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Default != "gemini" || len(got.Providers) != 3 {
		t.Fatalf("response = %+v", got)
	}
}
