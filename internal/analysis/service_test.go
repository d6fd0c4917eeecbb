package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-studio/internal/ai"
	"resume-studio/internal/contract"
	"resume-studio/internal/resume"
)

type stubProvider struct {
	name   string
	result contract.AnalysisResult
	err    error
	calls  int
}

func (p *stubProvider) Analyze(ctx context.Context, snap resume.Snapshot, analysisType string) (contract.AnalysisResult, error) {
	p.calls++
	if p.err != nil {
		return contract.AnalysisResult{}, p.err
	}
	return p.result, nil
}

func (p *stubProvider) Name() string { return p.name }

func validRaw() resume.RawSnapshot {
	return resume.RawSnapshot{
		Profile: &resume.RawProfile{
			FirstName: "Asha",
			LastName:  "Verma",
			Email:     "asha@example.com",
			Mobile:    "9876543210",
		},
		Education: []resume.RawEducation{
			{College: "IIT Delhi", Field: "B.Tech", Year: "2024"},
		},
	}
}

func aiResult(provider string) contract.AnalysisResult {
	return contract.AnalysisResult{
		OverallScore: 82,
		SectionScores: contract.SectionScores{
			Personal: 90, Education: 85, Projects: 70, Experience: 75, Skills: 80,
		},
		ATSScore:     78,
		Strengths:    []string{"Strong education"},
		Improvements: []string{"Add projects"},
		Metadata: contract.Metadata{
			Provider: provider,
			Success:  true,
		},
	}
}

func TestAnalyzeValidationCollectsAllDetails(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil, "basic", nil, nil)

	_, err := svc.Analyze(context.Background(), "user-1", false, resume.RawSnapshot{}, "", "")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"Profile information is required", "Education information is required"}
	if len(vErr.Details) != len(want) {
		t.Fatalf("details = %v, want %v", vErr.Details, want)
	}
	for i, d := range want {
		if vErr.Details[i] != d {
			t.Fatalf("details[%d] = %q, want %q", i, vErr.Details[i], d)
		}
	}
}

func TestAnalyzeValidationPartialProfile(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil, "basic", nil, nil)

	raw := validRaw()
	raw.Profile.LastName = ""
	raw.Profile.Email = ""
	raw.Education = nil

	_, err := svc.Analyze(context.Background(), "user-1", false, raw, "", "")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Details) != 3 {
		t.Fatalf("expected 3 details, got %v", vErr.Details)
	}
}

func TestAnalyzeBasicProviderUsesScorer(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil, "gemini", nil, nil)

	out, err := svc.Analyze(context.Background(), "user-1", false, validRaw(), "comprehensive", "basic")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !out.Result.IsFallback {
		t.Fatal("expected heuristic result to be marked fallback")
	}
	if out.Result.Metadata.Provider != contract.ProviderBasic {
		t.Fatalf("provider = %q, want %q", out.Result.Metadata.Provider, contract.ProviderBasic)
	}
	// Profile complete (15) + education present (20), nothing else.
	if out.Result.OverallScore != 35 {
		t.Fatalf("overallScore = %d, want 35", out.Result.OverallScore)
	}
	if out.AnalysisID != "" {
		t.Fatal("fallback results must not be persisted")
	}
}

func TestAnalyzeProviderSuccessPersists(t *testing.T) {
	repo := NewMemoryRepo()
	provider := &stubProvider{name: contract.ProviderGemini, result: aiResult(contract.ProviderGemini)}
	saver := NewSaver(repo, nil)
	defer saver.Close()

	svc := NewService(repo, map[string]ai.Provider{contract.ProviderGemini: provider}, "gemini", saver, nil)

	out, err := svc.Analyze(context.Background(), "user-1", false, validRaw(), "comprehensive", "gemini")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}
	if out.AnalysisID == "" {
		t.Fatal("expected a persisted-record id")
	}
	if out.Result.OverallScore != 82 {
		t.Fatalf("overallScore = %d, want 82", out.Result.OverallScore)
	}

	// The saver is asynchronous; poll briefly for the record.
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := repo.GetByID(context.Background(), "user-1", out.AnalysisID)
		if err == nil {
			if got.Score != 82 || got.Provider != contract.ProviderGemini {
				t.Fatalf("stored record = %+v", got)
			}
			if got.Metadata.ResumeSections != out.Result.ResumeStats.Sections {
				t.Fatalf("metadata sections = %d, want %d", got.Metadata.ResumeSections, out.Result.ResumeStats.Sections)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("record %s never persisted", out.AnalysisID)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAnalyzeGuestNeverPersists(t *testing.T) {
	repo := NewMemoryRepo()
	provider := &stubProvider{name: contract.ProviderGemini, result: aiResult(contract.ProviderGemini)}
	saver := NewSaver(repo, nil)
	defer saver.Close()

	svc := NewService(repo, map[string]ai.Provider{contract.ProviderGemini: provider}, "gemini", saver, nil)

	out, err := svc.Analyze(context.Background(), "guest:abc", true, validRaw(), "", "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if out.AnalysisID != "" {
		t.Fatal("guest analyses must not be persisted")
	}
}

func TestAnalyzeFallsBackWhenProviderUnavailable(t *testing.T) {
	provider := &stubProvider{name: contract.ProviderGemini, err: ai.ErrProviderUnavailable}
	svc := NewService(NewMemoryRepo(), map[string]ai.Provider{contract.ProviderGemini: provider}, "gemini", nil, nil)

	out, err := svc.Analyze(context.Background(), "user-1", false, validRaw(), "quick", "gemini")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !out.Result.IsFallback {
		t.Fatal("expected heuristic fallback result")
	}
	if out.Result.Metadata.Provider != contract.ProviderBasic {
		t.Fatalf("provider = %q, want %q", out.Result.Metadata.Provider, contract.ProviderBasic)
	}
	if out.AnalysisID != "" {
		t.Fatal("fallback results must not be persisted")
	}
}

func TestAnalyzeUnknownProviderFallsBack(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil, "gemini", nil, nil)

	out, err := svc.Analyze(context.Background(), "user-1", false, validRaw(), "", "claude")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !out.Result.IsFallback {
		t.Fatal("expected heuristic fallback for unknown provider")
	}
}

func TestHistoryPagination(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Now().UTC()
	for i := 0; i < 25; i++ {
		err := repo.Create(context.Background(), Analysis{
			ID:        "a" + string(rune('a'+i)),
			UserID:    "user-1",
			Score:     50 + i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	svc := NewService(repo, nil, "basic", nil, nil)
	summaries, page, err := svc.History(context.Background(), "user-1", 2, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(summaries) != 10 {
		t.Fatalf("summaries = %d, want 10", len(summaries))
	}
	if page.Total != 25 || page.Pages != 3 || page.Page != 2 || page.Limit != 10 {
		t.Fatalf("pagination = %+v", page)
	}
	// Newest first: page 2 starts at the 11th newest record.
	if summaries[0].Score != 50+14 {
		t.Fatalf("first score on page 2 = %d, want %d", summaries[0].Score, 64)
	}
}

func TestHistoryIsolation(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Create(context.Background(), Analysis{ID: "a1", UserID: "owner", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc := NewService(repo, nil, "basic", nil, nil)
	if _, err := svc.Get(context.Background(), "intruder", "a1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unowned record, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "owner", "a1"); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
}

func TestProvidersListing(t *testing.T) {
	provider := &stubProvider{name: contract.ProviderGemini}
	svc := NewService(NewMemoryRepo(), map[string]ai.Provider{contract.ProviderGemini: provider}, "gemini", nil, nil)

	infos := svc.Providers()
	if len(infos) != 3 {
		t.Fatalf("providers = %v", infos)
	}
	want := map[string]bool{"gemini": true, "openai": false, "basic": true}
	for _, info := range infos {
		if want[info.Name] != info.Available {
			t.Fatalf("provider %s available = %v, want %v", info.Name, info.Available, want[info.Name])
		}
	}
}

func TestSaverEnqueueAfterCloseDropsRecord(t *testing.T) {
	repo := NewMemoryRepo()
	saver := NewSaver(repo, nil)
	saver.Close()

	// Must not panic; the record is dropped.
	saver.Enqueue(Analysis{ID: "late-record", UserID: "user-1", CreatedAt: time.Now()})

	_, total, err := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if total != 0 {
		t.Fatalf("total = %d, want 0", total)
	}
}

func TestPurgeExpired(t *testing.T) {
	repo := NewMemoryRepo()
	now := time.Now().UTC()
	_ = repo.Create(context.Background(), Analysis{ID: "old", UserID: "u", CreatedAt: now.Add(-31 * 24 * time.Hour)})
	_ = repo.Create(context.Background(), Analysis{ID: "fresh", UserID: "u", CreatedAt: now})

	purged, err := repo.PurgeExpired(context.Background(), now.Add(-Retention))
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}
	if _, err := repo.GetByID(context.Background(), "u", "old"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected old record gone, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "u", "fresh"); err != nil {
		t.Fatalf("fresh record lost: %v", err)
	}
}
