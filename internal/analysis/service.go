package analysis

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"resume-studio/internal/ai"
	"resume-studio/internal/contract"
	"resume-studio/internal/resume"
	"resume-studio/internal/scoring"
	"resume-studio/internal/shared/metrics"
	"resume-studio/internal/shared/storage/object"
	"resume-studio/internal/shared/telemetry"
)

// Service orchestrates one analysis request: boundary validation, provider
// dispatch with heuristic fallback, enrichment and best-effort persistence.
// It holds no per-request state.
type Service struct {
	repo            Repo
	providers       map[string]ai.Provider
	defaultProvider string
	saver           *Saver
	archive         object.ObjectStore
}

// NewService builds a Service. providers holds the AI adapters that
// initialized successfully at startup; the heuristic scorer needs no entry.
// saver and archive are optional.
func NewService(repo Repo, providers map[string]ai.Provider, defaultProvider string, saver *Saver, archive object.ObjectStore) *Service {
	if providers == nil {
		providers = map[string]ai.Provider{}
	}
	if defaultProvider == "" {
		defaultProvider = contract.ProviderGemini
	}
	return &Service{
		repo:            repo,
		providers:       providers,
		defaultProvider: defaultProvider,
		saver:           saver,
		archive:         archive,
	}
}

// Outcome is what the analyze handler renders: the enriched result plus the
// persisted-record ID when one was created.
type Outcome struct {
	Result     EnrichedResult
	AnalysisID string
	AnalyzedAt time.Time
}

// Analyze runs the full pipeline for one request. guest identities get a
// result but never a persisted record. The only error kinds returned are
// *ValidationError and context errors; provider failures degrade to the
// heuristic scorer instead of failing.
func (s *Service) Analyze(ctx context.Context, userID string, guest bool, raw resume.RawSnapshot, analysisType, providerName string) (Outcome, error) {
	if details := ValidateRaw(raw); len(details) > 0 {
		metrics.IncAnalysisFailed()
		return Outcome{}, &ValidationError{Details: details}
	}

	snap, err := resume.Normalize(raw)
	if err != nil {
		metrics.IncAnalysisFailed()
		if errors.Is(err, resume.ErrMissingRequiredSection) {
			return Outcome{}, &ValidationError{Details: []string{
				"Profile section is incomplete",
				"Education section is incomplete",
			}}
		}
		return Outcome{}, err
	}
	metrics.IncAnalysisStarted()
	started := time.Now()

	if !contract.ValidType(analysisType) {
		analysisType = contract.TypeComprehensive
	}
	if providerName == "" {
		providerName = s.defaultProvider
	}

	result := s.runProvider(ctx, snap, analysisType, providerName)
	enriched := Enrich(result, snap)
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))

	out := Outcome{Result: enriched, AnalyzedAt: time.Now().UTC()}
	if result.IsFallback || guest || userID == "" || s.saver == nil {
		return out, nil
	}

	record := Analysis{
		ID:           uuid.NewString(),
		UserID:       userID,
		Snapshot:     snap,
		Result:       enriched,
		AnalysisType: analysisType,
		Provider:     result.Metadata.Provider,
		Score:        result.OverallScore,
		Metadata: Metadata{
			ProcessingTime:  result.Metadata.ProcessingTime,
			ResumeSections:  enriched.ResumeStats.Sections,
			TotalProjects:   enriched.ResumeStats.TotalProjects,
			TotalExperience: enriched.ResumeStats.TotalExperience,
		},
		CreatedAt: out.AnalyzedAt,
	}
	s.saver.Enqueue(record)
	out.AnalysisID = record.ID
	return out, nil
}

// runProvider dispatches to the named adapter and falls back to the
// heuristic scorer when the adapter is missing or unavailable. "basic" is
// the scorer requested explicitly.
func (s *Service) runProvider(ctx context.Context, snap resume.Snapshot, analysisType, name string) contract.AnalysisResult {
	if name == contract.ProviderBasic {
		return scoring.Score(snap)
	}

	provider, ok := s.providers[name]
	if !ok {
		telemetry.Info("ai provider not configured, using heuristic scorer", map[string]any{
			"provider": name,
		})
		return scoring.Score(snap)
	}

	result, err := provider.Analyze(ctx, snap, analysisType)
	if err != nil {
		telemetry.Error("ai provider failed, using heuristic scorer", map[string]any{
			"provider": name,
			"error":    err.Error(),
		})
		return scoring.Score(snap)
	}
	return result
}

// Get returns one record scoped to the user.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	return s.repo.GetByID(ctx, userID, analysisID)
}

// Pagination describes one history page.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// History returns one page of summaries, newest first.
func (s *Service) History(ctx context.Context, userID string, page, limit int) ([]Summary, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, total, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	summaries := make([]Summary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, r.Summarize())
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return summaries, Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// ProviderInfo reports one provider's availability for the providers
// endpoint.
type ProviderInfo struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Providers lists the known providers in a fixed order. The heuristic
// scorer is always available.
func (s *Service) Providers() []ProviderInfo {
	infos := make([]ProviderInfo, 0, 3)
	for _, name := range []string{contract.ProviderGemini, contract.ProviderOpenAI} {
		_, ok := s.providers[name]
		infos = append(infos, ProviderInfo{Name: name, Available: ok})
	}
	return append(infos, ProviderInfo{Name: contract.ProviderBasic, Available: true})
}

// DefaultProvider is the provider used when the request names none.
func (s *Service) DefaultProvider() string {
	return s.defaultProvider
}

// Archive writes the posted result payload to the object store. Best effort
// only; failures are logged and swallowed.
func (s *Service) Archive(ctx context.Context, userID string, payload []byte) {
	if s.archive == nil || len(payload) == 0 {
		return
	}
	name := "analysis-" + time.Now().UTC().Format("20060102T150405.000") + ".json"
	if _, _, _, err := s.archive.Save(ctx, userID, name, bytes.NewReader(payload)); err != nil {
		telemetry.Error("analysis archive failed", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}
