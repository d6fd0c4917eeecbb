package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"resume-studio/internal/contract"
	"resume-studio/internal/resume"
	"resume-studio/internal/shared/telemetry"
)

const (
	analyzeTimeout      = 30 * time.Second
	modelProbeTimeout   = 10 * time.Second
	geminiTemperature   = float32(0.1)
	geminiMaxOutputToks = int32(2048)
)

// Candidate models, newest first. The first that resolves at construction
// time is used for the lifetime of the process.
var geminiModelCandidates = []string{
	"gemini-2.0-flash",
	"gemini-2.5-flash",
	"gemini-1.5-pro",
	"gemini-1.5-flash",
}

// GeminiProvider implements Provider on top of google.golang.org/genai.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates the Gemini adapter, probing the candidate model
// list once and keeping the first identifier that resolves. Construction is
// meant to run once at process start; a returned error means the provider is
// unusable and every analysis should degrade to the heuristic scorer.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not configured", ErrProviderUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("%w: create gemini client: %v", ErrProviderUnavailable, err)
	}

	model := probeModels(ctx, client)
	if model == "" {
		return nil, fmt.Errorf("%w: no gemini model could be initialized", ErrProviderUnavailable)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

func probeModels(ctx context.Context, client *genai.Client) string {
	for _, candidate := range geminiModelCandidates {
		probeCtx, cancel := context.WithTimeout(ctx, modelProbeTimeout)
		_, err := client.Models.Get(probeCtx, candidate, &genai.GetModelConfig{})
		cancel()
		if err != nil {
			telemetry.Info("ai.gemini.model_probe_failed", map[string]any{
				"model": candidate,
				"error": err.Error(),
			})
			continue
		}
		telemetry.Info("ai.gemini.model_selected", map[string]any{"model": candidate})
		return candidate
	}
	return ""
}

// Name returns "gemini".
func (g *GeminiProvider) Name() string { return contract.ProviderGemini }

// Analyze sends one bounded generation request and maps the response into
// the canonical result. Transport errors become ErrProviderUnavailable;
// non-JSON responses become the canned fallback result.
func (g *GeminiProvider) Analyze(ctx context.Context, snap resume.Snapshot, analysisType string) (contract.AnalysisResult, error) {
	started := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	prompt := BuildPrompt(snap, analysisType)
	resp, err := g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(geminiTemperature),
		MaxOutputTokens: geminiMaxOutputToks,
	})
	if err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("%w: gemini generate: %v", ErrProviderUnavailable, err)
	}

	return resultFromContent(resp.Text(), contract.ProviderGemini, g.model, started), nil
}
