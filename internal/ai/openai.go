package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-studio/internal/contract"
	"resume-studio/internal/resume"
)

const (
	openaiAPIURL       = "https://api.openai.com/v1/chat/completions"
	openaiDefaultModel = "gpt-3.5-turbo"

	openaiSystemPrompt = "You are an expert resume analyst and career coach. " +
		"Provide detailed, actionable feedback in JSON format."
)

// OpenAIProvider implements Provider using the OpenAI Chat Completions API.
type OpenAIProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider constructs the OpenAI adapter. A missing API key makes
// the provider unusable, mirroring the Gemini constructor.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not configured", ErrProviderUnavailable)
	}
	if strings.TrimSpace(model) == "" {
		model = openaiDefaultModel
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: openaiAPIURL,
		httpClient: &http.Client{
			Timeout: analyzeTimeout,
		},
	}, nil
}

// Name returns "openai".
func (o *OpenAIProvider) Name() string { return contract.ProviderOpenAI }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float32        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Analyze sends one bounded chat-completion request with near-zero sampling
// temperature and maps the response into the canonical result.
func (o *OpenAIProvider) Analyze(ctx context.Context, snap resume.Snapshot, analysisType string) (contract.AnalysisResult, error) {
	started := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	reqBody := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: openaiSystemPrompt},
			{Role: "user", Content: BuildPrompt(snap, analysisType)},
		},
		Temperature:    0,
		MaxTokens:      2000,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("%w: openai request: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("%w: read openai response: %v", ErrProviderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return contract.AnalysisResult{}, fmt.Errorf("%w: openai status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("%w: decode openai envelope: %v", ErrProviderUnavailable, err)
	}
	if parsed.Error != nil {
		return contract.AnalysisResult{}, fmt.Errorf("%w: openai error: %s", ErrProviderUnavailable, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return contract.AnalysisResult{}, fmt.Errorf("%w: openai returned no choices", ErrProviderUnavailable)
	}

	return resultFromContent(parsed.Choices[0].Message.Content, contract.ProviderOpenAI, o.model, started), nil
}
