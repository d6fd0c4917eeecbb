// Package client is a small Go client for the resume analysis API. It
// mirrors the wire contract of the analyze/save endpoints and layers a
// single-slot state machine (Controller) on top for UI-style callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 45 * time.Second

// Client calls the analysis API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	guestID    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithGuestID identifies the caller as a guest.
func WithGuestID(guestID string) Option {
	return func(c *Client) { c.guestID = guestID }
}

// New builds a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnalyzeRequest is the analyze endpoint's body. ResumeData is passed
// through as-is so callers can use their own snapshot representation.
type AnalyzeRequest struct {
	ResumeData   any    `json:"resumeData"`
	AnalysisType string `json:"analysisType,omitempty"`
	Provider     string `json:"provider,omitempty"`
}

// SectionScores holds the five fixed per-section scores.
type SectionScores struct {
	Personal   int `json:"personal"`
	Education  int `json:"education"`
	Projects   int `json:"projects"`
	Experience int `json:"experience"`
	Skills     int `json:"skills"`
}

// ResultMetadata describes how a result was produced.
type ResultMetadata struct {
	ProcessingTime int64     `json:"processingTime"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model,omitempty"`
	AnalyzedAt     time.Time `json:"analyzedAt"`
}

// AnalysisData is the scored result returned by the analyze endpoint. Raw
// keeps the full JSON for fields this client does not model.
type AnalysisData struct {
	OverallScore  int             `json:"overallScore"`
	SectionScores SectionScores   `json:"sectionScores"`
	ATSScore      int             `json:"atsScore"`
	Strengths     []string        `json:"strengths"`
	Improvements  []string        `json:"improvements"`
	IsFallback    bool            `json:"isFallback"`
	Metadata      ResultMetadata  `json:"metadata"`
	Raw           json.RawMessage `json:"-"`
}

// AnalyzeResponse is the analyze endpoint's success envelope.
type AnalyzeResponse struct {
	Success  bool         `json:"success"`
	Data     AnalysisData `json:"data"`
	Metadata struct {
		AnalysisID *string   `json:"analysisId"`
		AnalyzedAt time.Time `json:"analyzedAt"`
	} `json:"metadata"`
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.StatusCode, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}

// Analyze scores a resume snapshot.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error) {
	var out AnalyzeResponse
	body, err := c.post(ctx, "/api/v1/analysis/analyze", req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode analyze response: %w", err)
	}
	if err := json.Unmarshal(body, &struct {
		Data *json.RawMessage `json:"data"`
	}{Data: &out.Data.Raw}); err != nil {
		return out, fmt.Errorf("decode analyze response: %w", err)
	}
	return out, nil
}

// Save stores an analysis result best-effort. The server always reports
// success; an error here means the request itself failed.
func (c *Client) Save(ctx context.Context, result json.RawMessage) error {
	_, err := c.post(ctx, "/api/v1/analysis/save", map[string]any{
		"analysisResult": result,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
	return err
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.guestID != "" {
		req.Header.Set("X-Guest-Id", c.guestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, data)
	}
	return data, nil
}

func apiError(status int, body []byte) *APIError {
	var parsed struct {
		Error   string   `json:"error"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	}
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Error
	if msg == "" {
		msg = parsed.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg, Details: parsed.Details}
}
