// Package ai holds the provider adapters that turn a resume snapshot into an
// AnalysisResult via an external generative model. Every adapter degrades
// gracefully: transport failures surface as ErrProviderUnavailable so the
// caller can substitute the heuristic scorer, and a provider that answered
// with something other than JSON yields a canned fallback result instead of
// an error.
package ai

import (
	"context"
	"errors"

	"resume-studio/internal/contract"
	"resume-studio/internal/resume"
)

// ErrProviderUnavailable marks network, timeout and initialization failures.
// Callers recover by falling back to the heuristic scorer; it is never
// surfaced to the end user as a hard failure.
var ErrProviderUnavailable = errors.New("ai provider unavailable")

// ErrUnknownProvider is returned for provider names outside the closed set.
var ErrUnknownProvider = errors.New("unknown ai provider")

// Provider analyzes a resume snapshot with a generative model.
type Provider interface {
	// Analyze scores the snapshot for the given analysis type. The call is a
	// single attempt bounded by the adapter's timeout; no retries.
	Analyze(ctx context.Context, snap resume.Snapshot, analysisType string) (contract.AnalysisResult, error)
	// Name returns the wire identifier of the provider.
	Name() string
}
