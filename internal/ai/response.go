package ai

import (
	"time"

	"resume-studio/internal/contract"
)

// resultFromContent turns a raw model response into the canonical result.
// Both failure shapes (no JSON object, unparseable JSON) map to the canned
// fallback rather than an error: the provider did answer, so a plausible
// score is preferable to surfacing a parse failure.
func resultFromContent(content, provider, model string, started time.Time) contract.AnalysisResult {
	elapsed := time.Since(started)

	payload, ok := ExtractJSON(content)
	if !ok {
		return cannedResult(provider, model, elapsed)
	}

	result, err := contract.CoerceModelJSON([]byte(payload))
	if err != nil {
		return cannedResult(provider, model, elapsed)
	}

	result.Metadata = contract.Metadata{
		ProcessingTime: elapsed.Milliseconds(),
		Provider:       provider,
		Model:          model,
		AnalyzedAt:     time.Now().UTC(),
		Success:        true,
		ResponseLength: len(content),
	}
	return result
}
