package contract

import (
	"encoding/json"
	"math"
)

// modelResult is the loosely-typed shape accepted from an AI model. Scores
// arrive as arbitrary JSON numbers and may be missing or out of range; the
// ATS template additionally emits top-level keywords/missingKeywords.
type modelResult struct {
	OverallScore  *float64 `json:"overallScore"`
	SectionScores struct {
		Personal   *float64 `json:"personal"`
		Education  *float64 `json:"education"`
		Projects   *float64 `json:"projects"`
		Experience *float64 `json:"experience"`
		Skills     *float64 `json:"skills"`
	} `json:"sectionScores"`
	ATSScore        *float64         `json:"atsScore"`
	ATSOptimization *struct {
		Score *float64 `json:"score"`
	} `json:"atsOptimization"`
	Strengths       []string         `json:"strengths"`
	Improvements    []string         `json:"improvements"`
	Keywords        []string         `json:"keywords"`
	MissingKeywords []string         `json:"missingKeywords"`
	KeywordAnalysis *KeywordAnalysis `json:"keywordAnalysis"`
	ContentQuality  *ContentQuality  `json:"contentQuality"`
	AISuggestions   *AISuggestions   `json:"aiSuggestions"`
}

// CoerceModelJSON decodes a model response into the canonical result,
// clamping every score to [0, 100] and defaulting missing arrays to empty.
// This intentionally strengthens the upstream contract: a syntactically
// valid but out-of-range model response can never surface malformed scores.
func CoerceModelJSON(raw []byte) (AnalysisResult, error) {
	var parsed modelResult
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return AnalysisResult{}, err
	}

	result := AnalysisResult{
		OverallScore: coerceScore(parsed.OverallScore),
		SectionScores: SectionScores{
			Personal:   coerceScore(parsed.SectionScores.Personal),
			Education:  coerceScore(parsed.SectionScores.Education),
			Projects:   coerceScore(parsed.SectionScores.Projects),
			Experience: coerceScore(parsed.SectionScores.Experience),
			Skills:     coerceScore(parsed.SectionScores.Skills),
		},
		Strengths:      defaultSlice(parsed.Strengths),
		Improvements:   defaultSlice(parsed.Improvements),
		ContentQuality: parsed.ContentQuality,
		AISuggestions:  parsed.AISuggestions,
	}

	switch {
	case parsed.ATSScore != nil:
		result.ATSScore = coerceScore(parsed.ATSScore)
	case parsed.ATSOptimization != nil:
		result.ATSScore = coerceScore(parsed.ATSOptimization.Score)
	}
	result.ATSOptimization = &ATSOptimization{Score: result.ATSScore}

	switch {
	case parsed.KeywordAnalysis != nil:
		ka := *parsed.KeywordAnalysis
		ka.Strengths = defaultSlice(ka.Strengths)
		ka.MissingKeywords = defaultSlice(ka.MissingKeywords)
		result.KeywordAnalysis = &ka
	case len(parsed.Keywords) > 0 || len(parsed.MissingKeywords) > 0:
		result.KeywordAnalysis = &KeywordAnalysis{
			Strengths:       defaultSlice(parsed.Keywords),
			MissingKeywords: defaultSlice(parsed.MissingKeywords),
		}
	}

	return result, nil
}

func coerceScore(v *float64) int {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return ClampScore(int(math.Round(*v)))
}

func defaultSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
