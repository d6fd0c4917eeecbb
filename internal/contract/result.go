package contract

import "time"

// Analysis types accepted by the analyze endpoint.
const (
	TypeComprehensive = "comprehensive"
	TypeQuick         = "quick"
	TypeATS           = "ats"
)

// Provider identifiers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderBasic  = "basic"
)

// ValidType reports whether t is a known analysis type.
func ValidType(t string) bool {
	switch t {
	case TypeComprehensive, TypeQuick, TypeATS:
		return true
	}
	return false
}

// AnalysisResult is the canonical scoring output, produced by an AI provider
// or the heuristic scorer. Field names are part of the HTTP contract.
type AnalysisResult struct {
	OverallScore    int              `json:"overallScore"`
	SectionScores   SectionScores    `json:"sectionScores"`
	ATSScore        int              `json:"atsScore"`
	ATSOptimization *ATSOptimization `json:"atsOptimization,omitempty"`
	Strengths       []string         `json:"strengths"`
	Improvements    []string         `json:"improvements"`
	KeywordAnalysis *KeywordAnalysis `json:"keywordAnalysis,omitempty"`
	ContentQuality  *ContentQuality  `json:"contentQuality,omitempty"`
	AISuggestions   *AISuggestions   `json:"aiSuggestions,omitempty"`
	IsFallback      bool             `json:"isFallback"`
	Metadata        Metadata         `json:"metadata"`
}

// SectionScores holds the five fixed per-section scores.
type SectionScores struct {
	Personal   int `json:"personal"`
	Education  int `json:"education"`
	Projects   int `json:"projects"`
	Experience int `json:"experience"`
	Skills     int `json:"skills"`
}

// ATSOptimization nests the ATS score for clients that read it there.
type ATSOptimization struct {
	Score int `json:"score"`
}

// KeywordAnalysis reports keyword coverage found during analysis.
type KeywordAnalysis struct {
	Strengths         []string `json:"strengths"`
	MissingKeywords   []string `json:"missingKeywords"`
	IndustryRelevance string   `json:"industryRelevance"`
}

// ContentQuality grades prose quality on small fixed vocabularies
// (excellent/good/fair/poor for clarity and readability, high/medium/low
// for impact).
type ContentQuality struct {
	Clarity     string `json:"clarity"`
	Impact      string `json:"impact"`
	Readability string `json:"readability"`
}

// AISuggestions separates immediately actionable fixes from long-term advice.
type AISuggestions struct {
	ImmediateImprovements []string `json:"immediateImprovements"`
	LongTermSuggestions   []string `json:"longTermSuggestions"`
}

// Metadata describes how a result was produced.
type Metadata struct {
	ProcessingTime int64     `json:"processingTime"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model,omitempty"`
	AnalyzedAt     time.Time `json:"analyzedAt"`
	Success        bool      `json:"success,omitempty"`
	Fallback       bool      `json:"fallback,omitempty"`
	ResponseLength int       `json:"responseLength,omitempty"`
}

// ClampScore forces a score into [0, 100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
