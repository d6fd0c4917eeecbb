package analysis

import (
	"time"

	"resume-studio/internal/resume"
)

// Analysis is one persisted scoring run. Only non-fallback results produced
// for authenticated users are stored; records expire after the retention
// window.
type Analysis struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Snapshot     resume.Snapshot `json:"resumeData"`
	Result       EnrichedResult  `json:"result"`
	AnalysisType string          `json:"analysisType"`
	Provider     string          `json:"provider"`
	Score        int             `json:"score"`
	Metadata     Metadata        `json:"metadata"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Metadata is the lightweight per-record metadata kept alongside the full
// result payload.
type Metadata struct {
	ProcessingTime  int64 `json:"processingTime"`
	ResumeSections  int   `json:"resumeSections"`
	TotalProjects   int   `json:"totalProjects"`
	TotalExperience int   `json:"totalExperience"`
}

// Summary is the listing projection of an Analysis. History pages expose
// summaries only; full payloads require a per-record lookup.
type Summary struct {
	ID           string    `json:"id"`
	AnalysisType string    `json:"analysisType"`
	Score        int       `json:"score"`
	Metadata     Metadata  `json:"metadata"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summarize projects the record into its history listing shape.
func (a Analysis) Summarize() Summary {
	return Summary{
		ID:           a.ID,
		AnalysisType: a.AnalysisType,
		Score:        a.Score,
		Metadata:     a.Metadata,
		CreatedAt:    a.CreatedAt,
	}
}
