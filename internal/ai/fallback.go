package ai

import (
	"time"

	"resume-studio/internal/contract"
)

// cannedResult is returned when the provider answered but not with parseable
// JSON. It is a fixed, plausible mid-range result, intentionally distinct
// from the heuristic scorer's computed output.
func cannedResult(provider, model string, processingTime time.Duration) contract.AnalysisResult {
	ats := 65
	return contract.AnalysisResult{
		OverallScore: 70,
		SectionScores: contract.SectionScores{
			Personal:   80,
			Education:  75,
			Experience: 65,
			Projects:   70,
			Skills:     75,
		},
		ATSScore:        ats,
		ATSOptimization: &contract.ATSOptimization{Score: ats},
		Strengths: []string{
			"Resume has good structure and organization",
			"Includes relevant sections for professional presentation",
		},
		Improvements: []string{
			"Add more quantifiable achievements",
			"Include specific technologies and tools",
			"Expand on project descriptions and impact",
		},
		AISuggestions: &contract.AISuggestions{
			ImmediateImprovements: []string{
				"Use action verbs to start bullet points",
				"Add measurable results and metrics",
				"Include relevant keywords from job descriptions",
			},
			LongTermSuggestions: []string{
				"Build a portfolio of projects demonstrating skills",
				"Gain experience through internships or freelance work",
				"Network with professionals in your target industry",
			},
		},
		IsFallback: true,
		Metadata: contract.Metadata{
			ProcessingTime: processingTime.Milliseconds(),
			Provider:       provider,
			Model:          model,
			AnalyzedAt:     time.Now().UTC(),
			Fallback:       true,
		},
	}
}
