// Package scoring implements the deterministic rule-based resume scorer.
// It is the fallback for every AI provider failure and an explicit provider
// in its own right ("basic"), so it must always succeed.
package scoring

import (
	"math"
	"time"

	"resume-studio/internal/contract"
	"resume-studio/internal/resume"
)

// Category weights. They sum to 100 so earned points are directly the
// overall score.
const (
	weightPersonal   = 15.0
	weightEducation  = 20.0
	weightProjects   = 25.0
	weightExperience = 25.0
	weightSkills     = 15.0
)

// ATS rubric points, additive with no partial credit.
const (
	atsContact    = 25
	atsEducation  = 20
	atsExperience = 25
	atsSkills     = 20
	atsProjects   = 10
)

// Score produces a full heuristic AnalysisResult for a snapshot. Pure: no
// I/O and no randomness; only Metadata.AnalyzedAt reads the clock.
func Score(snap resume.Snapshot) contract.AnalysisResult {
	started := time.Now()

	personal := personalPoints(snap)
	education := educationPoints(snap)
	projects := projectPoints(snap)
	experience := experiencePoints(snap)
	skills := skillPoints(snap)

	total := personal + education + projects + experience + skills
	overall := contract.ClampScore(int(math.Round(total)))
	ats := ATSScore(snap)

	improvements := suggestImprovements(snap)
	result := contract.AnalysisResult{
		OverallScore: overall,
		SectionScores: contract.SectionScores{
			Personal:   int(math.Round(personal)),
			Education:  int(math.Round(education)),
			Projects:   int(math.Round(projects)),
			Experience: int(math.Round(experience)),
			Skills:     int(math.Round(skills)),
		},
		ATSScore:        ats,
		ATSOptimization: &contract.ATSOptimization{Score: ats},
		Strengths:       identifyStrengths(snap),
		Improvements:    improvements,
		KeywordAnalysis: keywordAnalysis(snap),
		ContentQuality:  contentQuality(overall),
		AISuggestions: &contract.AISuggestions{
			ImmediateImprovements: improvements,
			LongTermSuggestions:   longTermSuggestions(),
		},
		IsFallback: true,
		Metadata: contract.Metadata{
			ProcessingTime: time.Since(started).Milliseconds(),
			Provider:       contract.ProviderBasic,
			AnalyzedAt:     time.Now().UTC(),
		},
	}
	return result
}

func personalPoints(snap resume.Snapshot) float64 {
	p := snap.Profile
	points := 0.0
	if p.FirstName != "" && p.LastName != "" {
		points += weightPersonal * 0.6
	}
	if p.Email != "" {
		points += weightPersonal * 0.2
	}
	if p.Mobile != "" {
		points += weightPersonal * 0.2
	}
	return points
}

// educationPoints is binary: any entry earns the full weight. Entry quality
// feeds section validity, not the score.
func educationPoints(snap resume.Snapshot) float64 {
	if snap.Education.Count > 0 {
		return weightEducation
	}
	return 0
}

func projectPoints(snap resume.Snapshot) float64 {
	switch {
	case snap.Projects.Count >= 2:
		return weightProjects
	case snap.Projects.Count == 1:
		return weightProjects * 0.6
	}
	return 0
}

func experiencePoints(snap resume.Snapshot) float64 {
	switch {
	case snap.Experience.Count >= 2:
		return weightExperience
	case snap.Experience.Count == 1:
		return weightExperience * 0.7
	}
	return 0
}

func skillPoints(snap resume.Snapshot) float64 {
	switch {
	case snap.Skills.TotalSkills >= 8:
		return weightSkills
	case snap.Skills.TotalSkills >= 5:
		return weightSkills * 0.8
	case snap.Skills.TotalSkills >= 3:
		return weightSkills * 0.5
	}
	return 0
}

// ATSScore applies the additive ATS rubric on its own, with no category
// weighting. Callers outside the scorer use it for quick metrics.
func ATSScore(snap resume.Snapshot) int {
	score := 0
	if snap.Profile.Email != "" && snap.Profile.Mobile != "" {
		score += atsContact
	}
	if snap.Education.Count > 0 {
		score += atsEducation
	}
	if snap.Experience.Count > 0 {
		score += atsExperience
	}
	if snap.Skills.TotalSkills > 0 {
		score += atsSkills
	}
	if snap.Projects.Count > 0 {
		score += atsProjects
	}
	return score
}

func keywordAnalysis(snap resume.Snapshot) *contract.KeywordAnalysis {
	found := resume.ExtractKeywords(snap).AllFound()
	return &contract.KeywordAnalysis{
		Strengths:         found,
		MissingKeywords:   []string{"Consider adding more specific technologies"},
		IndustryRelevance: "Good foundation - add industry-specific keywords",
	}
}

func contentQuality(overall int) *contract.ContentQuality {
	quality := &contract.ContentQuality{Readability: "good"}
	switch {
	case overall >= 70:
		quality.Clarity = "good"
		quality.Impact = "medium"
	case overall >= 50:
		quality.Clarity = "fair"
		quality.Impact = "low"
	default:
		quality.Clarity = "poor"
		quality.Impact = "low"
	}
	return quality
}
